package core

import (
	"regexp"
	"strconv"

	"rocrate-convert/internal/types"
)

var geoNumberPattern = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// ParseGeoBox extracts the numeric tokens of a Schema.org GeoShape box
// string ("lat lon lat lon") and orders them into a bounding box.
// Fewer than four numbers yields no box; the field is then treated as
// absent rather than erroring.
func ParseGeoBox(s string) (types.GeoBox, bool) {
	tokens := geoNumberPattern.FindAllString(s, -1)
	if len(tokens) < 4 {
		return types.GeoBox{}, false
	}
	nums := make([]float64, 0, 4)
	for _, token := range tokens[:4] {
		n, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return types.GeoBox{}, false
		}
		nums = append(nums, n)
	}
	lats := [2]float64{nums[0], nums[2]}
	lons := [2]float64{nums[1], nums[3]}
	return types.GeoBox{
		West:  minOf(lons),
		East:  maxOf(lons),
		North: maxOf(lats),
		South: minOf(lats),
	}, true
}

func minOf(pair [2]float64) float64 {
	if pair[0] < pair[1] {
		return pair[0]
	}
	return pair[1]
}

func maxOf(pair [2]float64) float64 {
	if pair[0] > pair[1] {
		return pair[0]
	}
	return pair[1]
}
