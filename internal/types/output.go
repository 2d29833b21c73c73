package types

// GeoBox is a parsed bounding box. Construction guarantees
// West <= East and South <= North.
type GeoBox struct {
	West  float64
	East  float64
	North float64
	South float64
}

// Coordinates returns the box as the four Dataverse coordinate fields.
func (b GeoBox) Coordinates() map[string]float64 {
	return map[string]float64{
		"westLongitude":  b.West,
		"eastLongitude":  b.East,
		"northLatitude":  b.North,
		"southLatitude":  b.South,
	}
}

// GeoCoordinateNames lists the bounding-box field names, used to route
// legacy mapping profiles onto the geo_box field kind.
var GeoCoordinateNames = []string{
	"westLongitude", "eastLongitude", "northLatitude", "southLatitude",
}

// MappedEntity is the mapper's result for one source entity: the
// per-block field data plus an optional top-level identifier.
type MappedEntity struct {
	Blocks     map[string]any
	Identifier string
}

func (m MappedEntity) IsEmpty() bool {
	return len(m.Blocks) == 0 && m.Identifier == ""
}

// Envelope shapes a mapped entity for the configured output profile.
// The dataverse profile nests blocks under datasetVersion with their
// display names; the flat profile emits the bare block map.
func Envelope(mapping Mapping, mapped MappedEntity) map[string]any {
	if mapping.Profile != OutputProfileDataverse {
		out := make(map[string]any, len(mapped.Blocks)+1)
		for name, data := range mapped.Blocks {
			out[name] = data
		}
		if mapped.Identifier != "" {
			out["identifier"] = mapped.Identifier
		}
		return out
	}
	blocks := make(map[string]any, len(mapped.Blocks))
	for name, data := range mapped.Blocks {
		displayName := name
		if block, ok := mapping.Block(name); ok && block.DisplayName != "" {
			displayName = block.DisplayName
		}
		blocks[name] = map[string]any{
			"displayName": displayName,
			"fields":      data,
		}
	}
	version := map[string]any{"metadataBlocks": blocks}
	out := map[string]any{"datasetVersion": version}
	if mapped.Identifier != "" {
		out["identifier"] = mapped.Identifier
	}
	return out
}
