package policies

import (
	"strings"

	"rocrate-convert/internal/types"
)

// AuthorKeyMode selects the composite key used to collapse duplicate
// author records. The default keys on the display name alone, matching
// the observed converter behavior; the pair mode additionally folds in
// the affiliation for target schemas that treat the same person at two
// institutions as two records.
type AuthorKeyMode string

const (
	AuthorKeyName            AuthorKeyMode = "name"
	AuthorKeyNameAffiliation AuthorKeyMode = "name_affiliation"
)

// DedupPolicy derives deduplication keys for composite extractor
// records. Keys are value-derived, never identity keys: two distinct
// graph nodes describing the same person collapse to one record.
type DedupPolicy struct {
	authorKey AuthorKeyMode
}

func NewDedupPolicy(mode AuthorKeyMode) DedupPolicy {
	if mode != AuthorKeyNameAffiliation {
		mode = AuthorKeyName
	}
	return DedupPolicy{authorKey: mode}
}

func (p DedupPolicy) AuthorKey(record types.AuthorRecord) string {
	if p.authorKey == AuthorKeyNameAffiliation {
		return join(record.Name, record.Affiliation)
	}
	return record.Name
}

func (p DedupPolicy) CropKey(record types.CropRecord) string {
	return join(record.Species, record.Pest)
}

func (p DedupPolicy) SensorKey(record types.SensorRecord) string {
	return join(record.Type, record.PlatformType, record.Manufacturer, record.Model)
}

func join(parts ...string) string {
	return strings.Join(parts, "|")
}
