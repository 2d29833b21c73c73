package adapters

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"rocrate-convert/internal/policies"
	"rocrate-convert/internal/ports"
	"rocrate-convert/internal/types"
)

var _ ports.MappingSourcePort = MappingFileAdapter{}

// MappingFileAdapter loads and validates a mapping profile. A missing
// or malformed file is fatal at construction time; nothing downstream
// recovers from a broken mapping.
type MappingFileAdapter struct{}

func NewMappingFileAdapter() MappingFileAdapter {
	return MappingFileAdapter{}
}

func (a MappingFileAdapter) LoadMapping(path string) (types.Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Mapping{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("mapping file not found").
			WithCause(err)
	}
	var mapping types.Mapping
	if err := yaml.Unmarshal(data, &mapping); err != nil {
		return types.Mapping{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse mapping yaml").
			WithCause(err)
	}
	if mapping.Profile == "" {
		mapping.Profile = types.OutputProfileFlat
	}
	normalizeGeoFields(&mapping)
	if err := validateMapping(mapping); err != nil {
		return types.Mapping{}, err
	}
	return mapping, nil
}

// normalizeGeoFields promotes the legacy name-based bounding-box
// heuristic onto the explicit geo_box field kind, so older mapping
// files keep working against the closed kind dispatch.
func normalizeGeoFields(mapping *types.Mapping) {
	coordinates := map[string]struct{}{}
	for _, name := range types.GeoCoordinateNames {
		coordinates[name] = struct{}{}
	}
	for bi := range mapping.Blocks {
		fields := mapping.Blocks[bi].Block.Fields
		for fi := range fields {
			if fields[fi].Config.Kind != "" && fields[fi].Config.Kind != types.FieldKindSingle {
				continue
			}
			if _, ok := coordinates[fields[fi].Name]; ok {
				fields[fi].Config.Kind = types.FieldKindGeoBox
			}
		}
	}
}

func validateMapping(mapping types.Mapping) error {
	switch mapping.Profile {
	case types.OutputProfileDataverse, types.OutputProfileFlat:
	default:
		return invalidMapping(fmt.Sprintf("unknown output profile: %s", mapping.Profile))
	}
	switch policies.AuthorKeyMode(mapping.AuthorDedup) {
	case "", policies.AuthorKeyName, policies.AuthorKeyNameAffiliation:
	default:
		return invalidMapping(fmt.Sprintf("unknown author_dedup mode: %s", mapping.AuthorDedup))
	}
	if len(mapping.Blocks) == 0 {
		return invalidMapping("mapping must define at least one block")
	}
	for _, entry := range mapping.Blocks {
		if len(entry.Block.Fields) == 0 {
			return invalidMapping(fmt.Sprintf("block %s has no fields", entry.Name))
		}
		for _, field := range entry.Block.Fields {
			if err := validateFieldKind(entry.Name, field); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateFieldKind(block string, field types.Field) error {
	switch field.Config.Kind {
	case "", types.FieldKindSingle, types.FieldKindList, types.FieldKindComplex,
		types.FieldKindComplexList, types.FieldKindGeoBox:
	default:
		return invalidMapping(fmt.Sprintf("block %s field %s has unknown type %s", block, field.Name, field.Config.Kind))
	}
	for _, sub := range field.Config.Mapping {
		if err := validateFieldKind(block, sub); err != nil {
			return err
		}
	}
	return nil
}

func invalidMapping(msg string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
}
