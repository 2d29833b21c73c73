package core

import (
	"context"
	"maps"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"rocrate-convert/internal/policies"
	"rocrate-convert/internal/types"
)

// Block names routed through the domain extractors instead of the
// generic source-path machinery.
const (
	blockCrop   = "crop"
	blockSensor = "sensor"
)

// EntityMapper applies the mapping configuration to one source entity,
// producing the per-block field data of the output document. All
// per-field failures degrade to omission; only the orchestration layer
// can fail.
type EntityMapper struct {
	mapping types.Mapping
	set     types.EntitySet
	refs    RefResolver
	lits    LiteralResolver
	fields  FieldFormatter
	authors AuthorExtractor
	crops   CropExtractor
	sensors SensorExtractor
}

func NewEntityMapper(mapping types.Mapping, set types.EntitySet) EntityMapper {
	refs := NewRefResolver(set)
	lits := NewLiteralResolver(refs)
	policy := policies.NewDedupPolicy(policies.AuthorKeyMode(mapping.AuthorDedup))
	return EntityMapper{
		mapping: mapping,
		set:     set,
		refs:    refs,
		lits:    lits,
		fields:  NewFieldFormatter(refs, lits),
		authors: NewAuthorExtractor(set, refs, lits, policy),
		crops:   NewCropExtractor(set, refs, lits, policy),
		sensors: NewSensorExtractor(set, refs, lits, policy),
	}
}

func (m EntityMapper) MapEntity(ctx context.Context, entity types.Entity) types.MappedEntity {
	result := types.MappedEntity{Blocks: map[string]any{}}
	for _, entry := range m.mapping.Blocks {
		assert.NotEmpty(ctx, entry.Name, "mapping block name must not be empty")
		blockData := m.mapBlock(ctx, entry.Name, entry.Block, entity)
		if len(blockData) > 0 {
			result.Blocks[entry.Name] = blockData
		} else {
			log.Ctx(ctx).Debug().Str("block", entry.Name).Msg("block empty, omitted")
		}
	}
	if identifier := m.lits.Literal(entity.Get("identifier")); identifier != "" {
		result.Identifier = identifier
	} else if id := entity.ID(); id != "" {
		result.Identifier = id
	}
	return result
}

func (m EntityMapper) mapBlock(ctx context.Context, name string, block types.Block, entity types.Entity) map[string]any {
	blockData := map[string]any{}

	switch name {
	case blockCrop:
		m.formatRecords(blockData, block, cropItems(m.crops.Extract(ctx)))
	case blockSensor:
		m.formatRecords(blockData, block, sensorItems(m.sensors.Extract(ctx)))
	default:
		for _, field := range block.Fields {
			if m.applyOverride(ctx, name, field, entity, blockData) {
				continue
			}
			val := ResolveSource(entity, field.Config.Source)
			if IsEmptyValue(val) && field.Config.Default != nil {
				val = field.Config.Default
			}
			if IsEmptyValue(val) {
				continue
			}
			if formatted := m.fields.Format(field.Name, val, field.Config); formatted != nil {
				maps.Copy(blockData, formatted)
			}
		}
	}

	// Mandatory fallbacks keep required fields present even when every
	// source came up empty.
	for _, field := range block.Fields {
		if !field.Config.Required || field.Config.Fallback == nil {
			continue
		}
		if _, present := blockData[field.Name]; !present {
			blockData[field.Name] = field.Config.Fallback
		}
	}
	return blockData
}

func (m EntityMapper) formatRecords(blockData map[string]any, block types.Block, items []any) {
	if len(items) == 0 {
		return
	}
	for _, field := range block.Fields {
		if formatted := m.fields.Format(field.Name, items, field.Config); formatted != nil {
			maps.Copy(blockData, formatted)
		}
	}
}

// applyOverride implements the citation fields whose aggregation logic
// cannot be expressed as a plain source-path chain. It returns true
// when the field was fully handled.
func (m EntityMapper) applyOverride(ctx context.Context, blockName string, field types.Field, entity types.Entity, blockData map[string]any) bool {
	if blockName != "citation" {
		return false
	}
	switch field.Name {
	case "author":
		records := m.authors.Extract(ctx)
		items := make([]any, 0, len(records))
		for _, record := range records {
			items = append(items, record.Placeholders())
		}
		if formatted := m.fields.Format(field.Name, items, field.Config); formatted != nil {
			maps.Copy(blockData, formatted)
		}
		return true

	case "alternativeTitle":
		mainTitle := m.lits.Literal(entity.Get("name"))
		seen := map[string]struct{}{}
		var titles []any
		for _, dataset := range m.set.ByType("Dataset", string(types.ClassifierStudy), string(types.ClassifierAssay)) {
			title := m.lits.Literal(dataset.Get("name"))
			if title == "" || title == mainTitle {
				continue
			}
			if _, dup := seen[title]; dup {
				continue
			}
			seen[title] = struct{}{}
			titles = append(titles, title)
		}
		if len(titles) > 0 {
			if formatted := m.fields.Format(field.Name, titles, field.Config); formatted != nil {
				maps.Copy(blockData, formatted)
			}
		}
		return true

	case "otherId":
		raw := ResolveSource(entity, sourcesOr(field.Config, "identifier"))
		var items []any
		for _, item := range types.AsList(raw) {
			lit := m.lits.Literal(item)
			if lit == "" || lit == "None" {
				continue
			}
			agency := types.IdentifierSchemeOther
			if isDOI(lit) {
				agency = types.IdentifierSchemeDOI
			}
			items = append(items, map[string]any{
				"otherIdValue":  leaf(lit, field.Config.Wrap),
				"otherIdAgency": leaf(string(agency), field.Config.Wrap),
			})
		}
		if len(items) > 0 {
			blockData[field.Name] = items
		}
		return true

	case "datasetContact":
		var items []any
		raw := ResolveSource(entity, sourcesOr(field.Config, "contactPoint", "maintainer"))
		for _, ref := range types.AsList(raw) {
			contact, ok := m.refs.ResolveEntity(ref)
			if !ok {
				continue
			}
			email := m.lits.Literal(contact.Get("email"))
			if email == "" {
				continue
			}
			name := m.lits.Literal(contact.Get("name"))
			if name == "" {
				name = composeName(
					m.lits.Literal(contact.Get("givenName")),
					m.lits.Literal(contact.Get("familyName")),
				)
			}
			if name == "" {
				name = "Unknown"
			}
			items = append(items, map[string]any{
				"datasetContactName":  leaf(name, field.Config.Wrap),
				"datasetContactEmail": leaf(email, field.Config.Wrap),
			})
		}
		if len(items) > 0 {
			blockData[field.Name] = items
		} else if fallback := types.AsList(field.Config.Default); len(fallback) > 0 {
			blockData[field.Name] = fallback
		}
		return true

	case "dsDescription":
		if desc := ResolveSource(entity, sourcesOr(field.Config, "description", "comment")); !IsEmptyValue(desc) {
			// The entity's own description flows through the
			// generic path and its configured formatting.
			return false
		}
		seen := map[string]struct{}{}
		var items []any
		for _, dataset := range m.set.ByType("Dataset", string(types.ClassifierStudy), string(types.ClassifierAssay)) {
			desc := m.lits.Literal(ResolveSource(dataset, []string{"description", "comment"}))
			if desc == "" {
				continue
			}
			if _, dup := seen[desc]; dup {
				continue
			}
			seen[desc] = struct{}{}
			items = append(items, map[string]any{"dsDescriptionValue": leaf(desc, field.Config.Wrap)})
		}
		if len(items) > 0 {
			blockData[field.Name] = items
		}
		return true
	}
	return false
}

func sourcesOr(cfg types.FieldConfig, fallback ...string) []string {
	if len(cfg.Source) > 0 {
		return cfg.Source
	}
	return fallback
}

func isDOI(identifier string) bool {
	lower := strings.ToLower(identifier)
	return strings.Contains(lower, "doi.org") ||
		strings.Contains(lower, "doi:") ||
		strings.HasPrefix(lower, "10.")
}

func cropItems(records []types.CropRecord) []any {
	items := make([]any, 0, len(records))
	for _, record := range records {
		items = append(items, record.Placeholders())
	}
	return items
}

func sensorItems(records []types.SensorRecord) []any {
	items := make([]any, 0, len(records))
	for _, record := range records {
		items = append(items, record.Placeholders())
	}
	return items
}
