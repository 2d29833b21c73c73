package core

import (
	"strings"

	"rocrate-convert/internal/types"
)

// Placeholder sources let mapping profiles address parsed bounding-box
// coordinates inside complex_list items.
var geoPlaceholderCoords = map[string]string{
	"_geo_west":  "westLongitude",
	"_geo_east":  "eastLongitude",
	"_geo_north": "northLatitude",
	"_geo_south": "southLatitude",
}

// FieldFormatter renders a resolved value into the output shape a
// field configuration asks for. Every handler degrades to omission:
// a value that resolves empty produces no output and no error.
type FieldFormatter struct {
	refs RefResolver
	lits LiteralResolver
}

func NewFieldFormatter(refs RefResolver, lits LiteralResolver) FieldFormatter {
	return FieldFormatter{refs: refs, lits: lits}
}

// Format returns the rendered field keyed by its output name, or nil
// when the value renders empty. Geo-box fields may contribute several
// coordinate keys at once; callers merge the returned map into the
// block data.
func (f FieldFormatter) Format(name string, val any, cfg types.FieldConfig) map[string]any {
	kind := cfg.Kind
	if kind == "" {
		kind = types.FieldKindSingle
	}
	switch kind {
	case types.FieldKindGeoBox:
		return f.formatGeoBox(name, val, cfg)
	case types.FieldKindList:
		return f.formatList(name, val, cfg)
	case types.FieldKindComplex:
		return f.formatComplex(name, val, cfg)
	case types.FieldKindComplexList:
		return f.formatComplexList(name, val, cfg)
	default:
		return f.formatSingle(name, val, cfg)
	}
}

func (f FieldFormatter) formatSingle(name string, val any, cfg types.FieldConfig) map[string]any {
	lit := f.lits.Literal(val)
	if lit == "" {
		return nil
	}
	return map[string]any{name: leaf(lit, cfg.Wrap)}
}

func (f FieldFormatter) formatList(name string, val any, cfg types.FieldConfig) map[string]any {
	// A single wrapped scalar counts as a string so comma-splitting
	// still applies to expanded JSON-LD values.
	if s, ok := wrappedScalar(val); ok {
		val = s
	}
	var elements []any
	switch v := val.(type) {
	case string:
		for _, piece := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(piece); trimmed != "" {
				elements = append(elements, trimmed)
			}
		}
	case []any:
		elements = v
	default:
		elements = []any{val}
	}

	var items []any
	appendLit := func(lit string) {
		if lit == "" {
			return
		}
		switch {
		case cfg.ItemKey != "":
			items = append(items, map[string]any{cfg.ItemKey: map[string]any{"value": lit}})
		case cfg.Wrap:
			items = append(items, map[string]any{"value": lit})
		default:
			items = append(items, lit)
		}
	}
	for _, element := range elements {
		// An element resolving to a list flattens one level.
		if nested, ok := element.([]any); ok {
			for _, inner := range nested {
				appendLit(f.lits.Literal(inner))
			}
			continue
		}
		appendLit(f.lits.Literal(element))
	}
	if len(items) == 0 {
		return nil
	}
	return map[string]any{name: items}
}

func (f FieldFormatter) formatComplex(name string, val any, cfg types.FieldConfig) map[string]any {
	if !cfg.HasMapping() {
		if m, ok := val.(map[string]any); ok {
			return map[string]any{name: m}
		}
		return nil
	}
	obj := f.complexItem(val, cfg)
	if len(obj) == 0 {
		return nil
	}
	return map[string]any{name: obj}
}

func (f FieldFormatter) formatComplexList(name string, val any, cfg types.FieldConfig) map[string]any {
	items := types.AsList(val)
	geo := mappingHasGeoPlaceholders(cfg)
	var out []any
	for _, item := range items {
		if !cfg.HasMapping() {
			// Pass-through for pre-shaped records, e.g. fallbacks.
			if m, ok := item.(map[string]any); ok {
				out = append(out, m)
			}
			continue
		}
		if geo {
			if sub := f.geoItem(item, cfg); len(sub) > 0 {
				out = append(out, sub)
			}
			continue
		}
		if _, isMap := item.(map[string]any); isMap {
			if sub := f.complexItem(item, cfg); len(sub) > 0 {
				out = append(out, sub)
			}
			continue
		}
		if sub := f.literalItem(item, cfg); len(sub) > 0 {
			out = append(out, sub)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return map[string]any{name: out}
}

func (f FieldFormatter) formatGeoBox(name string, val any, cfg types.FieldConfig) map[string]any {
	box, ok := ParseGeoBox(f.lits.Literal(val))
	if !ok {
		return nil
	}
	if cfg.HasMapping() {
		sub := f.coordinateFields(box, cfg)
		if len(sub) == 0 {
			return nil
		}
		return map[string]any{name: sub}
	}
	out := make(map[string]any, 4)
	for coord, value := range box.Coordinates() {
		out[coord] = leafAny(value, cfg.Wrap)
	}
	return out
}

// complexItem assembles the flat sub-object of one nested entity.
// Sub-fields with `_`-prefixed sources read extractor placeholders
// directly; everything else resolves source paths. Empty sub-fields
// are omitted.
func (f FieldFormatter) complexItem(item any, cfg types.FieldConfig) map[string]any {
	obj := map[string]any{}
	for _, sub := range cfg.Mapping {
		subVal := f.subValue(item, sub.Config)
		if IsEmptyValue(subVal) {
			continue
		}
		lit := f.lits.Literal(subVal)
		if lit == "" {
			continue
		}
		obj[sub.Name] = leaf(lit, sub.Config.Wrap)
	}
	return obj
}

func (f FieldFormatter) literalItem(item any, cfg types.FieldConfig) map[string]any {
	sub := map[string]any{}
	for _, field := range cfg.Mapping {
		if !containsSource(field.Config.Source, "@") {
			continue
		}
		if lit := f.lits.Literal(item); lit != "" {
			sub[field.Name] = leaf(lit, field.Config.Wrap)
		}
	}
	return sub
}

func (f FieldFormatter) geoItem(item any, cfg types.FieldConfig) map[string]any {
	box, ok := ParseGeoBox(f.lits.Literal(item))
	if !ok {
		return nil
	}
	return f.coordinateFields(box, cfg)
}

func (f FieldFormatter) coordinateFields(box types.GeoBox, cfg types.FieldConfig) map[string]any {
	coords := box.Coordinates()
	sub := map[string]any{}
	for _, field := range cfg.Mapping {
		coordName := field.Name
		if len(field.Config.Source) > 0 {
			if mapped, ok := geoPlaceholderCoords[field.Config.Source[0]]; ok {
				coordName = mapped
			}
		}
		value, ok := coords[coordName]
		if !ok {
			continue
		}
		sub[field.Name] = leafAny(value, field.Config.Wrap)
	}
	return sub
}

func (f FieldFormatter) subValue(item any, cfg types.FieldConfig) any {
	if len(cfg.Source) > 0 && strings.HasPrefix(cfg.Source[0], "_") {
		if m, ok := item.(map[string]any); ok {
			return m[cfg.Source[0]]
		}
		return nil
	}
	return ResolveSource(item, cfg.Source)
}

func mappingHasGeoPlaceholders(cfg types.FieldConfig) bool {
	for _, field := range cfg.Mapping {
		for _, source := range field.Config.Source {
			if strings.HasPrefix(source, "_geo_") {
				return true
			}
		}
	}
	return false
}

// wrappedScalar unwraps `[{"@value": "x"}]` and `{"@value": "x"}`
// shapes down to the bare string.
func wrappedScalar(val any) (string, bool) {
	if list, ok := val.([]any); ok {
		if len(list) != 1 {
			return "", false
		}
		val = list[0]
	}
	switch v := val.(type) {
	case string:
		return v, true
	case map[string]any:
		if s, ok := v["@value"].(string); ok && len(v) == 1 {
			return s, true
		}
	}
	return "", false
}

func containsSource(sources []string, want string) bool {
	for _, source := range sources {
		if source == want {
			return true
		}
	}
	return false
}

func leaf(lit string, wrap bool) any {
	if wrap {
		return map[string]any{"value": lit}
	}
	return lit
}

func leafAny(val any, wrap bool) any {
	if wrap {
		return map[string]any{"value": val}
	}
	return val
}
