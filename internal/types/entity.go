package types

import "strings"

const schemaOrgPrefix = "https://schema.org/"

// Entity wraps a framed JSON-LD node. Properties may hold a scalar, a
// list, a nested object, or an `{@id}` reference; accessors normalize
// those shapes so callers never branch on the raw JSON.
type Entity struct {
	props map[string]any
}

func NewEntity(props map[string]any) Entity {
	return Entity{props: props}
}

// Props exposes the underlying property bag. Callers must treat it as
// read-only; the entity set is immutable for the whole conversion run.
func (e Entity) Props() map[string]any {
	return e.props
}

func (e Entity) IsZero() bool {
	return e.props == nil
}

// ID returns the identity key. Framed graphs use "@id"; raw RO-Crate
// entity lists sometimes carry a bare "id" instead.
func (e Entity) ID() string {
	if id, ok := e.props["@id"].(string); ok {
		return id
	}
	if id, ok := e.props["id"].(string); ok {
		return id
	}
	return ""
}

// Get returns the raw value of a property, checking the short key first
// and the schema.org-expanded key as a fallback.
func (e Entity) Get(prop string) any {
	if e.props == nil {
		return nil
	}
	if val, ok := e.props[prop]; ok {
		return val
	}
	if val, ok := e.props[schemaOrgPrefix+prop]; ok {
		return val
	}
	return nil
}

// GetList returns a property as a list, wrapping a scalar value in a
// one-element slice. Absent properties yield nil.
func (e Entity) GetList(prop string) []any {
	return AsList(e.Get(prop))
}

func (e Entity) Types() []string {
	return stringsOf(e.Get("@type"))
}

func (e Entity) AdditionalTypes() []string {
	return stringsOf(e.Get("additionalType"))
}

func (e Entity) HasType(name string) bool {
	for _, t := range e.Types() {
		if strings.Contains(t, name) {
			return true
		}
	}
	return false
}

func (e Entity) HasAdditionalType(name string) bool {
	for _, t := range e.AdditionalTypes() {
		if t == name {
			return true
		}
	}
	return false
}

// AsList wraps a scalar in a one-element slice; lists pass through and
// nil stays nil. Type mismatches never raise, they normalize.
func AsList(val any) []any {
	switch v := val.(type) {
	case nil:
		return nil
	case []any:
		return v
	default:
		return []any{v}
	}
}

func stringsOf(val any) []string {
	var out []string
	for _, item := range AsList(val) {
		if s, ok := item.(string); ok {
			out = append(out, s)
		} else if m, ok := item.(map[string]any); ok {
			if id, ok := m["@id"].(string); ok {
				out = append(out, id)
			} else if v, ok := m["@value"].(string); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

// EntitySet holds the ordered entity list for one conversion run plus
// an identity-key index built once at construction. The input order is
// preserved; on duplicate ids the first occurrence wins.
type EntitySet struct {
	entities []Entity
	index    map[string]Entity
}

func NewEntitySet(entities []Entity) EntitySet {
	index := make(map[string]Entity, len(entities))
	for _, entity := range entities {
		id := entity.ID()
		if id == "" {
			continue
		}
		if _, ok := index[id]; !ok {
			index[id] = entity
		}
	}
	return EntitySet{entities: entities, index: index}
}

func (s EntitySet) All() []Entity {
	return s.entities
}

func (s EntitySet) Len() int {
	return len(s.entities)
}

// ByID resolves an identity key against the index.
func (s EntitySet) ByID(id string) (Entity, bool) {
	entity, ok := s.index[id]
	return entity, ok
}

// ByType returns, in input order, the entities carrying the given type.
// When classifiers are non-empty, an entity must additionally carry at
// least one of them as an additionalType.
func (s EntitySet) ByType(name string, classifiers ...string) []Entity {
	var out []Entity
	for _, entity := range s.entities {
		if !entity.HasType(name) {
			continue
		}
		if len(classifiers) == 0 {
			out = append(out, entity)
			continue
		}
		for _, classifier := range classifiers {
			if entity.HasAdditionalType(classifier) {
				out = append(out, entity)
				break
			}
		}
	}
	return out
}
