package core

import (
	"rocrate-convert/internal/types"
)

// RefResolver dereferences `{@id}`-shaped values against the entity
// index. Resolution never fails: a miss returns the input unchanged
// and callers treat it as an inert literal.
type RefResolver struct {
	set types.EntitySet
}

func NewRefResolver(set types.EntitySet) RefResolver {
	return RefResolver{set: set}
}

// Resolve returns the referenced entity's property bag when the value
// is a reference with a known target, and the value itself otherwise.
func (r RefResolver) Resolve(val any) any {
	id, ok := ReferenceID(val)
	if !ok {
		return val
	}
	if entity, found := r.set.ByID(id); found {
		return entity.Props()
	}
	return val
}

// ResolveEntity resolves a value to an entity when possible: bare id
// strings and references go through the index, inline objects are
// wrapped as anonymous entities. The second return is false for
// scalars and unresolved id strings.
func (r RefResolver) ResolveEntity(val any) (types.Entity, bool) {
	switch v := val.(type) {
	case types.Entity:
		return v, true
	case string:
		if entity, found := r.set.ByID(v); found {
			return entity, true
		}
		return types.Entity{}, false
	case map[string]any:
		if id, ok := ReferenceID(v); ok {
			if entity, found := r.set.ByID(id); found {
				return entity, true
			}
		}
		return types.NewEntity(v), true
	default:
		return types.Entity{}, false
	}
}

// ReferenceID extracts the identity key from a reference-shaped value.
func ReferenceID(val any) (string, bool) {
	m, ok := val.(map[string]any)
	if !ok {
		return "", false
	}
	if id, ok := m["@id"].(string); ok {
		return id, true
	}
	if id, ok := m["id"].(string); ok {
		return id, true
	}
	return "", false
}
