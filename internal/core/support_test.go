package core

import (
	"rocrate-convert/internal/policies"
	"rocrate-convert/internal/types"
)

// entitySetOf builds an entity set from raw property bags, mirroring
// what the graph adapter produces from a parsed JSON-LD document.
func entitySetOf(nodes ...map[string]any) types.EntitySet {
	entities := make([]types.Entity, 0, len(nodes))
	for _, node := range nodes {
		entities = append(entities, types.NewEntity(node))
	}
	return types.NewEntitySet(entities)
}

func resolversFor(set types.EntitySet) (RefResolver, LiteralResolver) {
	refs := NewRefResolver(set)
	return refs, NewLiteralResolver(refs)
}

func defaultPolicy() policies.DedupPolicy {
	return policies.NewDedupPolicy(policies.AuthorKeyName)
}
