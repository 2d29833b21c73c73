package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePassthrough(t *testing.T) {
	refs, _ := resolversFor(entitySetOf())

	assert.Equal(t, "plain", refs.Resolve("plain"))
	assert.Equal(t, 7, refs.Resolve(7))

	// Unknown reference comes back unchanged, never an error.
	missing := map[string]any{"@id": "#missing"}
	assert.Equal(t, missing, refs.Resolve(missing))
}

func TestResolveKnownReference(t *testing.T) {
	person := map[string]any{"@id": "#p1", "name": "Jane Doe"}
	refs, _ := resolversFor(entitySetOf(person))

	got, ok := refs.Resolve(map[string]any{"@id": "#p1"}).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", got["name"])
}

func TestResolveEntity(t *testing.T) {
	person := map[string]any{"@id": "#p1", "name": "Jane Doe"}
	refs, _ := resolversFor(entitySetOf(person))

	t.Run("reference resolves through index", func(t *testing.T) {
		entity, ok := refs.ResolveEntity(map[string]any{"@id": "#p1"})
		require.True(t, ok)
		assert.Equal(t, "Jane Doe", entity.Get("name"))
	})

	t.Run("bare id string resolves", func(t *testing.T) {
		entity, ok := refs.ResolveEntity("#p1")
		require.True(t, ok)
		assert.Equal(t, "#p1", entity.ID())
	})

	t.Run("inline object wraps as anonymous entity", func(t *testing.T) {
		entity, ok := refs.ResolveEntity(map[string]any{"name": "Inline Org"})
		require.True(t, ok)
		assert.Equal(t, "Inline Org", entity.Get("name"))
	})

	t.Run("unresolved id string misses", func(t *testing.T) {
		_, ok := refs.ResolveEntity("#missing")
		assert.False(t, ok)
	})

	t.Run("scalar misses", func(t *testing.T) {
		_, ok := refs.ResolveEntity(3.14)
		assert.False(t, ok)
	})
}

func TestReferenceID(t *testing.T) {
	id, ok := ReferenceID(map[string]any{"@id": "#x"})
	require.True(t, ok)
	assert.Equal(t, "#x", id)

	id, ok = ReferenceID(map[string]any{"id": "#y"})
	require.True(t, ok)
	assert.Equal(t, "#y", id)

	_, ok = ReferenceID("not a map")
	assert.False(t, ok)
}
