package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rocrate-convert/internal/types"
)

func TestLookupPath(t *testing.T) {
	entity := types.NewEntity(map[string]any{
		"name": "Wheat trial",
		"spatialCoverage": map[string]any{
			"geo": map[string]any{"box": "48.0 9.0 49.0 10.0"},
		},
		"about": []any{
			map[string]any{"name": "Infection trial"},
			map[string]any{"name": "Flight campaign"},
			map[string]any{"description": "no name here"},
		},
	})

	t.Run("self path", func(t *testing.T) {
		assert.Equal(t, "x", LookupPath("x", "@"))
	})

	t.Run("single hop", func(t *testing.T) {
		assert.Equal(t, "Wheat trial", LookupPath(entity, "name"))
	})

	t.Run("nested hops", func(t *testing.T) {
		assert.Equal(t, "48.0 9.0 49.0 10.0", LookupPath(entity, "spatialCoverage.geo.box"))
	})

	t.Run("list hop collects matches", func(t *testing.T) {
		assert.Equal(t, []any{"Infection trial", "Flight campaign"}, LookupPath(entity, "about.name"))
	})

	t.Run("miss returns nil", func(t *testing.T) {
		assert.Nil(t, LookupPath(entity, "spatialCoverage.geo.missing"))
		assert.Nil(t, LookupPath(entity, "nope.name"))
		assert.Nil(t, LookupPath("scalar", "name"))
	})
}

func TestResolveSourceFirstMatchWins(t *testing.T) {
	entity := types.NewEntity(map[string]any{
		"name":          "Primary",
		"alternateName": "Secondary",
	})

	assert.Equal(t, "Primary", ResolveSource(entity, []string{"name", "alternateName"}))
	assert.Equal(t, "Secondary", ResolveSource(entity, []string{"missing", "alternateName"}))
	assert.Nil(t, ResolveSource(entity, []string{"missing", "gone"}))
	assert.Nil(t, ResolveSource(entity, nil))
}

func TestIsEmptyValue(t *testing.T) {
	assert.True(t, IsEmptyValue(nil))
	assert.True(t, IsEmptyValue(""))
	assert.True(t, IsEmptyValue([]any{}))
	assert.True(t, IsEmptyValue(map[string]any{}))

	assert.False(t, IsEmptyValue("x"))
	assert.False(t, IsEmptyValue(0))
	assert.False(t, IsEmptyValue(false))
	assert.False(t, IsEmptyValue([]any{nil}))
}
