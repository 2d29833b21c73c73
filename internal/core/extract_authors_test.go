package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rocrate-convert/internal/types"
)

func newAuthorExtractor(set types.EntitySet) AuthorExtractor {
	refs, lits := resolversFor(set)
	return NewAuthorExtractor(set, refs, lits, defaultPolicy())
}

func TestExtractAuthorsFromClassifiedDatasets(t *testing.T) {
	set := entitySetOf(
		map[string]any{
			"@id":            "./",
			"@type":          "Dataset",
			"additionalType": "Investigation",
			"creator":        []any{map[string]any{"@id": "https://orcid.org/0000-0002-1825-0097"}},
		},
		map[string]any{
			"@id":         "https://orcid.org/0000-0002-1825-0097",
			"@type":       "Person",
			"name":        "Jane Doe",
			"affiliation": map[string]any{"name": "Acme University"},
		},
	)

	records := newAuthorExtractor(set).Extract(t.Context())
	require.Len(t, records, 1)
	assert.Equal(t, types.AuthorRecord{
		Name:        "Jane Doe",
		Affiliation: "Acme University",
		Identifier:  "https://orcid.org/0000-0002-1825-0097",
		Scheme:      types.IdentifierSchemeORCID,
	}, records[0])
}

func TestExtractAuthorsDeduplicatesAcrossDatasets(t *testing.T) {
	person := map[string]any{"@id": "#p1", "@type": "Person", "name": "Jane Doe"}
	set := entitySetOf(
		map[string]any{
			"@id":            "./",
			"@type":          "Dataset",
			"additionalType": "Investigation",
			"creator":        []any{map[string]any{"@id": "#p1"}},
		},
		map[string]any{
			"@id":            "#study-1",
			"@type":          "Dataset",
			"additionalType": "Study",
			"creator":        []any{map[string]any{"@id": "#p1"}},
			"author":         []any{map[string]any{"@id": "#p1"}},
		},
		person,
	)

	records := newAuthorExtractor(set).Extract(t.Context())
	require.Len(t, records, 1)
	assert.Equal(t, "Jane Doe", records[0].Name)

	// Local fragment ids never become author identifiers.
	assert.Empty(t, records[0].Identifier)
}

func TestExtractAuthorsComposesName(t *testing.T) {
	set := entitySetOf(
		map[string]any{
			"@id":            "#study-1",
			"@type":          "Dataset",
			"additionalType": "Study",
			"creator":        []any{map[string]any{"@id": "#p2"}},
		},
		map[string]any{
			"@id":         "#p2",
			"@type":       "Person",
			"givenName":   "Max",
			"familyName":  "Mustermann",
			"affiliation": map[string]any{"name": "Plant Pathology Institute"},
		},
	)

	records := newAuthorExtractor(set).Extract(t.Context())
	require.Len(t, records, 1)
	assert.Equal(t, "Mustermann, Max", records[0].Name)
	assert.Equal(t, "Plant Pathology Institute", records[0].Affiliation)
}

func TestExtractAuthorsPlainDatasetFallback(t *testing.T) {
	set := entitySetOf(
		map[string]any{
			"@id":   "https://doi.org/10.5072/FK2/YIELD02",
			"@type": "Dataset",
			"author": []any{map[string]any{
				"@type": "Organization",
				"name":  "Field Robotics Lab",
				"contactPoint": map[string]any{
					"@type": "ContactPoint",
					"name":  "John Smith",
					"email": "jsmith@frl.example",
				},
			}},
		},
	)

	records := newAuthorExtractor(set).Extract(t.Context())
	require.Len(t, records, 1)
	assert.Equal(t, types.AuthorRecord{
		Name:        "John Smith",
		Affiliation: "Field Robotics Lab",
		Email:       "jsmith@frl.example",
	}, records[0])
}

func TestExtractAuthorsClassifiedPassSuppressesFallback(t *testing.T) {
	set := entitySetOf(
		map[string]any{
			"@id":            "./",
			"@type":          "Dataset",
			"additionalType": "Investigation",
			"creator":        []any{map[string]any{"name": "Classified Author"}},
		},
		map[string]any{
			"@id":    "#plain",
			"@type":  "Dataset",
			"author": []any{map[string]any{"name": "Plain Author"}},
		},
	)

	records := newAuthorExtractor(set).Extract(t.Context())
	require.Len(t, records, 1)
	assert.Equal(t, "Classified Author", records[0].Name)
}

func TestExtractAuthorsSkipsNameless(t *testing.T) {
	set := entitySetOf(
		map[string]any{
			"@id":            "./",
			"@type":          "Dataset",
			"additionalType": "Investigation",
			"creator":        []any{map[string]any{"@type": "Person", "email": "anon@example.org"}},
		},
	)

	records := newAuthorExtractor(set).Extract(t.Context())
	assert.Empty(t, records)
}

func TestExtractAuthorsDeterministic(t *testing.T) {
	set := entitySetOf(
		map[string]any{
			"@id":            "./",
			"@type":          "Dataset",
			"additionalType": "Investigation",
			"creator": []any{
				map[string]any{"name": "Alpha"},
				map[string]any{"name": "Beta"},
				map[string]any{"name": "Alpha"},
			},
		},
	)

	x := newAuthorExtractor(set)
	first := x.Extract(t.Context())
	second := x.Extract(t.Context())
	require.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, "Alpha", first[0].Name)
	assert.Equal(t, "Beta", first[1].Name)
}
