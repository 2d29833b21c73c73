package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rocrate-convert/internal/types"
)

func newCropExtractor(set types.EntitySet) CropExtractor {
	refs, lits := resolversFor(set)
	return NewCropExtractor(set, refs, lits, defaultPolicy())
}

func cropStudy(processIDs ...string) map[string]any {
	about := make([]any, 0, len(processIDs))
	for _, id := range processIDs {
		about = append(about, map[string]any{"@id": id})
	}
	return map[string]any{
		"@id":            "#study-1",
		"@type":          "Dataset",
		"additionalType": "Study",
		"about":          about,
	}
}

func sampleNode(id string, properties ...map[string]any) map[string]any {
	props := make([]any, 0, len(properties))
	for _, p := range properties {
		props = append(props, p)
	}
	return map[string]any{
		"@id":                id,
		"@type":              "Sample",
		"additionalProperty": props,
	}
}

func organismProperty(value, uri string) map[string]any {
	return map[string]any{"@type": "PropertyValue", "name": "Organism", "value": value, "valueRef": uri}
}

func infectionProperty(value, uri string) map[string]any {
	return map[string]any{"@type": "PropertyValue", "name": "Infection Taxon", "value": value, "valueRef": uri}
}

func TestExtractCrops(t *testing.T) {
	set := entitySetOf(
		cropStudy("#process-1"),
		map[string]any{
			"@id":    "#process-1",
			"@type":  "LabProcess",
			"object": []any{map[string]any{"@id": "#sample-1"}},
		},
		sampleNode("#sample-1",
			organismProperty("Triticum aestivum", "http://purl.obolibrary.org/obo/NCBITaxon_4565"),
			infectionProperty("Puccinia triticina", "http://purl.obolibrary.org/obo/NCBITaxon_208348"),
		),
	)

	records := newCropExtractor(set).Extract(t.Context())
	require.Len(t, records, 1)
	assert.Equal(t, types.CropRecord{
		Species:    "Triticum aestivum",
		SpeciesURI: "http://purl.obolibrary.org/obo/NCBITaxon_4565",
		Pest:       "Puccinia triticina",
		PestURI:    "http://purl.obolibrary.org/obo/NCBITaxon_208348",
	}, records[0])
}

func TestExtractCropsCollapsesDuplicateSamples(t *testing.T) {
	set := entitySetOf(
		cropStudy("#process-1"),
		map[string]any{
			"@id":   "#process-1",
			"@type": "LabProcess",
			"object": []any{
				map[string]any{"@id": "#sample-1"},
				map[string]any{"@id": "#sample-2"},
			},
		},
		sampleNode("#sample-1", organismProperty("Triticum aestivum", "")),
		sampleNode("#sample-2", organismProperty("Triticum aestivum", "")),
	)

	records := newCropExtractor(set).Extract(t.Context())
	require.Len(t, records, 1)
	assert.Equal(t, "Triticum aestivum", records[0].Species)
}

func TestExtractCropsAcceptsMaterialAdditionalType(t *testing.T) {
	set := entitySetOf(
		cropStudy("#process-1"),
		map[string]any{
			"@id":    "#process-1",
			"@type":  "LabProcess",
			"object": []any{map[string]any{"@id": "#material-1"}},
		},
		map[string]any{
			"@id":                "#material-1",
			"@type":              "Thing",
			"additionalType":     "Material",
			"additionalProperty": []any{organismProperty("Hordeum vulgare", "")},
		},
	)

	records := newCropExtractor(set).Extract(t.Context())
	require.Len(t, records, 1)
	assert.Equal(t, "Hordeum vulgare", records[0].Species)
}

func TestExtractCropsSkipsUnrelatedBranches(t *testing.T) {
	set := entitySetOf(
		cropStudy("#not-a-process", "#process-1"),
		map[string]any{"@id": "#not-a-process", "@type": "Event"},
		map[string]any{
			"@id":   "#process-1",
			"@type": "LabProcess",
			"object": []any{
				map[string]any{"@id": "#plain-file"},
				map[string]any{"@id": "#empty-sample"},
			},
		},
		map[string]any{"@id": "#plain-file", "@type": "MediaObject"},
		sampleNode("#empty-sample"),
	)

	records := newCropExtractor(set).Extract(t.Context())
	assert.Empty(t, records)
}
