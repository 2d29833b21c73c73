package core

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"rocrate-convert/internal/types"
)

// Converter selects which entities to map and assembles the final
// output. A graph carrying ARC classifiers (Investigation, Study,
// Assay) is one logical dataset: only the top-ranked entity is mapped
// and a single document comes back. A flat graph maps every dataset
// independently, with extraction scoped to each one, and yields an
// array unless only one document remains.
type Converter struct {
	mapping types.Mapping
}

func NewConverter(mapping types.Mapping) Converter {
	return Converter{mapping: mapping}
}

func (c Converter) Convert(ctx context.Context, entities []types.Entity) (any, error) {
	set := types.NewEntitySet(entities)

	var datasets []types.Entity
	for _, entity := range entities {
		if entity.HasType("Dataset") {
			datasets = append(datasets, entity)
		}
	}
	if len(datasets) == 0 {
		log.Ctx(ctx).Warn().Msg("no dataset entities in input")
		return nil, nil
	}
	sort.SliceStable(datasets, func(i, j int) bool {
		return datasetRank(datasets[i]) < datasetRank(datasets[j])
	})

	if HasHierarchy(entities) {
		mapper := NewEntityMapper(c.mapping, set)
		mapped := mapper.MapEntity(ctx, datasets[0])
		if mapped.IsEmpty() {
			return nil, nil
		}
		log.Ctx(ctx).Debug().Str("entity", datasets[0].ID()).Msg("mapped hierarchical dataset")
		return types.Envelope(c.mapping, mapped), nil
	}

	var documents []any
	for _, dataset := range datasets {
		scoped := types.NewEntitySet([]types.Entity{dataset})
		mapper := NewEntityMapper(c.mapping, scoped)
		mapped := mapper.MapEntity(ctx, dataset)
		if mapped.IsEmpty() {
			continue
		}
		documents = append(documents, types.Envelope(c.mapping, mapped))
	}
	log.Ctx(ctx).Debug().Int("documents", len(documents)).Msg("mapped independent datasets")

	switch len(documents) {
	case 0:
		return nil, nil
	case 1:
		return documents[0], nil
	default:
		return documents, nil
	}
}

// HasHierarchy reports whether any entity carries an ARC classifier.
func HasHierarchy(entities []types.Entity) bool {
	for _, entity := range entities {
		for _, classifier := range []types.Classifier{
			types.ClassifierInvestigation, types.ClassifierStudy, types.ClassifierAssay,
		} {
			if entity.HasAdditionalType(string(classifier)) {
				return true
			}
		}
	}
	return false
}

// Rank order: Investigation < Study < Assay < other.
func datasetRank(entity types.Entity) int {
	switch {
	case entity.HasAdditionalType(string(types.ClassifierInvestigation)):
		return 0
	case entity.HasAdditionalType(string(types.ClassifierStudy)):
		return 1
	case entity.HasAdditionalType(string(types.ClassifierAssay)):
		return 2
	default:
		return 3
	}
}
