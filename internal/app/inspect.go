package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rocrate-convert/internal/core"
	"rocrate-convert/internal/types"
)

func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	if strings.TrimSpace(req.InputPath) == "" {
		return InspectResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("input path is required")
	}
	entities, err := s.Graph.LoadEntities(req.InputPath)
	if err != nil {
		return InspectResult{}, err
	}

	result := InspectResult{
		Entities:     len(entities),
		Hierarchical: core.HasHierarchy(entities),
		Classifiers:  map[string]int{},
	}
	for _, entity := range entities {
		if entity.HasType("Dataset") {
			result.Datasets++
		}
		for _, classifier := range []types.Classifier{
			types.ClassifierInvestigation,
			types.ClassifierStudy,
			types.ClassifierAssay,
			types.ClassifierMaterial,
		} {
			if entity.HasAdditionalType(string(classifier)) {
				result.Classifiers[string(classifier)]++
			}
		}
	}
	return result, nil
}
