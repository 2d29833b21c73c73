package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rocrate-convert/internal/core"
	"rocrate-convert/internal/shared"
)

func (s Service) Convert(ctx context.Context, req ConvertRequest) (ConvertResult, error) {
	if strings.TrimSpace(req.InputPath) == "" {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("input path is required")
	}
	if strings.TrimSpace(req.MappingPath) == "" {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("mapping path is required")
	}

	mapping, err := s.Mapping.LoadMapping(req.MappingPath)
	if err != nil {
		return ConvertResult{}, err
	}
	entities, err := s.Graph.LoadEntities(req.InputPath)
	if err != nil {
		return ConvertResult{}, err
	}

	converter := core.NewConverter(mapping)
	document, err := converter.Convert(ctx, entities)
	if err != nil {
		return ConvertResult{}, err
	}
	if document == nil {
		return ConvertResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("no dataset entities found in input")
	}

	result := ConvertResult{
		Hierarchical: core.HasHierarchy(entities),
		Profile:      mapping.Profile,
		Documents:    1,
	}
	if docs, ok := document.([]any); ok {
		result.Documents = len(docs)
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join("output",
			fmt.Sprintf("%s.%s.json", shared.Stem(req.InputPath), mapping.Profile))
	}
	if err := s.Sink.WriteDocument(outputPath, document); err != nil {
		return ConvertResult{}, err
	}
	result.OutputPath = outputPath

	log.Ctx(ctx).Info().
		Str("input", req.InputPath).
		Str("output", outputPath).
		Int("documents", result.Documents).
		Bool("hierarchical", result.Hierarchical).
		Msg("conversion complete")
	return result, nil
}
