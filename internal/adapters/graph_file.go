package adapters

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/piprate/json-gold/ld"
	"github.com/rs/zerolog/log"

	"rocrate-convert/internal/ports"
	"rocrate-convert/internal/types"
)

var _ ports.GraphSourcePort = GraphFileAdapter{}

const crateMetadataFile = "ro-crate-metadata.json"

// GraphFileAdapter loads a JSON-LD document (or an RO-Crate directory)
// and turns it into the flat entity list the core consumes. Expansion
// runs through json-gold with an offline context loader; when it fails
// the adapter falls back to plain @graph flattening, so inputs with
// unreachable contexts still convert.
type GraphFileAdapter struct {
	processor *ld.JsonLdProcessor
}

func NewGraphFileAdapter() GraphFileAdapter {
	return GraphFileAdapter{processor: ld.NewJsonLdProcessor()}
}

func (a GraphFileAdapter) LoadEntities(path string) ([]types.Entity, error) {
	resolved := path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		resolved = filepath.Join(path, crateMetadataFile)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("input metadata file not found").
			WithCause(err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse input JSON").
			WithCause(err)
	}

	nodes := a.expandOrFlatten(doc)
	entities := make([]types.Entity, 0, len(nodes))
	for _, node := range nodes {
		m, ok := normalizeSchemaKeys(node).(map[string]any)
		if !ok {
			continue
		}
		entities = append(entities, types.NewEntity(m))
	}
	log.Debug().Int("entities", len(entities)).Str("path", resolved).Msg("graph loaded")
	return entities, nil
}

func (a GraphFileAdapter) expandOrFlatten(doc any) []any {
	// Expansion without a context drops every non-keyword term, so
	// contextless documents go straight to @graph flattening.
	if !hasContext(doc) {
		return flattenGraph(doc)
	}
	options := ld.NewJsonLdOptions("")
	options.DocumentLoader = offlineDocumentLoader{}
	expanded, err := a.processor.Expand(doc, options)
	if err == nil && len(expanded) > 0 {
		// A single node holding only a @graph unwraps to its members.
		if len(expanded) == 1 {
			if m, ok := expanded[0].(map[string]any); ok {
				if graph, ok := m["@graph"].([]any); ok {
					return graph
				}
			}
		}
		return expanded
	}
	if err != nil {
		log.Debug().Err(err).Msg("JSON-LD expansion failed, falling back to @graph flattening")
	}
	return flattenGraph(doc)
}

func hasContext(doc any) bool {
	switch v := doc.(type) {
	case map[string]any:
		_, ok := v["@context"]
		return ok
	case []any:
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				if _, ok := m["@context"]; ok {
					return true
				}
			}
		}
	}
	return false
}

func flattenGraph(doc any) []any {
	switch v := doc.(type) {
	case []any:
		return v
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			return graph
		}
		return []any{v}
	default:
		return nil
	}
}

// normalizeSchemaKeys rewrites http://schema.org/ keys and string
// values to the https form so property lookup sees one spelling.
func normalizeSchemaKeys(val any) any {
	const httpPrefix = "http://schema.org/"
	const httpsPrefix = "https://schema.org/"
	switch v := val.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[strings.Replace(key, httpPrefix, httpsPrefix, 1)] = normalizeSchemaKeys(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = normalizeSchemaKeys(inner)
		}
		return out
	case string:
		return strings.Replace(v, httpPrefix, httpsPrefix, 1)
	default:
		return val
	}
}

// offlineDocumentLoader serves a static schema.org context for the
// well-known context URLs instead of fetching them over the network.
type offlineDocumentLoader struct{}

var staticContext = map[string]any{
	"@context": map[string]any{
		"@vocab":  "https://schema.org/",
		"schema":  "https://schema.org/",
		"Dataset": "https://schema.org/Dataset",
	},
}

func (offlineDocumentLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	if strings.Contains(u, "schema.org") || strings.Contains(u, "w3id.org/ro/crate") {
		return &ld.RemoteDocument{DocumentURL: u, Document: staticContext}, nil
	}
	return nil, fmt.Errorf("remote context not available offline: %s", u)
}
