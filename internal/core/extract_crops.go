package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"rocrate-convert/internal/policies"
	"rocrate-convert/internal/types"
)

// CropExtractor traverses Study datasets through their lab processes
// to the sampled material and reads crop species and pest out of the
// sample's additionalProperty list. Any missing hop silently ends that
// traversal branch.
type CropExtractor struct {
	set    types.EntitySet
	refs   RefResolver
	lits   LiteralResolver
	policy policies.DedupPolicy
}

func NewCropExtractor(set types.EntitySet, refs RefResolver, lits LiteralResolver, policy policies.DedupPolicy) CropExtractor {
	return CropExtractor{set: set, refs: refs, lits: lits, policy: policy}
}

func (x CropExtractor) Extract(ctx context.Context) []types.CropRecord {
	var records []types.CropRecord
	seen := map[string]struct{}{}

	for _, study := range x.set.ByType("Dataset", string(types.ClassifierStudy)) {
		for _, processRef := range study.GetList("about") {
			process, ok := x.refs.ResolveEntity(processRef)
			if !ok || !process.HasType("LabProcess") {
				continue
			}
			for _, objectRef := range process.GetList("object") {
				sample, ok := x.refs.ResolveEntity(objectRef)
				if !ok {
					continue
				}
				if !sample.HasType("Sample") && !sample.HasAdditionalType(string(types.ClassifierMaterial)) {
					continue
				}
				record := x.sampleRecord(sample)
				if record.IsZero() {
					continue
				}
				key := x.policy.CropKey(record)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				records = append(records, record)
			}
		}
	}

	log.Ctx(ctx).Debug().Int("crops", len(records)).Msg("crop extraction complete")
	return records
}

func (x CropExtractor) sampleRecord(sample types.Entity) types.CropRecord {
	var record types.CropRecord
	for _, propRef := range sample.GetList("additionalProperty") {
		prop, ok := x.refs.ResolveEntity(propRef)
		if !ok {
			continue
		}
		switch x.lits.Literal(prop.Get("name")) {
		case "Organism":
			record.Species = x.lits.Literal(prop.Get("value"))
			record.SpeciesURI = x.referenceURI(prop.Get("valueRef"))
		case "Infection Taxon":
			record.Pest = x.lits.Literal(prop.Get("value"))
			record.PestURI = x.referenceURI(prop.Get("valueRef"))
		}
	}
	return record
}

// referenceURI keeps URI-valued properties as raw identifiers instead
// of resolving them to entity display names.
func (x CropExtractor) referenceURI(val any) string {
	if s, ok := val.(string); ok {
		return s
	}
	if id, ok := ReferenceID(val); ok {
		return id
	}
	return x.lits.Literal(val)
}
