package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"rocrate-convert/internal/policies"
	"rocrate-convert/internal/types"
)

// SensorExtractor reads measurement metadata off Assay datasets and
// their lab processes. Each element of a process object list yields
// one sensor record carrying the process-level type, manufacturer and
// model; the dedup key spans all four fields.
type SensorExtractor struct {
	set    types.EntitySet
	refs   RefResolver
	lits   LiteralResolver
	policy policies.DedupPolicy
}

func NewSensorExtractor(set types.EntitySet, refs RefResolver, lits LiteralResolver, policy policies.DedupPolicy) SensorExtractor {
	return SensorExtractor{set: set, refs: refs, lits: lits, policy: policy}
}

func (x SensorExtractor) Extract(ctx context.Context) []types.SensorRecord {
	var records []types.SensorRecord
	seen := map[string]struct{}{}

	for _, assay := range x.set.ByType("Dataset", string(types.ClassifierAssay)) {
		method := x.lits.Literal(assay.Get("measurementMethod"))
		technique := x.lits.Literal(assay.Get("measurementTechnique"))

		for _, processRef := range assay.GetList("about") {
			process, ok := x.refs.ResolveEntity(processRef)
			if !ok || !process.HasType("LabProcess") {
				continue
			}

			var manufacturer, model string
			for _, paramRef := range process.GetList("parameterValue") {
				param, ok := x.refs.ResolveEntity(paramRef)
				if !ok {
					continue
				}
				switch x.lits.Literal(param.Get("name")) {
				case "Drone Manufacturer":
					manufacturer = x.lits.Literal(param.Get("value"))
				case "Drone Model":
					model = x.lits.Literal(param.Get("value"))
				}
			}

			// One record per process object, not per process. The
			// dedup key folds in the object's identity key so two
			// distinct objects of one process both emit, while the
			// same object reached through several processes with an
			// identical 4-tuple collapses.
			for _, objectRef := range process.GetList("object") {
				record := types.SensorRecord{
					Type:         method,
					PlatformType: technique,
					Manufacturer: manufacturer,
					Model:        model,
				}
				key := x.policy.SensorKey(record) + "|" + objectKey(objectRef)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				records = append(records, record)
			}
		}
	}

	log.Ctx(ctx).Debug().Int("sensors", len(records)).Msg("sensor extraction complete")
	return records
}

func objectKey(ref any) string {
	if id, ok := ReferenceID(ref); ok {
		return id
	}
	if s, ok := ref.(string); ok {
		return s
	}
	return ""
}
