package types

// Extractor records are the composite results of the fixed graph
// traversals. Their Placeholders form feeds the generic field
// formatter: mapping profiles address record fields through
// `_`-prefixed source paths instead of entity properties.

type AuthorRecord struct {
	Name        string
	Affiliation string
	Identifier  string
	Scheme      IdentifierScheme
	Email       string
}

func (r AuthorRecord) Placeholders() map[string]any {
	out := map[string]any{"_author_name": r.Name}
	if r.Affiliation != "" {
		out["_author_affiliation"] = r.Affiliation
	}
	if r.Identifier != "" {
		out["_author_identifier"] = r.Identifier
		out["_author_identifier_scheme"] = string(r.Scheme)
	}
	if r.Email != "" {
		out["_author_email"] = r.Email
	}
	return out
}

type CropRecord struct {
	Species    string
	SpeciesURI string
	Pest       string
	PestURI    string
}

func (r CropRecord) IsZero() bool {
	return r.Species == "" && r.SpeciesURI == "" && r.Pest == "" && r.PestURI == ""
}

func (r CropRecord) Placeholders() map[string]any {
	out := map[string]any{}
	if r.Species != "" {
		out["_crop_species"] = r.Species
	}
	if r.SpeciesURI != "" {
		out["_crop_species_uri"] = r.SpeciesURI
	}
	if r.Pest != "" {
		out["_crop_pest_name"] = r.Pest
	}
	if r.PestURI != "" {
		out["_crop_pest_uri"] = r.PestURI
	}
	return out
}

type SensorRecord struct {
	Type         string
	PlatformType string
	Manufacturer string
	Model        string
}

func (r SensorRecord) Placeholders() map[string]any {
	return map[string]any{
		"_sensor_type":   r.Type,
		"_platform_type": r.PlatformType,
		"_manufacturer":  r.Manufacturer,
		"_model":         r.Model,
	}
}
