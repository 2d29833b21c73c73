package types

type FieldKind string

const (
	FieldKindSingle      FieldKind = "single"
	FieldKindList        FieldKind = "list"
	FieldKindComplex     FieldKind = "complex"
	FieldKindComplexList FieldKind = "complex_list"
	FieldKindGeoBox      FieldKind = "geo_box"
)

type Classifier string

const (
	ClassifierInvestigation Classifier = "Investigation"
	ClassifierStudy         Classifier = "Study"
	ClassifierAssay         Classifier = "Assay"
	ClassifierMaterial      Classifier = "Material"
)

type OutputProfile string

const (
	OutputProfileDataverse OutputProfile = "dataverse"
	OutputProfileFlat      OutputProfile = "flat"
)

type IdentifierScheme string

const (
	IdentifierSchemeORCID IdentifierScheme = "ORCID"
	IdentifierSchemeDOI   IdentifierScheme = "DOI"
	IdentifierSchemeOther IdentifierScheme = "Other"
)
