package elasticsearch

const (
	VariantsIndex = "variants"
	DatasetsIndex = "datasets"
)
