package domain

// ResultRow holds one value per requested field, in request order.
type ResultRow struct {
	Values []string `json:"values"`
}

// Report is the assembled output of one report request.
type Report struct {
	Schema         []SchemaColumn `json:"schema"`
	Rows           []ResultRow    `json:"rows"`
	FiltersApplied bool           `json:"filtersApplied"`
}
