package domain

type ConceptType string

const (
	ConceptDimension ConceptType = "DIMENSION"
	ConceptMetric    ConceptType = "METRIC"
)

type DataType string

const (
	DataTypeString DataType = "STRING"
	DataTypeNumber DataType = "NUMBER"
)

// Semantic groups used by the catalog. CURRENCY descriptors take their
// semantic type from the currency selected for the report.
const (
	SemanticGroupCurrency = "CURRENCY"
	SemanticGroupDatetime = "DATETIME"
	SemanticGroupNumeric  = "NUMERIC"
)

// SchemaField describes one reportable column. Name has the form "<group>__<key>".
type SchemaField struct {
	Name          string      `json:"name"`
	Label         string      `json:"label"`
	Group         string      `json:"group"`
	DataType      DataType    `json:"dataType"`
	ConceptType   ConceptType `json:"conceptType"`
	SemanticType  string      `json:"semanticType"`
	SemanticGroup string      `json:"semanticGroup,omitempty"`
	Formula       string      `json:"formula,omitempty"`
	IsDefault     bool        `json:"isDefault,omitempty"`
}

// SchemaColumn is the name/type pair returned alongside report rows.
type SchemaColumn struct {
	Name     string   `json:"name"`
	DataType DataType `json:"dataType"`
}
