package domain

// AdAccount is an ads account the configured token can read insights from.
type AdAccount struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ConnectorConfig is everything needed to build a report configuration form.
type ConnectorConfig struct {
	Accounts           []SelectOption `json:"accounts"`
	Currencies         []SelectOption `json:"currencies"`
	AttributionWindows []SelectOption `json:"attributionWindows"`
	DateRangeRequired  bool           `json:"dateRangeRequired"`
}
