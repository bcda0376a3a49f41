package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/fieldname"
)

func TestCatalog_Validate(t *testing.T) {
	for _, currency := range domain.Currencies {
		require.NoError(t, New(currency).Validate(), currency)
	}
}

func TestCatalog_CurrencySemantics(t *testing.T) {
	c := New("CURRENCY_EUR")

	for _, f := range c.Fields() {
		if f.ConceptType == domain.ConceptMetric && f.SemanticGroup == domain.SemanticGroupCurrency {
			assert.Equal(t, "CURRENCY_EUR", f.SemanticType, f.Name)
			continue
		}
		assert.NotEqual(t, "CURRENCY_EUR", f.SemanticType, f.Name)
	}

	spend, ok := c.Lookup("cost__spend")
	require.True(t, ok)
	assert.Equal(t, "CURRENCY_EUR", spend.SemanticType)

	clicks, ok := c.Lookup("metric__clicks")
	require.True(t, ok)
	assert.Equal(t, "NUMBER", clicks.SemanticType)
}

func TestCatalog_Labels(t *testing.T) {
	c := New(domain.DefaultCurrency)

	tests := []struct {
		name  string
		label string
	}{
		{name: "dimension__ad_name", label: "Ad Name"},
		{name: "aggregated_cost__cpc", label: "CPC"},
		{name: "actions__rsvp", label: "RSVP"},
		{name: "breakdown__publisher_platform", label: "Publisher Platform"},
		{name: "metric__instant_experience_clicks_to_open", label: "Instant Experience Clicks To Open"},
		{name: "date__date", label: "Date"},
	}

	for _, tt := range tests {
		f, ok := c.Lookup(tt.name)
		require.True(t, ok, tt.name)
		assert.Equal(t, tt.label, f.Label, tt.name)
	}
}

func TestCatalog_DateFieldIsDefault(t *testing.T) {
	f, ok := New(domain.DefaultCurrency).Lookup("date__date")
	require.True(t, ok)
	assert.True(t, f.IsDefault)
	assert.Equal(t, "YEAR_MONTH_DAY", f.SemanticType)
	assert.Equal(t, domain.DataTypeString, f.DataType)
}

func TestCatalog_NamesRoundTripThroughCodec(t *testing.T) {
	for _, f := range Describe(domain.DefaultCurrency) {
		n := fieldname.Decompose(f.Name)
		require.True(t, n.Recognized(), f.Name)

		want, wantOK := fieldname.UpstreamField(f.Name)
		got, gotOK := fieldname.UpstreamField(fieldname.Compose(n))
		assert.Equal(t, wantOK, gotOK, f.Name)
		assert.Equal(t, want, got, f.Name)
	}
}

func TestCatalog_Columns(t *testing.T) {
	c := New(domain.DefaultCurrency)

	cols := c.Columns([]string{"metric__clicks", "nope", "date__date"})

	assert.Equal(t, []domain.SchemaColumn{
		{Name: "metric__clicks", DataType: domain.DataTypeNumber},
		{Name: "nope"},
		{Name: "date__date", DataType: domain.DataTypeString},
	}, cols)
}

func TestCatalog_FieldsIsACopy(t *testing.T) {
	c := New(domain.DefaultCurrency)

	fields := c.Fields()
	fields[0].Name = "mutated"

	assert.NotEqual(t, "mutated", c.Fields()[0].Name)
}

func TestCatalog_CostFormulas(t *testing.T) {
	c := New(domain.DefaultCurrency)

	tests := map[string]string{
		"aggregated_cost__cost_per_unique_click":             "Sum(cost__spend) / Sum(metric__unique_clicks)",
		"aggregated_cost__cost_per_unique_inline_link_click": "Sum(cost__spend) / Sum(metric__unique_inline_link_clicks)",
		"aggregated_cost__cpp":                               "Sum(cost__spend) / (Sum(metric__reach) / 1000)",
	}

	for name, formula := range tests {
		f, ok := c.Lookup(name)
		require.True(t, ok, name)
		assert.Equal(t, formula, f.Formula, name)
	}
}
