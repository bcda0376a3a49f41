package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
)

func sampleReport() *domain.Report {
	return &domain.Report{
		Schema: []domain.SchemaColumn{
			{Name: "date__date", DataType: domain.DataTypeString},
			{Name: "cost__spend", DataType: domain.DataTypeNumber},
		},
		Rows: []domain.ResultRow{
			{Values: []string{"20230501", "12.5"}},
			{Values: []string{"20230502", ""}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: FormatTable},
		{in: "TABLE", want: FormatTable},
		{in: "csv", want: FormatCSV},
		{in: " json ", want: FormatJSON},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestReport(t *testing.T) {
	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Report(&buf, sampleReport(), FormatCSV))

		assert.Equal(t, "date__date,cost__spend\n20230501,12.5\n20230502,\n", buf.String())
	})

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Report(&buf, sampleReport(), FormatTable))

		out := buf.String()
		assert.Contains(t, out, "date__date")
		assert.Contains(t, out, "20230502")
		assert.Contains(t, out, "12.5")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Report(&buf, sampleReport(), FormatJSON))

		assert.Contains(t, buf.String(), `"20230501"`)
		assert.Contains(t, buf.String(), `"filtersApplied"`)
	})
}

func TestSchemaAndAccounts(t *testing.T) {
	var buf bytes.Buffer
	fields := []domain.SchemaField{
		{Name: "cost__cpc", Label: "CPC", Group: "Costs", DataType: domain.DataTypeNumber, ConceptType: domain.ConceptMetric, SemanticType: "CURRENCY_USD", Formula: "Sum(cost__spend) / Sum(metric__clicks)"},
	}
	require.NoError(t, Schema(&buf, fields, FormatCSV))
	assert.Equal(t,
		"NAME,LABEL,GROUP,TYPE,CONCEPT,SEMANTIC,FORMULA\ncost__cpc,CPC,Costs,NUMBER,METRIC,CURRENCY_USD,Sum(cost__spend) / Sum(metric__clicks)\n",
		buf.String())

	buf.Reset()
	require.NoError(t, Accounts(&buf, nil, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}
