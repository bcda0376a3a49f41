// Package render writes reports, schemas and account lists as a table, CSV or JSON.
package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/olekukonko/tablewriter"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Format constants matching --format flag values.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

// ParseFormat accepts table, csv and json in any case. Empty means table.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q, expected table, csv or json", s)
	}
}

// Report writes report with one column per schema entry.
func Report(w io.Writer, report *domain.Report, format string) error {
	if format == FormatJSON {
		return renderJSON(w, report)
	}

	header := make([]string, len(report.Schema))
	for i, c := range report.Schema {
		header[i] = c.Name
	}

	rows := make([][]string, len(report.Rows))
	for i, r := range report.Rows {
		rows[i] = r.Values
	}

	return renderRows(w, header, rows, format)
}

func Schema(w io.Writer, fields []domain.SchemaField, format string) error {
	if format == FormatJSON {
		return renderJSON(w, fields)
	}

	header := []string{"NAME", "LABEL", "GROUP", "TYPE", "CONCEPT", "SEMANTIC", "FORMULA"}
	rows := make([][]string, len(fields))
	for i, f := range fields {
		rows[i] = []string{
			f.Name,
			f.Label,
			f.Group,
			string(f.DataType),
			string(f.ConceptType),
			f.SemanticType,
			f.Formula,
		}
	}

	return renderRows(w, header, rows, format)
}

func Accounts(w io.Writer, accounts []domain.AdAccount, format string) error {
	if format == FormatJSON {
		if accounts == nil {
			accounts = []domain.AdAccount{}
		}
		return renderJSON(w, accounts)
	}

	rows := make([][]string, len(accounts))
	for i, a := range accounts {
		rows[i] = []string{a.ID, a.Name}
	}

	return renderRows(w, []string{"ID", "NAME"}, rows, format)
}

func renderRows(w io.Writer, header []string, rows [][]string, format string) error {
	if format == FormatCSV {
		return renderCSV(w, header, rows)
	}
	renderTable(w, header, rows)
	return nil
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader(header)
	tw.SetBorder(true)
	tw.SetRowLine(false)
	tw.SetAutoFormatHeaders(false)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	tw.AppendBulk(rows)
	tw.Render()
}
