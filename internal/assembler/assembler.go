// Package assembler shapes insight records into report rows.
package assembler

import (
	metadomain "github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/resolver"
)

// Assemble returns one row per record, in record order, each holding one value
// per field in field order. Records are never filtered or merged.
func Assemble(records []metadomain.InsightRecord, fields []string, r *resolver.Resolver) []domain.ResultRow {
	extractors := resolver.CompileAll(fields)

	rows := make([]domain.ResultRow, 0, len(records))
	for _, rec := range records {
		values := make([]string, len(extractors))
		for i, e := range extractors {
			values[i] = r.Extract(rec, e)
		}
		rows = append(rows, domain.ResultRow{Values: values})
	}

	return rows
}
