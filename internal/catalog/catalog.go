// Package catalog holds the fixed table of reportable fields.
//
// See https://developers.facebook.com/docs/marketing-api/insights/parameters
package catalog

import (
	"fmt"
	"strings"

	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/fieldname"
)

// Catalog is an immutable, ordered list of schema fields for one currency.
type Catalog struct {
	fields []domain.SchemaField
	byName map[string]int
}

// New builds the catalog for currency. CURRENCY metrics take it as semantic type.
func New(currency string) *Catalog {
	b := builder{currency: currency}
	fields := b.build()

	byName := make(map[string]int, len(fields))
	for i, f := range fields {
		if _, dup := byName[f.Name]; !dup {
			byName[f.Name] = i
		}
	}

	return &Catalog{
		fields: fields,
		byName: byName,
	}
}

// Describe returns the ordered schema for currency.
func Describe(currency string) []domain.SchemaField {
	return New(currency).Fields()
}

// Fields returns a copy of the descriptors in catalog order.
func (c *Catalog) Fields() []domain.SchemaField {
	out := make([]domain.SchemaField, len(c.fields))
	copy(out, c.fields)
	return out
}

// Lookup returns the descriptor named name.
func (c *Catalog) Lookup(name string) (domain.SchemaField, bool) {
	i, ok := c.byName[name]
	if !ok {
		return domain.SchemaField{}, false
	}
	return c.fields[i], true
}

// Columns returns the name/data type pairs for the requested names. Unknown names
// keep an empty data type.
func (c *Catalog) Columns(names []string) []domain.SchemaColumn {
	out := make([]domain.SchemaColumn, 0, len(names))
	for _, n := range names {
		col := domain.SchemaColumn{Name: n}
		if f, ok := c.Lookup(n); ok {
			col.DataType = f.DataType
		}
		out = append(out, col)
	}
	return out
}

// Validate checks the static rules of the table: unique names, each decomposing
// into a known group.
func (c *Catalog) Validate() error {
	seen := make(map[string]struct{}, len(c.fields))
	for _, f := range c.fields {
		if _, ok := seen[f.Name]; ok {
			return fmt.Errorf("catalog: duplicate field name %q", f.Name)
		}
		seen[f.Name] = struct{}{}

		if !fieldname.Decompose(f.Name).Recognized() {
			return fmt.Errorf("catalog: field %q has no known group", f.Name)
		}
	}
	return nil
}

// labelFromKey turns "cost_per_unique_click" into "Cost Per Unique Click".
func labelFromKey(key string) string {
	b := []byte(strings.ReplaceAll(key, "_", " "))
	for i, c := range b {
		if c >= 'a' && c <= 'z' && (i == 0 || b[i-1] == ' ') {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
