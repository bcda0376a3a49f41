// Package resolver turns raw insight records into one text value per requested field.
package resolver

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/fieldname"
)

// Kind says how a field's value is extracted from a record.
type Kind int

const (
	KindNone Kind = iota
	KindDate
	KindAction
	KindScalar
)

// Extractor says where a field's value lives in a record. Source is the list
// field for KindAction; Key is the action type or the record key.
type Extractor struct {
	Name   string
	Kind   Kind
	Source string
	Key    string
}

// Compile decides once where the value of name lives. Names outside the known
// groups compile to KindNone and always resolve to "".
func Compile(name string) Extractor {
	n := fieldname.Decompose(name)
	e := Extractor{Name: name, Key: n.Key}

	switch n.Group {
	case fieldname.GroupDate:
		e.Kind = KindDate
	case fieldname.GroupActions, fieldname.GroupActionValues:
		e.Kind = KindAction
		e.Source = string(n.Group)
	case fieldname.GroupDimension, fieldname.GroupBreakdown, fieldname.GroupMetric, fieldname.GroupCost,
		fieldname.GroupAggregatedMetric, fieldname.GroupAggregatedCost, fieldname.GroupPercent:
		e.Kind = KindScalar
	default:
		e.Kind = KindNone
		e.Key = ""
	}

	return e
}

// CompileAll compiles names in order.
func CompileAll(names []string) []Extractor {
	out := make([]Extractor, 0, len(names))
	for _, n := range names {
		out = append(out, Compile(n))
	}
	return out
}

// Resolver extracts values using a fixed set of attribution window tokens.
type Resolver struct {
	windows []string
}

// New returns a resolver summing action stats over the tokens of window.
func New(window domain.AttributionWindow) *Resolver {
	return &Resolver{windows: window.Tokens()}
}

// Resolve compiles name and extracts it from rec.
func (r *Resolver) Resolve(rec metadomain.InsightRecord, name string) string {
	return r.Extract(rec, Compile(name))
}

// Extract returns the value e points at in rec. Action sums are decimal
// strings; missing scalars are "".
func (r *Resolver) Extract(rec metadomain.InsightRecord, e Extractor) string {
	switch e.Kind {
	case KindDate:
		return strings.ReplaceAll(rec.DateStart(), "-", "")
	case KindAction:
		return r.actionSum(rec.ActionStats(e.Source), e.Key).String()
	case KindScalar:
		v, _ := rec.Scalar(e.Key)
		return v
	default:
		return ""
	}
}

// actionSum adds, for every stat of actionType, its value under each window
// token. A stat matched by several tokens is counted once per token.
func (r *Resolver) actionSum(stats []metadomain.ActionStat, actionType string) decimal.Decimal {
	sum := decimal.Zero
	for _, stat := range stats {
		if stat.ActionType != actionType {
			continue
		}

		for _, token := range r.windows {
			raw, ok := stat.WindowValue(token)
			if !ok {
				continue
			}

			v, err := decimal.NewFromString(raw)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"action_type": actionType,
					"window":      token,
					"value":       raw,
				}).Debug("resolver: non numeric action value counted as zero")
				continue
			}
			sum = sum.Add(v)
		}
	}
	return sum
}
