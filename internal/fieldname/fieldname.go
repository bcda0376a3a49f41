// Package fieldname maps canonical schema field names ("<group>__<key>") to the
// field and breakdown tokens understood by the insights endpoint.
package fieldname

import "strings"

// Delimiter separates the group from the local key in a canonical name.
const Delimiter = "__"

// Group is the part of a canonical name before the delimiter.
type Group string

const (
	GroupDate             Group = "date"
	GroupBreakdown        Group = "breakdown"
	GroupActions          Group = "actions"
	GroupActionValues     Group = "action_values"
	GroupDimension        Group = "dimension"
	GroupMetric           Group = "metric"
	GroupCost             Group = "cost"
	GroupAggregatedMetric Group = "aggregated_metric"
	GroupAggregatedCost   Group = "aggregated_cost"
	GroupPercent          Group = "percent"
)

// KnownGroups is the closed set of groups the catalog generates names for.
var KnownGroups = []Group{
	GroupDate,
	GroupBreakdown,
	GroupActions,
	GroupActionValues,
	GroupDimension,
	GroupMetric,
	GroupCost,
	GroupAggregatedMetric,
	GroupAggregatedCost,
	GroupPercent,
}

// Known reports whether g is one of KnownGroups.
func (g Group) Known() bool {
	for _, k := range KnownGroups {
		if g == k {
			return true
		}
	}
	return false
}

// Name is a decomposed canonical field name.
type Name struct {
	Group Group
	Key   string
}

// Unrecognized is returned for names that do not decompose into a known group.
var Unrecognized = Name{}

// Recognized reports whether n decomposed from a well formed name.
func (n Name) Recognized() bool {
	return n != Unrecognized
}

// Decompose splits name on the first delimiter. Names without the delimiter, with
// an empty key or with a group outside KnownGroups yield Unrecognized.
func Decompose(name string) Name {
	group, key, found := strings.Cut(name, Delimiter)
	if !found || key == "" {
		return Unrecognized
	}

	g := Group(group)
	if !g.Known() {
		return Unrecognized
	}

	return Name{Group: g, Key: key}
}

// Compose is the inverse of Decompose.
func Compose(n Name) string {
	if !n.Recognized() {
		return ""
	}
	return string(n.Group) + Delimiter + n.Key
}

// UpstreamField returns the insights field a canonical name contributes to the
// "fields" parameter. Dates travel in time_range and breakdowns in "breakdowns",
// so neither contributes.
func UpstreamField(name string) (string, bool) {
	n := Decompose(name)
	if !n.Recognized() {
		return "", false
	}

	switch n.Group {
	case GroupDate, GroupBreakdown:
		return "", false
	case GroupActions, GroupActionValues:
		return string(n.Group), true
	default:
		return n.Key, true
	}
}

// Breakdown returns the breakdown token of a canonical name. Only the breakdown
// group contributes.
func Breakdown(name string) (string, bool) {
	n := Decompose(name)
	if n.Group != GroupBreakdown {
		return "", false
	}
	return n.Key, true
}
