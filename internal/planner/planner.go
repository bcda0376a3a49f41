// Package planner derives the insights query implied by a report request.
package planner

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/fieldname"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const DefaultPageSize = 100

// Level is the insights aggregation level.
type Level string

const (
	LevelAccount  Level = "account"
	LevelCampaign Level = "campaign"
	LevelAdSet    Level = "adset"
	LevelAd       Level = "ad"
)

// levelRules is checked in order; the first level with a matching token wins.
var levelRules = []struct {
	level  Level
	tokens []string
}{
	{level: LevelAd, tokens: []string{"ad_id", "ad_name"}},
	{level: LevelAdSet, tokens: []string{"adset_id", "adset_name"}},
	{level: LevelCampaign, tokens: []string{"campaign_id", "campaign_name"}},
}

// TimeIncrement is daily rows or one row for the whole range.
type TimeIncrement string

const (
	TimeIncrementDaily   TimeIncrement = "1"
	TimeIncrementAllDays TimeIncrement = "all_days"
)

type TimeRange struct {
	Since string `json:"since"`
	Until string `json:"until"`
}

// QueryPlan is the full parameter set of one insights query.
type QueryPlan struct {
	Fields             []string
	Breakdowns         []string
	Level              Level
	TimeIncrement      TimeIncrement
	AttributionWindows string
	TimeRange          TimeRange
	Limit              int
}

// Values serializes the plan into insights query parameters.
func (p QueryPlan) Values() url.Values {
	timeRange, _ := json.Marshal(p.TimeRange)

	params := url.Values{}
	params.Set("limit", strconv.Itoa(p.Limit))
	params.Set("fields", strings.Join(p.Fields, ","))
	params.Set("breakdowns", strings.Join(p.Breakdowns, ","))
	params.Set("time_range", string(timeRange))
	params.Set("action_attribution_windows", p.AttributionWindows)
	params.Set("level", string(p.Level))
	params.Set("time_increment", string(p.TimeIncrement))

	return params
}

// Planner turns report requests into query plans with a fixed page size.
type Planner struct {
	pageSize int
}

// New returns a planner using pageSize rows per page; non-positive values fall
// back to DefaultPageSize.
func New(pageSize int) *Planner {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Planner{pageSize: pageSize}
}

// Plan derives the upstream query for req. Fields and breakdowns keep the
// order of their first request and appear once. A date field switches the
// query to daily rows.
func (p *Planner) Plan(req domain.ReportRequest) QueryPlan {
	fields := make([]string, 0, len(req.Fields))
	breakdowns := make([]string, 0)
	hasDate := false

	for _, name := range req.Fields {
		if fieldname.Decompose(name).Group == fieldname.GroupDate {
			hasDate = true
		}

		if token, ok := fieldname.UpstreamField(name); ok {
			fields = appendUnique(fields, token)
		}

		if token, ok := fieldname.Breakdown(name); ok {
			breakdowns = appendUnique(breakdowns, token)
		}
	}

	increment := TimeIncrementAllDays
	if hasDate {
		increment = TimeIncrementDaily
	}

	return QueryPlan{
		Fields:             fields,
		Breakdowns:         breakdowns,
		Level:              DetermineLevel(fields, breakdowns),
		TimeIncrement:      increment,
		AttributionWindows: req.AttributionWindow.String(),
		TimeRange: TimeRange{
			Since: req.DateRange.StartDate.Format(time.DateOnly),
			Until: req.DateRange.EndDate.Format(time.DateOnly),
		},
		Limit: p.pageSize,
	}
}

// DetermineLevel applies the fixed ad > adset > campaign > account precedence to
// the derived tokens. The result does not depend on token order.
func DetermineLevel(tokenLists ...[]string) Level {
	present := make(map[string]struct{})
	for _, tokens := range tokenLists {
		for _, t := range tokens {
			present[t] = struct{}{}
		}
	}

	for _, rule := range levelRules {
		for _, t := range rule.tokens {
			if _, ok := present[t]; ok {
				return rule.level
			}
		}
	}

	return LevelAccount
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
