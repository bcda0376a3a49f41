package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	StartDate time.Time
	EndDate   time.Time
}

type dateRangeJSON struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (d DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateRangeJSON{
		StartDate: d.StartDate.Format(time.DateOnly),
		EndDate:   d.EndDate.Format(time.DateOnly),
	})
}

func (d *DateRange) UnmarshalJSON(data []byte) error {
	var raw dateRangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	start, err := time.Parse(time.DateOnly, raw.StartDate)
	if err != nil {
		return fmt.Errorf("invalid startDate %q: %w", raw.StartDate, err)
	}

	end, err := time.Parse(time.DateOnly, raw.EndDate)
	if err != nil {
		return fmt.Errorf("invalid endDate %q: %w", raw.EndDate, err)
	}

	d.StartDate = start
	d.EndDate = end
	return nil
}

// ReportRequest is the input of the report pipeline.
type ReportRequest struct {
	AccountID         string            `json:"accountId"`
	Currency          string            `json:"currency"`
	AttributionWindow AttributionWindow `json:"attributionWindow"`
	Fields            []string          `json:"fields"`
	DateRange         DateRange         `json:"dateRange"`
}

// Key identifies the request independently of how it was submitted. Two
// requests with the same key produce the same upstream query.
func (r ReportRequest) Key() string {
	return strings.Join([]string{
		r.AccountID,
		r.Currency,
		r.AttributionWindow.String(),
		r.DateRange.StartDate.Format(time.DateOnly),
		r.DateRange.EndDate.Format(time.DateOnly),
		strings.Join(r.Fields, ","),
	}, "|")
}

// DuplicateField returns the first field requested more than once.
func (r ReportRequest) DuplicateField() (string, bool) {
	seen := make(map[string]struct{}, len(r.Fields))
	for _, f := range r.Fields {
		if _, ok := seen[f]; ok {
			return f, true
		}
		seen[f] = struct{}{}
	}
	return "", false
}
