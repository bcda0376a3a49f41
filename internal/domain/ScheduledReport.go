package domain

import (
	"time"

	"github.com/vfg2006/meta-insights-connector/pkg/utils"
)

// ScheduledReport is a report definition re-run periodically over a rolling window
// that ends yesterday.
type ScheduledReport struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	AccountID         string            `json:"account_id"`
	Currency          string            `json:"currency"`
	AttributionWindow AttributionWindow `json:"attribution_window"`
	Fields            []string          `json:"fields"`
	LookbackDays      int               `json:"lookback_days"`
	Enabled           bool              `json:"enabled"`
	LastRunAt         *time.Time        `json:"last_run_at"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// RequestFor builds the report request covering lookbackDays full days before ref.
func (s *ScheduledReport) RequestFor(ref time.Time, lookbackDays int) ReportRequest {
	if s.LookbackDays > 0 {
		lookbackDays = s.LookbackDays
	}
	start, end := utils.LastDays(ref, lookbackDays)

	return ReportRequest{
		AccountID:         s.AccountID,
		Currency:          s.Currency,
		AttributionWindow: s.AttributionWindow,
		Fields:            s.Fields,
		DateRange: DateRange{
			StartDate: start,
			EndDate:   end,
		},
	}
}
