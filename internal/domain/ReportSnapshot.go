package domain

import "time"

// ReportSnapshot is a stored copy of an assembled report.
type ReportSnapshot struct {
	ID          string        `json:"id"`
	RequestKey  string        `json:"request_key"`
	AccountID   string        `json:"account_id"`
	Request     ReportRequest `json:"request"`
	Report      *Report       `json:"report"`
	RowCount    int           `json:"row_count"`
	ScheduledID *string       `json:"scheduled_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}
