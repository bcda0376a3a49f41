package reporting

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// Validation
	ErrInvalidRequest    = errors.New("invalid report request")
	ErrAccountIDRequired = fmt.Errorf("%w: account id is required", ErrInvalidRequest)
	ErrFieldsRequired    = fmt.Errorf("%w: at least one field is required", ErrInvalidRequest)
	ErrDuplicateField    = fmt.Errorf("%w: field requested more than once", ErrInvalidRequest)
	ErrDateRangeRequired = fmt.Errorf("%w: start and end dates are required", ErrInvalidRequest)
	ErrInvalidDateRange  = fmt.Errorf("%w: start date is after end date", ErrInvalidRequest)

	// External services
	ErrMetaIntegration = errors.New("error fetching data from Meta")
	ErrReportTimeout   = errors.New("report did not finish in time")

	// Storage
	ErrSnapshotsDisabled = errors.New("report snapshots are disabled")
	ErrSnapshotNotFound  = errors.New("report snapshot not found")
	ErrDatabaseOperation = errors.New("database operation error")
)

// ReportError carries the API error code of a failed operation. Cause, when set,
// is the underlying failure.
type ReportError struct {
	Err     error
	Cause   error
	Code    string
	Details string
}

func (e *ReportError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ReportError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// NewReportError wraps err with an API error code.
func NewReportError(err error, code string, details string) *ReportError {
	return &ReportError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

// WithCause attaches the underlying failure.
func (e *ReportError) WithCause(cause error) *ReportError {
	e.Cause = cause
	return e
}
