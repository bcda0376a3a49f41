package scheduling

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrInvalidSchedule   = errors.New("invalid scheduled report")
	ErrNameRequired      = fmt.Errorf("%w: name is required", ErrInvalidSchedule)
	ErrAccountRequired   = fmt.Errorf("%w: account id is required", ErrInvalidSchedule)
	ErrFieldsRequired    = fmt.Errorf("%w: at least one field is required", ErrInvalidSchedule)
	ErrDuplicateField    = fmt.Errorf("%w: field requested more than once", ErrInvalidSchedule)
	ErrNegativeLookback  = fmt.Errorf("%w: lookback days cannot be negative", ErrInvalidSchedule)
	ErrScheduleNotFound  = errors.New("scheduled report not found")
	ErrScheduleConflict  = errors.New("scheduled report already exists")
	ErrDatabaseOperation = errors.New("database operation error")
)

// ScheduleError carries the API error code of a failed operation.
type ScheduleError struct {
	Err     error
	Code    string
	Details string
}

func (e *ScheduleError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ScheduleError) Unwrap() error {
	return e.Err
}

func NewScheduleError(err error, code string, details string) *ScheduleError {
	return &ScheduleError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
