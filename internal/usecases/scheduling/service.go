package scheduling

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-insights-connector/infrastructure/repository"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/pkg/apiErrors"
)

// Scheduler manages the reports refreshed by the report refresh job.
type Scheduler interface {
	Create(ctx context.Context, schedule *domain.ScheduledReport) (*domain.ScheduledReport, error)
	Get(ctx context.Context, id string) (*domain.ScheduledReport, error)
	List(ctx context.Context) ([]*domain.ScheduledReport, error)
	SetEnabled(ctx context.Context, id string, enabled bool) (*domain.ScheduledReport, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo repository.ScheduledReportRepository
}

func NewService(repo repository.ScheduledReportRepository) Scheduler {
	return &Service{
		repo: repo,
	}
}

// Create fills the default attribution window, validates schedule and stores it.
func (s *Service) Create(ctx context.Context, schedule *domain.ScheduledReport) (*domain.ScheduledReport, error) {
	schedule.Name = strings.TrimSpace(schedule.Name)
	schedule.AccountID = strings.TrimSpace(schedule.AccountID)
	if schedule.AttributionWindow == "" {
		schedule.AttributionWindow = domain.DefaultAttributionWindow
	}

	if err := validate(schedule); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, schedule); err != nil {
		if errors.Is(err, repository.ErrScheduleNameTaken) {
			return nil, NewScheduleError(ErrScheduleConflict, apiErrors.ErrAlreadyExists, schedule.Name)
		}
		logrus.WithFields(logrus.Fields{
			"name":  schedule.Name,
			"error": err.Error(),
		}).Error("schedules: failed to create scheduled report")
		return nil, NewScheduleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "")
	}

	logrus.WithFields(logrus.Fields{
		"schedule_id": schedule.ID,
		"name":        schedule.Name,
		"account_id":  schedule.AccountID,
	}).Info("schedules: scheduled report created")

	return schedule, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.ScheduledReport, error) {
	schedule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, NewScheduleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if schedule == nil {
		return nil, NewScheduleError(ErrScheduleNotFound, apiErrors.ErrNotFound, id)
	}
	return schedule, nil
}

func (s *Service) List(ctx context.Context) ([]*domain.ScheduledReport, error) {
	schedules, err := s.repo.List(ctx)
	if err != nil {
		return nil, NewScheduleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if schedules == nil {
		schedules = []*domain.ScheduledReport{}
	}
	return schedules, nil
}

// SetEnabled toggles a schedule and returns its stored state.
func (s *Service) SetEnabled(ctx context.Context, id string, enabled bool) (*domain.ScheduledReport, error) {
	schedule, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetEnabled(ctx, id, enabled); err != nil {
		return nil, NewScheduleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	schedule.Enabled = enabled
	return schedule, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return NewScheduleError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, err.Error())
	}

	logrus.WithField("schedule_id", id).Info("schedules: scheduled report deleted")
	return nil
}

func validate(schedule *domain.ScheduledReport) error {
	switch {
	case schedule.Name == "":
		return NewScheduleError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "")
	case schedule.AccountID == "":
		return NewScheduleError(ErrAccountRequired, apiErrors.ErrMissingRequiredData, "")
	case len(schedule.Fields) == 0:
		return NewScheduleError(ErrFieldsRequired, apiErrors.ErrMissingRequiredData, "")
	case schedule.LookbackDays < 0:
		return NewScheduleError(ErrNegativeLookback, apiErrors.ErrInvalidRequest, "")
	}

	req := domain.ReportRequest{Fields: schedule.Fields}
	if field, dup := req.DuplicateField(); dup {
		return NewScheduleError(ErrDuplicateField, apiErrors.ErrDuplicateField, field)
	}

	return nil
}
