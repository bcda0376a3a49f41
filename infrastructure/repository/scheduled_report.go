package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/meta-insights-connector/infrastructure/database/postgres"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/pkg/utils"
)

const (
	scheduledReportsTable = "scheduled_reports sr"
	scheduleColumns       = "sr.id, sr.name, sr.account_id, sr.currency, sr.attribution_window, sr.fields, sr.lookback_days, sr.enabled, sr.last_run_at, sr.created_at, sr.updated_at"

	uniqueViolation = "23505"
)

var ErrScheduleNameTaken = errors.New("a scheduled report with this name already exists")

// ScheduledReportRepository persists report definitions re-run by the refresh job.
type ScheduledReportRepository interface {
	Create(ctx context.Context, schedule *domain.ScheduledReport) error
	GetByID(ctx context.Context, id string) (*domain.ScheduledReport, error)
	List(ctx context.Context) ([]*domain.ScheduledReport, error)
	ListEnabled(ctx context.Context) ([]*domain.ScheduledReport, error)
	SetEnabled(ctx context.Context, id string, enabled bool) error
	MarkRun(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

type scheduledReportRepository struct {
	conn postgres.Queryer
}

func NewScheduledReportRepository(conn postgres.Queryer) ScheduledReportRepository {
	return &scheduledReportRepository{
		conn: conn,
	}
}

func (r *scheduledReportRepository) Create(ctx context.Context, schedule *domain.ScheduledReport) error {
	id, err := utils.GenerateID()
	if err != nil {
		return fmt.Errorf("generating schedule id: %w", err)
	}
	schedule.ID = id

	query, args, err := squirrel.StatementBuilder.
		Insert("scheduled_reports").
		Columns("id", "name", "account_id", "currency", "attribution_window", "fields", "lookback_days", "enabled").
		Values(
			schedule.ID,
			schedule.Name,
			schedule.AccountID,
			schedule.Currency,
			schedule.AttributionWindow.String(),
			pq.Array(schedule.Fields),
			schedule.LookbackDays,
			schedule.Enabled,
		).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}

	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&schedule.CreatedAt, &schedule.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == uniqueViolation {
				return ErrScheduleNameTaken
			}
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("executing query: %w", err)
	}

	return nil
}

func (r *scheduledReportRepository) GetByID(ctx context.Context, id string) (*domain.ScheduledReport, error) {
	query, args, err := squirrel.
		Select(scheduleColumns).
		From(scheduledReportsTable).
		Where(squirrel.Eq{"sr.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	schedule, err := scanSchedule(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning schedule: %w", err)
	}

	return schedule, nil
}

func (r *scheduledReportRepository) List(ctx context.Context) ([]*domain.ScheduledReport, error) {
	return r.list(ctx, listSchedulesQuery(false))
}

// ListEnabled returns the schedules the refresh job should run, by name.
func (r *scheduledReportRepository) ListEnabled(ctx context.Context) ([]*domain.ScheduledReport, error) {
	return r.list(ctx, listSchedulesQuery(true))
}

func (r *scheduledReportRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*domain.ScheduledReport, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	schedules := make([]*domain.ScheduledReport, 0)
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning schedule: %w", err)
		}
		schedules = append(schedules, schedule)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return schedules, nil
}

func (r *scheduledReportRepository) SetEnabled(ctx context.Context, id string, enabled bool) error {
	return r.update(ctx, id, map[string]any{
		"enabled":    enabled,
		"updated_at": squirrel.Expr("NOW()"),
	})
}

// MarkRun records the completion time of a scheduled run.
func (r *scheduledReportRepository) MarkRun(ctx context.Context, id string, at time.Time) error {
	return r.update(ctx, id, map[string]any{
		"last_run_at": at,
		"updated_at":  squirrel.Expr("NOW()"),
	})
}

func (r *scheduledReportRepository) update(ctx context.Context, id string, set map[string]any) error {
	query, args, err := squirrel.
		Update("scheduled_reports").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("executing query: %w", err)
	}

	return nil
}

func (r *scheduledReportRepository) Delete(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Delete("scheduled_reports").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("executing query: %w", err)
	}

	return nil
}

func listSchedulesQuery(enabledOnly bool) squirrel.SelectBuilder {
	builder := squirrel.
		Select(scheduleColumns).
		From(scheduledReportsTable).
		OrderBy("sr.name ASC").
		PlaceholderFormat(squirrel.Dollar)

	if enabledOnly {
		builder = builder.Where(squirrel.Eq{"sr.enabled": true})
	}

	return builder
}

func scanSchedule(row scanner) (*domain.ScheduledReport, error) {
	schedule := &domain.ScheduledReport{}
	var window string
	var lastRunAt sql.NullTime

	err := row.Scan(
		&schedule.ID,
		&schedule.Name,
		&schedule.AccountID,
		&schedule.Currency,
		&window,
		pq.Array(&schedule.Fields),
		&schedule.LookbackDays,
		&schedule.Enabled,
		&lastRunAt,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	schedule.AttributionWindow = domain.AttributionWindow(window)
	if lastRunAt.Valid {
		schedule.LastRunAt = &lastRunAt.Time
	}

	return schedule, nil
}
