package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/meta-insights-connector/infrastructure/database/postgres"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	reportSnapshotsTable = "report_snapshots rs"
	snapshotColumns      = "rs.id, rs.request_key, rs.account_id, rs.request, rs.report, rs.row_count, rs.scheduled_id, rs.created_at"
)

// ReportSnapshotRepository stores served reports keyed by their normalized request.
type ReportSnapshotRepository interface {
	Save(ctx context.Context, snapshot *domain.ReportSnapshot) error
	GetLatestByKey(ctx context.Context, requestKey string) (*domain.ReportSnapshot, error)
	ListByAccount(ctx context.Context, accountID string, limit uint64) ([]*domain.ReportSnapshot, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type reportSnapshotRepository struct {
	conn postgres.Queryer
}

func NewReportSnapshotRepository(conn postgres.Queryer) ReportSnapshotRepository {
	return &reportSnapshotRepository{
		conn: conn,
	}
}

// Save inserts snapshot, filling ID, RowCount and CreatedAt.
func (r *reportSnapshotRepository) Save(ctx context.Context, snapshot *domain.ReportSnapshot) error {
	if snapshot.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("generating snapshot id: %w", err)
		}
		snapshot.ID = id
	}
	if snapshot.Report != nil {
		snapshot.RowCount = len(snapshot.Report.Rows)
	}
	if snapshot.RequestKey == "" {
		snapshot.RequestKey = snapshot.Request.Key()
	}

	query, args, err := insertSnapshotQuery(snapshot)
	if err != nil {
		return fmt.Errorf("building query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&snapshot.CreatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("executing query: %w", err)
	}

	return nil
}

// GetLatestByKey returns nil, nil when no snapshot has requestKey.
func (r *reportSnapshotRepository) GetLatestByKey(ctx context.Context, requestKey string) (*domain.ReportSnapshot, error) {
	query, args, err := latestSnapshotQuery(requestKey)
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	snapshot, err := scanSnapshot(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}

	return snapshot, nil
}

// ListByAccount returns the newest snapshots of accountID, at most limit.
func (r *reportSnapshotRepository) ListByAccount(ctx context.Context, accountID string, limit uint64) ([]*domain.ReportSnapshot, error) {
	query, args, err := listSnapshotsQuery(accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.ReportSnapshot, 0)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}

	return snapshots, nil
}

// DeleteOlderThan removes snapshots created more than days ago.
func (r *reportSnapshotRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	query, args, err := deleteSnapshotsQuery(time.Now().AddDate(0, 0, -days))
	if err != nil {
		return 0, fmt.Errorf("building query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("executing query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}

	return rowsAffected, nil
}

func insertSnapshotQuery(snapshot *domain.ReportSnapshot) (string, []any, error) {
	requestJSON, err := json.Marshal(snapshot.Request)
	if err != nil {
		return "", nil, fmt.Errorf("serializing request: %w", err)
	}

	reportJSON, err := json.Marshal(snapshot.Report)
	if err != nil {
		return "", nil, fmt.Errorf("serializing report: %w", err)
	}

	return squirrel.StatementBuilder.
		Insert("report_snapshots").
		Columns("id", "request_key", "account_id", "request", "report", "row_count", "scheduled_id").
		Values(
			snapshot.ID,
			snapshot.RequestKey,
			snapshot.AccountID,
			requestJSON,
			reportJSON,
			snapshot.RowCount,
			snapshot.ScheduledID,
		).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func latestSnapshotQuery(requestKey string) (string, []any, error) {
	return squirrel.
		Select(snapshotColumns).
		From(reportSnapshotsTable).
		Where(squirrel.Eq{"rs.request_key": requestKey}).
		OrderBy("rs.created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func listSnapshotsQuery(accountID string, limit uint64) (string, []any, error) {
	return squirrel.
		Select(snapshotColumns).
		From(reportSnapshotsTable).
		Where(squirrel.Eq{"rs.account_id": accountID}).
		OrderBy("rs.created_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func deleteSnapshotsQuery(cutoff time.Time) (string, []any, error) {
	return squirrel.
		Delete("report_snapshots").
		Where(squirrel.Lt{"created_at": cutoff}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*domain.ReportSnapshot, error) {
	snapshot := &domain.ReportSnapshot{}
	var requestJSON, reportJSON []byte

	err := row.Scan(
		&snapshot.ID,
		&snapshot.RequestKey,
		&snapshot.AccountID,
		&requestJSON,
		&reportJSON,
		&snapshot.RowCount,
		&snapshot.ScheduledID,
		&snapshot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(requestJSON, &snapshot.Request); err != nil {
		return nil, fmt.Errorf("deserializing request: %w", err)
	}

	if reportJSON != nil {
		report := &domain.Report{}
		if err := json.Unmarshal(reportJSON, report); err != nil {
			return nil, fmt.Errorf("deserializing report: %w", err)
		}
		snapshot.Report = report
	}

	return snapshot, nil
}
