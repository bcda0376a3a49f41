package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS scheduled_reports (
		id                 VARCHAR(21) PRIMARY KEY,
		name               TEXT NOT NULL,
		account_id         TEXT NOT NULL,
		currency           TEXT NOT NULL,
		attribution_window TEXT NOT NULL DEFAULT 'default',
		fields             TEXT[] NOT NULL,
		lookback_days      INTEGER NOT NULL DEFAULT 0,
		enabled            BOOLEAN NOT NULL DEFAULT TRUE,
		last_run_at        TIMESTAMPTZ,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (name)
	)`,
	`CREATE TABLE IF NOT EXISTS report_snapshots (
		id           VARCHAR(21) PRIMARY KEY,
		request_key  TEXT NOT NULL,
		account_id   TEXT NOT NULL,
		request      JSONB NOT NULL,
		report       JSONB NOT NULL,
		row_count    INTEGER NOT NULL,
		scheduled_id VARCHAR(21) REFERENCES scheduled_reports (id) ON DELETE SET NULL,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS report_snapshots_request_key_idx ON report_snapshots (request_key, created_at DESC)`,
}

// Migrate creates the tables used by the snapshot and schedule repositories.
func Migrate(ctx context.Context, conn Conn) error {
	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, stmt := range migrations {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migration %d: %w", i+1, err)
			}
		}
		logrus.WithField("statements", len(migrations)).Info("database: schema up to date")
		return nil
	})
}
