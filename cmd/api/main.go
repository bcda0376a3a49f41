package main

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-insights-connector/infrastructure/database/postgres"
	"github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta"
	"github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-insights-connector/infrastructure/repository"
	"github.com/vfg2006/meta-insights-connector/internal/api"
	"github.com/vfg2006/meta-insights-connector/internal/api/handler"
	"github.com/vfg2006/meta-insights-connector/internal/catalog"
	"github.com/vfg2006/meta-insights-connector/internal/config"
	"github.com/vfg2006/meta-insights-connector/internal/scheduler"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/authenticating"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/reporting"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/scheduling"
	"github.com/vfg2006/meta-insights-connector/pkg/log"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.WithField("level", logrus.GetLevel().String()).Info("config: log level set")

	if err := catalog.New(cfg.Report.DefaultCurrency).Validate(); err != nil {
		logrus.WithError(err).Fatal("catalog: invalid field table")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metaClient := metaclient.NewClient(cfg)
	reportService := reporting.NewService(cfg, meta.New(metaClient))
	authenticator := authenticating.NewService(cfg)

	var (
		scheduleService scheduling.Scheduler
		refreshJob      handler.RefreshJob
	)

	if cfg.Report.SnapshotsEnabled || cfg.ReportRefresh.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		if err := postgres.Migrate(ctx, pgConn); err != nil {
			logrus.WithError(err).Fatal("database: migration failed")
		}

		snapshotRepo := repository.NewReportSnapshotRepository(pgConn)
		scheduleRepo := repository.NewScheduledReportRepository(pgConn)

		if cfg.Report.SnapshotsEnabled {
			reportService.WithSnapshots(snapshotRepo)
		}

		scheduleService = scheduling.NewService(scheduleRepo)

		refreshService := scheduler.NewReportRefreshService(scheduleRepo, snapshotRepo, reportService, cfg)
		if err := refreshService.Start(ctx); err != nil {
			logrus.WithError(err).Error("scheduler: failed to start report refresh")
		}
		refreshJob = refreshService
	}

	server, err := api.New(cfg, reportService, authenticator, scheduleService, refreshJob)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("database: failed to connect to PostgreSQL")
	}

	logrus.Info("database: PostgreSQL connection established")
	return conn
}
