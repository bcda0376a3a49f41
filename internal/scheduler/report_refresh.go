package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-insights-connector/infrastructure/repository"
	"github.com/vfg2006/meta-insights-connector/internal/config"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
)

// ReportRunner runs one report without storing it. Normalize must return the
// request the runner keys its own snapshots by.
type ReportRunner interface {
	Run(ctx context.Context, req domain.ReportRequest) (*domain.Report, error)
	Normalize(req domain.ReportRequest) domain.ReportRequest
}

// ReportRefreshConfig is the refresh job section of the app config.
type ReportRefreshConfig struct {
	CronSchedule        string
	LookbackDays        int
	RequestDelaySeconds int
	MaxConcurrentJobs   int
	RetentionDays       int
	Enabled             bool
}

// RefreshResult summarizes one refresh pass.
type RefreshResult struct {
	Schedules int   `json:"schedules"`
	Succeeded int   `json:"succeeded"`
	Failed    int   `json:"failed"`
	Pruned    int64 `json:"pruned"`
}

// ReportRefreshService re-runs every enabled scheduled report on a cron schedule
// and stores the results as snapshots.
type ReportRefreshService struct {
	scheduler *gocron.Scheduler
	config    ReportRefreshConfig
	schedules repository.ScheduledReportRepository
	snapshots repository.ReportSnapshotRepository
	runner    ReportRunner
	now       func() time.Time

	mu              sync.Mutex
	running         bool
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastResult      RefreshResult
}

// NewReportRefreshService builds the job from appConfig. At least one schedule
// runs at a time.
func NewReportRefreshService(
	schedules repository.ScheduledReportRepository,
	snapshots repository.ReportSnapshotRepository,
	runner ReportRunner,
	appConfig *config.Config,
) *ReportRefreshService {
	refreshConfig := ReportRefreshConfig{
		CronSchedule:        appConfig.ReportRefresh.CronSchedule,
		LookbackDays:        appConfig.ReportRefresh.LookbackDays,
		RequestDelaySeconds: appConfig.ReportRefresh.RequestDelaySeconds,
		MaxConcurrentJobs:   appConfig.ReportRefresh.MaxConcurrentJobs,
		RetentionDays:       appConfig.Report.SnapshotRetentionDays,
		Enabled:             appConfig.ReportRefresh.Enabled,
	}
	if refreshConfig.MaxConcurrentJobs < 1 {
		refreshConfig.MaxConcurrentJobs = 1
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         refreshConfig.CronSchedule,
		"lookback_days":         refreshConfig.LookbackDays,
		"request_delay_seconds": refreshConfig.RequestDelaySeconds,
		"max_concurrent_jobs":   refreshConfig.MaxConcurrentJobs,
		"retention_days":        refreshConfig.RetentionDays,
		"enabled":               refreshConfig.Enabled,
	}).Info("scheduler: report refresh configured")

	return &ReportRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    refreshConfig,
		schedules: schedules,
		snapshots: snapshots,
		runner:    runner,
		now:       time.Now,
	}
}

// Start registers the cron job and stops the scheduler when ctx is done.
func (s *ReportRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("scheduler: report refresh disabled")
		return nil
	}

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("scheduling report refresh: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: stopping report refresh")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync starts a refresh in the background unless one is running.
// It reports whether a new pass was started.
func (s *ReportRefreshService) TriggerManualSync(ctx context.Context) bool {
	s.mu.Lock()
	busy := s.running
	s.mu.Unlock()
	if busy {
		logrus.Info("scheduler: report refresh already running, ignoring manual trigger")
		return false
	}

	go s.RunOnce(context.WithoutCancel(ctx))
	return true
}

// RunOnce refreshes every enabled schedule and prunes expired snapshots.
// Overlapping calls return immediately with an empty result.
func (s *ReportRefreshService) RunOnce(ctx context.Context) RefreshResult {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return RefreshResult{}
	}
	s.running = true
	s.lastStartedAt = s.now()
	s.mu.Unlock()

	var result RefreshResult
	defer func() {
		s.mu.Lock()
		s.running = false
		s.lastCompletedAt = s.now()
		s.lastResult = result
		s.mu.Unlock()
	}()

	start := time.Now()

	schedules, err := s.schedules.ListEnabled(ctx)
	if err != nil {
		logrus.WithError(err).Error("scheduler: failed to list scheduled reports")
		return result
	}
	result.Schedules = len(schedules)

	succeeded, failed := s.refreshAll(ctx, schedules)
	result.Succeeded = succeeded
	result.Failed = failed

	if s.config.RetentionDays > 0 {
		pruned, err := s.snapshots.DeleteOlderThan(ctx, s.config.RetentionDays)
		if err != nil {
			logrus.WithError(err).Warn("scheduler: failed to prune snapshots")
		}
		result.Pruned = pruned
	}

	logrus.WithFields(logrus.Fields{
		"schedules":   result.Schedules,
		"succeeded":   result.Succeeded,
		"failed":      result.Failed,
		"pruned":      result.Pruned,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("scheduler: report refresh finished")

	return result
}

func (s *ReportRefreshService) refreshAll(ctx context.Context, schedules []*domain.ScheduledReport) (int, int) {
	semaphore := make(chan struct{}, s.config.MaxConcurrentJobs)
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failed    int
	)

	for _, schedule := range schedules {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(sr *domain.ScheduledReport) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			err := s.refresh(ctx, sr)

			mu.Lock()
			if err != nil {
				failed++
			} else {
				succeeded++
			}
			mu.Unlock()

			if s.config.RequestDelaySeconds > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(time.Duration(s.config.RequestDelaySeconds) * time.Second):
				}
			}
		}(schedule)
	}

	wg.Wait()
	return succeeded, failed
}

func (s *ReportRefreshService) refresh(ctx context.Context, sr *domain.ScheduledReport) error {
	logger := logrus.WithFields(logrus.Fields{
		"schedule_id": sr.ID,
		"name":        sr.Name,
		"account_id":  sr.AccountID,
	})

	req := s.runner.Normalize(sr.RequestFor(s.now(), s.config.LookbackDays))

	report, err := s.runner.Run(ctx, req)
	if err != nil {
		logger.WithError(err).Error("scheduler: scheduled report failed")
		return err
	}

	scheduledID := sr.ID
	snapshot := &domain.ReportSnapshot{
		RequestKey:  req.Key(),
		AccountID:   req.AccountID,
		Request:     req,
		Report:      report,
		ScheduledID: &scheduledID,
	}
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		logger.WithError(err).Error("scheduler: failed to store snapshot")
		return err
	}

	if err := s.schedules.MarkRun(ctx, sr.ID, s.now()); err != nil {
		logger.WithError(err).Warn("scheduler: failed to record run time")
	}

	logger.WithField("rows", len(report.Rows)).Info("scheduler: scheduled report refreshed")
	return nil
}

// GetStatus returns the configuration and the outcome of the last pass.
func (s *ReportRefreshService) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":              s.config.Enabled,
		"cron":                 s.config.CronSchedule,
		"lookback_days":        s.config.LookbackDays,
		"max_concurrent":       s.config.MaxConcurrentJobs,
		"request_delay_s":      s.config.RequestDelaySeconds,
		"retention_days":       s.config.RetentionDays,
		"running":              s.running,
		"last_run_started_at":  s.lastStartedAt,
		"last_run_finished_at": s.lastCompletedAt,
		"last_result":          s.lastResult,
	}
}
