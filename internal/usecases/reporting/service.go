package reporting

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-insights-connector/infrastructure/repository"
	"github.com/vfg2006/meta-insights-connector/internal/assembler"
	"github.com/vfg2006/meta-insights-connector/internal/catalog"
	"github.com/vfg2006/meta-insights-connector/internal/config"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/planner"
	"github.com/vfg2006/meta-insights-connector/internal/resolver"
	"github.com/vfg2006/meta-insights-connector/pkg/apiErrors"
)

const (
	defaultSnapshotListLimit = 20
	maxSnapshotListLimit     = 100
)

// Service runs insight reports against the Marketing API and optionally keeps
// the results as snapshots.
type Service struct {
	cfg       *config.Config
	fetcher   InsightsFetcher
	planner   *planner.Planner
	snapshots repository.ReportSnapshotRepository
}

// NewService builds a Service whose planner pages with cfg.Meta.PageSize.
func NewService(cfg *config.Config, fetcher InsightsFetcher) *Service {
	return &Service{
		cfg:     cfg,
		fetcher: fetcher,
		planner: planner.New(cfg.Meta.PageSize),
	}
}

// WithSnapshots stores every report served by GetData in repo.
func (s *Service) WithSnapshots(repo repository.ReportSnapshotRepository) *Service {
	s.snapshots = repo
	return s
}

// GetData runs req and, when snapshots are enabled, stores the report under
// the normalized request key.
func (s *Service) GetData(ctx context.Context, req domain.ReportRequest) (*domain.Report, error) {
	req = s.Normalize(req)

	report, err := s.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.snapshots != nil {
		snapshot := &domain.ReportSnapshot{
			RequestKey: req.Key(),
			AccountID:  req.AccountID,
			Request:    req,
			Report:     report,
		}
		if err := s.snapshots.Save(ctx, snapshot); err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": req.AccountID,
				"error":      err.Error(),
			}).Warn("reports: failed to store snapshot")
		}
	}

	return report, nil
}

// Run validates req, fetches every page the plan needs and assembles the rows.
// Nothing is stored.
func (s *Service) Run(ctx context.Context, req domain.ReportRequest) (*domain.Report, error) {
	req = s.Normalize(req)
	if err := validate(req); err != nil {
		return nil, err
	}

	if s.cfg.Report.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Report.Timeout)
		defer cancel()
	}

	start := time.Now()
	plan := s.planner.Plan(req)

	records, err := s.fetcher.FetchInsights(ctx, req.AccountID, plan)
	if err != nil {
		return nil, fetchFailure(err)
	}

	rows := assembler.Assemble(records, req.Fields, resolver.New(req.AttributionWindow))

	logrus.WithFields(logrus.Fields{
		"account_id":  req.AccountID,
		"level":       plan.Level,
		"fields":      len(req.Fields),
		"rows":        len(rows),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("reports: report assembled")

	return &domain.Report{
		Schema:         catalog.New(req.Currency).Columns(req.Fields),
		Rows:           rows,
		FiltersApplied: false,
	}, nil
}

// DescribeSchema lists every catalog field with currency fields typed by
// currency, or by the configured default when it is empty.
func (s *Service) DescribeSchema(currency string) []domain.SchemaField {
	if currency == "" {
		currency = s.defaultCurrency()
	}
	return catalog.Describe(currency)
}

// GetConfig returns the options a report can be configured with.
func (s *Service) GetConfig(ctx context.Context) (*domain.ConnectorConfig, error) {
	accounts, err := s.ListAdAccounts(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]domain.SelectOption, 0, len(accounts))
	for _, a := range accounts {
		options = append(options, domain.SelectOption{Label: a.Name, Value: a.ID})
	}

	windows := make([]domain.SelectOption, len(domain.AttributionWindowOptions))
	copy(windows, domain.AttributionWindowOptions)

	return &domain.ConnectorConfig{
		Accounts:           options,
		Currencies:         domain.CurrencyOptions(),
		AttributionWindows: windows,
		DateRangeRequired:  true,
	}, nil
}

// ListAdAccounts returns the ad accounts the token can read.
func (s *Service) ListAdAccounts(ctx context.Context) ([]domain.AdAccount, error) {
	accounts, err := s.fetcher.GetAdAccounts(ctx)
	if err != nil {
		return nil, fetchFailure(err)
	}
	return accounts, nil
}

// LatestSnapshot returns the newest snapshot stored under key.
func (s *Service) LatestSnapshot(ctx context.Context, key string) (*domain.ReportSnapshot, error) {
	if s.snapshots == nil {
		return nil, NewReportError(ErrSnapshotsDisabled, apiErrors.ErrFeatureOff, "")
	}

	snapshot, err := s.snapshots.GetLatestByKey(ctx, key)
	if err != nil {
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "").WithCause(err)
	}
	if snapshot == nil {
		return nil, NewReportError(ErrSnapshotNotFound, apiErrors.ErrNotFound, key)
	}

	return snapshot, nil
}

// ListSnapshots returns up to limit snapshots of accountID, newest first.
func (s *Service) ListSnapshots(ctx context.Context, accountID string, limit int) ([]*domain.ReportSnapshot, error) {
	if s.snapshots == nil {
		return nil, NewReportError(ErrSnapshotsDisabled, apiErrors.ErrFeatureOff, "")
	}

	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, NewReportError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if limit <= 0 || limit > maxSnapshotListLimit {
		limit = defaultSnapshotListLimit
	}

	snapshots, err := s.snapshots.ListByAccount(ctx, accountID, uint64(limit))
	if err != nil {
		return nil, NewReportError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "").WithCause(err)
	}

	return snapshots, nil
}

// Normalize fills the defaults a request leaves empty. Snapshot keys are
// always computed on the normalized request.
func (s *Service) Normalize(req domain.ReportRequest) domain.ReportRequest {
	req.AccountID = strings.TrimSpace(req.AccountID)
	if req.Currency == "" {
		req.Currency = s.defaultCurrency()
	} else if !domain.IsKnownCurrency(req.Currency) {
		logrus.WithField("currency", req.Currency).Warn("reports: unknown currency, schema will carry it as is")
	}
	if strings.TrimSpace(req.AttributionWindow.String()) == "" {
		req.AttributionWindow = domain.AttributionWindow(s.cfg.Report.DefaultAttributionWindow)
		if req.AttributionWindow == "" {
			req.AttributionWindow = domain.DefaultAttributionWindow
		}
	}
	return req
}

func (s *Service) defaultCurrency() string {
	if s.cfg.Report.DefaultCurrency != "" {
		return s.cfg.Report.DefaultCurrency
	}
	return domain.DefaultCurrency
}

func validate(req domain.ReportRequest) error {
	if req.AccountID == "" {
		return NewReportError(ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if len(req.Fields) == 0 {
		return NewReportError(ErrFieldsRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if field, dup := req.DuplicateField(); dup {
		return NewReportError(ErrDuplicateField, apiErrors.ErrDuplicateField, field)
	}
	if req.DateRange.StartDate.IsZero() || req.DateRange.EndDate.IsZero() {
		return NewReportError(ErrDateRangeRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if req.DateRange.StartDate.After(req.DateRange.EndDate) {
		return NewReportError(ErrInvalidDateRange, apiErrors.ErrInvalidDateRange, "")
	}
	return nil
}

func fetchFailure(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewReportError(ErrReportTimeout, apiErrors.ErrTimeout, "").WithCause(err)
	}

	details := err.Error()
	var fetchErr *metaclient.FetchError
	if errors.As(err, &fetchErr) {
		details = fetchErr.Error()
	}

	return NewReportError(ErrMetaIntegration, apiErrors.ErrExternalService, details).
		WithCause(errors.Wrap(err, "fetching from Meta"))
}
