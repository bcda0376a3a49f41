package reporting

import (
	"context"

	metadomain "github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/planner"
)

// InsightsFetcher reads from the Marketing API.
type InsightsFetcher interface {
	FetchInsights(ctx context.Context, accountID string, plan planner.QueryPlan) ([]metadomain.InsightRecord, error)
	GetAdAccounts(ctx context.Context) ([]domain.AdAccount, error)
}

// Reporter is the host boundary of the connector.
type Reporter interface {
	// GetData runs the full pipeline for req and stores a snapshot when enabled.
	GetData(ctx context.Context, req domain.ReportRequest) (*domain.Report, error)
	// Run runs the pipeline without storing anything.
	Run(ctx context.Context, req domain.ReportRequest) (*domain.Report, error)
	// Normalize fills request defaults. Snapshot keys use the normalized request.
	Normalize(req domain.ReportRequest) domain.ReportRequest
	DescribeSchema(currency string) []domain.SchemaField
	GetConfig(ctx context.Context) (*domain.ConnectorConfig, error)
	ListAdAccounts(ctx context.Context) ([]domain.AdAccount, error)
	LatestSnapshot(ctx context.Context, key string) (*domain.ReportSnapshot, error)
	ListSnapshots(ctx context.Context, accountID string, limit int) ([]*domain.ReportSnapshot, error)
}
