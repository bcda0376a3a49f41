package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metadomain "github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta/metaclient"
	repomocks "github.com/vfg2006/meta-insights-connector/infrastructure/repository/mocks"
	"github.com/vfg2006/meta-insights-connector/internal/config"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/planner"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/reporting/mocks"
	"github.com/vfg2006/meta-insights-connector/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Meta.PageSize = 100
	cfg.Report.DefaultCurrency = "CURRENCY_EUR"
	cfg.Report.DefaultAttributionWindow = "default"
	cfg.Report.Timeout = time.Minute
	return cfg
}

func validRequest() domain.ReportRequest {
	return domain.ReportRequest{
		AccountID: "act_1",
		Fields:    []string{"date__date", "dimension__campaign_name", "actions__link_click", "cost__spend"},
		DateRange: domain.DateRange{
			StartDate: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2023, 5, 7, 0, 0, 0, 0, time.UTC),
		},
	}
}

func records(t *testing.T, body string) []metadomain.InsightRecord {
	t.Helper()

	var out []metadomain.InsightRecord
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(body), &out))
	return out
}

func TestService_GetData(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockInsightsFetcher(ctrl)
	snapshots := repomocks.NewMockReportSnapshotRepository(ctrl)

	service := NewService(testConfig(), fetcher).WithSnapshots(snapshots)

	fetcher.EXPECT().
		FetchInsights(gomock.Any(), "act_1", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, plan planner.QueryPlan) ([]metadomain.InsightRecord, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			assert.Equal(t, planner.LevelCampaign, plan.Level)
			assert.Equal(t, planner.TimeIncrementDaily, plan.TimeIncrement)
			assert.Equal(t, "default", plan.AttributionWindows)
			assert.Equal(t, []string{"campaign_name", "actions", "spend"}, plan.Fields)

			return records(t, `[
				{"date_start":"2023-05-01","campaign_name":"A","spend":"1.5","actions":[{"action_type":"link_click","value":"4"}]},
				{"date_start":"2023-05-02","campaign_name":"A","spend":"2"}
			]`), nil
		})

	snapshots.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *domain.ReportSnapshot) error {
			assert.Equal(t, "act_1", s.AccountID)
			assert.Equal(t, "CURRENCY_EUR", s.Request.Currency)
			assert.Equal(t, s.Request.Key(), s.RequestKey)
			return nil
		})

	report, err := service.GetData(context.Background(), validRequest())
	require.NoError(t, err)

	assert.False(t, report.FiltersApplied)
	assert.Equal(t, []domain.SchemaColumn{
		{Name: "date__date", DataType: domain.DataTypeString},
		{Name: "dimension__campaign_name", DataType: domain.DataTypeString},
		{Name: "actions__link_click", DataType: domain.DataTypeNumber},
		{Name: "cost__spend", DataType: domain.DataTypeNumber},
	}, report.Schema)
	assert.Equal(t, []domain.ResultRow{
		{Values: []string{"20230501", "A", "4", "1.5"}},
		{Values: []string{"20230502", "A", "0", "2"}},
	}, report.Rows)
}

func TestService_GetData_SnapshotFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockInsightsFetcher(ctrl)
	snapshots := repomocks.NewMockReportSnapshotRepository(ctrl)

	fetcher.EXPECT().FetchInsights(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	snapshots.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	report, err := NewService(testConfig(), fetcher).WithSnapshots(snapshots).GetData(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Empty(t, report.Rows)
}

func TestService_Run_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *domain.ReportRequest)
		want   error
		code   string
	}{
		{
			name:   "missing account",
			mutate: func(r *domain.ReportRequest) { r.AccountID = "  " },
			want:   ErrAccountIDRequired,
			code:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:   "no fields",
			mutate: func(r *domain.ReportRequest) { r.Fields = nil },
			want:   ErrFieldsRequired,
			code:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:   "duplicate field",
			mutate: func(r *domain.ReportRequest) { r.Fields = []string{"metric__clicks", "metric__clicks"} },
			want:   ErrDuplicateField,
			code:   apiErrors.ErrDuplicateField,
		},
		{
			name: "start after end",
			mutate: func(r *domain.ReportRequest) {
				r.DateRange.StartDate, r.DateRange.EndDate = r.DateRange.EndDate, r.DateRange.StartDate
			},
			want: ErrInvalidDateRange,
			code: apiErrors.ErrInvalidDateRange,
		},
		{
			name:   "missing date range",
			mutate: func(r *domain.ReportRequest) { r.DateRange = domain.DateRange{} },
			want:   ErrDateRangeRequired,
			code:   apiErrors.ErrMissingRequiredData,
		},
		{
			name:   "missing end date",
			mutate: func(r *domain.ReportRequest) { r.DateRange.EndDate = time.Time{} },
			want:   ErrDateRangeRequired,
			code:   apiErrors.ErrMissingRequiredData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			service := NewService(testConfig(), mocks.NewMockInsightsFetcher(ctrl))

			req := validRequest()
			tt.mutate(&req)

			_, err := service.Run(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidRequest)

			var reportErr *ReportError
			require.ErrorAs(t, err, &reportErr)
			assert.Equal(t, tt.code, reportErr.Code)
		})
	}
}

func TestService_Run_FetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockInsightsFetcher(ctrl)

	fetchErr := &metaclient.FetchError{URL: "https://graph.facebook.com/v15.0/act_1/insights?after=x", Err: errors.New("status 500")}
	fetcher.EXPECT().FetchInsights(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, fetchErr)

	_, err := NewService(testConfig(), fetcher).Run(context.Background(), validRequest())

	var reportErr *ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, apiErrors.ErrExternalService, reportErr.Code)
	assert.Contains(t, reportErr.Details, "after=x")
	assert.ErrorIs(t, err, ErrMetaIntegration)

	var got *metaclient.FetchError
	assert.ErrorAs(t, err, &got)
}

func TestService_Run_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockInsightsFetcher(ctrl)

	fetcher.EXPECT().
		FetchInsights(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &metaclient.FetchError{URL: "u", Err: context.DeadlineExceeded})

	_, err := NewService(testConfig(), fetcher).Run(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrReportTimeout)
	var reportErr *ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, apiErrors.ErrTimeout, reportErr.Code)
}

func TestService_DescribeSchema(t *testing.T) {
	service := NewService(testConfig(), nil)

	for _, f := range service.DescribeSchema("") {
		if f.SemanticGroup == domain.SemanticGroupCurrency && f.ConceptType == domain.ConceptMetric {
			assert.Equal(t, "CURRENCY_EUR", f.SemanticType)
		}
	}

	fields := service.DescribeSchema("CURRENCY_BRL")
	assert.NotEmpty(t, fields)
}

func TestService_GetConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockInsightsFetcher(ctrl)

	fetcher.EXPECT().GetAdAccounts(gomock.Any()).Return([]domain.AdAccount{{ID: "act_1", Name: "Main"}}, nil)

	cfg, err := NewService(testConfig(), fetcher).GetConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.SelectOption{{Label: "Main", Value: "act_1"}}, cfg.Accounts)
	assert.True(t, cfg.DateRangeRequired)
	assert.Len(t, cfg.AttributionWindows, len(domain.AttributionWindowOptions))
	assert.Contains(t, cfg.Currencies, domain.SelectOption{Label: "USD", Value: "CURRENCY_USD"})
}

func TestService_GetConfig_AccountsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockInsightsFetcher(ctrl)

	fetcher.EXPECT().GetAdAccounts(gomock.Any()).Return(nil, &metaclient.FetchError{URL: "u", Err: errors.New("x")})

	_, err := NewService(testConfig(), fetcher).GetConfig(context.Background())
	assert.ErrorIs(t, err, ErrMetaIntegration)
}

func TestService_LatestSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	snapshots := repomocks.NewMockReportSnapshotRepository(ctrl)
	service := NewService(testConfig(), nil)

	_, err := service.LatestSnapshot(context.Background(), "k")
	assert.ErrorIs(t, err, ErrSnapshotsDisabled)

	service.WithSnapshots(snapshots)

	snapshots.EXPECT().GetLatestByKey(gomock.Any(), "missing").Return(nil, nil)
	_, err = service.LatestSnapshot(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)

	want := &domain.ReportSnapshot{ID: "s1", RequestKey: "k"}
	snapshots.EXPECT().GetLatestByKey(gomock.Any(), "k").Return(want, nil)
	got, err := service.LatestSnapshot(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestService_Normalize(t *testing.T) {
	service := NewService(testConfig(), nil)

	req := validRequest()
	req.AccountID = " act_1 "

	got := service.Normalize(req)

	assert.Equal(t, "act_1", got.AccountID)
	assert.Equal(t, "CURRENCY_EUR", got.Currency)
	assert.Equal(t, domain.AttributionWindow("default"), got.AttributionWindow)
	assert.Equal(t, got, service.Normalize(got))

	req.Currency = "CURRENCY_BRL"
	assert.Equal(t, "CURRENCY_BRL", service.Normalize(req).Currency)
}

func TestService_Normalize_UnknownCurrency(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	req := validRequest()
	req.Currency = "CURRENCY_XYZ"

	got := NewService(testConfig(), nil).Normalize(req)

	assert.Equal(t, "CURRENCY_XYZ", got.Currency)
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "CURRENCY_XYZ", entry.Data["currency"])
}

func TestService_ListSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	snapshots := repomocks.NewMockReportSnapshotRepository(ctrl)
	service := NewService(testConfig(), nil)

	_, err := service.ListSnapshots(context.Background(), "act_1", 5)
	assert.ErrorIs(t, err, ErrSnapshotsDisabled)

	service.WithSnapshots(snapshots)

	_, err = service.ListSnapshots(context.Background(), " ", 5)
	assert.ErrorIs(t, err, ErrAccountIDRequired)

	want := []*domain.ReportSnapshot{{ID: "s2"}, {ID: "s1"}}
	snapshots.EXPECT().ListByAccount(gomock.Any(), "act_1", uint64(5)).Return(want, nil)
	got, err := service.ListSnapshots(context.Background(), "act_1", 5)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	snapshots.EXPECT().ListByAccount(gomock.Any(), "act_1", uint64(defaultSnapshotListLimit)).Return(nil, nil)
	_, err = service.ListSnapshots(context.Background(), "act_1", 0)
	require.NoError(t, err)

	snapshots.EXPECT().ListByAccount(gomock.Any(), "act_1", uint64(defaultSnapshotListLimit)).Return(nil, errors.New("db down"))
	_, err = service.ListSnapshots(context.Background(), "act_1", 1000)
	var reportErr *ReportError
	require.ErrorAs(t, err, &reportErr)
	assert.Equal(t, apiErrors.ErrDatabaseOperation, reportErr.Code)
}
