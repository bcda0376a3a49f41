package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/justinas/alice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-insights-connector/internal/api/handler/router"
	"github.com/vfg2006/meta-insights-connector/internal/config"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/authenticating"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/reporting"
	reportingmocks "github.com/vfg2006/meta-insights-connector/internal/usecases/reporting/mocks"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/scheduling"
	schedulingmocks "github.com/vfg2006/meta-insights-connector/internal/usecases/scheduling/mocks"
	"github.com/vfg2006/meta-insights-connector/pkg/apiErrors"
	"github.com/vfg2006/meta-insights-connector/pkg/middleware"
	"go.uber.org/mock/gomock"
)

type fakeRefreshJob struct {
	triggered int
	busy      bool
}

func (f *fakeRefreshJob) TriggerManualSync(ctx context.Context) bool {
	f.triggered++
	return !f.busy
}

func (f *fakeRefreshJob) GetStatus() map[string]any {
	return map[string]any{"enabled": true}
}

type testAPI struct {
	handler   http.Handler
	reporter  *reportingmocks.MockReporter
	scheduler *schedulingmocks.MockScheduler
	job       *fakeRefreshJob
	admin     string
	viewer    string
}

func newTestAPI(t *testing.T) *testAPI {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Auth.Secret = "handler-secret"
	auth := authenticating.NewService(cfg)

	admin, err := auth.IssueToken("ops", domain.RoleAdmin, time.Hour)
	require.NoError(t, err)
	viewer, err := auth.IssueToken("analyst", domain.RoleViewer, time.Hour)
	require.NoError(t, err)

	api := &testAPI{
		reporter:  reportingmocks.NewMockReporter(ctrl),
		scheduler: schedulingmocks.NewMockScheduler(ctrl),
		job:       &fakeRefreshJob{},
		admin:     admin,
		viewer:    viewer,
	}

	rt := router.New(
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(Reports(api.reporter)...),
		router.WithRoutes(Schedules(api.scheduler)...),
		router.WithRoutes(CronJobs(CronJobServices{ReportRefresh: api.job})...),
	)
	api.handler = alice.New(middleware.AuthMiddleware(auth)).Then(rt)

	return api
}

func (a *testAPI) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthcheck(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/healthcheck", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

func TestCreateReport(t *testing.T) {
	body := `{"accountId":"act_1","fields":["date__date","cost__spend"],"dateRange":{"startDate":"2023-05-01","endDate":"2023-05-07"}}`

	t.Run("returns the assembled report", func(t *testing.T) {
		api := newTestAPI(t)

		api.reporter.EXPECT().
			GetData(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req domain.ReportRequest) (*domain.Report, error) {
				assert.Equal(t, "act_1", req.AccountID)
				assert.Equal(t, []string{"date__date", "cost__spend"}, req.Fields)
				assert.Equal(t, "2023-05-07", req.DateRange.EndDate.Format(time.DateOnly))
				return &domain.Report{
					Schema: []domain.SchemaColumn{{Name: "date__date", DataType: domain.DataTypeString}},
					Rows:   []domain.ResultRow{{Values: []string{"20230501", "12.5"}}},
				}, nil
			})

		rec := api.do(http.MethodPost, "/v1/reports", api.viewer, body)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"values":["20230501","12.5"]`)
		assert.Contains(t, rec.Body.String(), `"filtersApplied":false`)
	})

	t.Run("maps use case errors to their code", func(t *testing.T) {
		api := newTestAPI(t)

		api.reporter.EXPECT().
			GetData(gomock.Any(), gomock.Any()).
			Return(nil, reporting.NewReportError(reporting.ErrMetaIntegration, apiErrors.ErrExternalService, "URL: x"))

		rec := api.do(http.MethodPost, "/v1/reports", api.viewer, body)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), apiErrors.ErrExternalService)
	})

	t.Run("rejects malformed bodies", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(http.MethodPost, "/v1/reports", api.viewer, `{"dateRange":{"startDate":"yesterday"}}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), apiErrors.ErrInvalidFormat)
	})

	t.Run("requires a token", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(http.MethodPost, "/v1/reports", "", body)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestSchemaConfigAndAccounts(t *testing.T) {
	api := newTestAPI(t)

	api.reporter.EXPECT().
		DescribeSchema("CURRENCY_EUR").
		Return([]domain.SchemaField{{Name: "cost__spend", SemanticType: "CURRENCY_EUR"}})
	api.reporter.EXPECT().
		GetConfig(gomock.Any()).
		Return(&domain.ConnectorConfig{DateRangeRequired: true}, nil)
	api.reporter.EXPECT().
		ListAdAccounts(gomock.Any()).
		Return(nil, nil)

	rec := api.do(http.MethodGet, "/v1/schema?currency=CURRENCY_EUR", api.viewer, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"semanticType":"CURRENCY_EUR"`)

	rec = api.do(http.MethodGet, "/v1/config", api.viewer, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dateRangeRequired":true`)

	rec = api.do(http.MethodGet, "/v1/adAccounts", api.viewer, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetLatestSnapshot(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/v1/reports/latest", api.viewer, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	api.reporter.EXPECT().
		LatestSnapshot(gomock.Any(), "k1").
		Return(nil, reporting.NewReportError(reporting.ErrSnapshotsDisabled, apiErrors.ErrFeatureOff, ""))

	rec = api.do(http.MethodGet, "/v1/reports/latest?key=k1", api.viewer, "")
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestListSnapshots(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/v1/reports?account=act_1&limit=abc", api.viewer, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	api.reporter.EXPECT().
		ListSnapshots(gomock.Any(), "act_1", 2).
		Return([]*domain.ReportSnapshot{{ID: "s2", AccountID: "act_1"}}, nil)

	rec = api.do(http.MethodGet, "/v1/reports?account=act_1&limit=2", api.viewer, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"s2"`)

	api.reporter.EXPECT().
		ListSnapshots(gomock.Any(), "", 0).
		Return(nil, reporting.NewReportError(reporting.ErrAccountIDRequired, apiErrors.ErrMissingRequiredData, ""))

	rec = api.do(http.MethodGet, "/v1/reports", api.viewer, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSchedules(t *testing.T) {
	t.Run("viewer cannot create", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(http.MethodPost, "/v1/schedules", api.viewer, `{"name":"x"}`)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin creates", func(t *testing.T) {
		api := newTestAPI(t)

		api.scheduler.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, s *domain.ScheduledReport) (*domain.ScheduledReport, error) {
				assert.Equal(t, "daily", s.Name)
				s.ID = "sched-1"
				return s, nil
			})

		rec := api.do(http.MethodPost, "/v1/schedules", api.admin, `{"name":"daily","account_id":"act_1","fields":["cost__spend"]}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"sched-1"`)
	})

	t.Run("not found", func(t *testing.T) {
		api := newTestAPI(t)

		api.scheduler.EXPECT().
			Get(gomock.Any(), "nope").
			Return(nil, scheduling.NewScheduleError(scheduling.ErrScheduleNotFound, apiErrors.ErrNotFound, "nope"))

		rec := api.do(http.MethodGet, "/v1/schedules/nope", api.viewer, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("toggle requires a boolean", func(t *testing.T) {
		api := newTestAPI(t)

		rec := api.do(http.MethodPut, "/v1/schedules/sched-1/enabled", api.admin, `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		api.scheduler.EXPECT().
			SetEnabled(gomock.Any(), "sched-1", false).
			Return(&domain.ScheduledReport{ID: "sched-1"}, nil)

		rec = api.do(http.MethodPut, "/v1/schedules/sched-1/enabled", api.admin, `{"enabled":false}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		api := newTestAPI(t)

		api.scheduler.EXPECT().Delete(gomock.Any(), "sched-1").Return(nil)

		rec := api.do(http.MethodDelete, "/v1/schedules/sched-1", api.admin, "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestCronJobs(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/v1/cron/report-refresh/run", api.viewer, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(http.MethodPost, "/v1/cron/unknown/run", api.admin, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(http.MethodPost, "/v1/cron/report-refresh/run", api.admin, "")
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, api.job.triggered)

	rec = api.do(http.MethodGet, "/v1/cron/status", api.admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"report-refresh":{"enabled":true}`)
}
