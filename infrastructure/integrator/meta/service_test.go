package meta

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/meta-insights-connector/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/meta-insights-connector/internal/config"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/planner"
)

func noSleep(context.Context, time.Duration) error { return nil }

func newIntegrator(srv *httptest.Server) *MetaIntegrator {
	cfg := &config.Config{}
	cfg.Meta.URL = srv.URL + "/v15.0"
	cfg.Meta.AccessToken = "token"

	return New(metaclient.NewClient(cfg, metaclient.WithSleeper(noSleep)))
}

func TestMetaIntegrator_FetchInsights(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v15.0/act_42/insights", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "campaign", q.Get("level"))
		assert.Equal(t, "campaign_name,clicks", q.Get("fields"))
		assert.Equal(t, "1", q.Get("time_increment"))
		fmt.Fprint(w, `{"data":[{"campaign_name":"A","clicks":"3","date_start":"2023-05-07"}],"paging":{}}`)
	}))
	defer srv.Close()

	plan := planner.New(0).Plan(domain.ReportRequest{
		AccountID:         "42",
		AttributionWindow: domain.DefaultAttributionWindow,
		Fields:            []string{"date__date", "dimension__campaign_name", "metric__clicks"},
		DateRange: domain.DateRange{
			StartDate: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2023, 5, 7, 0, 0, 0, 0, time.UTC),
		},
	})

	records, err := newIntegrator(srv).FetchInsights(context.Background(), "42", plan)
	require.NoError(t, err)
	require.Len(t, records, 1)

	name, _ := records[0].Scalar("campaign_name")
	assert.Equal(t, "A", name)
}

func TestMetaIntegrator_GetAdAccounts(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v15.0/me/adaccounts/", r.URL.Path)
		assert.Equal(t, "id,name", r.URL.Query().Get("fields"))

		if r.URL.Query().Get("after") == "" {
			fmt.Fprintf(w, `{"data":[{"id":"act_1","name":"One"}],"paging":{"next":"%s/v15.0/me/adaccounts/?fields=id,name&after=x"}}`, srv.URL)
			return
		}
		fmt.Fprint(w, `{"data":[{"id":"act_2","name":"Two"}],"paging":{}}`)
	}))
	defer srv.Close()

	accounts, err := newIntegrator(srv).GetAdAccounts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.AdAccount{
		{ID: "act_1", Name: "One"},
		{ID: "act_2", Name: "Two"},
	}, accounts)
}

func TestMetaIntegrator_GetAdAccountsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newIntegrator(srv).GetAdAccounts(context.Background())

	var fetchErr *metaclient.FetchError
	assert.ErrorAs(t, err, &fetchErr)
}
