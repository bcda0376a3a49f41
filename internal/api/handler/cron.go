package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/meta-insights-connector/pkg/apiErrors"
	"github.com/vfg2006/meta-insights-connector/pkg/log"
)

const (
	CronJobTypeReportRefresh = "report-refresh"
	CronJobTypeAll           = "all"
)

// RefreshJob is a background job that can be triggered by hand.
type RefreshJob interface {
	TriggerManualSync(ctx context.Context) bool
	GetStatus() map[string]any
}

// CronJobServices holds the jobs reachable from the cron endpoints.
type CronJobServices struct {
	ReportRefresh RefreshJob
}

func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		switch cronType {
		case CronJobTypeReportRefresh, CronJobTypeAll:
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid cron job type, accepted values: report-refresh, all", nil)
			return
		}

		if services.ReportRefresh == nil {
			apiErrors.WriteError(w, apiErrors.ErrFeatureOff, "report refresh is not available", nil)
			return
		}

		started := services.ReportRefresh.TriggerManualSync(r.Context())

		log.ForContext(r.Context()).WithFields(log.Fields{
			"type":    cronType,
			"started": started,
		}).Info("cron: manual run requested")

		message := "cron job started"
		if !started {
			message = "cron job already running"
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": message,
			"type":    cronType,
			"started": started,
		})
	})
}

func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.ReportRefresh != nil {
			status[CronJobTypeReportRefresh] = services.ReportRefresh.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}
