package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/reporting"
	"github.com/vfg2006/meta-insights-connector/pkg/apiErrors"
	"github.com/vfg2006/meta-insights-connector/pkg/log"
)

func GetSchema(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		currency := r.URL.Query().Get("currency")
		writeJSON(w, r, http.StatusOK, service.DescribeSchema(currency))
	})
}

func GetConnectorConfig(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cfg, err := service.GetConfig(r.Context())
		if err != nil {
			writeError(w, r, err, apiErrors.ErrExternalService)
			return
		}
		writeJSON(w, r, http.StatusOK, cfg)
	})
}

func ListAdAccounts(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accounts, err := service.ListAdAccounts(r.Context())
		if err != nil {
			writeError(w, r, err, apiErrors.ErrExternalService)
			return
		}
		if accounts == nil {
			accounts = []domain.AdAccount{}
		}
		writeJSON(w, r, http.StatusOK, accounts)
	})
}

// CreateReport decodes a report request and runs it through GetData.
func CreateReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req domain.ReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.WithError(err).Warn("reports: invalid request body")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "invalid request body", err.Error())
			return
		}

		logger.WithFields(log.Fields{
			"account_id": req.AccountID,
			"fields":     len(req.Fields),
		}).Info("reports: report requested")

		report, err := service.GetData(r.Context(), req)
		if err != nil {
			writeError(w, r, err, apiErrors.ErrInternalServer)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	})
}

func GetLatestSnapshot(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		if key == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "key is required", nil)
			return
		}

		snapshot, err := service.LatestSnapshot(r.Context(), key)
		if err != nil {
			writeError(w, r, err, apiErrors.ErrInternalServer)
			return
		}

		writeJSON(w, r, http.StatusOK, snapshot)
	})
}

// ListSnapshots lists stored snapshots of the account query parameter.
func ListSnapshots(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		limit := 0
		if raw := query.Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit must be a positive integer", raw)
				return
			}
			limit = n
		}

		snapshots, err := service.ListSnapshots(r.Context(), query.Get("account"), limit)
		if err != nil {
			writeError(w, r, err, apiErrors.ErrInternalServer)
			return
		}
		if snapshots == nil {
			snapshots = []*domain.ReportSnapshot{}
		}

		writeJSON(w, r, http.StatusOK, snapshots)
	})
}
