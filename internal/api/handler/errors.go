package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/authenticating"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/reporting"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/scheduling"
	"github.com/vfg2006/meta-insights-connector/pkg/apiErrors"
	"github.com/vfg2006/meta-insights-connector/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeError writes err with the code carried by the use case error, or
// fallbackCode when it carries none.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallbackCode string) {
	code := fallbackCode
	message := err.Error()

	var (
		reportErr   *reporting.ReportError
		scheduleErr *scheduling.ScheduleError
		authErr     *authenticating.AuthError
	)
	switch {
	case errors.As(err, &reportErr):
		code = reportErr.Code
	case errors.As(err, &scheduleErr):
		code = scheduleErr.Code
	case errors.As(err, &authErr):
		code = authErr.Code
	}

	logger := log.ForContext(r.Context()).WithFields(log.Fields{
		"code":  code,
		"path":  r.URL.Path,
		"error": message,
	})
	if apiErrors.StatusFor(code) >= http.StatusInternalServerError {
		logger.Error("api: request failed")
	} else {
		logger.Warn("api: request rejected")
	}

	apiErrors.WriteError(w, code, message, nil)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("api: failed to encode response")
	}
}
