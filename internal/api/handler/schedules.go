package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/meta-insights-connector/internal/domain"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/scheduling"
	"github.com/vfg2006/meta-insights-connector/pkg/apiErrors"
)

type setEnabledRequest struct {
	Enabled *bool `json:"enabled"`
}

func ListSchedules(service scheduling.Scheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		schedules, err := service.List(r.Context())
		if err != nil {
			writeError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}
		writeJSON(w, r, http.StatusOK, schedules)
	})
}

func GetSchedule(service scheduling.Scheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		schedule, err := service.Get(r.Context(), id)
		if err != nil {
			writeError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}
		writeJSON(w, r, http.StatusOK, schedule)
	})
}

func CreateSchedule(service scheduling.Scheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var schedule domain.ScheduledReport
		if err := json.NewDecoder(r.Body).Decode(&schedule); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "invalid request body", err.Error())
			return
		}

		created, err := service.Create(r.Context(), &schedule)
		if err != nil {
			writeError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}
		writeJSON(w, r, http.StatusCreated, created)
	})
}

func SetScheduleEnabled(service scheduling.Scheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var body setEnabledRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Enabled == nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "body must be {\"enabled\": true|false}", nil)
			return
		}

		schedule, err := service.SetEnabled(r.Context(), id, *body.Enabled)
		if err != nil {
			writeError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}
		writeJSON(w, r, http.StatusOK, schedule)
	})
}

func DeleteSchedule(service scheduling.Scheduler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.Delete(r.Context(), id); err != nil {
			writeError(w, r, err, apiErrors.ErrDatabaseOperation)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}
