package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/meta-insights-connector/internal/api/handler"
	"github.com/vfg2006/meta-insights-connector/internal/api/handler/router"
	"github.com/vfg2006/meta-insights-connector/internal/config"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/authenticating"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/reporting"
	"github.com/vfg2006/meta-insights-connector/internal/usecases/scheduling"
	"github.com/vfg2006/meta-insights-connector/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

// New builds the HTTP server. scheduler and refreshJob may be nil when no
// database is configured; their routes are then left out.
func New(
	config *config.Config,
	reporter reporting.Reporter,
	authenticator authenticating.Authenticator,
	scheduler scheduling.Scheduler,
	refreshJob handler.RefreshJob,
) (*Server, error) {
	if config.Auth.Secret == "" {
		return nil, fmt.Errorf("AUTH_SECRET is required to serve the API")
	}

	configs := []router.ConfigRouter{
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Reports(reporter)...),
	}
	if scheduler != nil {
		configs = append(configs, router.WithRoutes(handler.Schedules(scheduler)...))
	}
	if refreshJob != nil {
		configs = append(configs, router.WithRoutes(handler.CronJobs(handler.CronJobServices{
			ReportRefresh: refreshJob,
		})...))
	}

	rt := router.New(configs...)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Cors.AllowedOrigins),
		middleware.AuthMiddleware(authenticator),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler exposes the full middleware chain.
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until SIGINT, SIGTERM or ctx cancellation, then shuts down gracefully.
func (s Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("api: server starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		logrus.Info("api: interrupt signal received")
	case <-ctx.Done():
		logrus.Info("api: context cancelled")
	case err := <-errCh:
		logrus.WithError(err).Error("api: server failed")
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("api: shutting down")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("api: shutdown failed")
		return err
	}

	logrus.Info("api: server stopped")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
