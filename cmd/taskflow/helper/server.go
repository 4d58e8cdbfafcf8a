package helper

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/raids-lab/taskflow/internal"
	"github.com/raids-lab/taskflow/internal/handler"
	"github.com/raids-lab/taskflow/pkg/config"
	"github.com/raids-lab/taskflow/pkg/cronjob"
	"github.com/raids-lab/taskflow/pkg/logutils"
)

// ServerRunner owns the HTTP server lifecycle.
type ServerRunner struct {
	backendConfig *config.Config
}

func NewServerRunner(backendConfig *config.Config) *ServerRunner {
	return &ServerRunner{
		backendConfig: backendConfig,
	}
}

// StartCronJobs launches the background maintenance jobs.
func (sr *ServerRunner) StartCronJobs(registerConfig *handler.RegisterConfig) {
	mgr := cronjob.NewManager(registerConfig.DB, sr.backendConfig.Notify.RetentionDays)
	if err := mgr.Start(); err != nil {
		logutils.Log.Fatalf("start cron jobs: %s", err)
	}
}

// StartMetricsServer exposes prometheus metrics on a dedicated address so
// the scrape endpoint is never reachable through the public ingress.
func (sr *ServerRunner) StartMetricsServer() {
	if sr.backendConfig.MetricsAddr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              sr.backendConfig.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logutils.Log.Errorf("metrics listen: %s", err)
		}
	}()
}

var (
	readHeaderTimeout = 10 * time.Second
	cancelTimeout     = 10 * time.Second
)

// StartServer runs the gin server until SIGINT/SIGTERM, then shuts it
// down gracefully.
func (sr *ServerRunner) StartServer(registerConfig *handler.RegisterConfig) {
	logutils.Log.Info("starting server")
	backend := internal.Register(registerConfig)

	// reference: https://gin-gonic.com/en/docs/examples/graceful-restart-or-stop
	srv := &http.Server{
		Addr:              sr.backendConfig.ServerAddr,
		Handler:           backend.R,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logutils.Log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logutils.Log.Info("Shutdown Gin Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), cancelTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logutils.Log.Info("Gin Server Shutdown:", err)
	}
	logutils.Log.Info("Gin Server exiting")
}
