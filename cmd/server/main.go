// Package main is the entry point for the receiver.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sumologic/receiver-mock/internal/collector"
	"github.com/sumologic/receiver-mock/internal/config"
	"github.com/sumologic/receiver-mock/internal/ingest"
	"github.com/sumologic/receiver-mock/internal/logtemplate"
	"github.com/sumologic/receiver-mock/internal/query"
	"github.com/sumologic/receiver-mock/internal/store/logstore"
	"github.com/sumologic/receiver-mock/internal/store/metricstore"
	"github.com/sumologic/receiver-mock/internal/store/tracestore"
)

func main() {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	opts, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		logger.Fatalf("parsing flags: %v", err)
	}

	logMessages := logstore.NewMessageRepository(func(format string, args ...any) { logger.Printf(format, args...) })
	logStats := logstore.NewStatsRepository()
	metrics := metricstore.New()
	traces := tracestore.New()

	var redactor *logtemplate.Redactor
	if opts.RedactLogs {
		if opts.RedactPatterns != "" {
			redactor, err = logtemplate.Load(opts.RedactPatterns)
			if err != nil {
				logger.Fatalf("loading redaction patterns: %v", err)
			}
		} else {
			redactor = logtemplate.Default()
		}
		logger.Printf("log redaction enabled with %d rules", redactor.Len())
	}

	ingestHandler := &ingest.Handler{
		LogMessages: logMessages,
		LogStats:    logStats,
		Metrics:     metrics,
		Traces:      traces,
		Redactor:    redactor,
		Opts:        opts,
		Logger:      logger,
	}
	queryHandler := &query.Handler{
		LogMessages: logMessages,
		LogStats:    logStats,
		Metrics:     metrics,
		Traces:      traces,
		Opts:        opts,
		Logger:      logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(ingestHandler.Preamble)

	r.Post("/receiver/v1/logs", ingestHandler.ReceiveOTLPLogs)
	r.Post("/receiver/v1/metrics", ingestHandler.ReceiveOTLPMetrics)
	r.Post("/receiver/v1/traces", ingestHandler.ReceiveOTLPTraces)

	r.Get("/metrics", queryHandler.PrometheusMetrics)
	r.Get("/metrics-list", queryHandler.MetricsList)
	r.Get("/metrics-ips", queryHandler.MetricsIPs)
	r.Get("/metrics-samples", queryHandler.MetricsSamples)
	r.Post("/metrics-reset", queryHandler.MetricsReset)
	r.Get("/logs/count", queryHandler.LogsCount)
	r.Get("/spans-list", queryHandler.SpansList)
	r.Get("/traces-list", queryHandler.TracesList)

	r.Post("/api/v1/collector/register", collector.Register)
	r.Post("/api/v1/collector/{id}/heartbeat", collector.Heartbeat)
	r.Post("/api/v1/collector/heartbeat", collector.Heartbeat)
	r.Get("/terraform", collector.TerraformInfo("http://"+opts.Hostname))

	r.NotFound(ingestHandler.Receive)
	r.MethodNotAllowed(ingestHandler.Receive)

	addr := opts.Hostname + ":" + strconv.Itoa(opts.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		logger.Fatalf("server error: %v", err)
	case sig := <-sigChan:
		logger.Printf("received signal %v, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Printf("error during shutdown: %v", err)
	}
	logger.Println("shutdown complete")
}
