package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appAudit "github.com/warehouse-ops/warehouse-api/internal/application/audit"
	appInventory "github.com/warehouse-ops/warehouse-api/internal/application/inventory"
	appOrder "github.com/warehouse-ops/warehouse-api/internal/application/order"
	"github.com/warehouse-ops/warehouse-api/internal/config"
	"github.com/warehouse-ops/warehouse-api/internal/infrastructure/memory"
	infraobs "github.com/warehouse-ops/warehouse-api/internal/infrastructure/observability"
	"github.com/warehouse-ops/warehouse-api/internal/infrastructure/observability/oteltrace"
	"github.com/warehouse-ops/warehouse-api/internal/infrastructure/observability/prometrics"
	"github.com/warehouse-ops/warehouse-api/internal/infrastructure/observability/zaplogger"
	"github.com/warehouse-ops/warehouse-api/internal/infrastructure/outbox"
	"github.com/warehouse-ops/warehouse-api/internal/observability"
	httppresentation "github.com/warehouse-ops/warehouse-api/internal/presentation/http"
)

func main() {
	configPath := flag.String("config", os.Getenv("WAREHOUSE_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	logger := zaplogger.New(cfg.LogFile,
		observability.F("service", cfg.ServiceName),
		observability.F("env", cfg.Env),
	)

	registry := prometrics.NewWith(cfg.ServiceName, "", prometheus.DefaultRegisterer)
	counters := map[observability.MetricKey]observability.Counter{
		observability.MUsecaseRequests: registry.Counter(
			string(observability.MUsecaseRequests),
			"Total number of use case invocations.",
			"use_case", "outcome",
		),
		observability.MHTTPRequests: registry.Counter(
			string(observability.MHTTPRequests),
			"Total number of HTTP requests.",
			"method", "route", "status",
		),
		observability.MEventsPublished: registry.Counter(
			string(observability.MEventsPublished),
			"Count of domain event publish attempts.",
			"event", "outcome",
		),
	}
	histograms := map[observability.MetricKey]observability.Histogram{
		observability.MUsecaseDuration: registry.Histogram(
			string(observability.MUsecaseDuration),
			"Duration of use case execution in seconds.",
			prometheus.DefBuckets,
			"use_case",
		),
		observability.MHTTPRequestDuration: registry.Histogram(
			string(observability.MHTTPRequestDuration),
			"Duration of HTTP requests in seconds.",
			prometheus.DefBuckets,
			"method", "route", "status",
		),
	}

	tel := infraobs.New(oteltrace.New(cfg.ServiceName), logger, counters, histograms)

	inventoryRepo := memory.NewInventoryRepository()
	orderRepo := memory.NewOrderRepository()

	bus := outbox.NewBus(logger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	auditWorker := appAudit.New(bus, logger)
	auditWorker.Start()

	inventoryService := appInventory.NewService(inventoryRepo, bus, tel)
	orderService := appOrder.NewService(orderRepo, inventoryRepo, bus, tel)

	handler := httppresentation.NewHandler(inventoryService, orderService, tel)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router())

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http_server_start",
			observability.F("addr", server.Addr),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error",
				observability.F("error", err.Error()),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error",
			observability.F("error", err.Error()),
		)
	} else {
		logger.Info("http_server_stopped")
	}
}
