package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/signalsfoundry/wifi-deployment-planner/catalog"
	"github.com/signalsfoundry/wifi-deployment-planner/core"
	"github.com/signalsfoundry/wifi-deployment-planner/internal/logging"
	"github.com/signalsfoundry/wifi-deployment-planner/internal/observability"
)

func main() {
	configPath := flag.String("config", "", "planner YAML config (defaults used when empty)")
	facilityPath := flag.String("facility", "configs/facility_warehouse.json", "facility scenario JSON")
	metricsListen := flag.String(
		"metrics-listen",
		"",
		"address to serve Prometheus /metrics on (disabled when empty)",
	)

	flag.Parse()

	ctx := context.Background()
	log := logging.NewFromEnv()

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		panic(fmt.Errorf("failed to initialise tracing: %w", err))
	}
	defer observability.ShutdownWithTimeout(ctx, shutdown, log)

	cfg := core.DefaultConfig()
	if *configPath != "" {
		cfg, err = core.LoadConfig(*configPath)
		if err != nil {
			panic(fmt.Errorf("failed to load planner config: %w", err))
		}
	}

	engine := core.NewEngine(cfg, catalog.Default())
	engine.Log = log

	if *metricsListen != "" {
		collector, err := observability.NewPlannerCollector(nil)
		if err != nil {
			panic(fmt.Errorf("failed to register metrics: %w", err))
		}
		engine.Metrics = collector

		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		srv := &http.Server{
			Addr:              *metricsListen,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				fmt.Fprintf(os.Stderr, "warning: metrics server failed: %v\n", err)
			}
		}()
		fmt.Printf("Serving metrics on %s/metrics\n", *metricsListen)
	}

	f, err := os.Open(*facilityPath)
	if err != nil {
		panic(fmt.Errorf("failed to open facility scenario %q: %w", *facilityPath, err))
	}
	defer f.Close()

	facility, err := core.LoadFacility(f)
	if err != nil {
		panic(fmt.Errorf("failed to load facility scenario: %w", err))
	}

	report, err := engine.Run(ctx, facility)
	if err != nil {
		panic(fmt.Errorf("planning run failed: %w", err))
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		panic(fmt.Errorf("failed to render report: %w", err))
	}
	fmt.Println(string(out))
}
