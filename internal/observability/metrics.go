package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PlannerCollector bundles Prometheus metrics for the planning engine and
// provides a ready-to-serve /metrics handler. It satisfies core.RunRecorder.
type PlannerCollector struct {
	gatherer prometheus.Gatherer

	Runs         *prometheus.CounterVec
	RunDurations *prometheus.HistogramVec

	PlanAccessPoints *prometheus.GaugeVec
	PlanConflicts    *prometheus.GaugeVec
}

// NewPlannerCollector registers planner Prometheus metrics against the
// provided registerer, defaulting to the global Prometheus registry when nil.
func NewPlannerCollector(reg prometheus.Registerer) (*PlannerCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_runs_total",
		Help: "Total number of planning runs, labeled by environment and outcome.",
	}, []string{"environment", "outcome"})
	runs, err := registerCounterVec(reg, runs, "planner_runs_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_run_duration_seconds",
		Help:    "Planning run latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"environment"})
	durations, err = registerHistogramVec(reg, durations, "planner_run_duration_seconds")
	if err != nil {
		return nil, err
	}

	accessPoints, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planner_last_plan_access_points",
		Help: "AP count produced by the most recent successful run per environment.",
	}, []string{"environment"}), "planner_last_plan_access_points")
	if err != nil {
		return nil, err
	}

	conflicts, err := registerGaugeVec(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planner_last_plan_channel_conflicts",
		Help: "Unresolved reuse-distance conflicts in the most recent run per environment.",
	}, []string{"environment"}), "planner_last_plan_channel_conflicts")
	if err != nil {
		return nil, err
	}

	return &PlannerCollector{
		gatherer:         gatherer,
		Runs:             runs,
		RunDurations:     durations,
		PlanAccessPoints: accessPoints,
		PlanConflicts:    conflicts,
	}, nil
}

// ObserveRun records one finished (or aborted) planning run.
func (c *PlannerCollector) ObserveRun(environment, outcome string, duration time.Duration, apCount, conflicts int) {
	if c == nil {
		return
	}
	if environment == "" {
		environment = "unknown"
	}

	if c.Runs != nil {
		c.Runs.WithLabelValues(environment, outcome).Inc()
	}
	if c.RunDurations != nil {
		c.RunDurations.WithLabelValues(environment).Observe(duration.Seconds())
	}
	if apCount > 0 {
		if c.PlanAccessPoints != nil {
			c.PlanAccessPoints.WithLabelValues(environment).Set(float64(apCount))
		}
		if c.PlanConflicts != nil {
			c.PlanConflicts.WithLabelValues(environment).Set(float64(conflicts))
		}
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *PlannerCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGaugeVec(reg prometheus.Registerer, vec *prometheus.GaugeVec, name string) (*prometheus.GaugeVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.GaugeVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
