package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestObserveRunRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewPlannerCollector(reg)
	if err != nil {
		t.Fatalf("NewPlannerCollector: %v", err)
	}

	collector.ObserveRun("warehouse", "ok", 3*time.Millisecond, 40, 0)

	if got := testutil.ToFloat64(collector.Runs.WithLabelValues("warehouse", "ok")); got != 1 {
		t.Fatalf("planner_runs_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.PlanAccessPoints.WithLabelValues("warehouse")); got != 40 {
		t.Fatalf("planner_last_plan_access_points = %v, want 40", got)
	}
	if count := histogramSampleCount(t, reg, "planner_run_duration_seconds", map[string]string{
		"environment": "warehouse",
	}); count != 1 {
		t.Fatalf("planner_run_duration_seconds sample_count = %d, want 1", count)
	}
}

// Aborted runs produce no plan, so the last-plan gauges must keep their
// previous values.
func TestObserveRunSkipsGaugesOnFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewPlannerCollector(reg)
	if err != nil {
		t.Fatalf("NewPlannerCollector: %v", err)
	}

	collector.ObserveRun("warehouse", "ok", time.Millisecond, 40, 2)
	collector.ObserveRun("warehouse", "invalid_facility", time.Millisecond, 0, 0)

	if got := testutil.ToFloat64(collector.PlanAccessPoints.WithLabelValues("warehouse")); got != 40 {
		t.Fatalf("planner_last_plan_access_points = %v, want 40 after failed run", got)
	}
	if got := testutil.ToFloat64(collector.PlanConflicts.WithLabelValues("warehouse")); got != 2 {
		t.Fatalf("planner_last_plan_channel_conflicts = %v, want 2 after failed run", got)
	}
	if got := testutil.ToFloat64(collector.Runs.WithLabelValues("warehouse", "invalid_facility")); got != 1 {
		t.Fatalf("planner_runs_total{outcome=invalid_facility} = %v, want 1", got)
	}
}

func TestObserveRunEmptyEnvironmentLabeledUnknown(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := NewPlannerCollector(reg)
	if err != nil {
		t.Fatalf("NewPlannerCollector: %v", err)
	}

	collector.ObserveRun("", "invalid_facility", time.Millisecond, 0, 0)

	if got := testutil.ToFloat64(collector.Runs.WithLabelValues("unknown", "invalid_facility")); got != 1 {
		t.Fatalf("planner_runs_total{environment=unknown} = %v, want 1", got)
	}
}

// Registering twice against the same registry reuses the existing
// collectors instead of failing.
func TestNewPlannerCollectorIdempotent(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPlannerCollector(reg)
	if err != nil {
		t.Fatalf("first NewPlannerCollector: %v", err)
	}
	second, err := NewPlannerCollector(reg)
	if err != nil {
		t.Fatalf("second NewPlannerCollector: %v", err)
	}

	second.ObserveRun("office", "ok", time.Millisecond, 3, 0)
	if got := testutil.ToFloat64(first.Runs.WithLabelValues("office", "ok")); got != 1 {
		t.Fatalf("collectors not shared across registrations, got %v", got)
	}
}

func histogramSampleCount(t *testing.T, g prometheus.Gatherer, name string, labels map[string]string) uint64 {
	t.Helper()

	families, err := g.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if matchesLabels(metric, labels) {
				return metric.GetHistogram().GetSampleCount()
			}
		}
	}
	return 0
}

func matchesLabels(metric *dto.Metric, labels map[string]string) bool {
	got := make(map[string]string, len(metric.GetLabel()))
	for _, pair := range metric.GetLabel() {
		got[pair.GetName()] = pair.GetValue()
	}
	for k, v := range labels {
		if got[k] != v {
			return false
		}
	}
	return true
}
