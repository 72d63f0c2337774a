package core

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/signalsfoundry/wifi-deployment-planner/catalog"
	"github.com/signalsfoundry/wifi-deployment-planner/model"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultConfig(), catalog.Default())
}

// End-to-end run of the canonical warehouse scenario: coverage needs 40,
// capacity needs 9, so the plan is 40 APs and coverage-bound.
func TestEngineRun_WarehouseScenario(t *testing.T) {
	report, err := newTestEngine().Run(context.Background(), warehouseFacility())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.CoverageAPCount != 40 {
		t.Errorf("CoverageAPCount = %d, want 40", report.CoverageAPCount)
	}
	if report.CapacityAPCount != 9 {
		t.Errorf("CapacityAPCount = %d, want 9", report.CapacityAPCount)
	}
	if report.APCount != 40 {
		t.Errorf("APCount = %d, want 40", report.APCount)
	}
	if report.Degraded {
		t.Errorf("default warehouse plan unexpectedly degraded: %+v", report.Conflicts)
	}
	// One radio per band at each of the 40 positions.
	if len(report.AccessPoints) != 80 {
		t.Errorf("got %d radios, want 80", len(report.AccessPoints))
	}
	if len(report.Interference) == 0 {
		t.Errorf("warehouse report has no interference findings")
	}
	if !hasRecommendationContaining(report, "coverage-bound, not capacity-bound") {
		t.Errorf("coverage-bound flag missing from %v", report.Recommendations)
	}
}

// Two runs with identical inputs must produce identical reports.
func TestEngineRun_Deterministic(t *testing.T) {
	e := newTestEngine()

	a, err := e.Run(context.Background(), warehouseFacility())
	if err != nil {
		t.Fatalf("first Run failed: %v", err)
	}
	b, err := e.Run(context.Background(), warehouseFacility())
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("reports differ across identical runs")
	}
}

// ap_count = max(coverage, capacity) over randomized facilities.
func TestEngineRun_APCountIsMaxProperty(t *testing.T) {
	e := newTestEngine()
	rng := rand.New(rand.NewSource(42))
	envs := []model.EnvironmentType{model.EnvOffice, model.EnvWarehouse, model.EnvDataCenter}

	for i := 0; i < 100; i++ {
		f := &model.Facility{
			Name:        "prop",
			WidthM:      10 + rng.Float64()*400,
			LengthM:     10 + rng.Float64()*400,
			HeightM:     3 + rng.Float64()*15,
			Environment: envs[rng.Intn(len(envs))],
			Devices: []model.DeviceProfile{
				{Type: "handheld_scanner", Count: rng.Intn(800), PerDeviceMbps: rng.Float64() * 5},
				{Type: "fixed_sensor", Count: rng.Intn(400), PerDeviceMbps: rng.Float64()},
			},
		}

		report, err := e.Run(context.Background(), f)
		if err != nil {
			t.Fatalf("case %d: Run failed: %v", i, err)
		}

		want := report.CoverageAPCount
		if report.CapacityAPCount > want {
			want = report.CapacityAPCount
		}
		if report.APCount != want {
			t.Fatalf("case %d: APCount = %d, want max(%d, %d)",
				i, report.APCount, report.CoverageAPCount, report.CapacityAPCount)
		}
		if report.APCount < 1 {
			t.Fatalf("case %d: APCount below 1", i)
		}
	}
}

// Adding devices while holding the floor fixed can only hold or raise the
// AP count, never lower it.
func TestEngineRun_MonotonicInDevices(t *testing.T) {
	e := newTestEngine()
	prev := 0

	for devices := 0; devices <= 6000; devices += 300 {
		f := warehouseFacility()
		f.Devices = []model.DeviceProfile{
			{Type: "handheld_scanner", Count: devices, PerDeviceMbps: 1},
		}

		report, err := e.Run(context.Background(), f)
		if err != nil {
			t.Fatalf("devices=%d: Run failed: %v", devices, err)
		}
		if report.APCount < prev {
			t.Fatalf("devices=%d: APCount %d dropped below %d", devices, report.APCount, prev)
		}
		prev = report.APCount
	}
}

// Reuse invariant: in a non-degraded plan, same-band APs inside the reuse
// distance never share a channel.
func TestEngineRun_ReuseInvariant(t *testing.T) {
	e := newTestEngine()

	report, err := e.Run(context.Background(), warehouseFacility())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Degraded {
		t.Fatalf("scenario unexpectedly degraded")
	}

	for i := 0; i < len(report.AccessPoints); i++ {
		for j := i + 1; j < len(report.AccessPoints); j++ {
			a, b := report.AccessPoints[i], report.AccessPoints[j]
			if a.Band != b.Band || a.Channel != b.Channel {
				continue
			}
			reuse := e.Config.Bands[a.Band].ReuseDistanceCells
			if d := a.Position.DistanceTo(b.Position); d < reuse {
				t.Errorf("%s and %s share channel %d at distance %.2f (reuse %.2f)",
					a.ID, b.ID, a.Channel, d, reuse)
			}
		}
	}
}

func TestEngineRun_InvalidFacilityFails(t *testing.T) {
	f := warehouseFacility()
	f.HeightM = 0

	_, err := newTestEngine().Run(context.Background(), f)
	if !errors.Is(err, model.ErrInvalidFacility) {
		t.Fatalf("expected ErrInvalidFacility, got %v", err)
	}
}

func TestEngineRun_UnknownEnvironmentFails(t *testing.T) {
	f := warehouseFacility()
	f.Environment = "swamp"

	_, err := newTestEngine().Run(context.Background(), f)
	if !errors.Is(err, model.ErrUnknownEnvironment) {
		t.Fatalf("expected ErrUnknownEnvironment, got %v", err)
	}
}

// An environment the config can plan but the catalog has never heard of
// must abort the run rather than ship a report with no interference section.
func TestEngineRun_CatalogMissFails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CoverageRadiusM["lab"] = 25

	e := NewEngine(cfg, catalog.Default())
	f := warehouseFacility()
	f.Environment = "lab"

	_, err := e.Run(context.Background(), f)
	if !errors.Is(err, model.ErrUnknownEnvironment) {
		t.Fatalf("expected ErrUnknownEnvironment from catalog, got %v", err)
	}
}

type recordedRun struct {
	environment string
	outcome     string
	apCount     int
	conflicts   int
}

type fakeRecorder struct {
	runs []recordedRun
}

func (r *fakeRecorder) ObserveRun(environment, outcome string, _ time.Duration, apCount, conflicts int) {
	r.runs = append(r.runs, recordedRun{environment, outcome, apCount, conflicts})
}

func TestEngineRun_RecordsMetrics(t *testing.T) {
	rec := &fakeRecorder{}
	e := newTestEngine()
	e.Metrics = rec

	if _, err := e.Run(context.Background(), warehouseFacility()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	bad := warehouseFacility()
	bad.WidthM = -1
	if _, err := e.Run(context.Background(), bad); err == nil {
		t.Fatalf("expected invalid facility error")
	}

	if len(rec.runs) != 2 {
		t.Fatalf("recorded %d runs, want 2", len(rec.runs))
	}
	if rec.runs[0].outcome != OutcomeOK || rec.runs[0].apCount != 40 {
		t.Errorf("first run recorded as %+v", rec.runs[0])
	}
	if rec.runs[1].outcome != OutcomeInvalidFacility {
		t.Errorf("second run recorded as %+v", rec.runs[1])
	}
}

// Independent runs may execute concurrently with no coordination: the
// engine holds only immutable state.
func TestEngineRun_ConcurrentRuns(t *testing.T) {
	e := newTestEngine()

	baseline, err := e.Run(context.Background(), warehouseFacility())
	if err != nil {
		t.Fatalf("baseline Run failed: %v", err)
	}

	const workers = 8
	results := make(chan *OptimizationReport, workers)
	errs := make(chan error, workers)

	for w := 0; w < workers; w++ {
		go func() {
			report, err := e.Run(context.Background(), warehouseFacility())
			if err != nil {
				errs <- err
				return
			}
			results <- report
		}()
	}

	for w := 0; w < workers; w++ {
		select {
		case err := <-errs:
			t.Fatalf("concurrent Run failed: %v", err)
		case report := <-results:
			if !reflect.DeepEqual(report, baseline) {
				t.Errorf("concurrent run diverged from baseline")
			}
		}
	}
}
