package core

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/signalsfoundry/wifi-deployment-planner/internal/logging"
	"github.com/signalsfoundry/wifi-deployment-planner/model"
)

const tracerName = "planner/core"

// InterferenceCatalog is the engine's view of the interference knowledge
// base. catalog.Catalog satisfies it.
type InterferenceCatalog interface {
	Lookup(env model.EnvironmentType) ([]model.InterferenceSource, error)
}

// RunRecorder receives per-run telemetry. observability.PlannerCollector
// satisfies it; a nil recorder disables metrics.
type RunRecorder interface {
	ObserveRun(environment, outcome string, duration time.Duration, apCount, conflicts int)
}

// Run outcome labels, shared with the metrics collector.
const (
	OutcomeOK                 = "ok"
	OutcomeDegraded           = "degraded"
	OutcomeInvalidFacility    = "invalid_facility"
	OutcomeUnknownEnvironment = "unknown_environment"
)

// Engine runs the full planning pipeline: coverage and capacity planning,
// deployment resolution, channel assignment, interference lookup, report
// building. It holds only immutable configuration and read-only
// collaborators, so a single Engine may serve concurrent runs.
type Engine struct {
	Config  PlannerConfig
	Catalog InterferenceCatalog
	Log     logging.Logger
	Metrics RunRecorder
}

// NewEngine builds an engine with a no-op logger and no metrics; callers
// wire real collaborators by setting the exported fields.
func NewEngine(cfg PlannerConfig, cat InterferenceCatalog) *Engine {
	return &Engine{
		Config:  cfg,
		Catalog: cat,
		Log:     logging.Noop(),
	}
}

// Run executes one planning run for the facility and returns the report.
// The run is a pure function of the facility and the engine's config: no
// state is carried between runs, and identical inputs yield identical
// reports.
func (e *Engine) Run(ctx context.Context, f *model.Facility) (*OptimizationReport, error) {
	start := time.Now()
	ctx, log := logging.WithRunLogger(ctx, e.Log)
	tracer := otel.Tracer(tracerName)

	ctx, span := tracer.Start(ctx, "planner.run")
	defer span.End()

	if err := f.Validate(); err != nil {
		log.Error(ctx, "facility rejected", logging.String("error", err.Error()))
		e.record(f, OutcomeInvalidFacility, start, 0, 0)
		return nil, err
	}

	span.SetAttributes(
		attribute.String("facility.name", f.Name),
		attribute.String("facility.environment", string(f.Environment)),
		attribute.Int("facility.devices", f.TotalDevices()),
	)
	log.Info(ctx, "planning run started",
		logging.String("facility", f.Name),
		logging.String("environment", string(f.Environment)),
		logging.Int("devices", f.TotalDevices()),
	)

	coverageCount, err := e.stagePlanCoverage(ctx, tracer, f)
	if err != nil {
		log.Error(ctx, "coverage planning failed", logging.String("error", err.Error()))
		e.record(f, outcomeForError(err), start, 0, 0)
		return nil, err
	}

	capacityCount, err := e.stagePlanCapacity(ctx, tracer, f)
	if err != nil {
		log.Error(ctx, "capacity planning failed", logging.String("error", err.Error()))
		e.record(f, outcomeForError(err), start, 0, 0)
		return nil, err
	}

	layout, err := e.stageResolve(ctx, tracer, coverageCount, capacityCount, f)
	if err != nil {
		log.Error(ctx, "deployment resolution failed", logging.String("error", err.Error()))
		e.record(f, outcomeForError(err), start, 0, 0)
		return nil, err
	}

	aps, conflicts := e.stageAssign(ctx, tracer, layout)

	interference, err := e.stageLookup(ctx, tracer, f.Environment)
	if err != nil {
		log.Error(ctx, "interference lookup failed", logging.String("error", err.Error()))
		e.record(f, outcomeForError(err), start, 0, 0)
		return nil, err
	}

	report := BuildReport(f, e.Config, coverageCount, capacityCount, layout, aps, conflicts, interference)

	span.SetAttributes(
		attribute.Int("plan.ap_count", report.APCount),
		attribute.Bool("plan.degraded", report.Degraded),
	)

	outcome := OutcomeOK
	if report.Degraded {
		outcome = OutcomeDegraded
		log.Warn(ctx, "channel assignment degraded",
			logging.Int("conflicts", len(report.Conflicts)))
	}
	e.record(f, outcome, start, report.APCount, len(report.Conflicts))

	log.Info(ctx, "planning run finished",
		logging.Int("ap_count", report.APCount),
		logging.Int("coverage_ap_count", report.CoverageAPCount),
		logging.Int("capacity_ap_count", report.CapacityAPCount),
		logging.Any("degraded", report.Degraded),
		logging.String("duration", time.Since(start).String()),
	)

	return report, nil
}

func (e *Engine) stagePlanCoverage(ctx context.Context, tracer trace.Tracer, f *model.Facility) (int, error) {
	_, span := tracer.Start(ctx, "planner.coverage")
	defer span.End()
	count, err := PlanCoverage(f, e.Config)
	if err == nil {
		span.SetAttributes(attribute.Int("coverage.ap_count", count))
	}
	return count, err
}

func (e *Engine) stagePlanCapacity(ctx context.Context, tracer trace.Tracer, f *model.Facility) (int, error) {
	_, span := tracer.Start(ctx, "planner.capacity")
	defer span.End()
	count, err := PlanCapacity(f, e.Config)
	if err == nil {
		span.SetAttributes(attribute.Int("capacity.ap_count", count))
	}
	return count, err
}

func (e *Engine) stageResolve(ctx context.Context, tracer trace.Tracer, coverageCount, capacityCount int, f *model.Facility) (*DeploymentLayout, error) {
	_, span := tracer.Start(ctx, "planner.resolve")
	defer span.End()
	layout, err := ResolveDeployment(coverageCount, capacityCount, f)
	if err == nil {
		span.SetAttributes(
			attribute.Int("layout.rows", layout.Rows),
			attribute.Int("layout.cols", layout.Cols),
		)
	}
	return layout, err
}

func (e *Engine) stageAssign(ctx context.Context, tracer trace.Tracer, layout *DeploymentLayout) ([]model.AccessPoint, []model.ChannelConflict) {
	_, span := tracer.Start(ctx, "planner.channels")
	defer span.End()
	aps, conflicts := AssignChannels(layout, e.Config)
	span.SetAttributes(attribute.Int("channels.conflicts", len(conflicts)))
	return aps, conflicts
}

func (e *Engine) stageLookup(ctx context.Context, tracer trace.Tracer, env model.EnvironmentType) ([]model.InterferenceSource, error) {
	_, span := tracer.Start(ctx, "planner.interference")
	defer span.End()
	sources, err := e.Catalog.Lookup(env)
	if err == nil {
		span.SetAttributes(attribute.Int("interference.findings", len(sources)))
	}
	return sources, err
}

func (e *Engine) record(f *model.Facility, outcome string, start time.Time, apCount, conflicts int) {
	if e.Metrics == nil {
		return
	}
	env := ""
	if f != nil {
		env = string(f.Environment)
	}
	e.Metrics.ObserveRun(env, outcome, time.Since(start), apCount, conflicts)
}

func outcomeForError(err error) string {
	switch {
	case errors.Is(err, model.ErrUnknownEnvironment):
		return OutcomeUnknownEnvironment
	default:
		return OutcomeInvalidFacility
	}
}
