package core

import (
	"fmt"

	"github.com/signalsfoundry/wifi-deployment-planner/model"
)

// OptimizationReport is the engine's only externally visible artifact: an
// immutable aggregate of the plan plus advisory findings. It is built once
// per planning run and never mutated afterwards; consumers (serialization,
// the troubleshooting toolkit) read it but never re-derive its fields.
type OptimizationReport struct {
	FacilityName string
	Environment  model.EnvironmentType

	APCount         int
	CoverageAPCount int
	CapacityAPCount int

	Rows           int
	Cols           int
	SpacingWidthM  float64
	SpacingLengthM float64

	AccessPoints []model.AccessPoint
	Interference []model.InterferenceSource

	// Degraded is set when the channel assigner could not fully satisfy a
	// band's reuse distance; Conflicts then names the affected cells.
	Degraded  bool
	Conflicts []model.ChannelConflict

	Recommendations []string
}

// BuildReport aggregates the planner outputs into a report and evaluates the
// advisory rules. It never mutates its inputs.
func BuildReport(
	f *model.Facility,
	cfg PlannerConfig,
	coverageCount, capacityCount int,
	layout *DeploymentLayout,
	aps []model.AccessPoint,
	conflicts []model.ChannelConflict,
	interference []model.InterferenceSource,
) *OptimizationReport {
	report := &OptimizationReport{
		FacilityName:    f.Name,
		Environment:     f.Environment,
		APCount:         layout.APCount,
		CoverageAPCount: coverageCount,
		CapacityAPCount: capacityCount,
		Rows:            layout.Rows,
		Cols:            layout.Cols,
		SpacingWidthM:   layout.SpacingWidthM,
		SpacingLengthM:  layout.SpacingLengthM,
		AccessPoints:    append([]model.AccessPoint(nil), aps...),
		Interference:    append([]model.InterferenceSource(nil), interference...),
		Degraded:        len(conflicts) > 0,
		Conflicts:       append([]model.ChannelConflict(nil), conflicts...),
	}

	report.Recommendations = recommendations(f, cfg, report)
	return report
}

// recommendations evaluates the advisory rules over the assembled plan.
// Every non-fatal condition the engine detected must surface here or in the
// Conflicts field so a human reviewing the report sees it.
func recommendations(f *model.Facility, cfg PlannerConfig, r *OptimizationReport) []string {
	recs := []string{
		fmt.Sprintf("deploy %d access points in a %dx%d grid (%.1fm x %.1fm spacing)",
			r.APCount, r.Rows, r.Cols, r.SpacingWidthM, r.SpacingLengthM),
	}

	if r.CapacityAPCount > r.CoverageAPCount {
		recs = append(recs, fmt.Sprintf(
			"AP count is capacity-bound: device density/throughput needs %d APs where coverage alone needs %d",
			r.CapacityAPCount, r.CoverageAPCount))
	} else {
		recs = append(recs, fmt.Sprintf(
			"AP count is coverage-bound, not capacity-bound: floor area needs %d APs where capacity alone needs %d",
			r.CoverageAPCount, r.CapacityAPCount))
	}

	for _, c := range r.Conflicts {
		recs = append(recs, fmt.Sprintf(
			"%s reuse distance not met between cells (%d,%d) and (%d,%d) on channel %d; shift client load to another band where possible",
			c.Band, c.CellA.Row, c.CellA.Col, c.CellB.Row, c.CellB.Col, c.Channel))
	}

	if radius, ok := cfg.CoverageRadiusM[f.Environment]; ok {
		recs = append(recs, fmt.Sprintf("set transmit power to %s for the %.0fm design radius",
			txPowerTier(radius), radius))
	}

	if f.HeightM > 10 {
		recs = append(recs, "high ceiling detected: mount APs with downtilt antennas")
	}

	for _, src := range r.Interference {
		if src.Severity == model.SeverityHigh {
			recs = append(recs, fmt.Sprintf("mitigate %s interference: %s", src.Kind, src.Mitigation))
		}
	}

	recs = append(recs,
		"enable band steering so capable clients prefer 5GHz",
		"use 20MHz channel width to maximise spatial reuse",
		"enable 802.11k/v/r for seamless roaming between cells",
	)

	return recs
}

// txPowerTier maps a design coverage radius to a transmit power
// recommendation.
func txPowerTier(radiusM float64) string {
	switch {
	case radiusM <= 20:
		return "low (10-13 dBm)"
	case radiusM <= 30:
		return "medium (14-17 dBm)"
	default:
		return "high (18-20 dBm)"
	}
}
