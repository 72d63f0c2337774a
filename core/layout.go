package core

import (
	"fmt"
	"math"

	"github.com/signalsfoundry/wifi-deployment-planner/model"
)

// DeploymentLayout is the resolved spatial plan: the final AP count and a
// regular grid shaped to the facility's aspect ratio. Positions are assigned
// row-major up to APCount; surplus grid cells stay unfilled.
type DeploymentLayout struct {
	APCount int
	Rows    int
	Cols    int

	// Grid spacing: facility dimensions divided evenly across the grid.
	SpacingWidthM  float64
	SpacingLengthM float64

	Positions []model.GridPosition
}

// ResolveDeployment reconciles the coverage and capacity counts into a final
// AP count and lays the APs out on a grid. The layout is deterministic:
// identical inputs always produce the same grid shape and AP ordering, which
// the channel assigner's reuse checks depend on.
func ResolveDeployment(coverageCount, capacityCount int, f *model.Facility) (*DeploymentLayout, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	apCount := coverageCount
	if capacityCount > apCount {
		apCount = capacityCount
	}
	if apCount < 1 {
		return nil, fmt.Errorf("%w: resolved AP count %d, need at least 1", model.ErrInvalidFacility, apCount)
	}

	// Shape the grid to the floor's aspect ratio so spacing comes out
	// roughly square: rows along the length, columns along the width.
	rows := int(math.Ceil(math.Sqrt(float64(apCount) * f.LengthM / f.WidthM)))
	if rows < 1 {
		rows = 1
	}
	cols := int(math.Ceil(float64(apCount) / float64(rows)))

	// Trim rows the row-major fill would leave completely empty.
	for rows > 1 && (rows-1)*cols >= apCount {
		rows--
	}

	positions := make([]model.GridPosition, apCount)
	for i := 0; i < apCount; i++ {
		positions[i] = model.GridPosition{Row: i / cols, Col: i % cols}
	}

	return &DeploymentLayout{
		APCount:        apCount,
		Rows:           rows,
		Cols:           cols,
		SpacingWidthM:  f.WidthM / float64(cols),
		SpacingLengthM: f.LengthM / float64(rows),
		Positions:      positions,
	}, nil
}
