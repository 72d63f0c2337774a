package core

import (
	"math"

	"github.com/signalsfoundry/wifi-deployment-planner/model"
)

// PlanCoverage derives the AP count required to blanket the facility's floor
// area. Each AP covers a disc of the environment's effective radius; the
// overlap factor inflates the requirement so neighbouring cells overlap at
// their edges for roaming. The result is never below 1 for a valid facility.
func PlanCoverage(f *model.Facility, cfg PlannerConfig) (int, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}

	radius, err := cfg.coverageRadiusFor(f.Environment)
	if err != nil {
		return 0, err
	}

	perAPArea := math.Pi * radius * radius
	required := f.FloorAreaM2() * cfg.OverlapFactor / perAPArea

	count := int(math.Ceil(required))
	if count < 1 {
		count = 1
	}
	return count, nil
}
