package core

import (
	"math"

	"github.com/signalsfoundry/wifi-deployment-planner/model"
)

// PlanCapacity derives the AP count required by the device population. Two
// independent ceilings are computed and the larger wins: a facility can be
// density-bound (many devices, light polling) or throughput-bound (few
// devices, heavy streams), and either must drive the AP count up on its own.
//
// A facility with zero devices has a capacity requirement of 0; setting the
// floor of one AP is the coverage planner's job.
func PlanCapacity(f *model.Facility, cfg PlannerConfig) (int, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}

	devices := f.TotalDevices()
	if devices == 0 {
		return 0, nil
	}

	densityCeiling := int(math.Ceil(float64(devices) / float64(cfg.MaxDevicesPerAP)))
	throughputCeiling := int(math.Ceil(f.TotalBandwidthMbps() / cfg.MaxThroughputPerAPMbps))

	if throughputCeiling > densityCeiling {
		return throughputCeiling, nil
	}
	return densityCeiling, nil
}
