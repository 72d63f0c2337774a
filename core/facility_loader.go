// core/facility_loader.go
package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/signalsfoundry/wifi-deployment-planner/model"
)

// internal JSON shapes – keep them unexported so we're free to evolve them.
type facilityJSON struct {
	Name        string         `json:"name"`
	Environment string         `json:"environment"` // "office" | "warehouse" | "data_center"
	Dimensions  dimensionsJSON `json:"dimensions"`
	Devices     []deviceJSON   `json:"devices"`
}

type dimensionsJSON struct {
	WidthM  float64 `json:"width_m"`
	LengthM float64 `json:"length_m"`
	HeightM float64 `json:"height_m"`
}

type deviceJSON struct {
	Type          string  `json:"type"`
	Count         int     `json:"count"`
	PerDeviceMbps float64 `json:"per_device_mbps"`
}

// LoadFacility reads a JSON facility scenario from r and returns a validated
// Facility. Structural and validation errors both fail the load; a facility
// that cannot be planned should never make it past this point.
func LoadFacility(r io.Reader) (*model.Facility, error) {
	var payload facilityJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadFacility: decode failed: %w", err)
	}

	env, err := model.ParseEnvironment(payload.Environment)
	if err != nil {
		return nil, fmt.Errorf("LoadFacility: %w", err)
	}

	devices := make([]model.DeviceProfile, 0, len(payload.Devices))
	for _, d := range payload.Devices {
		if d.Type == "" {
			return nil, fmt.Errorf("LoadFacility: device profile with empty type")
		}
		devices = append(devices, model.DeviceProfile{
			Type:          d.Type,
			Count:         d.Count,
			PerDeviceMbps: d.PerDeviceMbps,
		})
	}

	f := &model.Facility{
		Name:        payload.Name,
		WidthM:      payload.Dimensions.WidthM,
		LengthM:     payload.Dimensions.LengthM,
		HeightM:     payload.Dimensions.HeightM,
		Environment: env,
		Devices:     devices,
	}

	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("LoadFacility: %w", err)
	}
	return f, nil
}
