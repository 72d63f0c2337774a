package model

import (
	"errors"
	"fmt"
)

var ErrInvalidFacility = errors.New("invalid facility")

// DeviceProfile describes one class of wireless client in a facility.
type DeviceProfile struct {
	Type          string  // free-form category, e.g. "handheld_scanner", "tablet"
	Count         int
	PerDeviceMbps float64 // sustained bandwidth requirement per device
}

// Facility is the static description of the space and device population the
// planner works from. It is treated as immutable once validated; a re-plan
// always starts from a fresh Facility value.
type Facility struct {
	Name        string
	WidthM      float64
	LengthM     float64
	HeightM     float64
	Environment EnvironmentType

	// Devices is ordered; totals are derived, never stored.
	Devices []DeviceProfile
}

// FloorAreaM2 returns the usable floor area in square metres.
func (f *Facility) FloorAreaM2() float64 {
	return f.WidthM * f.LengthM
}

// TotalDevices sums the device counts across all profiles.
func (f *Facility) TotalDevices() int {
	total := 0
	for _, d := range f.Devices {
		total += d.Count
	}
	return total
}

// TotalBandwidthMbps sums count × per-device bandwidth across all profiles.
func (f *Facility) TotalBandwidthMbps() float64 {
	total := 0.0
	for _, d := range f.Devices {
		total += float64(d.Count) * d.PerDeviceMbps
	}
	return total
}

// Validate checks the structural invariants the planners rely on:
// positive dimensions and non-negative device counts and bandwidths.
func (f *Facility) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil facility", ErrInvalidFacility)
	}
	if f.WidthM <= 0 || f.LengthM <= 0 || f.HeightM <= 0 {
		return fmt.Errorf("%w: dimensions must be positive, got %.2fm x %.2fm x %.2fm",
			ErrInvalidFacility, f.WidthM, f.LengthM, f.HeightM)
	}
	for _, d := range f.Devices {
		if d.Count < 0 {
			return fmt.Errorf("%w: device profile %q has negative count %d",
				ErrInvalidFacility, d.Type, d.Count)
		}
		if d.PerDeviceMbps < 0 {
			return fmt.Errorf("%w: device profile %q has negative bandwidth %.2f Mbps",
				ErrInvalidFacility, d.Type, d.PerDeviceMbps)
		}
	}
	return nil
}
