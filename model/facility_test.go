package model

import (
	"errors"
	"testing"
)

func validFacility() *Facility {
	return &Facility{
		Name:        "DC-1",
		WidthM:      50,
		LengthM:     80,
		HeightM:     6,
		Environment: EnvDataCenter,
		Devices: []DeviceProfile{
			{Type: "fixed_sensor", Count: 10, PerDeviceMbps: 0.1},
			{Type: "tablet", Count: 4, PerDeviceMbps: 5},
		},
	}
}

func TestFacility_DerivedTotals(t *testing.T) {
	f := validFacility()

	if got := f.TotalDevices(); got != 14 {
		t.Errorf("TotalDevices = %d, want 14", got)
	}
	if got := f.TotalBandwidthMbps(); got != 21 {
		t.Errorf("TotalBandwidthMbps = %v, want 21", got)
	}
	if got := f.FloorAreaM2(); got != 4000 {
		t.Errorf("FloorAreaM2 = %v, want 4000", got)
	}
}

func TestFacility_Validate(t *testing.T) {
	if err := validFacility().Validate(); err != nil {
		t.Fatalf("valid facility rejected: %v", err)
	}
}

func TestFacility_Validate_NonPositiveDimensionFails(t *testing.T) {
	f := validFacility()
	f.WidthM = 0

	err := f.Validate()
	if !errors.Is(err, ErrInvalidFacility) {
		t.Fatalf("expected ErrInvalidFacility for zero width, got %v", err)
	}
}

func TestFacility_Validate_NegativeCountFails(t *testing.T) {
	f := validFacility()
	f.Devices[0].Count = -1

	err := f.Validate()
	if !errors.Is(err, ErrInvalidFacility) {
		t.Fatalf("expected ErrInvalidFacility for negative device count, got %v", err)
	}
}

func TestFacility_Validate_NilFails(t *testing.T) {
	var f *Facility
	if err := f.Validate(); !errors.Is(err, ErrInvalidFacility) {
		t.Fatalf("expected ErrInvalidFacility for nil facility, got %v", err)
	}
}

func TestParseEnvironment(t *testing.T) {
	env, err := ParseEnvironment("  Warehouse ")
	if err != nil {
		t.Fatalf("ParseEnvironment failed: %v", err)
	}
	if env != EnvWarehouse {
		t.Errorf("ParseEnvironment = %q, want %q", env, EnvWarehouse)
	}
}

func TestParseEnvironment_UnknownFails(t *testing.T) {
	_, err := ParseEnvironment("swamp")
	if !errors.Is(err, ErrUnknownEnvironment) {
		t.Fatalf("expected ErrUnknownEnvironment, got %v", err)
	}
}

func TestGridPosition_DistanceTo(t *testing.T) {
	a := GridPosition{Row: 0, Col: 0}
	b := GridPosition{Row: 3, Col: 4}

	if got := a.DistanceTo(b); got != 5 {
		t.Errorf("DistanceTo = %v, want 5", got)
	}
	if got := b.DistanceTo(a); got != 5 {
		t.Errorf("DistanceTo should be symmetric, got %v", got)
	}
}
