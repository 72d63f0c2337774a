package core

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/signalsfoundry/wifi-deployment-planner/model"
)

var ErrInvalidConfig = errors.New("invalid planner config")

// BandPlan is the static channel configuration for one band: the ordered
// non-overlapping channel set and the minimum reuse distance, measured in
// grid-cell units, below which two APs must not share a channel.
type BandPlan struct {
	Channels           []int   `yaml:"channels"`
	ReuseDistanceCells float64 `yaml:"reuse_distance_cells"`
}

// PlannerConfig bundles every tunable the engine needs. It is constructed
// once (defaults, optionally overlaid from YAML) and passed by value into
// the planners — never mutated mid-run, so concurrent runs are trivially
// safe.
type PlannerConfig struct {
	// CoverageRadiusM is the effective per-AP coverage radius per
	// environment. Warehouses use a shorter radius to account for racking
	// attenuation.
	CoverageRadiusM map[model.EnvironmentType]float64 `yaml:"coverage_radius_m"`

	// OverlapFactor (> 1.0) inflates the required coverage so cell edges
	// overlap for roaming.
	OverlapFactor float64 `yaml:"overlap_factor"`

	MaxDevicesPerAP        int     `yaml:"max_devices_per_ap"`
	MaxThroughputPerAPMbps float64 `yaml:"max_throughput_per_ap_mbps"`

	Bands map[model.Band]BandPlan `yaml:"bands"`

	// MaxAssignAttempts bounds how many candidate reuse patterns the
	// channel assigner tries per band before settling for best effort.
	MaxAssignAttempts int `yaml:"max_assign_attempts"`
}

// DefaultConfig returns the standard enterprise-planning defaults. The exact
// values are design choices, not physics; treat them as a starting point and
// calibrate against site-survey data where available.
func DefaultConfig() PlannerConfig {
	return PlannerConfig{
		CoverageRadiusM: map[model.EnvironmentType]float64{
			model.EnvOffice:     30,
			model.EnvWarehouse:  25,
			model.EnvDataCenter: 20,
		},
		OverlapFactor:          1.3,
		MaxDevicesPerAP:        60,
		MaxThroughputPerAPMbps: 150,
		Bands: map[model.Band]BandPlan{
			// Three channels can keep same-channel cells at most sqrt(2)
			// apart on a grid, so the 2.4GHz reuse distance sits just
			// under that: adjacent and straight-line neighbours never
			// share, diagonal repeats are allowed.
			model.Band24GHz: {
				Channels:           []int{1, 6, 11},
				ReuseDistanceCells: 1.4,
			},
			model.Band5GHz: {
				Channels:           []int{36, 40, 44, 48, 149, 153, 157, 161},
				ReuseDistanceCells: 2.5,
			},
		},
		MaxAssignAttempts: 8,
	}
}

// LoadConfig reads a YAML config file and overlays it on the defaults, so a
// file only needs to name the values it changes.
func LoadConfig(path string) (PlannerConfig, error) {
	cfg := DefaultConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return PlannerConfig{}, fmt.Errorf("read planner config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return PlannerConfig{}, fmt.Errorf("parse planner config %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return PlannerConfig{}, err
	}
	return cfg, nil
}

// Validate checks the config invariants the planners rely on.
func (c PlannerConfig) Validate() error {
	if len(c.CoverageRadiusM) == 0 {
		return fmt.Errorf("%w: no coverage radii configured", ErrInvalidConfig)
	}
	for env, r := range c.CoverageRadiusM {
		if r <= 0 {
			return fmt.Errorf("%w: coverage radius for %q must be positive, got %.2f", ErrInvalidConfig, env, r)
		}
	}
	if c.OverlapFactor <= 1.0 {
		return fmt.Errorf("%w: overlap factor must exceed 1.0, got %.2f", ErrInvalidConfig, c.OverlapFactor)
	}
	if c.MaxDevicesPerAP <= 0 {
		return fmt.Errorf("%w: max devices per AP must be positive, got %d", ErrInvalidConfig, c.MaxDevicesPerAP)
	}
	if c.MaxThroughputPerAPMbps <= 0 {
		return fmt.Errorf("%w: max throughput per AP must be positive, got %.2f", ErrInvalidConfig, c.MaxThroughputPerAPMbps)
	}
	if len(c.Bands) == 0 {
		return fmt.Errorf("%w: no bands configured", ErrInvalidConfig)
	}
	for band, plan := range c.Bands {
		if len(plan.Channels) == 0 {
			return fmt.Errorf("%w: band %q has an empty channel set", ErrInvalidConfig, band)
		}
		seen := make(map[int]bool, len(plan.Channels))
		for _, ch := range plan.Channels {
			if seen[ch] {
				return fmt.Errorf("%w: band %q lists channel %d twice", ErrInvalidConfig, band, ch)
			}
			seen[ch] = true
		}
		if plan.ReuseDistanceCells < 0 {
			return fmt.Errorf("%w: band %q has negative reuse distance", ErrInvalidConfig, band)
		}
	}
	if c.MaxAssignAttempts <= 0 {
		return fmt.Errorf("%w: max assign attempts must be positive, got %d", ErrInvalidConfig, c.MaxAssignAttempts)
	}
	return nil
}

// coverageRadiusFor returns the configured radius for an environment; an
// environment with no radius is treated as unknown rather than defaulted.
func (c PlannerConfig) coverageRadiusFor(env model.EnvironmentType) (float64, error) {
	r, ok := c.CoverageRadiusM[env]
	if !ok {
		return 0, fmt.Errorf("%w: no coverage radius for %q", model.ErrUnknownEnvironment, env)
	}
	return r, nil
}
