// Package catalog holds the static interference knowledge base: which
// environmental interference sources threaten which environment types, and
// how to mitigate them.
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"github.com/signalsfoundry/wifi-deployment-planner/model"
)

// Catalog is an in-memory, thread-safe store of interference facts keyed by
// environment type. It is intended to be built once per process and treated
// as read-only afterwards; Lookup hands out copies so callers can never
// mutate the shared tables.
type Catalog struct {
	mu sync.RWMutex

	entries map[model.EnvironmentType][]model.InterferenceSource
}

// New constructs an empty catalog.
func New() *Catalog {
	return &Catalog{
		entries: make(map[model.EnvironmentType][]model.InterferenceSource),
	}
}

// Register installs the ordered interference list for an environment type.
// It returns an error if the environment already has an entry.
func (c *Catalog) Register(env model.EnvironmentType, sources []model.InterferenceSource) error {
	if env == "" {
		return fmt.Errorf("empty environment type")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[env]; exists {
		return fmt.Errorf("environment %q already registered", env)
	}
	c.entries[env] = append([]model.InterferenceSource(nil), sources...)
	return nil
}

// Lookup returns the ordered interference sources known for an environment.
// Unknown environments are an error, never an empty default: a silently
// "clean" interference section would be misleading.
func (c *Catalog) Lookup(env model.EnvironmentType) ([]model.InterferenceSource, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	sources, ok := c.entries[env]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownEnvironment, env)
	}

	out := make([]model.InterferenceSource, len(sources))
	for i, src := range sources {
		out[i] = src
		out[i].AffectedBands = append([]model.Band(nil), src.AffectedBands...)
	}
	return out, nil
}

// Environments returns the registered environment types in sorted order.
func (c *Catalog) Environments() []model.EnvironmentType {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.EnvironmentType, 0, len(c.entries))
	for env := range c.entries {
		out = append(out, env)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Default returns a catalog seeded with the standard tables for the three
// supported environment types. Mitigation texts follow common enterprise
// WiFi site-survey practice.
func Default() *Catalog {
	c := New()

	mustRegister(c, model.EnvWarehouse, []model.InterferenceSource{
		{
			Kind:          model.InterferenceMetalRacking,
			AffectedBands: []model.Band{model.Band24GHz, model.Band5GHz},
			Severity:      model.SeverityHigh,
			Mitigation:    "shorten the effective coverage radius and add APs along racking aisles",
		},
		{
			Kind:          model.InterferenceForkliftRadio,
			AffectedBands: []model.Band{model.Band24GHz},
			Severity:      model.SeverityMedium,
			Mitigation:    "steer handheld devices to 5GHz via band steering",
		},
		{
			Kind:          model.InterferenceVFDNoise,
			AffectedBands: []model.Band{model.Band24GHz},
			Severity:      model.SeverityLow,
			Mitigation:    "verify shielding on variable frequency drives near dock doors",
		},
		{
			Kind:          model.InterferenceCoChannel,
			AffectedBands: []model.Band{model.Band24GHz, model.Band5GHz},
			Severity:      model.SeverityMedium,
			Mitigation:    "hold the reuse-distance channel plan; do not add ad-hoc APs",
		},
	})

	mustRegister(c, model.EnvDataCenter, []model.InterferenceSource{
		{
			Kind:          model.InterferenceCoChannel,
			AffectedBands: []model.Band{model.Band24GHz, model.Band5GHz},
			Severity:      model.SeverityMedium,
			Mitigation:    "hold the reuse-distance channel plan; do not add ad-hoc APs",
		},
		{
			Kind:          model.InterferenceRogueAP,
			AffectedBands: []model.Band{model.Band24GHz, model.Band5GHz},
			Severity:      model.SeverityHigh,
			Mitigation:    "enable rogue AP detection and containment on the WLAN controller",
		},
	})

	mustRegister(c, model.EnvOffice, []model.InterferenceSource{
		{
			Kind:          model.InterferenceMicrowave,
			AffectedBands: []model.Band{model.Band24GHz},
			Severity:      model.SeverityHigh,
			Mitigation:    "avoid channel 11 near break rooms; prefer 5GHz for nearby APs",
		},
		{
			Kind:          model.InterferenceWirelessCamera,
			AffectedBands: []model.Band{model.Band24GHz, model.Band5GHz},
			Severity:      model.SeverityMedium,
			Mitigation:    "move security cameras to wired backhaul",
		},
		{
			Kind:          model.InterferenceCoChannel,
			AffectedBands: []model.Band{model.Band24GHz},
			Severity:      model.SeverityLow,
			Mitigation:    "hold the reuse-distance channel plan; do not add ad-hoc APs",
		},
	})

	return c
}

// mustRegister is for seeding the default tables; duplicate registration of
// a built-in environment is a programming error.
func mustRegister(c *Catalog, env model.EnvironmentType, sources []model.InterferenceSource) {
	if err := c.Register(env, sources); err != nil {
		panic(err)
	}
}
