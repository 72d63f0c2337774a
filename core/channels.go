package core

import (
	"fmt"
	"sort"

	"github.com/signalsfoundry/wifi-deployment-planner/model"
)

// AssignChannels plans one radio per configured band at every grid position
// and picks channels under the band's reuse-distance constraint.
//
// Because the layout is a regular grid, assignment uses a deterministic
// reuse pattern instead of a general graph-coloring search: the channel for
// cell (row, col) is channels[(row + col*stride) mod k]. The stride is
// chosen by a generate-then-verify loop — each candidate pattern is checked
// against every same-band AP pair inside the reuse distance, and the stride
// is widened until a conflict-free pattern is found or the attempt budget
// runs out. If no pattern satisfies the constraint (expected for grids that
// are small relative to the reuse distance), the least-conflicting pattern
// is kept and the surviving conflicts are reported instead of failing the
// run.
func AssignChannels(layout *DeploymentLayout, cfg PlannerConfig) ([]model.AccessPoint, []model.ChannelConflict) {
	bands := make([]model.Band, 0, len(cfg.Bands))
	for band := range cfg.Bands {
		bands = append(bands, band)
	}
	// Map order is random; the plan must be reproducible.
	sort.Slice(bands, func(i, j int) bool { return bands[i] < bands[j] })

	perBand := make(map[model.Band][]int, len(bands))
	var conflicts []model.ChannelConflict

	for _, band := range bands {
		plan := cfg.Bands[band]
		channels, pairs := planBand(layout, plan, cfg.MaxAssignAttempts)
		perBand[band] = channels

		for _, p := range pairs {
			conflicts = append(conflicts, model.ChannelConflict{
				Band:          band,
				Channel:       channels[p.a],
				APA:           apID(p.a, band),
				APB:           apID(p.b, band),
				CellA:         layout.Positions[p.a],
				CellB:         layout.Positions[p.b],
				DistanceCells: layout.Positions[p.a].DistanceTo(layout.Positions[p.b]),
			})
		}
	}

	aps := make([]model.AccessPoint, 0, layout.APCount*len(bands))
	for i, pos := range layout.Positions {
		for _, band := range bands {
			aps = append(aps, model.AccessPoint{
				ID:       apID(i, band),
				Position: pos,
				Band:     band,
				Channel:  perBand[band][i],
			})
		}
	}

	return aps, conflicts
}

// conflictPair references two layout position indexes that share a channel
// inside the reuse distance.
type conflictPair struct {
	a, b int
}

// planBand runs the generate-then-verify loop for a single band and returns
// the per-position channels plus any conflicts left by the best pattern.
func planBand(layout *DeploymentLayout, plan BandPlan, maxAttempts int) ([]int, []conflictPair) {
	var (
		bestChannels  []int
		bestConflicts []conflictPair
		haveBest      bool
	)

	for _, stride := range candidateStrides(len(plan.Channels), maxAttempts) {
		channels := generatePattern(layout, plan.Channels, stride)
		pairs := verifyReuse(layout, channels, plan.ReuseDistanceCells)

		if len(pairs) == 0 {
			return channels, nil
		}
		if !haveBest || len(pairs) < len(bestConflicts) {
			bestChannels = channels
			bestConflicts = pairs
			haveBest = true
		}
	}

	// Best effort: every candidate pattern left conflicts.
	return bestChannels, bestConflicts
}

// candidateStrides lists the strides to try, smallest first. Only residues
// mod k produce distinct patterns, so the search space is bounded by the
// channel-set size regardless of the attempt budget.
func candidateStrides(k, maxAttempts int) []int {
	if k <= 1 {
		return []int{0}
	}
	out := make([]int, 0, k-1)
	for s := 1; s < k && len(out) < maxAttempts; s++ {
		out = append(out, s)
	}
	return out
}

// generatePattern applies the diagonal reuse pattern over the grid.
func generatePattern(layout *DeploymentLayout, channels []int, stride int) []int {
	k := len(channels)
	out := make([]int, len(layout.Positions))
	for i, pos := range layout.Positions {
		out[i] = channels[(pos.Row+pos.Col*stride)%k]
	}
	return out
}

// verifyReuse checks the reuse invariant over all AP pairs: any two cells
// closer than the reuse distance must carry different channels. Pairs are
// returned in ascending index order so the resulting report is stable.
func verifyReuse(layout *DeploymentLayout, channels []int, reuseDistanceCells float64) []conflictPair {
	var pairs []conflictPair
	n := len(layout.Positions)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if channels[i] != channels[j] {
				continue
			}
			if layout.Positions[i].DistanceTo(layout.Positions[j]) < reuseDistanceCells {
				pairs = append(pairs, conflictPair{a: i, b: j})
			}
		}
	}
	return pairs
}

// apID names a radio from its row-major position index and band, e.g.
// "AP-001-2g4". IDs are unique within a plan.
func apID(index int, band model.Band) string {
	return fmt.Sprintf("AP-%03d-%s", index+1, band.Short())
}
