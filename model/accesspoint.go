package model

import "math"

// GridPosition locates an AP cell in the deployment grid.
type GridPosition struct {
	Row int
	Col int
}

// DistanceTo returns the Euclidean distance between two grid cells,
// measured in cell units.
func (p GridPosition) DistanceTo(other GridPosition) float64 {
	dr := float64(p.Row - other.Row)
	dc := float64(p.Col - other.Col)
	return math.Sqrt(dr*dr + dc*dc)
}

// AccessPoint is one planned radio: a grid position plus the band and
// channel assigned to it. Every physical AP position hosts one AccessPoint
// entry per configured band. Values are never mutated after assignment;
// re-planning produces a fresh collection.
type AccessPoint struct {
	ID       string
	Position GridPosition
	Band     Band
	Channel  int
}

// ChannelConflict records a pair of same-band APs that ended up sharing a
// channel inside the band's reuse distance. Conflicts are advisory: the
// assigner reports them instead of failing the run.
type ChannelConflict struct {
	Band          Band
	Channel       int
	APA           string
	APB           string
	CellA         GridPosition
	CellB         GridPosition
	DistanceCells float64
}
