package model

// Band identifies a WiFi frequency band with its own non-overlapping
// channel set and reuse-distance constraint.
type Band string

const (
	Band24GHz Band = "2.4GHz"
	Band5GHz  Band = "5GHz"
)

// Short returns a compact band token suitable for embedding in AP IDs.
func (b Band) Short() string {
	switch b {
	case Band24GHz:
		return "2g4"
	case Band5GHz:
		return "5g"
	default:
		return string(b)
	}
}
