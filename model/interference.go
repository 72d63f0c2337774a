package model

// InterferenceKind enumerates known categories of interference source.
type InterferenceKind string

const (
	InterferenceMetalRacking   InterferenceKind = "metal_racking"
	InterferenceMicrowave      InterferenceKind = "microwave"
	InterferenceForkliftRadio  InterferenceKind = "forklift_radio"
	InterferenceCoChannel      InterferenceKind = "co_channel"
	InterferenceRogueAP        InterferenceKind = "rogue_ap"
	InterferenceWirelessCamera InterferenceKind = "wireless_camera"
	InterferenceVFDNoise       InterferenceKind = "vfd_noise"
)

// Severity is a coarse impact classification for an interference source.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// InterferenceSource is a static catalog fact: an environmental threat, the
// bands it degrades, and the standard mitigation. Entries are selected per
// environment type, never synthesised at plan time.
type InterferenceSource struct {
	Kind          InterferenceKind
	AffectedBands []Band
	Severity      Severity
	Mitigation    string
}
