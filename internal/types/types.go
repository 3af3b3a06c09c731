package types

// ScanMode records which matching pass produced a finding.
type ScanMode string

const (
	ModeRaw      ScanMode = "raw"
	ModeDequoted ScanMode = "dequoted"
)

// DequotedSuffix is appended to the pattern label of findings produced by the
// de-quoted pass.
const DequotedSuffix = " (de-quoted)"

// Finding describes one risky pattern occurrence at a path and line. Pattern
// carries the catalog label (suffixed with DequotedSuffix for the de-quoted
// pass) and Content the trimmed source line, truncated for display.
type Finding struct {
	Path        string   `json:"path"`
	Line        int      `json:"line"`
	Pattern     string   `json:"pattern"`
	PatternID   string   `json:"pattern_id,omitempty"`
	Mode        ScanMode `json:"mode"`
	Content     string   `json:"content"`
	Fingerprint string   `json:"fingerprint,omitempty"`
}
