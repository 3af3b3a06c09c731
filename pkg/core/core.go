package core

import (
	"github.com/scriptsnoop/scriptsnoop/internal/engine"
	"github.com/scriptsnoop/scriptsnoop/internal/patterns"
	"github.com/scriptsnoop/scriptsnoop/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type Config = engine.Config
type Finding = types.Finding
type Result = engine.Result
type Definition = patterns.Definition

// Scan modes recorded on findings.
const (
	ModeRaw      = types.ModeRaw
	ModeDequoted = types.ModeDequoted
)

// ErrRootNotFound is returned when the scan root is not an existing directory.
var ErrRootNotFound = engine.ErrRootNotFound

// Scan is the stable entrypoint for other programs.
func Scan(cfg Config) ([]Finding, error) {
	return engine.Scan(cfg)
}

// ScanWithStats scans and also returns file counts, read failures and timing.
func ScanWithStats(cfg Config) (Result, error) {
	return engine.ScanWithStats(cfg)
}

// ScanContent matches a single in-memory file. path is only used to label
// findings.
func ScanContent(path string, content []byte) []Finding {
	return engine.ScanContent(patterns.MustDefault(), path, content)
}

// PatternIDs returns the built-in pattern IDs in match order.
func PatternIDs() []string {
	ids := make([]string, 0, len(patterns.Builtin))
	for _, d := range patterns.Builtin {
		ids = append(ids, d.ID)
	}
	return ids
}

// WithPatterns returns cfg using the built-in catalog extended by extra.
func WithPatterns(cfg Config, extra ...Definition) (Config, error) {
	c, err := patterns.Default(extra...)
	if err != nil {
		return cfg, err
	}
	cfg.Catalog = c
	return cfg, nil
}
