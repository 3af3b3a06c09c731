// Package core provides a small, stable facade over scriptsnoop's internal
// engine for programs that want to scan scripts without shelling out to the
// CLI. It re-exports a narrow API surface so callers never import internal
// packages.
//
// Example:
//
//	cfg := core.Config{Root: ".", IncludeGlobs: "*.sh"}
//	findings, err := core.Scan(cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, findings)
package core
