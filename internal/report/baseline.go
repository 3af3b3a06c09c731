package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/scriptsnoop/scriptsnoop/internal/types"
)

// DefaultBaselineFile is written by the baseline command.
const DefaultBaselineFile = "scriptsnoop.baseline.json"

// Baseline is a set of accepted finding fingerprints.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

// LoadBaseline reads a baseline file. A missing file yields an empty baseline
// and the read error.
func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	data, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(data, &b); err != nil {
		return Baseline{Items: map[string]bool{}}, fmt.Errorf("parse baseline %s: %w", path, err)
	}
	if b.Items == nil {
		b.Items = map[string]bool{}
	}
	return b, nil
}

// SaveBaseline records every finding's fingerprint.
func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Items[f.Fingerprint] = true
	}
	buf, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, 0o644)
}

// FilterNewFindings drops findings present in the baseline, keeping order.
func FilterNewFindings(findings []types.Finding, base Baseline) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if !base.Items[f.Fingerprint] {
			out = append(out, f)
		}
	}
	return out
}
