package report

import (
	"encoding/json"
	"io"

	"github.com/scriptsnoop/scriptsnoop/internal/patterns"
	"github.com/scriptsnoop/scriptsnoop/internal/types"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name,omitempty"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID              string            `json:"ruleId"`
	RuleIndex           int               `json:"ruleIndex"`
	Level               string            `json:"level"`
	Message             sarifMessage      `json:"message"`
	Locations           []sarifLoc        `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
	Properties          map[string]string `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// WriteSARIF writes findings as SARIF 2.1.0, declaring one rule per catalog
// entry. All results are warnings: findings need manual review.
func WriteSARIF(w io.Writer, findings []types.Finding, catalog *patterns.Catalog, version string) error {
	driver := sarifDriver{Name: "scriptsnoop", Version: version, Rules: []sarifRule{}}
	index := map[string]int{}
	if catalog != nil {
		for _, p := range catalog.Patterns() {
			index[p.ID] = len(driver.Rules)
			driver.Rules = append(driver.Rules, sarifRule{
				ID:               p.ID,
				Name:             p.Label,
				ShortDescription: sarifMessage{Text: p.Description},
			})
		}
	}
	run := sarifRun{Results: []sarifResult{}}
	for _, f := range findings {
		idx, ok := index[f.PatternID]
		if !ok {
			idx = len(driver.Rules)
			index[f.PatternID] = idx
			driver.Rules = append(driver.Rules, sarifRule{ID: f.PatternID, Name: f.Pattern})
		}
		res := sarifResult{
			RuleID:    f.PatternID,
			RuleIndex: idx,
			Level:     "warning",
			Message:   sarifMessage{Text: "risky pattern " + f.Pattern + ": " + f.Content},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: f.Path},
					Region:           sarifRegion{StartLine: f.Line},
				},
			}},
			Properties: map[string]string{"mode": string(f.Mode)},
		}
		if f.Fingerprint != "" {
			res.PartialFingerprints = map[string]string{"scriptsnoop/v1": f.Fingerprint}
		}
		run.Results = append(run.Results, res)
	}
	run.Tool = sarifTool{Driver: driver}
	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
