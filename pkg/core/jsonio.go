package core

import (
	"io"

	"github.com/scriptsnoop/scriptsnoop/internal/report"
)

// MarshalFindings pretty-prints findings as JSON for humans or pipelines.
func MarshalFindings(w io.Writer, findings []Finding) error {
	return report.WriteJSON(w, findings)
}

// UnmarshalFindings decodes findings JSON, useful for ingestion tests.
func UnmarshalFindings(r io.Reader) ([]Finding, error) {
	return report.ReadJSON(r)
}
