package report

import (
	"encoding/json"
	"io"

	"github.com/scriptsnoop/scriptsnoop/internal/types"
)

// WriteJSON writes findings as an indented JSON array, never null.
func WriteJSON(w io.Writer, findings []types.Finding) error {
	if findings == nil {
		findings = []types.Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// ReadJSON decodes a findings array written by WriteJSON.
func ReadJSON(r io.Reader) ([]types.Finding, error) {
	var fs []types.Finding
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return nil, err
	}
	return fs, nil
}
