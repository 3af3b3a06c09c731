package engine

import (
	"iter"
	"strings"

	"github.com/scriptsnoop/scriptsnoop/internal/patterns"
	"github.com/scriptsnoop/scriptsnoop/internal/types"
)

const (
	maxContentRunes = 100
	ellipsis        = "..."
)

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Match yields the findings for one file's content in line order. Each
// non-comment line is checked twice: once as written and once with quoted
// regions removed. Each pass reports at most the first matching pattern, so a
// line yields at most two findings, raw before de-quoted.
//
// Bytes that are not valid UTF-8 are dropped before matching.
func Match(catalog *patterns.Catalog, path string, content []byte) iter.Seq[types.Finding] {
	return func(yield func(types.Finding) bool) {
		for i, raw := range splitLines(decode(content)) {
			line := strings.TrimSpace(raw)
			if line == "" || IsPureComment(line) {
				continue
			}
			shown := truncate(line)
			if p, ok := catalog.FirstMatch(line); ok {
				if !yield(newFinding(path, i+1, p, types.ModeRaw, shown)) {
					return
				}
			}
			if p, ok := catalog.FirstMatch(StripQuotes(line)); ok {
				if !yield(newFinding(path, i+1, p, types.ModeDequoted, shown)) {
					return
				}
			}
		}
	}
}

// ScanContent collects Match into a slice.
func ScanContent(catalog *patterns.Catalog, path string, content []byte) []types.Finding {
	var out []types.Finding
	for f := range Match(catalog, path, content) {
		out = append(out, f)
	}
	return out
}

func newFinding(path string, line int, p patterns.RiskPattern, mode types.ScanMode, content string) types.Finding {
	label := p.Label
	if mode == types.ModeDequoted {
		label += types.DequotedSuffix
	}
	f := types.Finding{
		Path:      path,
		Line:      line,
		Pattern:   label,
		PatternID: p.ID,
		Mode:      mode,
		Content:   content,
	}
	f.Fingerprint = Fingerprint(f)
	return f
}

func decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}

// splitLines splits on \n, \r\n and lone \r. A trailing newline does not
// produce an extra empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = newlines.Replace(s)
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// truncate shortens s to maxContentRunes characters plus an ellipsis.
func truncate(s string) string {
	n := 0
	for i := range s {
		if n == maxContentRunes {
			return s[:i] + ellipsis
		}
		n++
	}
	return s
}
