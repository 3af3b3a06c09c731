package engine

import "regexp"

// reQuoted matches a single-line region enclosed in double quotes, single
// quotes or backticks. The leftmost opener wins, so a quote of one kind
// inside a region of another kind is removed along with it.
var reQuoted = regexp.MustCompile("\"[^\"]*\"|'[^']*'|`[^`]*`")

// StripQuotes removes every quoted region from line. An opener without a
// closer on the same line is left in place.
func StripQuotes(line string) string {
	return reQuoted.ReplaceAllLiteralString(line, "")
}
