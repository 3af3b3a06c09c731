package engine

import "strings"

var commentOpeners = []string{"#", "//", "/*"}

// IsPureComment reports whether a trimmed line starts with a comment opener.
// Trailing comments after code are not recognized.
func IsPureComment(line string) bool {
	line = strings.TrimLeft(line, " \t")
	for _, o := range commentOpeners {
		if strings.HasPrefix(line, o) {
			return true
		}
	}
	return false
}
