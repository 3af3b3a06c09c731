package engine

import (
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

var defaultExcludeDirs = map[string]bool{
	"node_modules":  true,
	"vendor":        true,
	"dist":          true,
	"build":         true,
	"out":           true,
	"venv":          true,
	".venv":         true,
	"__pycache__":   true,
	"site-packages": true,
	"target":        true,
}

// generated or bundled scripts that are noise when default excludes are on
var defaultExcludeFileSuffixes = []string{
	".min.js",
	"-min.js",
	"_pb2.py",
	"_pb2_grpc.py",
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name] || strings.HasPrefix(name, ".git")
}

func isDefaultFileExcluded(lowerRel string) bool {
	for _, s := range defaultExcludeFileSuffixes {
		if strings.HasSuffix(lowerRel, s) {
			return true
		}
	}
	return false
}

// GlobList splits a comma-separated glob list, dropping empty entries.
func GlobList(s string) []string {
	return parseGlobsList(s)
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// firstMatchingGlob returns the index of the first glob matching the
// slash-separated relative path or its base name, or -1. A leading "./" or
// "**/" on a glob is optional.
func firstMatchingGlob(rel string, globs []string) int {
	base := filepath.Base(rel)
	for i, g := range globs {
		for _, cand := range []string{g, trimGlobPrefix(g)} {
			if ok, _ := doublestar.Match(cand, rel); ok {
				return i
			}
			if ok, _ := doublestar.Match(cand, base); ok {
				return i
			}
		}
	}
	return -1
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
