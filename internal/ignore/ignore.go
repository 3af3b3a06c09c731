// Package ignore reads .scriptsnoopignore files: one glob per line, '#'
// comments, a trailing '/' meaning "this directory and everything below it".
package ignore

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FileName is looked up in the scan root.
const FileName = ".scriptsnoopignore"

// Matcher reports whether a root-relative slash path is ignored.
type Matcher struct {
	patterns []string
}

// Load parses the ignore file at path. A missing file yields an empty matcher.
func Load(path string) (*Matcher, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Matcher{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := &Matcher{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.patterns = append(m.patterns, expand(line)...)
	}
	return m, sc.Err()
}

// LoadRoot loads FileName from root.
func LoadRoot(root string) (*Matcher, error) {
	return Load(filepath.Join(root, FileName))
}

// expand turns one ignore line into doublestar patterns. A leading '/' or an
// inner '/' anchors the line to the root; otherwise it matches at any depth.
func expand(p string) []string {
	anchored := strings.HasPrefix(p, "/")
	p = strings.TrimPrefix(p, "/")
	if strings.HasSuffix(p, "/") {
		dir := strings.TrimSuffix(p, "/")
		if anchored || strings.Contains(dir, "/") {
			return []string{dir + "/**"}
		}
		return []string{dir + "/**", "**/" + dir + "/**"}
	}
	if anchored || strings.Contains(p, "/") {
		return []string{p}
	}
	return []string{p, "**/" + p}
}

// Len returns the number of compiled patterns.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.patterns)
}

// Match reports whether rel (slash separated, relative to the root) is ignored.
func (m *Matcher) Match(rel string) bool {
	if m == nil {
		return false
	}
	for _, p := range m.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Append adds pattern to root's ignore file unless already present, creating
// the file when missing.
func Append(root, pattern string) error {
	path := filepath.Join(root, FileName)
	pattern = strings.TrimSpace(pattern)
	if b, err := os.ReadFile(path); err == nil {
		for _, line := range strings.Split(string(b), "\n") {
			if strings.TrimSpace(line) == pattern {
				return nil
			}
		}
		if len(b) > 0 && b[len(b)-1] != '\n' {
			pattern = "\n" + pattern
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(pattern + "\n")
	return err
}
