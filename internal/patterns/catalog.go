package patterns

import (
	"fmt"
	"regexp"
	"strings"
)

// Definition is the uncompiled form of a catalog entry.
type Definition struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description,omitempty"`
}

// RiskPattern is a compiled catalog entry. Label is the pattern source text and
// is reported verbatim in findings.
type RiskPattern struct {
	ID          string
	Label       string
	Description string
	Signature   *regexp.Regexp
}

// Catalog is an ordered set of risk patterns. It is never mutated after
// Compile returns, so a single Catalog can be shared by the whole scan.
type Catalog struct {
	patterns []RiskPattern
}

// CompileError reports a catalog entry whose signature is not a valid regular
// expression.
type CompileError struct {
	Label string
	Err   error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid risk pattern %q: %v", e.Label, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// Builtin is the default catalog, in reporting order.
var Builtin = []Definition{
	{ID: "destructive-delete", Label: `rm\s+-rf`, Description: "forced recursive delete"},
	{ID: "curl-pipe-shell", Label: `curl\s+.*\|.*(bash|sh)`, Description: "curl output piped to a shell"},
	{ID: "wget-pipe-shell", Label: `wget\s+.*\|.*(bash|sh)`, Description: "wget output piped to a shell"},
	{ID: "sudo-destructive", Label: `sudo\s+.*(rm|dd|mkfs|chmod)`, Description: "sudo with a destructive command"},
	{ID: "chmod-777", Label: `chmod\s+777`, Description: "world-writable permissions"},
	{ID: "dd-zero-wipe", Label: `dd\s+if=/dev/zero`, Description: "dd zero-fill data wipe"},
	{ID: "python-file-delete", Label: `os\.(remove|unlink|rmdir)`, Description: "Python file deletion call"},
	{ID: "python-network-fetch", Label: `(requests\.get|urllib\.request\.urlopen)\s*\(`, Description: "Python network fetch call"},
	{ID: "subprocess-risky-command", Label: `subprocess\.(call|Popen|run)\s*\(\s*["']?\s*(sudo|rm|chmod|curl)`, Description: "subprocess call starting with a risky command"},
}

// Compile builds a catalog from defs, preserving their order. Every signature
// is compiled case-insensitively. Entries without an ID get a positional one.
func Compile(defs []Definition) (*Catalog, error) {
	out := make([]RiskPattern, 0, len(defs))
	for i, d := range defs {
		re, err := regexp.Compile("(?i)" + widenSpace(d.Label))
		if err != nil {
			return nil, &CompileError{Label: d.Label, Err: err}
		}
		id := d.ID
		if id == "" {
			id = fmt.Sprintf("pattern-%d", i+1)
		}
		out = append(out, RiskPattern{ID: id, Label: d.Label, Description: d.Description, Signature: re})
	}
	return &Catalog{patterns: out}, nil
}

// unicodeSpace is the whitespace set \s has in Unicode-aware engines: ASCII
// space and controls, vertical tab, the information separators, NEL and the
// Z categories (NBSP, em space, line separator, ...).
const unicodeSpace = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

// widenSpace rewrites \s and \S so they also cover Unicode whitespace. Inside a
// bracket class \s expands in place; \S is left alone there since a negated
// set cannot be spliced into a class.
func widenSpace(expr string) string {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		switch {
		case c == '\\' && i+1 < len(expr):
			next := expr[i+1]
			i++
			switch {
			case next == 's' && inClass:
				b.WriteString(unicodeSpace)
			case next == 's':
				b.WriteString("[" + unicodeSpace + "]")
			case next == 'S' && !inClass:
				b.WriteString("[^" + unicodeSpace + "]")
			default:
				b.WriteByte(c)
				b.WriteByte(next)
			}
			continue
		case c == '[' && !inClass:
			inClass = true
			b.WriteByte(c)
			// A leading ] or ^] is a literal member, not the end of the class.
			if i+1 < len(expr) && expr[i+1] == '^' {
				b.WriteByte('^')
				i++
			}
			if i+1 < len(expr) && expr[i+1] == ']' {
				b.WriteByte(']')
				i++
			}
			continue
		case c == '[' && inClass && strings.HasPrefix(expr[i:], "[:"):
			if end := strings.Index(expr[i+2:], ":]"); end >= 0 {
				b.WriteString(expr[i : i+2+end+2])
				i += 2 + end + 1
				continue
			}
		case c == ']' && inClass:
			inClass = false
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Default compiles the built-in catalog followed by extra definitions.
func Default(extra ...Definition) (*Catalog, error) {
	defs := make([]Definition, 0, len(Builtin)+len(extra))
	defs = append(defs, Builtin...)
	defs = append(defs, extra...)
	return Compile(defs)
}

// MustDefault is like Default without extras and panics on error.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// Patterns returns a copy of the catalog entries in order.
func (c *Catalog) Patterns() []RiskPattern {
	out := make([]RiskPattern, len(c.patterns))
	copy(out, c.patterns)
	return out
}

// Len returns the number of patterns.
func (c *Catalog) Len() int { return len(c.patterns) }

// FirstMatch returns the first pattern, in catalog order, whose signature
// matches anywhere in line.
func (c *Catalog) FirstMatch(line string) (RiskPattern, bool) {
	for _, p := range c.patterns {
		if p.Signature.MatchString(line) {
			return p, true
		}
	}
	return RiskPattern{}, false
}

// Lookup finds a pattern by ID or label.
func (c *Catalog) Lookup(key string) (RiskPattern, bool) {
	for _, p := range c.patterns {
		if p.ID == key || p.Label == key {
			return p, true
		}
	}
	return RiskPattern{}, false
}
