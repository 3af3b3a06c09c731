package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/scriptsnoop/scriptsnoop/internal/types"
)

// PrintOptions controls the human-readable renderers.
type PrintOptions struct {
	NoColor bool
	// FilesScanned is the size of the target set, shown in the summary.
	FilesScanned int
}

var (
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	alarm     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func paint(s lipgloss.Style, text string, noColor bool) string {
	if noColor {
		return text
	}
	return s.Render(text)
}

// PrintRootMissing reports an invalid scan root.
func PrintRootMissing(w io.Writer, dir string, opts PrintOptions) {
	fmt.Fprintln(w, paint(errStyle, fmt.Sprintf("❌ Error: The directory '%s' does not exist. Please check the path and try again.", dir), opts.NoColor))
}

// PrintScanning announces the absolute scan root.
func PrintScanning(w io.Writer, absRoot string) {
	fmt.Fprintf(w, "Scanning directory: %s\n", absRoot)
}

// PrintNoFiles reports that no file matched the include globs.
func PrintNoFiles(w io.Writer, globs []string, opts PrintOptions) {
	fmt.Fprintln(w, paint(errStyle, fmt.Sprintf("❌ No supported files (%s) found in the directory or subdirectories.", describeGlobs(globs)), opts.NoColor))
}

// PrintFileCount announces the number of targets.
func PrintFileCount(w io.Writer, n int) {
	fmt.Fprintf(w, "Found %d files to scan.\n", n)
}

// PrintFileError reports a file that could not be read.
func PrintFileError(w io.Writer, path string, err error) {
	fmt.Fprintf(w, "Error reading %s: %v\n", path, err)
}

// PrintText writes one line per finding followed by a review reminder, or a
// single all-clear line when there are none.
func PrintText(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if len(findings) == 0 {
		fmt.Fprintln(w, paint(okStyle, "✅ No risky patterns found. All files appear safe based on current rules.", opts.NoColor))
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, paint(alarm, fmt.Sprintf("🚨 Found %d risky patterns in %d files:", len(findings), opts.FilesScanned), opts.NoColor))
	for _, f := range findings {
		fmt.Fprintf(w, "  File: %s | Line: %d | Pattern: %s | Content: %s\n", f.Path, f.Line, f.Pattern, f.Content)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, paint(warnStyle, "⚠️  Review these manually: some may be false positives or legitimate in context.", opts.NoColor))
}

// PrintTable renders findings as a bordered table in discovery order.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) error {
	if len(findings) == 0 {
		fmt.Fprintln(w, paint(okStyle, "✅ No risky patterns found. All files appear safe based on current rules.", opts.NoColor))
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header("FILE", "LINE", "PATTERN", "MODE", "CONTENT")
	for _, f := range findings {
		id := f.PatternID
		if id == "" {
			id = f.Pattern
		}
		if err := table.Append([]string{f.Path, strconv.Itoa(f.Line), id, string(f.Mode), f.Content}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Findings: %d in %d files\n", len(findings), opts.FilesScanned)
	return nil
}

// describeGlobs turns "*.py" style globs into ".py" for the no-files message.
func describeGlobs(globs []string) string {
	parts := make([]string, 0, len(globs))
	for _, g := range globs {
		base := filepath.Base(filepath.FromSlash(g))
		if strings.HasPrefix(base, "*.") && !strings.ContainsAny(base[1:], "*?[{") {
			parts = append(parts, base[1:])
			continue
		}
		parts = append(parts, g)
	}
	return strings.Join(parts, ", ")
}
