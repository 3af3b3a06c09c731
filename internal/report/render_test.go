package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/scriptsnoop/scriptsnoop/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFindings() []types.Finding {
	return []types.Finding{
		{Path: "dir/a.sh", Line: 2, Pattern: `rm\s+-rf`, PatternID: "destructive-delete", Mode: types.ModeRaw, Content: "rm -rf /tmp/data", Fingerprint: "aaaa"},
		{Path: "dir/a.sh", Line: 2, Pattern: `rm\s+-rf (de-quoted)`, PatternID: "destructive-delete", Mode: types.ModeDequoted, Content: "rm -rf /tmp/data", Fingerprint: "bbbb"},
	}
}

func TestPrintText_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sampleFindings(), PrintOptions{NoColor: true, FilesScanned: 3})
	out := buf.String()
	assert.Contains(t, out, "Found 2 risky patterns in 3 files:")
	assert.Contains(t, out, "  File: dir/a.sh | Line: 2 | Pattern: rm\\s+-rf | Content: rm -rf /tmp/data\n")
	assert.Contains(t, out, "Pattern: rm\\s+-rf (de-quoted) | Content: rm -rf /tmp/data\n")
	assert.Contains(t, out, "Review these manually")
	assert.Less(t, strings.Index(out, "Pattern: rm\\s+-rf |"), strings.Index(out, "(de-quoted)"))
}

func TestPrintText_NoFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, nil, PrintOptions{NoColor: true, FilesScanned: 4})
	assert.Equal(t, "✅ No risky patterns found. All files appear safe based on current rules.\n", buf.String())
}

func TestStatusLines(t *testing.T) {
	var buf bytes.Buffer
	opts := PrintOptions{NoColor: true}
	PrintRootMissing(&buf, "missing/dir", opts)
	PrintScanning(&buf, "/abs/root")
	PrintNoFiles(&buf, []string{"*.py", "*.sh", "*.bat"}, opts)
	PrintFileCount(&buf, 7)
	PrintFileError(&buf, "x.sh", errors.New("permission denied"))
	out := buf.String()
	assert.Contains(t, out, "The directory 'missing/dir' does not exist.")
	assert.Contains(t, out, "Scanning directory: /abs/root\n")
	assert.Contains(t, out, "No supported files (.py, .sh, .bat) found in the directory or subdirectories.")
	assert.Contains(t, out, "Found 7 files to scan.\n")
	assert.Contains(t, out, "Error reading x.sh: permission denied\n")
}

func TestDescribeGlobs(t *testing.T) {
	assert.Equal(t, ".py, .sh", describeGlobs([]string{"**/*.py", "*.sh"}))
	assert.Equal(t, "Makefile, *.s[ch]", describeGlobs([]string{"Makefile", "*.s[ch]"}))
}

func TestPrintTable_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, sampleFindings(), PrintOptions{NoColor: true, FilesScanned: 1}))
	out := buf.String()
	assert.Contains(t, out, "FILE")
	assert.Contains(t, out, "destructive-delete")
	assert.Contains(t, out, "dequoted")
	assert.Contains(t, out, "Findings: 2 in 1 files")
}

func TestPrintTable_NoFindings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintTable(&buf, nil, PrintOptions{NoColor: true}))
	assert.Contains(t, buf.String(), "No risky patterns found")
}

func TestWriteJSON_NeverNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, sampleFindings()))
	assert.Contains(t, buf.String(), `"pattern_id": "destructive-delete"`)
	assert.Contains(t, buf.String(), `"mode": "dequoted"`)

	back, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, sampleFindings(), back)
}
