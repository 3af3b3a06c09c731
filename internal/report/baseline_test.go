package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseline_SaveLoadFilter(t *testing.T) {
	p := filepath.Join(t.TempDir(), DefaultBaselineFile)
	fs := sampleFindings()
	require.NoError(t, SaveBaseline(p, fs[:1]))

	b, err := LoadBaseline(p)
	require.NoError(t, err)
	assert.True(t, b.Items["aaaa"])

	fresh := FilterNewFindings(fs, b)
	require.Len(t, fresh, 1)
	assert.Equal(t, "bbbb", fresh[0].Fingerprint)
}

func TestLoadBaseline_Missing(t *testing.T) {
	b, err := LoadBaseline(filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
	assert.NotNil(t, b.Items)
	assert.Len(t, FilterNewFindings(sampleFindings(), b), 2)
}

func TestLoadBaseline_Corrupt(t *testing.T) {
	p := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(p, []byte("{"), 0o644))
	_, err := LoadBaseline(p)
	assert.ErrorContains(t, err, "parse baseline")
}
