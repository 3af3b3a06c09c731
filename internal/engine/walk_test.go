package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		r, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(r)
	}
	return out
}

func TestCollectTargets_DefaultGlobsOrderedByGlob(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"z.sh":          "",
		"a.bat":         "",
		"sub/b.py":      "",
		"a.py":          "",
		"sub/deep/c.sh": "",
		"notes.txt":     "",
		"script.PY":     "",
	})
	got, err := CollectTargets(context.Background(), Config{Root: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.py", "sub/b.py", "sub/deep/c.sh", "z.sh", "a.bat"}, relAll(t, dir, got))
}

func TestCollectTargets_PathsKeepRoot(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"x/run.sh": ""})
	got, err := CollectTargets(context.Background(), Config{Root: dir})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(dir, "x", "run.sh"), got[0])
}

func TestCollectTargets_HiddenSkippedUnlessEnabled(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		".hidden.sh":      "",
		".config/tool.py": "",
		"visible.sh":      "",
	})
	got, err := CollectTargets(context.Background(), Config{Root: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"visible.sh"}, relAll(t, dir, got))

	got, err = CollectTargets(context.Background(), Config{Root: dir, IncludeHidden: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{".config/tool.py", ".hidden.sh", "visible.sh"}, relAll(t, dir, got))
}

func TestCollectTargets_IncludeExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.ps1":       "",
		"b.sh":        "",
		"tests/c.ps1": "",
	})
	cfg := Config{Root: dir, IncludeGlobs: "*.ps1, **/*.sh", ExcludeGlobs: "tests/**"}
	got, err := CollectTargets(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.ps1", "b.sh"}, relAll(t, dir, got))
}

func TestCollectTargets_FileListedOnceForOverlappingGlobs(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"run.sh": ""})
	got, err := CollectTargets(context.Background(), Config{Root: dir, IncludeGlobs: "*.sh,run.*"})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCollectTargets_DefaultExcludes(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"node_modules/pkg/install.sh": "",
		"venv/bin/activate.py":        "",
		"proto/api_pb2.py":            "",
		"main.py":                     "",
	})
	got, err := CollectTargets(context.Background(), Config{Root: dir})
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = CollectTargets(context.Background(), Config{Root: dir, DefaultExcludes: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"main.py"}, relAll(t, dir, got))
}

func TestCollectTargets_ExcludesSelf(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"scanner.py": "rm -rf /", "other.py": ""})
	self := filepath.Join(dir, "scanner.py")
	got, err := CollectTargets(context.Background(), Config{Root: dir, Self: self})
	require.NoError(t, err)
	assert.Equal(t, []string{"other.py"}, relAll(t, dir, got))
}

func TestCollectTargets_ExcludesSelfThroughSymlink(t *testing.T) {
	dir := t.TempDir()
	real := t.TempDir()
	writeTree(t, real, map[string]string{"scanner.py": "rm -rf /"})
	link := filepath.Join(dir, "linked")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	got, err := CollectTargets(context.Background(), Config{Root: link, Self: filepath.Join(real, "scanner.py")})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = CollectTargets(context.Background(), Config{Root: link})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(link, "scanner.py")}, got)
}

func TestCollectTargets_IgnoreFile(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		".scriptsnoopignore":   "third_party/\n*_gen.py\n",
		"run.sh":               "",
		"third_party/x/a.sh":   "",
		"tools/schema_gen.py":  "",
		"tools/schema_util.py": "",
	})
	got, err := CollectTargets(context.Background(), Config{Root: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"tools/schema_util.py", "run.sh"}, relAll(t, dir, got))
}

func TestCollectTargets_EmptyDir(t *testing.T) {
	got, err := CollectTargets(context.Background(), Config{Root: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCountTargets_MatchesCollect(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.py": "", "b.sh": "", "c.txt": ""})
	n, err := CountTargets(Config{Root: dir})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestWalk_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.py": ""})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := CollectTargets(ctx, Config{Root: dir})
	assert.ErrorIs(t, err, context.Canceled)
}
