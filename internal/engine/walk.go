package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/scriptsnoop/scriptsnoop/internal/ignore"
	"github.com/scriptsnoop/scriptsnoop/internal/logging"
)

type target struct {
	glob int
	path string
}

// Walk traverses cfg.Root and invokes handle for each eligible file with the
// index of the first include glob it matched. Paths are cfg.Root joined with
// the path relative to it.
func Walk(ctx context.Context, cfg Config, handle func(path string, glob int)) error {
	includes := parseGlobsList(cfg.IncludeGlobs)
	if len(includes) == 0 {
		includes = parseGlobsList(DefaultIncludeGlobs)
	}
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	self := resolvePath(cfg.Self)
	ignored, err := ignore.LoadRoot(cfg.Root)
	if err != nil {
		return fmt.Errorf("read %s: %w", ignore.FileName, err)
	}

	// WalkDir does not descend into a symlinked root, so walk its target and
	// report paths under the root as given.
	walkRoot := cfg.Root
	if st, err := os.Lstat(cfg.Root); err == nil && st.Mode()&fs.ModeSymlink != 0 {
		if real, err := filepath.EvalSymlinks(cfg.Root); err == nil {
			walkRoot = real
		}
	}

	return filepath.WalkDir(walkRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Logger.Debugw("walk error", "path", p, "error", err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		name := d.Name()
		if d.IsDir() {
			if p == walkRoot {
				return nil
			}
			if !cfg.IncludeHidden && isHidden(name) {
				return filepath.SkipDir
			}
			if cfg.DefaultExcludes && isDefaultDirExcluded(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if !cfg.IncludeHidden && isHidden(name) {
			return nil
		}
		rel, _ := filepath.Rel(walkRoot, p)
		p = filepath.Join(cfg.Root, rel)
		rel = filepath.ToSlash(rel)
		idx := firstMatchingGlob(rel, includes)
		if idx < 0 {
			return nil
		}
		if len(excludes) > 0 && firstMatchingGlob(rel, excludes) >= 0 {
			return nil
		}
		if cfg.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(rel)) {
			return nil
		}
		if ignored.Match(rel) {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if st, err := os.Stat(p); err == nil && st.IsDir() {
				return nil
			}
		}
		if self != "" && resolvePath(p) == self {
			logging.Logger.Debugw("skipping scanner itself", "path", p)
			return nil
		}
		handle(p, idx)
		return nil
	})
}

// CollectTargets lists the files a scan of cfg would read, in discovery
// order: grouped by include glob, lexical within a group.
func CollectTargets(ctx context.Context, cfg Config) ([]string, error) {
	var found []target
	err := Walk(ctx, cfg, func(p string, glob int) {
		found = append(found, target{glob: glob, path: p})
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].glob < found[j].glob })
	out := make([]string, len(found))
	for i, t := range found {
		out[i] = t.path
	}
	return out, nil
}

// CountTargets returns the number of files CollectTargets would list.
func CountTargets(cfg Config) (int, error) {
	n := 0
	err := Walk(context.Background(), cfg, func(string, int) { n++ })
	return n, err
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// resolvePath returns the absolute, symlink-free form of p, or the absolute
// form when the path cannot be resolved.
func resolvePath(p string) string {
	if p == "" {
		return ""
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}
