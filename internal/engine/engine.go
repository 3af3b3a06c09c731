package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	xxhash "github.com/cespare/xxhash/v2"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/scriptsnoop/scriptsnoop/internal/logging"
	"github.com/scriptsnoop/scriptsnoop/internal/patterns"
	"github.com/scriptsnoop/scriptsnoop/internal/types"
)

// DefaultIncludeGlobs selects script-like files when Config.IncludeGlobs is empty.
const DefaultIncludeGlobs = "*.py,*.sh,*.bat"

// ErrRootNotFound is returned before any traversal when the scan root does not
// exist or is not a directory.
var ErrRootNotFound = errors.New("directory does not exist")

// Config controls which files are scanned and which patterns are applied.
type Config struct {
	Root string
	// IncludeGlobs is a comma-separated list. Discovery order follows the list:
	// every file of the first glob comes before any file of the second.
	IncludeGlobs    string
	ExcludeGlobs    string
	DefaultExcludes bool
	IncludeHidden   bool
	// Self is a file never scanned, compared by resolved absolute path.
	Self    string
	Catalog *patterns.Catalog

	// OnFileError is called when a target cannot be read. The scan continues.
	OnFileError func(path string, err error)
	Progress    func()
}

// FileError is a per-file read failure.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }

func (e *FileError) Unwrap() error { return e.Err }

// Result contains findings and basic scan statistics.
type Result struct {
	Findings     []types.Finding
	Files        []string
	FilesScanned int
	FileErrors   *multierror.Error
	Duration     time.Duration
}

// Failed returns the number of targets that could not be read.
func (r Result) Failed() int {
	if r.FileErrors == nil {
		return 0
	}
	return len(r.FileErrors.Errors)
}

// CheckRoot verifies the scan root is an existing directory.
func CheckRoot(root string) error {
	st, err := os.Stat(root)
	if err != nil || !st.IsDir() {
		return fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}
	return nil
}

// Scan runs a scan and returns only findings (without stats).
func Scan(cfg Config) ([]types.Finding, error) {
	res, err := ScanWithStats(cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// ScanWithStats checks the root, collects targets and scans them in order.
// No matching files is not an error: the result is simply empty.
func ScanWithStats(cfg Config) (Result, error) {
	ctx := context.Background()
	if err := CheckRoot(cfg.Root); err != nil {
		return Result{}, err
	}
	files, err := CollectTargets(ctx, cfg)
	if err != nil {
		return Result{}, err
	}
	return ScanTargets(ctx, cfg, files)
}

// ScanTargets reads and matches each file in order, one at a time. Read
// failures are recorded in Result.FileErrors and reported through
// cfg.OnFileError; they yield no findings for that file.
func ScanTargets(ctx context.Context, cfg Config, files []string) (Result, error) {
	catalog, err := catalogFor(cfg)
	if err != nil {
		return Result{}, err
	}
	started := time.Now()
	res := Result{Files: files}
	for _, p := range files {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			logging.Logger.Debugw("read failed", "path", p, "error", err)
			res.FileErrors = multierror.Append(res.FileErrors, &FileError{Path: p, Err: err})
			if cfg.OnFileError != nil {
				cfg.OnFileError(p, err)
			}
		} else {
			n := len(res.Findings)
			for f := range Match(catalog, p, data) {
				res.Findings = append(res.Findings, f)
			}
			res.FilesScanned++
			logging.Logger.Debugw("scanned", "path", p, "bytes", len(data), "findings", len(res.Findings)-n)
		}
		if cfg.Progress != nil {
			cfg.Progress()
		}
	}
	res.Duration = time.Since(started)
	return res, nil
}

func catalogFor(cfg Config) (*patterns.Catalog, error) {
	if cfg.Catalog != nil {
		return cfg.Catalog, nil
	}
	return patterns.Default()
}

// Fingerprint identifies a finding across runs: a hex xxhash of its path,
// pattern label and displayed content.
func Fingerprint(f types.Finding) string {
	return fastHash([]byte(f.Path + "|" + f.Pattern + "|" + f.Content))
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}
