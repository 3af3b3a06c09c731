package scriptsnoop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/scriptsnoop/scriptsnoop/internal/config"
	"github.com/scriptsnoop/scriptsnoop/internal/engine"
	"github.com/scriptsnoop/scriptsnoop/internal/logging"
	"github.com/scriptsnoop/scriptsnoop/internal/patterns"
	"github.com/scriptsnoop/scriptsnoop/internal/prompt"
	"github.com/scriptsnoop/scriptsnoop/internal/report"
	"github.com/scriptsnoop/scriptsnoop/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	flagPath            string
	flagInclude         string
	flagExclude         string
	flagFormat          string
	flagDefaultExcludes bool
	flagIncludeHidden   bool
	flagBaseline        string
	flagFailOnFindings  bool
)

var formats = map[string]bool{"text": true, "table": true, "json": true, "sarif": true}

// scanOptions is the resolved form of flags and config files.
type scanOptions struct {
	engine         engine.Config
	format         string
	noColor        bool
	baseline       string
	failOnFindings bool
}

func init() {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a directory for risky script patterns",
		Long: `Scan a directory tree for lines matching risky patterns.

Files are discovered per include glob (default "` + engine.DefaultIncludeGlobs + `"), in glob
order and then path order. Hidden files, paths listed in .scriptsnoopignore and
the running scriptsnoop executable are never scanned. The executable only
matters when --include selects it; programs embedding pkg/core can set
Config.Self to exclude any other file, such as a scanner script kept in the tree.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", "", "directory to scan (prompted for when omitted on a terminal)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs (default \""+engine.DefaultIncludeGlobs+"\")")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().StringVar(&flagFormat, "format", "", "output format: text|table|json|sarif (default text)")
	cmd.Flags().BoolVar(&flagDefaultExcludes, "default-excludes", false, "skip vendored and generated code (node_modules, venv, *_pb2.py, ...)")
	cmd.Flags().BoolVar(&flagIncludeHidden, "include-hidden", false, "also scan dotfiles and dot-directories")
	cmd.Flags().StringVar(&flagBaseline, "baseline", "", "ignore findings recorded in this baseline file")
	cmd.Flags().BoolVar(&flagFailOnFindings, "fail-on-findings", false, "exit with status 1 when findings remain")
}

func runScan(cmd *cobra.Command, args []string) error {
	target, err := chooseTarget(cmd, args)
	if errors.Is(err, prompt.ErrCanceled) {
		return nil
	}
	if err != nil {
		return err
	}
	root, err := normalizeTarget(target)
	if err != nil {
		return err
	}
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if err := engine.CheckRoot(root); err != nil {
		report.PrintRootMissing(out, root, report.PrintOptions{NoColor: flagNoColor || !isTerminal(out)})
		return nil
	}
	opts, err := resolveOptions(root)
	if err != nil {
		return err
	}
	code, err := scanAndReport(out, errOut, opts)
	if err != nil {
		return err
	}
	if code != 0 {
		logging.Sync()
		exitFunc(code)
	}
	return nil
}

// chooseTarget picks the scan root: positional arg, then --path, then an
// interactive prompt on a terminal, then the current directory.
func chooseTarget(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if flagPath != "" {
		return flagPath, nil
	}
	if prompt.Interactive() {
		return prompt.AskDirectory(cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return ".", nil
}

func resolveOptions(root string) (scanOptions, error) {
	local, global, err := loadConfigs(root)
	if err != nil {
		return scanOptions{}, err
	}
	catalog, err := patterns.Default(config.ExtraPatterns(local, global)...)
	if err != nil {
		return scanOptions{}, err
	}
	format := pickString(flagFormat, local.Format, global.Format)
	if format == "" {
		format = "text"
	}
	if !formats[format] {
		return scanOptions{}, fmt.Errorf("unknown format %q (want text, table, json or sarif)", format)
	}
	return scanOptions{
		engine: engine.Config{
			Root:            root,
			IncludeGlobs:    pickList(flagInclude, local.Include, global.Include),
			ExcludeGlobs:    pickList(flagExclude, local.Exclude, global.Exclude),
			DefaultExcludes: pickBool(flagDefaultExcludes, local.DefaultExcludes, global.DefaultExcludes),
			IncludeHidden:   pickBool(flagIncludeHidden, local.IncludeHidden, global.IncludeHidden),
			Self:            selfPath(),
			Catalog:         catalog,
		},
		format:         format,
		noColor:        pickBool(flagNoColor, local.NoColor, global.NoColor),
		baseline:       pickString(flagBaseline, local.Baseline, global.Baseline),
		failOnFindings: pickBool(flagFailOnFindings, local.FailOnFindings, global.FailOnFindings),
	}, nil
}

// scanAndReport runs the scan and writes the report. Text output carries all
// status lines on out; machine formats keep out clean and send status to
// errOut. The returned code is the desired exit status.
func scanAndReport(out, errOut io.Writer, opts scanOptions) (int, error) {
	status := out
	if opts.format != "text" {
		status = errOut
	}
	popts := report.PrintOptions{NoColor: opts.noColor || !isTerminal(status)}

	cfg := opts.engine
	abs, err := filepath.Abs(cfg.Root)
	if err != nil {
		abs = cfg.Root
	}
	report.PrintScanning(status, abs)

	ctx := context.Background()
	files, err := engine.CollectTargets(ctx, cfg)
	if err != nil {
		return 0, fmt.Errorf("collect targets: %w", err)
	}
	if len(files) == 0 {
		globs := engine.GlobList(cfg.IncludeGlobs)
		if len(globs) == 0 {
			globs = engine.GlobList(engine.DefaultIncludeGlobs)
		}
		report.PrintNoFiles(status, globs, popts)
		if opts.format != "text" {
			return 0, writeMachine(out, nil, opts)
		}
		return 0, nil
	}
	report.PrintFileCount(status, len(files))

	cfg.OnFileError = func(p string, err error) {
		report.PrintFileError(errOut, p, err)
	}
	res, err := engine.ScanTargets(ctx, cfg, files)
	if err != nil {
		return 0, fmt.Errorf("scan error: %w", err)
	}
	logging.Logger.Debugw("scan finished", "files", len(files), "failed", res.Failed(), "findings", len(res.Findings), "duration", res.Duration)

	findings := res.Findings
	if opts.baseline != "" {
		base, err := report.LoadBaseline(opts.baseline)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return 0, err
		}
		findings = report.FilterNewFindings(findings, base)
	}
	popts.FilesScanned = len(files)

	switch opts.format {
	case "table":
		if err := report.PrintTable(out, findings, popts); err != nil {
			return 0, err
		}
	case "json", "sarif":
		if err := writeMachine(out, findings, opts); err != nil {
			return 0, err
		}
	default:
		report.PrintText(out, findings, popts)
	}

	if opts.failOnFindings && len(findings) > 0 {
		return 1, nil
	}
	return 0, nil
}

func writeMachine(out io.Writer, findings []types.Finding, opts scanOptions) error {
	if opts.format == "sarif" {
		if err := report.WriteSARIF(out, findings, opts.engine.Catalog, version); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
		return nil
	}
	return report.WriteJSON(out, findings)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
