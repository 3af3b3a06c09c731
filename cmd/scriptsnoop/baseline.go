package scriptsnoop

import (
	"context"
	"fmt"

	"github.com/scriptsnoop/scriptsnoop/internal/engine"
	"github.com/scriptsnoop/scriptsnoop/internal/report"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage baselines",
	}

	var output string
	update := &cobra.Command{
		Use:   "update [path]",
		Short: "Record the current findings so later scans only report new ones",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			root, err := normalizeTarget(target)
			if err != nil {
				return err
			}
			if err := engine.CheckRoot(root); err != nil {
				return err
			}
			opts, err := resolveOptions(root)
			if err != nil {
				return err
			}
			files, err := engine.CollectTargets(context.Background(), opts.engine)
			if err != nil {
				return err
			}
			res, err := engine.ScanTargets(context.Background(), opts.engine, files)
			if err != nil {
				return err
			}
			if err := report.SaveBaseline(output, res.Findings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated: %d findings written to %s\n", len(res.Findings), output)
			return nil
		},
	}
	update.Flags().StringVarP(&output, "output", "o", report.DefaultBaselineFile, "baseline file to write")

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(update)
}
