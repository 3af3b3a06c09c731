package scriptsnoop

import (
	"fmt"

	"github.com/scriptsnoop/scriptsnoop/internal/ignore"
	"github.com/spf13/cobra"
)

func init() {
	var root string
	cmd := &cobra.Command{
		Use:   "ignore <glob>...",
		Short: "Add globs to " + ignore.FileName,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := normalizeTarget(root)
			if err != nil {
				return err
			}
			for _, g := range args {
				if err := ignore.Append(dir, g); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", ignore.FileName)
			return nil
		},
	}
	cmd.Flags().StringVarP(&root, "path", "p", ".", "scan root holding the ignore file")
	rootCmd.AddCommand(cmd)
}
