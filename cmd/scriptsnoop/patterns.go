package scriptsnoop

import (
	"fmt"
	"io"

	"github.com/scriptsnoop/scriptsnoop/internal/config"
	"github.com/scriptsnoop/scriptsnoop/internal/patterns"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List the risk patterns in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			local, global, err := loadConfigs(".")
			if err != nil {
				return err
			}
			catalog, err := patterns.Default(config.ExtraPatterns(local, global)...)
			if err != nil {
				return err
			}
			listPatterns(cmd.OutOrStdout(), catalog)
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}

func listPatterns(w io.Writer, catalog *patterns.Catalog) {
	for _, p := range catalog.Patterns() {
		fmt.Fprintf(w, "%-26s %s\n", p.ID, p.Label)
	}
}
