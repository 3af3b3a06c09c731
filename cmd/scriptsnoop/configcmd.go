package scriptsnoop

import (
	"fmt"
	"os"
	"strings"

	"github.com/scriptsnoop/scriptsnoop/internal/config"
	"github.com/scriptsnoop/scriptsnoop/internal/engine"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgOutput          string
	cfgInclude         string
	cfgFormat          string
	cfgDefaultExcludes bool
	cfgForce           bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .scriptsnoop.yml with the current defaults",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".scriptsnoop.yml", "output file path")
	initCmd.Flags().StringVar(&cfgInclude, "include", engine.DefaultIncludeGlobs, "comma-separated include globs")
	initCmd.Flags().StringVar(&cfgFormat, "format", "text", "default output format")
	initCmd.Flags().BoolVar(&cfgDefaultExcludes, "default-excludes", true, "skip vendored and generated code")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if !formats[cfgFormat] {
		return fmt.Errorf("unknown format %q", cfgFormat)
	}
	if _, err := os.Stat(cfgOutput); err == nil && !cfgForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
	}
	fc := config.FileConfig{
		Include:         engine.GlobList(strings.TrimSpace(cfgInclude)),
		DefaultExcludes: boolPtr(cfgDefaultExcludes),
		Format:          strPtr(cfgFormat),
	}
	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func strPtr(s string) *string { return &s }
func boolPtr(v bool) *bool    { return &v }
