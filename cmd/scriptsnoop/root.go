package scriptsnoop

import (
	"fmt"
	"os"

	"github.com/scriptsnoop/scriptsnoop/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagNoColor bool
	flagDebug   bool
	flagConfig  string

	version = "0.1.0"

	// exitFunc is swapped in tests.
	exitFunc = os.Exit
)

// rootCmd is the base Cobra command for the scriptsnoop CLI.
var rootCmd = &cobra.Command{
	Use:           "scriptsnoop",
	Short:         "Flag risky commands in scripts",
	Long:          "scriptsnoop scans a directory tree of scripts (.py, .sh, .bat by default) and reports lines matching risky patterns such as rm -rf, curl | bash and chmod 777.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return logging.InitLogger(flagDebug)
	},
}

// Execute runs the scriptsnoop CLI. It should be called by the main package.
func Execute() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		logging.Sync()
		exitFunc(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: .scriptsnoop.yml in the scan root, then ~/.config/scriptsnoop/config.yml)")
	rootCmd.Version = version
}
