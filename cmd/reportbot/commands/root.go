package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the base command of the CLI.
var rootCmd = &cobra.Command{
	Use:   "reportbot",
	Short: "Generate periodic activity reports for a GitHub repository",
	Long: `reportbot pulls a repository's recent issues, pull requests and
discussions, scores the pull requests with an external review model, and
renders the result as a Markdown report. It can also publish a condensed
summary as an issue in a target repository.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
