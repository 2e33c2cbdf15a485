package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"acgarden/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "acgarden",
	Short: "Archive your accepted AtCoder submissions into a git repository",
	Long: `ac-garden mirrors your accepted AtCoder submissions into a local
git repository, one commit per archived solution, with the commit author
and timestamp taken from the original submission.

Each solution lands at <repository>/atcoder.jp/<contest>/<problem>/ as a
source file named for its language plus a submission.json metadata record.
Re-running is safe: already archived problems are never touched again.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if quiet || logLevel == "error" {
			ui.SetQuietMode(true)
		}
		if cmd.Name() != "version" && cmd.Name() != "help" {
			ui.PrintLogo()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is ~/.ac-garden/config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")

	rootCmd.SetVersionTemplate(`ac-garden {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
