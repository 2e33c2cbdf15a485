package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"acgarden/pkg/archiver"
	"acgarden/pkg/config"
	"acgarden/pkg/logger"
	"acgarden/pkg/ui"
)

var (
	// Archive command flags
	repositoryPath string
	atcoderUser    string
	atcoderEmail   string
	throttleMillis int
)

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Archive newly accepted submissions",
	Long: `Fetch your submission history, pick the accepted submissions not yet
archived (newest solution per problem), download each one's source under a
rate limit and commit it to the configured repository.

The repository path, AtCoder user id and commit email come from the config
file (see 'acgarden init'); flags and ACGARDEN_* environment variables
override it.`,
	Example: `  # Archive using the configured settings
  acgarden archive

  # Override the repository and user for one run
  acgarden archive --repository ~/ac --user tourist`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runArchive()
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)

	archiveCmd.Flags().StringVarP(&repositoryPath, "repository", "r", "", "archive repository path")
	archiveCmd.Flags().StringVarP(&atcoderUser, "user", "u", "", "AtCoder user id")
	archiveCmd.Flags().StringVar(&atcoderEmail, "email", "", "commit author email")
	archiveCmd.Flags().IntVar(&throttleMillis, "throttle-ms", 0, "minimum gap between page requests in milliseconds")
}

func runArchive() {
	flags := make(map[string]interface{})
	if repositoryPath != "" {
		flags["repository"] = repositoryPath
	}
	if atcoderUser != "" {
		flags["user"] = atcoderUser
	}
	if atcoderEmail != "" {
		flags["email"] = atcoderEmail
	}
	if throttleMillis > 0 {
		flags["throttle-ms"] = throttleMillis
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		ui.PrintError("Invalid configuration", err.Error())
		fmt.Println("\nRun 'acgarden init' and fill in ~/.ac-garden/config.json,")
		fmt.Println("or pass --repository, --user and --email.")
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logging", err.Error())
		os.Exit(1)
	}
	logger.WithField("version", version).Info("ac-garden starting")

	ui.PrintInfo("User", cfg.AtCoder.UserID)
	ui.PrintInfo("Repository", cfg.AtCoder.RepositoryPath)

	stats, err := archiver.New(cfg).Run()
	if err != nil {
		logger.WithError(err).Error("archive run failed")
		ui.PrintError("ARCHIVE FAILED", err.Error())
		os.Exit(1)
	}

	if stats.Selected == 0 {
		ui.PrintSuccess("Nothing new to archive")
		return
	}
	ui.PrintSuccess(fmt.Sprintf("Archived %d solution(s), skipped %d, committed %d",
		stats.Archived, stats.Skipped, stats.Committed))
}
