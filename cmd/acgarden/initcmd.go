package main

import (
	"os"

	"github.com/spf13/cobra"

	"acgarden/pkg/config"
	"acgarden/pkg/ui"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file skeleton",
	Long: `Create ~/.ac-garden/config.json with empty service settings. Fill in
repository_path, user_id and user_email before running 'acgarden archive'.
An existing config file is kept unless --force is given.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.Init(initForce)
		if err != nil {
			ui.PrintError("Failed to initialize config", err.Error())
			os.Exit(1)
		}
		ui.PrintInfo("Config file", path)
		ui.PrintSuccess("Config initialized")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "recreate the config file even if it exists")
}
