package main

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"acgarden/pkg/config"
	"acgarden/pkg/ui"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in your editor",
	Long: `Open ~/.ac-garden/config.json in $EDITOR, falling back to the
platform opener. The config file is created first if it does not exist.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.Init(false)
		if err != nil {
			ui.PrintError("Failed to initialize config", err.Error())
			os.Exit(1)
		}

		if err := openEditor(path); err != nil {
			ui.PrintError("Failed to open editor", err.Error())
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}

// openEditor opens path in $EDITOR, or hands it to the platform opener
// when no editor is configured
func openEditor(path string) error {
	if editor := os.Getenv("EDITOR"); editor != "" {
		cmd := exec.Command(editor, path)
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}
