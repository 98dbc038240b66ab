package cmd

import (
	"github.com/spf13/cobra"
)

// consoleCmd groups the interactive terminal consoles.
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interactive terminal consoles",
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
