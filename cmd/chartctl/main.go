// Package main provides chartctl, a command line tool for chart files.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chartctl",
		Short: "Validate, format, render and generate rhythm game charts",
		Long: `chartctl works on manifest chart files: JSON arrays holding a header
followed by the shapes placed on the 15x15 grid.`,
		SilenceUsage: true,
	}
	rootCmd.AddCommand(
		newValidateCmd(),
		newFmtCmd(),
		newNewCmd(),
		newRenderCmd(),
		newAutoshapeCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
