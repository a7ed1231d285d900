// Package main provides the entry point for the pinormal CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hoyeonchoKMOU/IsPiNormalNumber/cmd/pinormal/commands"
	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "pinormal",
		Short: "Live pi digit generation with digit-uniformity statistics",
		Long: `pinormal streams the fractional decimal digits of pi from an
incrementally extended Chudnovsky series and tracks how uniformly the
ten digits appear.

Commands:
  run       Live terminal dashboard (default workflow)
  compute   One-shot digit computation
  plot      Render convergence history as an HTML page
  config    Manage the configuration file
  mcp       MCP server for AI agent integration`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewComputeCommand())
	rootCmd.AddCommand(commands.NewPlotCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "pinormal %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
