package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for spikekit
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spikekit",
		Short: "Utilities for neurophysiology recording files",
		Long: `Spikekit scans directories of recording files, loads the objects
they contain, and works with them in bulk: exporting into a single
hierarchical container store, and computing basic spike statistics.

Scanning supports extension, file-name and directory filters; exports
key every object by the path of the file it came from.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewExportCommand())
	cmd.AddCommand(NewStatsCommand())

	return cmd
}
