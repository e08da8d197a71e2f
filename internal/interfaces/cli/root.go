// Package cli implements the wellnodal command-line tool: the API server,
// offline geometry merging for design files, and database migration
// management.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wellnodal",
		Short: "WellNodal API server, wellbore geometry tools, and database administration",
		Long: "WellNodal is the production-engineering dashboard backend for nodal analysis.\n" +
			"This CLI runs the API server, merges wellbore design files into engine-ready\n" +
			"segment stacks offline, and manages the PostgreSQL schema.",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newServeCommand(),
		newGeometryCommand(),
		newMigrateCommand(),
		newVersionCommand(),
	)
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "wellnodal %s\ncommit:  %s\nbuilt:   %s\n",
				Version, GitCommit, BuildDate)
		},
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
