// Package main provides the entry point for the reportpipe CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for reportpipe.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reportpipe",
		Short: "Generate business reports and deliver them through pluggable channels",
		Long: `reportpipe generates business reports from structured payloads and
delivers them through pluggable channels.

Reports are produced by a type-specific generator (sales, inventory,
financial), rendered by a formatter (pdf, excel, html, markdown), and
handed to a delivery channel (email, download, cloud). Every delivered
report is recorded in a history ledger and, by default, archived to a
local SQLite database.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
