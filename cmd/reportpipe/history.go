package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/reportpipe/reportpipe/internal/config"
	"github.com/reportpipe/reportpipe/internal/database"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
// This command lists archived report runs from the SQLite history archive.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived report runs",
		Long: `History lists report runs recorded in the SQLite history archive.

Each archived run records the report's id, type, format, delivery
channel, delivery outcome, and timestamps. Runs are listed newest
first.

Examples:
  # List the most recent report runs
  reportpipe history

  # List only sales reports
  reportpipe history --type sales

  # List the last 5 runs
  reportpipe history --limit 5

  # Show how many reports of each type were archived
  reportpipe history --counts

  # Output the raw records as JSON
  reportpipe history --json

  # Read the archive from a non-default location
  reportpipe history --data-dir /var/lib/reportpipe`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	// Filter flags
	cmd.Flags().StringP("type", "t", "",
		"List only reports of this type")
	cmd.Flags().IntP("limit", "l", 20,
		"Maximum number of runs to list (0 lists all)")

	// Summary flags
	cmd.Flags().BoolP("counts", "C", false,
		"Show archived report counts per type instead of individual runs")

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output records in JSON format")

	// Archive location
	cmd.Flags().StringP("data-dir", "d", "",
		"Directory of the history archive (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	reportType, err := cmd.Flags().GetString("type")
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}

	counts, err := cmd.Flags().GetBool("counts")
	if err != nil {
		return err
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	dataDir, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		return err
	}
	if dataDir == "" {
		dataDir = config.XDGDataDir()
	}

	// Listing never creates a fresh archive; a missing database just means
	// nothing has been generated yet.
	db, err := database.Open(dataDir, database.Options{EnableWAL: true})
	if err != nil {
		if errors.Is(err, database.ErrDatabaseNotFound) {
			fmt.Println("No report history found.")
			fmt.Println("\nUse 'reportpipe generate' to generate and archive a report.")
			return nil
		}
		return fmt.Errorf("failed to open history archive: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Handle --counts flag
	if counts {
		return printHistoryCounts(ctx, db)
	}

	return printHistory(ctx, db, reportType, limit, jsonOutput)
}

// printHistoryCounts prints the number of archived reports per type.
func printHistoryCounts(ctx context.Context, db *database.HistoryDB) error {
	counts, err := db.CountByType(ctx)
	if err != nil {
		return fmt.Errorf("failed to count archived reports: %w", err)
	}

	if len(counts) == 0 {
		fmt.Println("No report history found.")
		fmt.Println("\nUse 'reportpipe generate' to generate and archive a report.")
		return nil
	}

	types := make([]string, 0, len(counts))
	total := 0
	for reportType, count := range counts {
		types = append(types, reportType)
		total += count
	}
	sort.Strings(types)

	fmt.Printf("Archived reports (%d):\n\n", total)
	for _, reportType := range types {
		fmt.Printf("  %-12s %d\n", reportType, counts[reportType])
	}
	fmt.Println("\nUse 'reportpipe history --type <type>' to list runs of one type.")

	return nil
}

// printHistory lists archived report runs, newest first.
func printHistory(ctx context.Context, db *database.HistoryDB, reportType string, limit int, jsonOutput bool) error {
	var records []database.HistoryRecord
	var err error

	if reportType != "" {
		records, err = db.ListByType(ctx, reportType, limit)
	} else {
		records, err = db.ListRecent(ctx, limit)
	}
	if err != nil {
		return fmt.Errorf("failed to list report history: %w", err)
	}

	if len(records) == 0 {
		if reportType != "" {
			fmt.Printf("No report history found for type %q\n", reportType)
		} else {
			fmt.Println("No report history found.")
		}
		fmt.Println("\nUse 'reportpipe generate' to generate and archive a report.")
		return nil
	}

	// JSON output
	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	}

	fmt.Printf("Report history (%d runs):\n\n", len(records))
	fmt.Printf("  %-6s  %-20s  %-10s  %-8s  %-8s  %s\n",
		"ID", "Created", "Type", "Format", "Channel", "Status")
	fmt.Println("  " + strings.Repeat("-", 70))

	for _, record := range records {
		fmt.Printf("  %-6d  %-20s  %-10s  %-8s  %-8s  %s\n",
			record.ID,
			record.CreatedAt.Format("2006-01-02 15:04:05"),
			record.ReportType,
			record.ReportFormat,
			record.Channel,
			formatStatus(record),
		)
	}

	fmt.Println("\nUse 'reportpipe history --json' to see the full records.")

	return nil
}

// formatStatus renders the delivery outcome of one archived run.
func formatStatus(record database.HistoryRecord) string {
	if record.Delivered {
		return "DELIVERED"
	}
	if record.DeliveryError != "" {
		return "FAILED (" + record.DeliveryError + ")"
	}
	return "FAILED"
}
