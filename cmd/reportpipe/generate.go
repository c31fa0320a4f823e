package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/reportpipe/reportpipe/internal/config"
	"github.com/reportpipe/reportpipe/internal/database"
	"github.com/reportpipe/reportpipe/internal/delivery"
	"github.com/reportpipe/reportpipe/internal/log"
	"github.com/reportpipe/reportpipe/internal/model"
	"github.com/reportpipe/reportpipe/internal/pipeline"
	"github.com/reportpipe/reportpipe/internal/service"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a report and deliver it through a channel",
		Long: `Generate produces a report from a structured payload and delivers it.

The payload is read from one or more --input files (JSON or YAML),
validated by the generator for the chosen report type, rendered by the
chosen formatter, and handed to the chosen delivery channel:
- email    prints a delivery narration for the configured recipient
- download writes the report into the download directory
- cloud    prints an upload narration for the computed object key

Every delivered report is recorded in the history ledger and archived
to a local SQLite database unless --no-history is set.

Examples:
  # Generate a sales report as PDF and save it under ./reports
  reportpipe generate --type sales --input q1.json

  # Email a financial report rendered as HTML
  reportpipe generate --type financial --format html --deliver email \
    --to cfo@example.com --input march.json

  # Generate several reports concurrently
  reportpipe generate --type sales --input q1.json --input q2.json \
    --input q3.json --batch 3

  # Print the full report as JSON instead of plain text
  reportpipe generate --type inventory --input stock.yaml --json

  # Use a custom configuration file
  reportpipe generate --type sales --input q1.json -c myconfig.yaml

Configuration file (.reportpipe) example:
  defaults:
    format: pdf
    channel: download
    downloadDir: ./reports
  types:
    financial:
      format: html
      channel: email
      recipient: cfo@example.com`,
		Args: cobra.NoArgs,
		RunE: runGenerateCmd,
	}

	// Report selection flags
	cmd.Flags().StringP("type", "t", "",
		"Report type to generate (sales, inventory, financial)")
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Output format (pdf, excel, html, markdown)")
	cmd.Flags().StringP("deliver", "d", config.DefaultChannel,
		"Delivery channel (email, download, cloud)")

	// Channel settings
	cmd.Flags().StringP("to", "r", "",
		"Recipient address for the email channel")
	cmd.Flags().StringP("dir", "D", config.DefaultDownloadDir,
		"Directory for the download channel")

	// Payload input flags
	cmd.Flags().StringArrayP("input", "i", nil,
		"Payload file (JSON or YAML); repeat for multiple reports")

	// Batch generation flags
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent report runs")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .reportpipe in current or home directory)")

	// Output flags
	cmd.Flags().BoolP("json", "j", false,
		"Print the full report as JSON instead of plain text")
	cmd.Flags().StringP("output", "o", "",
		"Write report output to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Skip the SQLite history archive for this run")
	cmd.Flags().String("data-dir", "",
		"Directory for the history archive (default: XDG data directory)")
	cmd.Flags().Bool("record-failed", false,
		"Record failed delivery attempts in the history ledger")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	// Build config from flags and the optional config file
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with credential redaction
	verbose := getVerboseFlag(cmd)
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runGenerate(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags and the optional
// configuration file. Explicit flags win over file settings, which win
// over built-in defaults.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	// Get flag values
	var err error

	cfg.ReportType, err = cmd.Flags().GetString("type")
	if err != nil {
		return nil, err
	}

	cfg.Format, err = cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}

	cfg.Channel, err = cmd.Flags().GetString("deliver")
	if err != nil {
		return nil, err
	}

	cfg.Recipient, err = cmd.Flags().GetString("to")
	if err != nil {
		return nil, err
	}

	cfg.DownloadDir, err = cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}

	cfg.Inputs, err = cmd.Flags().GetStringArray("input")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load type-specific configurations from config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.TypeConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		// User explicitly specified a config file that doesn't exist
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		// Use empty config if no file found and user didn't explicitly specify one
		cfg.TypeConfigs = &config.File{
			Types: make(map[string]config.TypeConfig),
		}
	}

	// File settings fill in whatever the user did not set on the command
	// line.
	applyTypeConfig(cmd, cfg)

	cfg.JSONOutput, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	dataDir, err := cmd.Flags().GetString("data-dir")
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	cfg.RecordFailedDeliveries, err = cmd.Flags().GetBool("record-failed")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyTypeConfig merges config file settings for the selected report type
// into cfg. Flags the user set explicitly are left alone.
func applyTypeConfig(cmd *cobra.Command, cfg *config.Config) {
	if cfg.TypeConfigs == nil {
		return
	}

	tc := cfg.TypeConfigs.GetTypeConfig(cfg.ReportType)

	if !cmd.Flags().Changed("format") && tc.Format != "" {
		cfg.Format = tc.Format
	}
	if !cmd.Flags().Changed("deliver") && tc.Channel != "" {
		cfg.Channel = tc.Channel
	}
	if !cmd.Flags().Changed("to") && tc.Recipient != "" {
		cfg.Recipient = tc.Recipient
	}
	if !cmd.Flags().Changed("dir") && tc.DownloadDir != "" {
		cfg.DownloadDir = tc.DownloadDir
	}
	if tc.CloudPrefix != "" {
		cfg.CloudPrefix = tc.CloudPrefix
	}
}

// setupLogger creates a redacting structured logger based on verbosity.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// runGenerate executes the report runs.
func runGenerate(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if len(cfg.Inputs) == 0 {
		return errors.New("no payload inputs provided (specify one or more --input files)")
	}

	logger.Info("starting report generation",
		"type", cfg.ReportType,
		"format", cfg.Format,
		"channel", cfg.Channel,
		"inputs", len(cfg.Inputs),
		"batchSize", cfg.BatchSize,
		"saveHistory", cfg.SaveHistory,
	)

	// Open the history archive if archiving is enabled
	var archive *database.HistoryDB
	if cfg.SaveHistory {
		var err error
		archive, err = database.Open(cfg.DataDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history archive: %w", err)
		}
		defer archive.Close()
		logger.Info("history archive opened", "dir", cfg.DataDir)
	}

	svc, err := newService(cfg, archive, logger)
	if err != nil {
		return err
	}

	// Decode all payloads up front so a malformed file fails the run
	// before anything is generated or delivered.
	payloads := make([]map[string]any, 0, len(cfg.Inputs))
	for _, path := range cfg.Inputs {
		payload, err := loadPayload(path)
		if err != nil {
			return err
		}
		payloads = append(payloads, payload)
	}

	// Use the batch runner for parallel generation if multiple payloads
	if len(payloads) > 1 && cfg.BatchSize > 1 {
		return runBatchGenerate(ctx, cfg, svc, payloads, logger)
	}

	// Single payload or sequential generation
	return runSequentialGenerate(ctx, cfg, svc, payloads, logger)
}

// newService builds the orchestrator and registers the delivery channels
// the CLI supports. Download uses the real filesystem; email and cloud use
// console collaborators that narrate the delivery.
func newService(cfg *config.Config, archive *database.HistoryDB, logger *slog.Logger) (*service.Service, error) {
	opts := []service.Option{
		service.WithLogger(logger),
		service.WithRecordFailedDeliveries(cfg.RecordFailedDeliveries),
	}
	if archive != nil {
		opts = append(opts, service.WithArchive(archive))
	}

	svc := service.New(opts...)

	channels := map[string]delivery.Strategy{
		delivery.ChannelDownload: delivery.NewDownload(delivery.NewOSFileSystem(), cfg.DownloadDir),
		delivery.ChannelEmail:    delivery.NewEmail(newConsoleTransport(os.Stdout), cfg.Recipient),
		delivery.ChannelCloud:    delivery.NewCloud(newConsoleCloud(os.Stdout), cfg.CloudPrefix),
	}
	for tag, strategy := range channels {
		if err := svc.Deliverers().Register(tag, strategy); err != nil {
			return nil, fmt.Errorf("failed to register %s channel: %w", tag, err)
		}
	}

	return svc, nil
}

// loadPayload reads and decodes a payload file. The extension selects the
// decoder.
func loadPayload(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Payload path comes from the user's own flag
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file %s: %w", path, err)
	}

	payload := make(map[string]any)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("failed to parse payload file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("failed to parse payload file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported payload file extension %q (use .json, .yaml, or .yml)", filepath.Ext(path))
	}

	return payload, nil
}

// runSequentialGenerate runs the payloads one at a time.
func runSequentialGenerate(ctx context.Context, cfg *config.Config, svc *service.Service, payloads []map[string]any, logger *slog.Logger) error {
	for i, payload := range payloads {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		fmt.Printf("Generating %s report (%d/%d)...\n", cfg.ReportType, i+1, len(payloads))
		startTime := time.Now()

		report, err := svc.GenerateReport(ctx, cfg.ReportType, payload, cfg.Format, cfg.Channel)
		if err != nil {
			logger.Error("report run failed", "input", cfg.Inputs[i], "error", err)
			fmt.Fprintf(os.Stderr, "Report error for %s: %v\n", cfg.Inputs[i], err)
			continue
		}

		elapsed := time.Since(startTime)

		if err := outputReport(cfg, report); err != nil {
			logger.Error("report output failed", "input", cfg.Inputs[i], "error", err)
		}

		fmt.Printf("Report %s delivered via %s in %s\n\n",
			report.ID(), cfg.Channel, elapsed.Round(time.Millisecond))
	}

	return nil
}

// runBatchGenerate runs multiple payloads concurrently using BatchRunner.
func runBatchGenerate(ctx context.Context, cfg *config.Config, svc *service.Service, payloads []map[string]any, logger *slog.Logger) error {
	fmt.Printf("Starting batch generation of %d reports (concurrency: %d)...\n\n",
		len(payloads), cfg.BatchSize)

	startTime := time.Now()

	requests := make([]pipeline.Request, 0, len(payloads))
	for _, payload := range payloads {
		requests = append(requests, pipeline.Request{
			Type:    cfg.ReportType,
			Payload: payload,
			Format:  cfg.Format,
			Channel: cfg.Channel,
		})
	}

	runner := pipeline.NewBatchRunner(svc.Run,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)

	// Process with callback for streaming output
	var mu sync.Mutex
	err := runner.RunWithCallback(ctx, requests, func(result pipeline.Result, index int) {
		mu.Lock()
		defer mu.Unlock()

		if result.Err != nil {
			logger.Error("report run failed", "input", cfg.Inputs[index], "error", result.Err)
			fmt.Fprintf(os.Stderr, "Report error for %s: %v\n", cfg.Inputs[index], result.Err)
			return
		}

		fmt.Printf("[%d/%d] Report %s delivered via %s\n",
			index+1, len(requests), result.Report.ID(), cfg.Channel)

		if err := outputReport(cfg, result.Report); err != nil {
			logger.Error("report output failed", "input", cfg.Inputs[index], "error", err)
		}
	})

	elapsed := time.Since(startTime)
	fmt.Printf("\nBatch generation completed in %s\n", elapsed.Round(time.Millisecond))

	return err
}

// outputReport prints the rendered report in the requested format.
func outputReport(cfg *config.Config, report model.Report) error {
	// Determine output destination
	var output *os.File
	if cfg.OutputFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.OutputFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Create/overwrite the output file with secure permissions (0600)
		// Reports may contain sensitive business data that should only be
		// readable by the owner
		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	// JSON output (full report with id, metadata, and timestamps)
	if cfg.JSONOutput {
		encoder := json.NewEncoder(output)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	// Rendered content (default)
	_, err := fmt.Fprintln(output, report.Content())
	return err
}
