package config

import (
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/reportpipe/reportpipe/internal/delivery"
)

// Default configuration values.
// These values match the built-in registries and the documented CLI
// defaults; anything here can be overridden per run or per report type.
const (
	// DefaultFormat is the output format used when none is requested.
	// PDF is the most commonly shared rendering, so it makes the best
	// out-of-the-box default.
	DefaultFormat = "pdf"

	// DefaultChannel is the delivery channel used when none is requested.
	// Download writes to the local filesystem and needs no collaborator
	// credentials, so it always works.
	DefaultChannel = "download"

	// DefaultDownloadDir is where the download channel writes report files.
	// A relative directory keeps generated files next to where the tool
	// was invoked instead of scattering them under the home directory.
	DefaultDownloadDir = "./reports"

	// DefaultCloudPrefix is the key prefix for cloud-delivered reports.
	DefaultCloudPrefix = "reports"

	// DefaultBatchSize of 4 concurrent pipeline runs balances throughput
	// with resource usage. Generation and formatting are cheap; the limit
	// mostly protects delivery collaborators from bursts.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "reportpipe"
)

// Config holds all configuration options for reportpipe.
// This struct is designed to be populated from CLI flags and the
// .reportpipe file and passed through the application via dependency
// injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., DeliveryConfig, ArchiveConfig) for simplicity. The number of
// options is manageable, and nesting would add complexity without
// significant benefit.
type Config struct {
	// ReportType is the generator tag to run, e.g. "sales".
	// Required for report generation.
	ReportType string

	// Format is the formatter tag for rendering, e.g. "pdf".
	Format string

	// Channel is the delivery channel tag, e.g. "download".
	Channel string

	// Recipient is the destination address for the email channel.
	// Required when Channel is "email", unused otherwise.
	Recipient string

	// DownloadDir is the directory the download channel writes into.
	// Created on first delivery if it does not exist.
	DownloadDir string

	// CloudPrefix is the object key prefix for the cloud channel.
	CloudPrefix string

	// DataDir is the directory for the SQLite history archive.
	// Defaults to the XDG data directory (~/.local/share/reportpipe on Linux).
	DataDir string

	// SaveHistory indicates whether delivered reports are archived to the
	// SQLite database in DataDir. The in-memory ledger is always kept.
	SaveHistory bool

	// BatchSize is the number of concurrent pipeline runs when processing
	// multiple payload files.
	BatchSize int

	// RecordFailedDeliveries makes failed delivery attempts appear in the
	// history ledger. By default only successful deliveries are recorded.
	RecordFailedDeliveries bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONOutput prints the produced report as JSON instead of the
	// rendered content. Useful for scripting.
	JSONOutput bool

	// OutputFile is an optional path to write the rendered report to,
	// in addition to the delivery channel.
	OutputFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .reportpipe in the current
	// directory, the home directory, and the XDG config directory.
	ConfigFilePath string

	// Inputs is the list of payload files to generate reports from.
	// At least one is required for report generation.
	Inputs []string

	// TypeConfigs holds per-report-type defaults loaded from the config
	// file. This is populated by LoadConfigFile.
	TypeConfigs *File
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use cases.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (format, channel, batch
// size). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Format:      DefaultFormat,
		Channel:     DefaultChannel,
		DownloadDir: DefaultDownloadDir,
		CloudPrefix: DefaultCloudPrefix,
		DataDir:     XDGDataDir(),
		SaveHistory: true,
		BatchSize:   DefaultBatchSize,
	}
}

// XDGDataDir returns the XDG data directory for reportpipe.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/reportpipe
// On macOS: ~/Library/Application Support/reportpipe
// On Windows: %LOCALAPPDATA%\reportpipe
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for reportpipe.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.config/reportpipe
// On macOS: ~/Library/Application Support/reportpipe
// On Windows: %APPDATA%\reportpipe
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any pipeline runs.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	// A report cannot be generated without knowing which generator to run
	if c.ReportType == "" {
		return ErrNoReportType
	}

	// Format and channel have defaults, so empty values mean they were
	// explicitly cleared
	if c.Format == "" {
		return ErrNoFormat
	}
	if c.Channel == "" {
		return ErrNoChannel
	}

	// BatchSize must be positive; zero would mean no pipeline runs
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	// The email channel cannot deliver without a destination
	if c.Channel == delivery.ChannelEmail && c.Recipient == "" {
		return ErrNoRecipient
	}

	// The download channel needs somewhere to write
	if c.Channel == delivery.ChannelDownload && c.DownloadDir == "" {
		return ErrNoDownloadDir
	}

	// Archiving needs a directory for the database file
	if c.SaveHistory && c.DataDir == "" {
		return ErrNoDataDir
	}

	return nil
}
