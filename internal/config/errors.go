package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoReportType is returned when no report type is specified.
	// This error occurs when the --type flag is missing and the config
	// file provides no default.
	ErrNoReportType = errors.New("no report type specified: use --type")

	// ErrNoFormat is returned when the output format is empty.
	// The format has a default, so this only happens when it was
	// explicitly cleared.
	ErrNoFormat = errors.New("no output format specified: use --format")

	// ErrNoChannel is returned when the delivery channel is empty.
	ErrNoChannel = errors.New("no delivery channel specified: use --deliver")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no concurrent runs, effectively
	// stopping report generation.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrNoRecipient is returned when the email channel is selected
	// without a destination address.
	ErrNoRecipient = errors.New("email delivery requires a recipient: use --to or set one in .reportpipe")

	// ErrNoDownloadDir is returned when the download channel is selected
	// with an empty target directory.
	ErrNoDownloadDir = errors.New("download delivery requires a directory: use --dir")

	// ErrNoDataDir is returned when history archiving is enabled without
	// a directory for the database file.
	ErrNoDataDir = errors.New("history archiving requires a data directory: use --data-dir or --no-history")
)
