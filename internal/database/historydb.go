package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/reportpipe/reportpipe/internal/model"
)

// HistoryDB provides SQLite-based storage for report delivery history.
// It manages connection pooling and provides methods for saving and
// querying archived entries.
//
// Design decision: We use a single database file for all report types
// rather than one file per type. This keeps cross-type queries (recent
// activity, per-type counts) trivial and simplifies backup.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "reportpipe.db")

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s (use CreateIfNotExists option to create)", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	// SQLite doesn't benefit from multiple connections for writes,
	// but multiple readers can improve performance
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Create tables
	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// Path returns the path of the underlying database file.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- History rows store one delivery attempt per report
	CREATE TABLE IF NOT EXISTS report_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_id TEXT NOT NULL,
		report_type TEXT NOT NULL,
		report_format TEXT NOT NULL,
		channel TEXT NOT NULL,
		delivered INTEGER NOT NULL,
		delivery_error TEXT,
		created_at DATETIME NOT NULL,
		completed_at DATETIME NOT NULL,
		content TEXT NOT NULL,
		metadata TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_history_type ON report_history(report_type);
	CREATE INDEX IF NOT EXISTS idx_history_created ON report_history(created_at);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// HistoryRecord represents a stored delivery attempt.
type HistoryRecord struct {
	// ID is the unique identifier of the row in the database.
	ID int64 `json:"id"`

	// ReportID is the report's UUID.
	ReportID string `json:"report_id"`

	// ReportType is the generator tag the report was produced with.
	ReportType string `json:"report_type"`

	// ReportFormat is the format tag the report was rendered into.
	ReportFormat string `json:"report_format"`

	// Channel is the delivery channel tag.
	Channel string `json:"channel"`

	// Delivered reports whether the delivery succeeded.
	Delivered bool `json:"delivered"`

	// DeliveryError holds the failure detail for failed deliveries.
	DeliveryError string `json:"delivery_error,omitempty"`

	// CreatedAt is when the report was generated.
	CreatedAt time.Time `json:"created_at"`

	// CompletedAt is when the delivery attempt finished.
	CompletedAt time.Time `json:"completed_at"`

	// Content is the rendered report content.
	Content string `json:"content"`

	// Metadata holds the report's key/value metadata.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// SaveEntry archives one history entry.
func (hdb *HistoryDB) SaveEntry(ctx context.Context, entry model.HistoryEntry) error {
	report := entry.Report

	metadataJSON, err := json.Marshal(report.Metadata())
	if err != nil {
		return fmt.Errorf("failed to serialize metadata: %w", err)
	}

	query := `
	INSERT INTO report_history (report_id, report_type, report_format, channel, delivered, delivery_error, created_at, completed_at, content, metadata)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = hdb.db.ExecContext(ctx, query,
		report.ID(),
		report.Type(),
		report.Format(),
		entry.Channel,
		entry.Outcome.Delivered(),
		entry.Outcome.Detail,
		report.CreatedAt().UTC().Format("2006-01-02 15:04:05"),
		entry.Outcome.CompletedAt.UTC().Format("2006-01-02 15:04:05"),
		report.Content(),
		string(metadataJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	return nil
}

// ListRecent returns the most recently created entries, newest first.
// A non-positive limit returns all entries.
func (hdb *HistoryDB) ListRecent(ctx context.Context, limit int) ([]HistoryRecord, error) {
	query := `
	SELECT id, report_id, report_type, report_format, channel, delivered, delivery_error, created_at, completed_at, content, metadata
	FROM report_history
	ORDER BY created_at DESC, id DESC
	`
	args := make([]any, 0, 1)

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListByType returns entries for one report type, newest first.
// A non-positive limit returns all matching entries.
func (hdb *HistoryDB) ListByType(ctx context.Context, reportType string, limit int) ([]HistoryRecord, error) {
	query := `
	SELECT id, report_id, report_type, report_format, channel, delivered, delivery_error, created_at, completed_at, content, metadata
	FROM report_history
	WHERE report_type = ?
	ORDER BY created_at DESC, id DESC
	`
	args := []any{reportType}

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history by type: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetByReportID returns the archived row for one report.
// Returns nil without error when the report is not archived.
func (hdb *HistoryDB) GetByReportID(ctx context.Context, reportID string) (*HistoryRecord, error) {
	query := `
	SELECT id, report_id, report_type, report_format, channel, delivered, delivery_error, created_at, completed_at, content, metadata
	FROM report_history
	WHERE report_id = ?
	ORDER BY id DESC
	LIMIT 1
	`

	record, err := scanRecord(hdb.db.QueryRowContext(ctx, query, reportID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history entry: %w", err)
	}

	return record, nil
}

// CountByType returns the number of archived entries per report type.
func (hdb *HistoryDB) CountByType(ctx context.Context) (map[string]int, error) {
	query := `
	SELECT report_type, COUNT(*)
	FROM report_history
	GROUP BY report_type
	`

	rows, err := hdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count history: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var reportType string
		var count int
		if err := rows.Scan(&reportType, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[reportType] = count
	}

	return counts, rows.Err()
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scanning code.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord scans one history row.
func scanRecord(scanner rowScanner) (*HistoryRecord, error) {
	var record HistoryRecord
	var delivered int
	var deliveryError sql.NullString
	var createdAt, completedAt string
	var metadataJSON sql.NullString

	err := scanner.Scan(
		&record.ID,
		&record.ReportID,
		&record.ReportType,
		&record.ReportFormat,
		&record.Channel,
		&delivered,
		&deliveryError,
		&createdAt,
		&completedAt,
		&record.Content,
		&metadataJSON,
	)
	if err != nil {
		return nil, err
	}

	record.Delivered = delivered != 0
	if deliveryError.Valid {
		record.DeliveryError = deliveryError.String
	}
	record.CreatedAt = parseTimestamp(createdAt)
	record.CompletedAt = parseTimestamp(completedAt)

	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &record.Metadata); err != nil {
			return nil, fmt.Errorf("failed to parse metadata: %w", err)
		}
	}

	return &record, nil
}

// scanRecords scans all rows of a history query.
func scanRecords(rows *sql.Rows) ([]HistoryRecord, error) {
	var records []HistoryRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	// Return zero time if no format matches
	return time.Time{}
}
