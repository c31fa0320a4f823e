// Package log provides logging with automatic redaction of credential
// material, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic masking of sensitive values (passwords, tokens, API keys)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Redaction
//
// The RedactHandler masks sensitive information in log output:
//   - HTTP headers (Authorization, Cookie, X-Api-Key)
//   - Delivery collaborator credentials (SMTP passwords, cloud access keys)
//   - Secret values detected by pattern matching (bearer tokens, JWTs,
//     AWS-style key IDs, long opaque strings)
//
// Even in verbose mode, sensitive values are masked to prevent accidental
// exposure of secrets in logs that may be shared or stored.
//
// # Usage
//
//	// Create a redacting logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("delivery configured",
//	    "smtp_password", "hunter2",          // Will be masked
//	    "recipient", "reports@example.com",  // Left intact
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
