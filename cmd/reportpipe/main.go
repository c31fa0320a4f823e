// Package main provides the entry point for the reportpipe CLI.
//
// reportpipe generates business reports from structured payloads and
// delivers them through pluggable channels (email, download, cloud).
//
// Usage:
//
//	reportpipe generate --type sales --input payload.json
//	reportpipe history --type sales
//
// See --help for all available options.
package main

// main is the entry point for reportpipe.
func main() {
	Execute()
}
