// Package model defines the core data structures used throughout reportpipe.
//
// This package contains the following main types:
//   - Report: The immutable product of a single generation run
//   - HistoryEntry: One pipeline run recorded in the history ledger
//   - DeliveryOutcome: How a delivery attempt ended
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (generator, format, delivery, pipeline,
// ledger, service) need to use these types, so centralizing them prevents
// import cycles.
//
// The models are designed to be serializable to JSON for CLI output and
// database storage.
package model
