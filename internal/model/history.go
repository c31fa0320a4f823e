package model

// HistoryEntry records one pipeline run in the history ledger: the report
// that was produced, the channel it went through, and how the delivery
// ended. Entries are value types; once appended to a ledger they are never
// modified.
type HistoryEntry struct {
	// Report is the delivered (or attempted) report.
	Report Report `json:"report"`

	// Channel is the registry tag of the delivery strategy that handled
	// the report ("email", "download", "cloud", ...).
	Channel string `json:"channel"`

	// Outcome describes how the delivery attempt ended.
	Outcome DeliveryOutcome `json:"outcome"`
}

// NewHistoryEntry builds a ledger entry for the given report and channel.
func NewHistoryEntry(report Report, channel string, outcome DeliveryOutcome) HistoryEntry {
	return HistoryEntry{
		Report:  report,
		Channel: channel,
		Outcome: outcome,
	}
}
