package delivery

import "errors"

// Delivery errors.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances at each call site. This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Failed deliveries wrap BOTH ErrDelivery and the
// collaborator's own error, so callers can branch on either.
var (
	// ErrUnknownChannel is returned when a channel tag has no registered
	// delivery strategy. The wrapped message names the tag.
	ErrUnknownChannel = errors.New("unknown delivery channel")

	// ErrDelivery is returned when a channel's collaborator rejects the
	// report. The wrapped message carries the channel and the cause.
	ErrDelivery = errors.New("delivery failed")
)
