package model

import "time"

// DeliveryStatus represents how a delivery attempt ended.
//
// Design decision: We use iota-based constants rather than a bare bool so
// the history ledger and archive can grow additional states (for example a
// queued state) without a schema change, and so String() gives readable
// output in logs and CLI listings.
type DeliveryStatus int

const (
	// StatusDelivered indicates the channel accepted the report.
	StatusDelivered DeliveryStatus = iota

	// StatusFailed indicates the channel rejected the report or the
	// underlying transport reported an error.
	StatusFailed
)

// String returns a human-readable representation of the delivery status.
func (s DeliveryStatus) String() string {
	switch s {
	case StatusDelivered:
		return "DELIVERED"
	case StatusFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// DeliveryOutcome describes the result of one delivery attempt.
type DeliveryOutcome struct {
	// Status is the terminal state of the attempt.
	Status DeliveryStatus `json:"status"`

	// Detail carries the transport error text for failed attempts.
	// Empty on success.
	Detail string `json:"detail,omitempty"`

	// CompletedAt is when the attempt finished.
	CompletedAt time.Time `json:"completed_at"`
}

// SucceededOutcome returns the outcome of a delivery the channel accepted.
func SucceededOutcome(completedAt time.Time) DeliveryOutcome {
	return DeliveryOutcome{
		Status:      StatusDelivered,
		CompletedAt: completedAt,
	}
}

// FailedOutcome returns the outcome of a delivery that ended in err.
func FailedOutcome(err error, completedAt time.Time) DeliveryOutcome {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return DeliveryOutcome{
		Status:      StatusFailed,
		Detail:      detail,
		CompletedAt: completedAt,
	}
}

// Delivered reports whether the attempt succeeded.
func (o DeliveryOutcome) Delivered() bool {
	return o.Status == StatusDelivered
}
