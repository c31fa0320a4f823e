package delivery

import (
	"context"
	"fmt"

	"github.com/reportpipe/reportpipe/internal/model"
)

// ChannelEmail is the registry tag of the email channel.
const ChannelEmail = "email"

// Email delivers reports to a configured recipient address through an
// injected EmailTransport.
type Email struct {
	transport EmailTransport
	recipient string
}

// NewEmail creates an email channel sending to recipient. The transport
// must be non-nil.
func NewEmail(transport EmailTransport, recipient string) *Email {
	return &Email{
		transport: transport,
		recipient: recipient,
	}
}

// Name returns the registry tag for the email channel.
func (d *Email) Name() string { return ChannelEmail }

// Recipient returns the configured destination address.
func (d *Email) Recipient() string { return d.recipient }

// Deliver sends the report content to the configured recipient.
func (d *Email) Deliver(ctx context.Context, report model.Report) error {
	if err := d.transport.Send(ctx, d.recipient, report.Content()); err != nil {
		return fmt.Errorf("email channel: %w: %w", ErrDelivery, err)
	}
	return nil
}
