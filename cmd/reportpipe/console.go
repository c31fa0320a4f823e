package main

import (
	"context"
	"fmt"
	"io"
)

// consoleTransport narrates email deliveries on the console instead of
// speaking SMTP. It satisfies delivery.EmailTransport, so swapping in a
// real transport later changes nothing in the pipeline.
type consoleTransport struct {
	out io.Writer
}

// newConsoleTransport creates a transport writing its narration to out.
func newConsoleTransport(out io.Writer) *consoleTransport {
	return &consoleTransport{out: out}
}

// Send prints a delivery line for the report instead of sending mail.
func (t *consoleTransport) Send(ctx context.Context, recipient, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(t.out, "Sending report to %s (%d bytes)...\n", recipient, len(content))
	return err
}

// consoleCloud narrates blob uploads on the console instead of talking to
// a cloud SDK. It satisfies delivery.CloudClient.
type consoleCloud struct {
	out io.Writer
}

// newConsoleCloud creates a cloud client writing its narration to out.
func newConsoleCloud(out io.Writer) *consoleCloud {
	return &consoleCloud{out: out}
}

// Upload prints an upload line for the object instead of storing it.
func (c *consoleCloud) Upload(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(c.out, "Uploading %s (%d bytes)...\n", key, len(data))
	return err
}
