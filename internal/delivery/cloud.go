package delivery

import (
	"context"
	"fmt"
	"path"

	"github.com/reportpipe/reportpipe/internal/model"
)

// ChannelCloud is the registry tag of the cloud channel.
const ChannelCloud = "cloud"

// DefaultCloudPrefix is the object key prefix used when none is configured.
const DefaultCloudPrefix = "reports"

// Cloud delivers reports to a blob store through an injected CloudClient.
// Object keys follow the pattern <prefix>/<type>/<report-id>.<ext>, so one
// bucket can hold every report family with collision-free keys.
type Cloud struct {
	client CloudClient
	prefix string
}

// NewCloud creates a cloud channel uploading under the given key prefix.
// An empty prefix falls back to DefaultCloudPrefix. The client must be
// non-nil.
func NewCloud(client CloudClient, prefix string) *Cloud {
	if prefix == "" {
		prefix = DefaultCloudPrefix
	}
	return &Cloud{
		client: client,
		prefix: prefix,
	}
}

// Name returns the registry tag for the cloud channel.
func (d *Cloud) Name() string { return ChannelCloud }

// Key returns the object key the given report would be stored under.
func (d *Cloud) Key(report model.Report) string {
	name := report.ID() + "." + fileExtension(report.Format())
	return path.Join(d.prefix, report.Type(), name)
}

// Deliver uploads the report content under its object key.
func (d *Cloud) Deliver(ctx context.Context, report model.Report) error {
	if err := d.client.Upload(ctx, d.Key(report), []byte(report.Content())); err != nil {
		return fmt.Errorf("cloud channel: %w: %w", ErrDelivery, err)
	}
	return nil
}
