package delivery

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/reportpipe/reportpipe/internal/model"
)

// ChannelDownload is the registry tag of the download channel.
const ChannelDownload = "download"

// downloadTimestampLayout is the timestamp component of download filenames.
const downloadTimestampLayout = "20060102_150405"

// Download delivers reports as files under a local directory through an
// injected FileSystem. Filenames follow the pattern
// report_<type>_<timestamp>.<ext>; runs of the same type in the same
// second share a name and the later write wins.
type Download struct {
	fs  FileSystem
	dir string
	now func() time.Time
}

// DownloadOption configures a Download channel.
type DownloadOption func(*Download)

// WithDownloadClock sets the time source used for filename timestamps.
// If not set, time.Now is used.
func WithDownloadClock(now func() time.Time) DownloadOption {
	return func(d *Download) {
		d.now = now
	}
}

// NewDownload creates a download channel writing into dir. The filesystem
// must be non-nil.
func NewDownload(fs FileSystem, dir string, opts ...DownloadOption) *Download {
	d := &Download{
		fs:  fs,
		dir: dir,
		now: time.Now,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Name returns the registry tag for the download channel.
func (d *Download) Name() string { return ChannelDownload }

// Dir returns the configured download directory.
func (d *Download) Dir() string { return d.dir }

// Deliver writes the report content to a timestamped file in the download
// directory.
func (d *Download) Deliver(ctx context.Context, report model.Report) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("download channel: %w: %w", ErrDelivery, err)
	}

	name := fmt.Sprintf("report_%s_%s.%s",
		report.Type(),
		d.now().Format(downloadTimestampLayout),
		fileExtension(report.Format()),
	)
	path := filepath.Join(d.dir, name)

	if err := d.fs.WriteFile(path, []byte(report.Content())); err != nil {
		return fmt.Errorf("download channel: %w: %w", ErrDelivery, err)
	}
	return nil
}
