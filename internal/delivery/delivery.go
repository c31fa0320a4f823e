package delivery

import (
	"context"

	"github.com/reportpipe/reportpipe/internal/model"
)

// Strategy defines the interface that all delivery channels must implement.
// A strategy owns the routing for one channel: it derives the destination
// (recipient, path, object key) from its configuration and the report, and
// hands the content to its collaborator exactly once.
//
// Design decision: We use an interface rather than function types because:
// 1. It allows channels to carry configuration state (recipient, directory,
//    key prefix) and their injected collaborator
// 2. It provides a Name() method for logging and ledger bookkeeping
// 3. It keeps custom channels registered at runtime on equal footing with
//    the built-in ones
type Strategy interface {
	// Deliver hands the rendered report to the channel. Returns an error
	// wrapping ErrDelivery if the collaborator rejects it. No retries.
	Deliver(ctx context.Context, report model.Report) error

	// Name returns the channel tag the strategy is registered under.
	Name() string
}

// EmailTransport is the collaborator behind the email channel. Production
// implementations speak SMTP or an email API; the pipeline only ever sees
// this interface.
type EmailTransport interface {
	// Send delivers the content to the recipient address.
	Send(ctx context.Context, recipient, content string) error
}

// FileSystem is the collaborator behind the download channel.
type FileSystem interface {
	// WriteFile persists data at path, creating parent directories as
	// needed.
	WriteFile(path string, data []byte) error
}

// CloudClient is the collaborator behind the cloud channel. Production
// implementations wrap a blob store SDK; the pipeline only ever sees this
// interface.
type CloudClient interface {
	// Upload stores data under the given object key.
	Upload(ctx context.Context, key string, data []byte) error
}

// fileExtension maps a format tag to the file extension used for download
// filenames and cloud object keys. Unknown tags are used as-is so custom
// formatters get a sensible extension without registering one.
func fileExtension(format string) string {
	switch format {
	case "pdf":
		return "pdf"
	case "excel":
		return "xlsx"
	case "html":
		return "html"
	case "markdown":
		return "md"
	case model.FormatRaw:
		return "txt"
	default:
		return format
	}
}
