package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/reportpipe/reportpipe/internal/delivery"
	"github.com/reportpipe/reportpipe/internal/format"
	"github.com/reportpipe/reportpipe/internal/generator"
	"github.com/reportpipe/reportpipe/internal/ledger"
	"github.com/reportpipe/reportpipe/internal/model"
	"github.com/reportpipe/reportpipe/internal/pipeline"
)

// Archiver persists history entries outside the process. The SQLite
// HistoryDB satisfies this; tests substitute a recording fake.
//
// Archive writes are best-effort: the Service logs failures and moves on,
// because a broken archive must not fail deliveries that already happened.
type Archiver interface {
	SaveEntry(ctx context.Context, entry model.HistoryEntry) error
}

// Service orchestrates report generation. It owns the capability
// registries, the history ledger, and the optional archive, and runs one
// pipeline per GenerateReport call.
//
// A Service is safe for concurrent use: registries are read-locked during
// lookups and the ledger serializes appends.
type Service struct {
	// generators maps report type tags to generators.
	generators *generator.Registry

	// formatters maps format tags to formatters.
	formatters *format.Registry

	// deliverers maps channel tags to delivery strategies. Empty by
	// default; channels need collaborators, so callers register them.
	deliverers *delivery.Registry

	// history is the append-only in-memory ledger of completed runs.
	history ledger.Ledger

	// archive optionally mirrors ledger entries to durable storage.
	archive Archiver

	// recordFailedDeliveries adds failed delivery attempts to the ledger.
	recordFailedDeliveries bool

	// now provides outcome timestamps. Injectable for tests.
	now func() time.Time

	// logger is used for structured logging.
	logger *slog.Logger
}

// Option is a function that configures a Service.
type Option func(*Service)

// WithGenerators replaces the generator registry.
// The default carries the built-in sales, inventory, and financial generators.
func WithGenerators(r *generator.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.generators = r
		}
	}
}

// WithFormatters replaces the formatter registry.
// The default carries the built-in pdf, excel, html, and markdown formatters.
func WithFormatters(r *format.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.formatters = r
		}
	}
}

// WithDeliverers replaces the delivery registry.
func WithDeliverers(r *delivery.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.deliverers = r
		}
	}
}

// WithLedger replaces the in-memory history ledger.
func WithLedger(l ledger.Ledger) Option {
	return func(s *Service) {
		if l != nil {
			s.history = l
		}
	}
}

// WithArchive sets the durable history archive. Without one, history
// lives only in memory.
func WithArchive(a Archiver) Option {
	return func(s *Service) {
		s.archive = a
	}
}

// WithRecordFailedDeliveries controls whether failed delivery attempts are
// appended to the ledger with a failed outcome. Off by default: the ledger
// then only ever contains reports that reached their destination.
func WithRecordFailedDeliveries(record bool) Option {
	return func(s *Service) {
		s.recordFailedDeliveries = record
	}
}

// WithClock sets the time source for outcome timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service and its pipelines.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Service with the given options. Defaults: built-in
// generator and formatter registries, an empty delivery registry, a fresh
// in-memory ledger, no archive, and slog.Default() for logging.
func New(opts ...Option) *Service {
	s := &Service{
		generators: generator.DefaultRegistry(),
		formatters: format.DefaultRegistry(),
		deliverers: delivery.NewRegistry(),
		history:    ledger.NewMemory(),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// Generators returns the generator registry for setup-time registration.
func (s *Service) Generators() *generator.Registry {
	return s.generators
}

// Formatters returns the formatter registry for setup-time registration.
func (s *Service) Formatters() *format.Registry {
	return s.formatters
}

// Deliverers returns the delivery registry for setup-time registration.
func (s *Service) Deliverers() *delivery.Registry {
	return s.deliverers
}

// GenerateReport runs one full pipeline: resolve the three capability tags,
// generate the report from the payload, render it, deliver it, and record
// the outcome.
//
// Registry misses (unknown type, format, or channel) fail before any
// generator logic runs. Stage errors propagate with their sentinel identity
// intact; on delivery failure the rendered report is returned alongside the
// error.
func (s *Service) GenerateReport(ctx context.Context, reportType string, payload map[string]any, formatTag, channelTag string) (model.Report, error) {
	// Resolve everything up front so a bad tag costs nothing
	gen, err := s.generators.Create(reportType)
	if err != nil {
		return model.Report{}, err
	}
	formatter, err := s.formatters.Create(formatTag)
	if err != nil {
		return model.Report{}, err
	}
	strategy, err := s.deliverers.Create(channelTag)
	if err != nil {
		return model.Report{}, err
	}

	report, err := pipeline.New(pipeline.WithLogger(s.logger)).
		Generator(gen).
		Formatter(formatter).
		Deliverer(strategy).
		Payload(payload).
		Build(ctx)
	if err != nil {
		// Only delivery failures leave a report behind; recording them
		// is an explicit policy choice.
		if s.recordFailedDeliveries && errors.Is(err, delivery.ErrDelivery) && !report.IsZero() {
			s.record(ctx, model.NewHistoryEntry(report, channelTag, model.FailedOutcome(err, s.now())))
		}
		return report, err
	}

	s.record(ctx, model.NewHistoryEntry(report, channelTag, model.SucceededOutcome(s.now())))
	return report, nil
}

// Run executes one batch request. Its signature matches
// pipeline.RunFunc, so a Service can drive a BatchRunner directly:
//
//	runner := pipeline.NewBatchRunner(svc.Run)
func (s *Service) Run(ctx context.Context, req pipeline.Request) (model.Report, error) {
	return s.GenerateReport(ctx, req.Type, req.Payload, req.Format, req.Channel)
}

// History returns a snapshot of the in-memory ledger in insertion order.
func (s *Service) History() []model.HistoryEntry {
	return s.history.Snapshot()
}

// record appends the entry to the ledger and mirrors it to the archive.
func (s *Service) record(ctx context.Context, entry model.HistoryEntry) {
	s.history.Append(entry)

	if s.archive == nil {
		return
	}
	if err := s.archive.SaveEntry(ctx, entry); err != nil {
		// Best-effort: the delivery already happened, so an archive
		// failure must not become a pipeline failure.
		s.logger.Warn("history archive write failed",
			"report_id", entry.Report.ID(),
			"error", err,
		)
	}
}
