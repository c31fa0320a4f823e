package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/reportpipe/reportpipe/internal/model"
)

// DefaultBatchConcurrency is the number of report requests a BatchRunner
// processes simultaneously unless WithConcurrency overrides it.
const DefaultBatchConcurrency = 4

// Request describes one report to produce in a batch run: which generator,
// formatter, and delivery channel to use (by registry tag) and the payload
// to generate from.
type Request struct {
	// Type is the generator registry tag, e.g. "sales".
	Type string

	// Payload is the input data handed to the generator.
	Payload map[string]any

	// Format is the formatter registry tag, e.g. "pdf".
	Format string

	// Channel is the delivery registry tag, e.g. "email".
	Channel string
}

// Result pairs a Request with its outcome. Exactly one of Report and Err is
// meaningful: on success Report is the delivered report and Err is nil, on
// failure Report may still hold the rendered report if delivery was the
// stage that failed.
type Result struct {
	// Request is the request this result belongs to.
	Request Request

	// Report is the produced report, when one was produced.
	Report model.Report

	// Err is the failure for this request, if any.
	Err error
}

// RunFunc executes a single report request end to end. The orchestrating
// service provides its GenerateReport method here; the indirection keeps
// this package free of a dependency on the service that drives it.
type RunFunc func(ctx context.Context, req Request) (model.Report, error)

// BatchRunner executes many report requests concurrently through one
// RunFunc. It uses errgroup to manage goroutines and respect the
// concurrency limit.
//
// Design decision: We use a separate BatchRunner rather than adding batch
// functionality to the Builder because:
// 1. It keeps the Builder focused on single-run execution
// 2. It allows different batch strategies (e.g., rate limiting) later
// 3. It provides cleaner separation of concerns
type BatchRunner struct {
	// run executes one request. Called once per request, possibly from
	// several goroutines at a time.
	run RunFunc

	// concurrency is the maximum number of simultaneous runs.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchRunner.
type BatchOption func(*BatchRunner)

// WithBatchLogger sets a custom logger for batch runs.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(br *BatchRunner) {
		br.logger = logger
	}
}

// WithConcurrency sets the maximum number of simultaneous runs.
// Values below one are ignored and DefaultBatchConcurrency applies.
func WithConcurrency(n int) BatchOption {
	return func(br *BatchRunner) {
		if n > 0 {
			br.concurrency = n
		}
	}
}

// NewBatchRunner creates a BatchRunner that executes requests through run.
func NewBatchRunner(run RunFunc, opts ...BatchOption) *BatchRunner {
	br := &BatchRunner{
		run:         run,
		concurrency: DefaultBatchConcurrency,
	}

	for _, opt := range opts {
		opt(br)
	}

	if br.logger == nil {
		br.logger = slog.Default()
	}

	return br
}

// Run executes all requests and returns one Result per request, in the same
// order as the input slice.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each request gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// A failed request does not abort its siblings; the failure is captured in
// its Result. The returned error is non-nil only when the batch itself was
// cancelled through the context.
func (br *BatchRunner) Run(ctx context.Context, requests []Request) ([]Result, error) {
	br.logger.Info("starting batch run",
		"total_requests", len(requests),
		"concurrency", br.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate the results slice so each goroutine writes its own
	// index and input order is preserved.
	results := make([]Result, len(requests))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(br.concurrency)

	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			// Check for cancellation before starting
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report, err := br.run(ctx, req)
			results[i] = Result{Request: req, Report: report, Err: err}

			if err != nil {
				br.logger.Warn("batch request failed",
					"type", req.Type,
					"index", i,
					"error", err,
				)
				// Don't return the error to the errgroup; sibling
				// requests should still run.
				return nil
			}

			br.logger.Debug("batch request completed",
				"type", req.Type,
				"index", i,
				"report_id", report.ID(),
			)
			return nil
		})
	}

	err := g.Wait()

	br.logger.Info("batch run complete",
		"total_requests", len(requests),
		"elapsed", time.Since(startTime),
	)

	return results, err
}

// RunWithCallback executes all requests and calls the callback for each
// completed one. This is useful for streaming results as they finish.
//
// The callback receives the Result and the index of the request in the
// original slice. It is called from the goroutine that completed the run,
// so it must be safe for concurrent use if it touches shared state.
func (br *BatchRunner) RunWithCallback(
	ctx context.Context,
	requests []Request,
	callback func(result Result, index int),
) error {
	br.logger.Info("starting batch run with callback",
		"total_requests", len(requests),
		"concurrency", br.concurrency,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(br.concurrency)

	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			report, err := br.run(ctx, req)
			callback(Result{Request: req, Report: report, Err: err}, i)

			return nil
		})
	}

	return g.Wait()
}
