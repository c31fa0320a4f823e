package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/reportpipe/reportpipe/internal/delivery"
	"github.com/reportpipe/reportpipe/internal/format"
	"github.com/reportpipe/reportpipe/internal/generator"
	"github.com/reportpipe/reportpipe/internal/model"
)

// Builder assembles one report pipeline run. Slots are filled through the
// fluent setters and validated together by Build, which then executes the
// fixed generate, format, deliver sequence exactly once.
//
// A Builder is single-use: after Build returns (successfully or not), further
// Build calls fail with ErrBuilderReused until Reset is called. Builders are
// not safe for concurrent use.
type Builder struct {
	// generator produces the report content from the payload.
	generator generator.Generator

	// formatter renders the generated content into an output format.
	formatter format.Formatter

	// deliverer sends the rendered report through a channel.
	deliverer delivery.Strategy

	// payload holds the input data handed to the generator. A nil payload
	// is a valid (if usually rejected) input, so payloadSet tracks whether
	// Payload was called at all.
	payload    map[string]any
	payloadSet bool

	// used marks a builder whose Build already ran.
	used bool

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Builder.
// This follows the functional options pattern for clean API design.
type Option func(*Builder)

// WithLogger sets a custom logger for the builder.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// New creates an empty Builder with the given options.
// Slots are filled afterwards using the fluent setters.
func New(opts ...Option) *Builder {
	b := &Builder{}

	// Apply options
	for _, opt := range opts {
		opt(b)
	}

	// Set default logger if not provided
	if b.logger == nil {
		b.logger = slog.Default()
	}

	return b
}

// Generator sets the generator slot and returns the builder for chaining.
func (b *Builder) Generator(gen generator.Generator) *Builder {
	b.generator = gen
	return b
}

// Formatter sets the formatter slot and returns the builder for chaining.
func (b *Builder) Formatter(f format.Formatter) *Builder {
	b.formatter = f
	return b
}

// Deliverer sets the delivery slot and returns the builder for chaining.
func (b *Builder) Deliverer(d delivery.Strategy) *Builder {
	b.deliverer = d
	return b
}

// Payload sets the generator input and returns the builder for chaining.
// Passing nil counts as configuring the slot; the generator decides whether
// nil input is acceptable.
func (b *Builder) Payload(payload map[string]any) *Builder {
	b.payload = payload
	b.payloadSet = true
	return b
}

// Reset clears every slot and the used flag so the builder can be
// configured and built again.
func (b *Builder) Reset() *Builder {
	b.generator = nil
	b.formatter = nil
	b.deliverer = nil
	b.payload = nil
	b.payloadSet = false
	b.used = false
	return b
}

// missingSlots returns the names of unconfigured slots in a fixed order.
func (b *Builder) missingSlots() []string {
	var missing []string
	if b.generator == nil {
		missing = append(missing, "generator")
	}
	if b.formatter == nil {
		missing = append(missing, "formatter")
	}
	if b.deliverer == nil {
		missing = append(missing, "deliverer")
	}
	if !b.payloadSet {
		missing = append(missing, "payload")
	}
	return missing
}

// Build validates the configuration and runs the pipeline: generate the
// report, render it with the formatter, deliver the rendered result.
//
// If any slot is missing, Build returns ErrIncompleteConfiguration with
// every missing slot named, and the builder stays reusable. Once execution
// starts the builder is consumed, even if a stage fails.
//
// Stage errors are returned as-is; the generator, format, and delivery
// packages already wrap their sentinel errors, so Build adds no wrapper of
// its own. On delivery failure the rendered report is returned alongside
// the error so callers can still inspect (or record) the attempted report.
//
// Design decision: We check context cancellation before each stage rather
// than during, because the delivery stage already takes the context and the
// generate and format stages are pure in-memory transformations. This keeps
// cancellation prompt without threading a context through code that never
// blocks.
func (b *Builder) Build(ctx context.Context) (model.Report, error) {
	if b.used {
		return model.Report{}, ErrBuilderReused
	}
	if missing := b.missingSlots(); len(missing) > 0 {
		return model.Report{}, fmt.Errorf("%w: missing %s", ErrIncompleteConfiguration, strings.Join(missing, ", "))
	}

	b.used = true
	start := time.Now()

	// Check for cancellation before generating
	if err := ctx.Err(); err != nil {
		b.logger.Warn("pipeline cancelled",
			"stage", "generate",
			"reason", err,
		)
		return model.Report{}, err
	}

	report, err := b.generator.Generate(b.payload)
	if err != nil {
		b.logger.Error("generation failed",
			"type", b.generator.Name(),
			"error", err,
		)
		return model.Report{}, err
	}
	b.logger.Debug("report generated",
		"type", b.generator.Name(),
		"report_id", report.ID(),
	)

	// Check for cancellation before formatting
	if err := ctx.Err(); err != nil {
		b.logger.Warn("pipeline cancelled",
			"stage", "format",
			"reason", err,
		)
		return model.Report{}, err
	}

	content, err := b.formatter.Format(report.Content())
	if err != nil {
		b.logger.Error("formatting failed",
			"format", b.formatter.Name(),
			"report_id", report.ID(),
			"error", err,
		)
		return model.Report{}, err
	}
	report = report.Rendered(b.formatter.Name(), content)
	b.logger.Debug("report formatted",
		"format", b.formatter.Name(),
		"report_id", report.ID(),
	)

	if err := b.deliverer.Deliver(ctx, report); err != nil {
		b.logger.Error("delivery failed",
			"channel", b.deliverer.Name(),
			"report_id", report.ID(),
			"error", err,
		)
		// Return the rendered report so the caller can record the attempt.
		return report, err
	}

	b.logger.Info("pipeline complete",
		"type", b.generator.Name(),
		"format", b.formatter.Name(),
		"channel", b.deliverer.Name(),
		"report_id", report.ID(),
		"elapsed", time.Since(start),
	)
	return report, nil
}
