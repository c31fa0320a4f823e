package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/reportpipe/reportpipe/internal/delivery"
	"github.com/reportpipe/reportpipe/internal/format"
	"github.com/reportpipe/reportpipe/internal/generator"
	"github.com/reportpipe/reportpipe/internal/model"
)

// mockGenerator is a test helper that implements generator.Generator.
type mockGenerator struct {
	name    string
	err     error
	calls   int
	payload map[string]any
	hook    func()
}

// Generate implements generator.Generator.
func (m *mockGenerator) Generate(payload map[string]any) (model.Report, error) {
	m.calls++
	m.payload = payload
	if m.hook != nil {
		m.hook()
	}
	if m.err != nil {
		return model.Report{}, m.err
	}
	return model.New("sales", "raw content", map[string]string{"total": "150.00"}), nil
}

// Name implements generator.Generator.
func (m *mockGenerator) Name() string { return m.name }

// mockFormatter is a test helper that implements format.Formatter.
type mockFormatter struct {
	name  string
	err   error
	calls int
	got   string
	hook  func()
}

// Format implements format.Formatter.
func (m *mockFormatter) Format(content string) (string, error) {
	m.calls++
	m.got = content
	if m.hook != nil {
		m.hook()
	}
	if m.err != nil {
		return "", m.err
	}
	return "[TEST] " + content, nil
}

// Name implements format.Formatter.
func (m *mockFormatter) Name() string { return m.name }

// mockDeliverer is a test helper that implements delivery.Strategy.
type mockDeliverer struct {
	name  string
	err   error
	calls int
	got   model.Report
	hook  func()
}

// Deliver implements delivery.Strategy.
func (m *mockDeliverer) Deliver(_ context.Context, report model.Report) error {
	m.calls++
	m.got = report
	if m.hook != nil {
		m.hook()
	}
	return m.err
}

// Name implements delivery.Strategy.
func (m *mockDeliverer) Name() string { return m.name }

// newMocks returns one mock per pipeline slot, all succeeding.
func newMocks() (*mockGenerator, *mockFormatter, *mockDeliverer) {
	return &mockGenerator{name: "sales"}, &mockFormatter{name: "test"}, &mockDeliverer{name: "memo"}
}

// TestBuilderBuild tests successful pipeline execution.
func TestBuilderBuild(t *testing.T) {
	t.Parallel()

	t.Run("executes stages in order", func(t *testing.T) {
		t.Parallel()

		gen, formatter, deliverer := newMocks()

		var order []string
		gen.hook = func() { order = append(order, "generate") }
		formatter.hook = func() { order = append(order, "format") }
		deliverer.hook = func() { order = append(order, "deliver") }

		b := New().
			Generator(gen).
			Formatter(formatter).
			Deliverer(deliverer).
			Payload(map[string]any{"period": "Q1"})

		report, err := b.Build(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"generate", "format", "deliver"}
		if len(order) != len(want) {
			t.Fatalf("expected %d stage executions, got %v", len(want), order)
		}
		for i, stage := range want {
			if order[i] != stage {
				t.Errorf("stage %d: got %q, expected %q", i, order[i], stage)
			}
		}

		if report.Format() != "test" {
			t.Errorf("expected format %q, got %q", "test", report.Format())
		}
		if report.Content() != "[TEST] raw content" {
			t.Errorf("unexpected content: %q", report.Content())
		}
	})

	t.Run("passes payload to generator", func(t *testing.T) {
		t.Parallel()

		gen, formatter, deliverer := newMocks()
		payload := map[string]any{"period": "Q1 2024"}

		b := New().Generator(gen).Formatter(formatter).Deliverer(deliverer).Payload(payload)
		if _, err := b.Build(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gen.payload["period"] != "Q1 2024" {
			t.Errorf("generator did not receive payload: %v", gen.payload)
		}
	})

	t.Run("hands the rendered report to the deliverer", func(t *testing.T) {
		t.Parallel()

		gen, formatter, deliverer := newMocks()

		b := New().Generator(gen).Formatter(formatter).Deliverer(deliverer).Payload(nil)
		report, err := b.Build(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if deliverer.got.ID() != report.ID() {
			t.Errorf("deliverer got report %q, expected %q", deliverer.got.ID(), report.ID())
		}
		if deliverer.got.Content() != "[TEST] raw content" {
			t.Errorf("deliverer got raw content: %q", deliverer.got.Content())
		}
	})

	t.Run("nil payload counts as configured", func(t *testing.T) {
		t.Parallel()

		gen, formatter, deliverer := newMocks()

		b := New().Generator(gen).Formatter(formatter).Deliverer(deliverer).Payload(nil)
		if _, err := b.Build(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gen.calls != 1 {
			t.Errorf("expected 1 generator call, got %d", gen.calls)
		}
	})

	t.Run("cancelled context runs no stage", func(t *testing.T) {
		t.Parallel()

		gen, formatter, deliverer := newMocks()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		b := New().Generator(gen).Formatter(formatter).Deliverer(deliverer).Payload(nil)
		_, err := b.Build(ctx)

		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if gen.calls != 0 || formatter.calls != 0 || deliverer.calls != 0 {
			t.Errorf("expected no stage calls, got %d/%d/%d", gen.calls, formatter.calls, deliverer.calls)
		}
	})
}

// TestBuilderBuildIncompleteConfiguration tests that Build names every
// missing slot and leaves the builder reusable.
func TestBuilderBuildIncompleteConfiguration(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		setGen      bool
		setFormat   bool
		setDeliver  bool
		setPayload  bool
		wantMissing string
	}{
		{
			name:        "missing generator",
			setFormat:   true,
			setDeliver:  true,
			setPayload:  true,
			wantMissing: "missing generator",
		},
		{
			name:        "missing formatter",
			setGen:      true,
			setDeliver:  true,
			setPayload:  true,
			wantMissing: "missing formatter",
		},
		{
			name:        "missing deliverer",
			setGen:      true,
			setFormat:   true,
			setPayload:  true,
			wantMissing: "missing deliverer",
		},
		{
			name:        "missing payload",
			setGen:      true,
			setFormat:   true,
			setDeliver:  true,
			wantMissing: "missing payload",
		},
		{
			name:        "missing formatter and payload",
			setGen:      true,
			setDeliver:  true,
			wantMissing: "missing formatter, payload",
		},
		{
			name:        "missing everything",
			wantMissing: "missing generator, formatter, deliverer, payload",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gen, formatter, deliverer := newMocks()

			b := New()
			if tc.setGen {
				b.Generator(gen)
			}
			if tc.setFormat {
				b.Formatter(formatter)
			}
			if tc.setDeliver {
				b.Deliverer(deliverer)
			}
			if tc.setPayload {
				b.Payload(map[string]any{})
			}

			report, err := b.Build(context.Background())
			if !errors.Is(err, ErrIncompleteConfiguration) {
				t.Fatalf("expected ErrIncompleteConfiguration, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMissing) {
				t.Errorf("error %q does not name %q", err.Error(), tc.wantMissing)
			}
			if !report.IsZero() {
				t.Error("expected zero report for incomplete configuration")
			}
			if gen.calls != 0 || formatter.calls != 0 || deliverer.calls != 0 {
				t.Errorf("expected no stage calls, got %d/%d/%d", gen.calls, formatter.calls, deliverer.calls)
			}
		})
	}

	t.Run("incomplete build does not consume the builder", func(t *testing.T) {
		t.Parallel()

		gen, formatter, deliverer := newMocks()

		b := New().Generator(gen).Formatter(formatter).Deliverer(deliverer)
		if _, err := b.Build(context.Background()); !errors.Is(err, ErrIncompleteConfiguration) {
			t.Fatalf("expected ErrIncompleteConfiguration, got %v", err)
		}

		// Filling the missing slot makes the same builder work.
		if _, err := b.Payload(nil).Build(context.Background()); err != nil {
			t.Fatalf("unexpected error after completing configuration: %v", err)
		}
	})
}

// TestBuilderSingleUse tests the consume-on-build contract and Reset.
func TestBuilderSingleUse(t *testing.T) {
	t.Parallel()

	t.Run("second build fails", func(t *testing.T) {
		t.Parallel()

		gen, formatter, deliverer := newMocks()

		b := New().Generator(gen).Formatter(formatter).Deliverer(deliverer).Payload(nil)
		if _, err := b.Build(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := b.Build(context.Background())
		if !errors.Is(err, ErrBuilderReused) {
			t.Fatalf("expected ErrBuilderReused, got %v", err)
		}
		if gen.calls != 1 {
			t.Errorf("expected 1 generator call, got %d", gen.calls)
		}
	})

	t.Run("failed run still consumes the builder", func(t *testing.T) {
		t.Parallel()

		gen, formatter, deliverer := newMocks()
		gen.err = fmt.Errorf("sales generator: %w: missing field", generator.ErrInvalidInput)

		b := New().Generator(gen).Formatter(formatter).Deliverer(deliverer).Payload(nil)
		if _, err := b.Build(context.Background()); !errors.Is(err, generator.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}

		if _, err := b.Build(context.Background()); !errors.Is(err, ErrBuilderReused) {
			t.Errorf("expected ErrBuilderReused, got %v", err)
		}
	})

	t.Run("reset allows rebuilding", func(t *testing.T) {
		t.Parallel()

		gen, formatter, deliverer := newMocks()

		b := New().Generator(gen).Formatter(formatter).Deliverer(deliverer).Payload(nil)
		if _, err := b.Build(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		b.Reset().Generator(gen).Formatter(formatter).Deliverer(deliverer).Payload(nil)
		if _, err := b.Build(context.Background()); err != nil {
			t.Fatalf("unexpected error after reset: %v", err)
		}
		if gen.calls != 2 {
			t.Errorf("expected 2 generator calls, got %d", gen.calls)
		}
	})

	t.Run("reset clears every slot", func(t *testing.T) {
		t.Parallel()

		gen, formatter, deliverer := newMocks()

		b := New().Generator(gen).Formatter(formatter).Deliverer(deliverer).Payload(nil)
		if _, err := b.Build(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := b.Reset().Build(context.Background())
		if !errors.Is(err, ErrIncompleteConfiguration) {
			t.Fatalf("expected ErrIncompleteConfiguration, got %v", err)
		}
		if !strings.Contains(err.Error(), "generator, formatter, deliverer, payload") {
			t.Errorf("error %q does not name all slots", err.Error())
		}
	})
}

// TestBuilderBuildStageFailures tests error propagation from each stage.
func TestBuilderBuildStageFailures(t *testing.T) {
	t.Parallel()

	t.Run("generation failure stops the pipeline", func(t *testing.T) {
		t.Parallel()

		gen, formatter, deliverer := newMocks()
		gen.err = fmt.Errorf("sales generator: %w: missing field %q", generator.ErrInvalidInput, "period")

		b := New().Generator(gen).Formatter(formatter).Deliverer(deliverer).Payload(nil)
		report, err := b.Build(context.Background())

		if !errors.Is(err, generator.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if !report.IsZero() {
			t.Error("expected zero report on generation failure")
		}
		if formatter.calls != 0 || deliverer.calls != 0 {
			t.Errorf("expected later stages to be skipped, got %d/%d calls", formatter.calls, deliverer.calls)
		}
	})

	t.Run("format failure stops the pipeline", func(t *testing.T) {
		t.Parallel()

		gen, formatter, deliverer := newMocks()
		formatter.err = fmt.Errorf("%w: content is empty", format.ErrUnsupportedContent)

		b := New().Generator(gen).Formatter(formatter).Deliverer(deliverer).Payload(nil)
		report, err := b.Build(context.Background())

		if !errors.Is(err, format.ErrUnsupportedContent) {
			t.Fatalf("expected ErrUnsupportedContent, got %v", err)
		}
		if !report.IsZero() {
			t.Error("expected zero report on format failure")
		}
		if deliverer.calls != 0 {
			t.Errorf("expected delivery to be skipped, got %d calls", deliverer.calls)
		}
	})

	t.Run("delivery failure returns the rendered report", func(t *testing.T) {
		t.Parallel()

		gen, formatter, deliverer := newMocks()
		deliverer.err = fmt.Errorf("email channel: %w: %w", delivery.ErrDelivery, errors.New("connection refused"))

		b := New().Generator(gen).Formatter(formatter).Deliverer(deliverer).Payload(nil)
		report, err := b.Build(context.Background())

		if !errors.Is(err, delivery.ErrDelivery) {
			t.Fatalf("expected ErrDelivery, got %v", err)
		}
		if report.IsZero() {
			t.Fatal("expected the rendered report alongside the delivery error")
		}
		if report.Format() != "test" {
			t.Errorf("expected rendered format %q, got %q", "test", report.Format())
		}
		if report.Content() != "[TEST] raw content" {
			t.Errorf("unexpected rendered content: %q", report.Content())
		}
	})
}
