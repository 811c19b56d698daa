// Package telemetry collects hierarchical timings for pipeline stages.
// Collectors travel through the context so instrumentation stays out of
// function signatures; with no collector installed every operation is a
// no-op.
//
//	recorder := telemetry.NewRecorder()
//	ctx := telemetry.WithCollector(context.Background(), recorder)
//
//	timer := recorder.Start("build report")
//	ctx = telemetry.WithRootTimer(ctx, timer)
//	// ... stages call telemetry.RootFromContext(ctx).Child(...) ...
//	timer.End()
//
//	recorder.Report(os.Stderr, styles)
package telemetry

import (
	"context"
	"io"

	"github.com/sudosos/payout-report/output"
)

// Collector gathers timers and renders a report of them.
type Collector interface {
	// Start begins timing a top-level operation.
	Start(name string) Timer

	// Report writes the collected timings. styles may be nil for plain
	// output.
	Report(w io.Writer, styles *output.Styles)
}

// Timer times a single operation and can nest child operations.
type Timer interface {
	// End stops the timer. Calling End more than once keeps the first
	// recorded duration.
	End()

	// Child starts a timer nested under this one.
	Child(name string) Timer
}

type collectorKey struct{}
type rootTimerKey struct{}

// WithCollector installs a collector on the context.
func WithCollector(ctx context.Context, c Collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, c)
}

// FromContext returns the installed collector, or a no-op one.
func FromContext(ctx context.Context) Collector {
	if c, ok := ctx.Value(collectorKey{}).(Collector); ok {
		return c
	}
	return noOpCollector{}
}

// WithRootTimer installs the current operation's root timer, letting
// downstream stages attach children without threading timers explicitly.
func WithRootTimer(ctx context.Context, t Timer) context.Context {
	return context.WithValue(ctx, rootTimerKey{}, t)
}

// RootFromContext returns the installed root timer, or a no-op one.
func RootFromContext(ctx context.Context) Timer {
	if t, ok := ctx.Value(rootTimerKey{}).(Timer); ok {
		return t
	}
	return noOpTimer{}
}

// noOpCollector satisfies Collector with zero overhead when telemetry is
// disabled.
type noOpCollector struct{}

func (noOpCollector) Start(string) Timer               { return noOpTimer{} }
func (noOpCollector) Report(io.Writer, *output.Styles) {}

type noOpTimer struct{}

func (noOpTimer) End()               {}
func (noOpTimer) Child(string) Timer { return noOpTimer{} }
