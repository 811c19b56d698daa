package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestFromContextReturnsNoOpWhenMissing(t *testing.T) {
	collector := FromContext(context.Background())
	assert.NotZero(t, collector)

	_, ok := collector.(noOpCollector)
	assert.True(t, ok)
}

func TestWithCollectorRoundTrip(t *testing.T) {
	recorder := NewRecorder()
	ctx := WithCollector(context.Background(), recorder)

	retrieved, ok := FromContext(ctx).(*Recorder)
	assert.True(t, ok)
	assert.True(t, retrieved == recorder)
}

func TestRootTimerDefaultsToNoOp(t *testing.T) {
	timer := RootFromContext(context.Background())
	timer.Child("never recorded").End()
	timer.End()
}

func TestRootTimerRoundTrip(t *testing.T) {
	recorder := NewRecorder()
	timer := recorder.Start("root")
	ctx := WithRootTimer(context.Background(), timer)

	child := RootFromContext(ctx).Child("stage")
	child.End()
	timer.End()

	var buf bytes.Buffer
	recorder.Report(&buf, nil)
	assert.Contains(t, buf.String(), "stage")
}

func TestNoOpCollectorProducesNoOutput(t *testing.T) {
	collector := noOpCollector{}
	timer := collector.Start("test")
	timer.Child("child").End()
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, 0, buf.Len())
}

func TestRecorderReport(t *testing.T) {
	recorder := NewRecorder()

	root := recorder.Start("build report")
	first := root.Child("fetch transactions")
	time.Sleep(2 * time.Millisecond)
	first.End()
	second := root.Child("resolve payment intents")
	second.End()
	root.End()

	var buf bytes.Buffer
	recorder.Report(&buf, nil)
	out := buf.String()

	assert.Contains(t, out, "build report")
	assert.Contains(t, out, "fetch transactions")
	assert.Contains(t, out, "resolve payment intents")
	assert.Contains(t, out, "ms")

	// Children render as tree branches, the last one with a closing elbow.
	assert.Contains(t, out, "├─ fetch transactions")
	assert.Contains(t, out, "└─ resolve payment intents")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, 3, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "build report:"))
}

func TestRecorderNestedChildren(t *testing.T) {
	recorder := NewRecorder()

	root := recorder.Start("root")
	child := root.Child("child")
	grandchild := child.Child("grandchild")
	grandchild.End()
	child.End()
	root.End()

	var buf bytes.Buffer
	recorder.Report(&buf, nil)

	assert.Contains(t, buf.String(), "└─ child")
	assert.Contains(t, buf.String(), "   └─ grandchild")
}

func TestRecorderEndIsIdempotent(t *testing.T) {
	recorder := NewRecorder()

	timer := recorder.Start("op")
	timer.End()
	first := recorder.roots[0].duration
	time.Sleep(2 * time.Millisecond)
	timer.End()

	assert.Equal(t, first, recorder.roots[0].duration)
}
