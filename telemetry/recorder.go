package telemetry

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sudosos/payout-report/output"
)

// slowThreshold marks operations worth highlighting in the report.
const slowThreshold = 100 * time.Millisecond

// Recorder is a Collector that records wall-clock spans in a tree.
// It is safe for concurrent use; resolver workers may start children
// from multiple goroutines.
type Recorder struct {
	mu    sync.Mutex
	roots []*span
}

type span struct {
	rec      *Recorder
	name     string
	start    time.Time
	duration time.Duration
	ended    bool
	children []*span
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start implements Collector.
func (r *Recorder) Start(name string) Timer {
	s := &span{rec: r, name: name, start: time.Now()}
	r.mu.Lock()
	r.roots = append(r.roots, s)
	r.mu.Unlock()
	return s
}

// End implements Timer.
func (s *span) End() {
	s.rec.mu.Lock()
	defer s.rec.mu.Unlock()
	if !s.ended {
		s.duration = time.Since(s.start)
		s.ended = true
	}
}

// Child implements Timer.
func (s *span) Child(name string) Timer {
	child := &span{rec: s.rec, name: name, start: time.Now()}
	s.rec.mu.Lock()
	s.children = append(s.children, child)
	s.rec.mu.Unlock()
	return child
}

// Report renders the recorded spans as an indented tree:
//
//	build report po_123: 1.24s
//	├─ fetch transactions: 310ms
//	├─ resolve payment intents: 920ms
//	└─ assemble and aggregate: 0ms
func (r *Recorder) Report(w io.Writer, styles *output.Styles) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, root := range r.roots {
		name := root.name
		if styles != nil {
			name = styles.Keyword(name)
		}
		_, _ = fmt.Fprintf(w, "%s: %s\n", name, styledDuration(root.duration, styles))

		for i, child := range root.children {
			writeSpan(w, child, "", i == len(root.children)-1, styles)
		}
	}
}

func writeSpan(w io.Writer, s *span, prefix string, last bool, styles *output.Styles) {
	branch, extension := "├─ ", "│  "
	if last {
		branch, extension = "└─ ", "   "
	}

	lead := prefix + branch
	if styles != nil {
		lead = styles.Dim(lead)
	}
	_, _ = fmt.Fprintf(w, "%s%s: %s\n", lead, s.name, styledDuration(s.duration, styles))

	for i, child := range s.children {
		writeSpan(w, child, prefix+extension, i == len(s.children)-1, styles)
	}
}

func styledDuration(d time.Duration, styles *output.Styles) string {
	text := formatDuration(d)
	if styles == nil {
		return text
	}
	if d >= slowThreshold {
		return styles.Warning(text)
	}
	return styles.Dim(text)
}

// formatDuration renders milliseconds below one second, seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}
