package chunk

import (
	"context"
	"runtime"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// Stepper is an incremental unit of work.
type Stepper interface {
	// Step processes up to n units and returns the units still remaining.
	Step(n int) (remaining int)
	// Total returns the total number of units.
	Total() int
}

// LoopFunc processes units in [start, end).
type LoopFunc func(start, end int)

type loop struct {
	total int
	pos   int
	fn    LoopFunc
}

// Loop adapts an index-range body to a Stepper over [0, total).
func Loop(total int, fn LoopFunc) Stepper {
	if total < 0 {
		total = 0
	}
	return &loop{total: total, fn: fn}
}

func (l *loop) Step(n int) int {
	if n <= 0 {
		n = 1
	}
	end := min(l.pos+n, l.total)
	if end > l.pos {
		l.fn(l.pos, end)
		l.pos = end
	}
	return l.total - l.pos
}

func (l *loop) Total() int { return l.total }

// Executor drives a Stepper in bounded chunks.
type Executor struct {
	ChunkSize int
	Sink      core.ProgressSink
	Message   string
}

// New creates an executor from processor options.
func New(message string, opts ...core.ProcessorOption) *Executor {
	cfg := core.ApplyProcessorOptions(opts...)
	return &Executor{
		ChunkSize: cfg.ChunkSize,
		Sink:      cfg.Progress,
		Message:   message,
	}
}

// Run steps s to completion. Cancellation of ctx is checked between chunks;
// a chunk that has started always finishes.
func (e *Executor) Run(ctx context.Context, s Stepper) error {
	if ctx == nil {
		ctx = context.Background()
	}

	size := e.ChunkSize
	if size <= 0 {
		size = core.DefaultChunkSize
	}

	total := s.Total()
	last := -1.0
	report := func(percent float64) {
		if percent != last {
			last = percent
			e.report(percent)
		}
	}

	report(0)

	for remaining := total; remaining > 0; {
		if err := ctx.Err(); err != nil {
			return err
		}

		next := s.Step(size)
		if next >= remaining {
			// A stepper that makes no progress would spin forever.
			break
		}
		remaining = next

		report(100 * float64(total-remaining) / float64(total))

		if remaining > 0 {
			runtime.Gosched()
		}
	}

	report(100)

	return nil
}

func (e *Executor) report(percent float64) {
	if e.Sink != nil {
		e.Sink(percent, e.Message)
	}
}
