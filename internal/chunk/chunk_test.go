package chunk

import (
	"context"
	"errors"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

func TestLoopCoversRangeOnce(t *testing.T) {
	for _, size := range []int{1, 3, 7, 100, 1000} {
		seen := make([]int, 97)
		s := Loop(len(seen), func(start, end int) {
			for i := start; i < end; i++ {
				seen[i]++
			}
		})

		e := &Executor{ChunkSize: size}
		if err := e.Run(context.Background(), s); err != nil {
			t.Fatalf("size %d: Run() error = %v", size, err)
		}

		for i, n := range seen {
			if n != 1 {
				t.Fatalf("size %d: index %d visited %d times", size, i, n)
			}
		}
	}
}

func TestProgressMonotonic(t *testing.T) {
	var got []float64
	e := New("work", core.WithChunkSize(10), core.WithProgress(func(p float64, msg string) {
		if msg != "work" {
			t.Fatalf("message = %q, want work", msg)
		}
		got = append(got, p)
	}))

	if err := e.Run(context.Background(), Loop(35, func(int, int) {})); err != nil {
		t.Fatal(err)
	}

	if len(got) < 2 || got[0] != 0 || got[len(got)-1] != 100 {
		t.Fatalf("progress = %v, want 0 .. 100", got)
	}
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("progress not increasing: %v", got)
		}
	}
}

func TestEmptyStepper(t *testing.T) {
	calls := 0
	e := &Executor{ChunkSize: 4}
	if err := e.Run(context.Background(), Loop(0, func(int, int) { calls++ })); err != nil {
		t.Fatal(err)
	}
	if calls != 0 {
		t.Fatalf("body called %d times for empty loop", calls)
	}
}

func TestCancellationAtChunkBoundary(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	processed := 0

	s := Loop(100, func(start, end int) {
		processed += end - start
		if processed >= 20 {
			cancel()
		}
	})

	e := &Executor{ChunkSize: 10}
	err := e.Run(ctx, s)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if processed != 20 {
		t.Fatalf("processed = %d, want 20 (whole chunks only)", processed)
	}
}

type stuck struct{}

func (stuck) Step(int) int { return 5 }
func (stuck) Total() int   { return 5 }

func TestStalledStepperTerminates(t *testing.T) {
	e := &Executor{ChunkSize: 1}
	if err := e.Run(context.Background(), stuck{}); err != nil {
		t.Fatal(err)
	}
}
