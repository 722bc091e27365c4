package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireBuffersEqual fails t unless both buffers share rate, shape and
// samples within eps. eps 0 demands bit-identical samples.
func RequireBuffersEqual(t *testing.T, got, want *buffer.SampleBuffer, eps float64) {
	t.Helper()
	if got.SampleRate != want.SampleRate {
		t.Fatalf("sample rate: got %d, want %d", got.SampleRate, want.SampleRate)
	}
	if got.NumChannels() != want.NumChannels() {
		t.Fatalf("channels: got %d, want %d", got.NumChannels(), want.NumChannels())
	}
	for c := range got.Channels {
		for i := range want.Channels[c] {
			if i >= len(got.Channels[c]) {
				t.Fatalf("channel %d: got %d frames, want %d", c, len(got.Channels[c]), len(want.Channels[c]))
			}
			if diff := math.Abs(got.Channels[c][i] - want.Channels[c][i]); diff > eps || math.IsNaN(diff) {
				t.Fatalf("channel %d frame %d: got %v, want %v (diff %v > eps %v)",
					c, i, got.Channels[c][i], want.Channels[c][i], diff, eps)
			}
		}
		if len(got.Channels[c]) != len(want.Channels[c]) {
			t.Fatalf("channel %d: got %d frames, want %d", c, len(got.Channels[c]), len(want.Channels[c]))
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbs returns the largest absolute value in x.
func MaxAbs(x []float64) float64 {
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
