package dynamics

import (
	"context"
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestLimiterParamsSanitize(t *testing.T) {
	p := LimiterParams{
		CeilingDB:   12,
		ThresholdDB: math.NaN(),
		ReleaseMs:   -5,
		LookaheadMs: 1e6,
	}.Sanitize()

	if p.CeilingDB != 0 {
		t.Fatalf("ceiling = %v, want 0", p.CeilingDB)
	}
	if p.ThresholdDB != defaultLimiterThresholdDB {
		t.Fatalf("threshold = %v, want default", p.ThresholdDB)
	}
	if p.ReleaseMs != minLimiterReleaseMs {
		t.Fatalf("release = %v, want %v", p.ReleaseMs, minLimiterReleaseMs)
	}
	if p.LookaheadMs != maxLimiterLookaheadMs {
		t.Fatalf("lookahead = %v, want %v", p.LookaheadMs, maxLimiterLookaheadMs)
	}
}

func TestLimiterBelowCeilingPassesThrough(t *testing.T) {
	in := testutil.Buffer(44100, testutil.DC(0.5, 44100))
	res := Limit(in, LimiterParams{CeilingDB: -6, ThresholdDB: -12, ReleaseMs: 100, LookaheadMs: 5})

	testutil.RequireSliceNearlyEqual(t, res.Buffer.Channels[0], in.Channels[0], 1e-12)
	if res.MaxGainReductionDB != 0 {
		t.Fatalf("max gain reduction = %v, want 0", res.MaxGainReductionDB)
	}
}

func TestLimiterClampsSpike(t *testing.T) {
	const rate = 44100
	in := testutil.Buffer(rate, testutil.Impulse(2*rate, rate, 1.0))
	p := DefaultLimiterParams()
	p.CeilingDB = -3

	res := Limit(in, p)
	ceiling := core.DBToLinear(-3)
	lookahead := core.MsToSamples(p.LookaheadMs, rate)

	if got := res.Buffer.Channels[0][rate]; got > ceiling+1e-12 || got < ceiling-1e-9 {
		t.Fatalf("spike = %v, want %v", got, ceiling)
	}
	if math.Abs(res.MaxGainReductionDB+3) > 1e-9 {
		t.Fatalf("max gain reduction = %v, want -3", res.MaxGainReductionDB)
	}

	gr := res.GainReductionDB
	if math.Abs(gr[rate]+3) > 1e-9 {
		t.Fatalf("gain reduction at spike = %v, want -3", gr[rate])
	}
	if gr[rate-lookahead] > -2.999 {
		t.Fatalf("gain reduction should start %d samples early, got %v", lookahead, gr[rate-lookahead])
	}
	if gr[rate-lookahead-1] != 0 || gr[0] != 0 {
		t.Fatalf("gain reduction before lookahead window = %v / %v, want 0", gr[rate-lookahead-1], gr[0])
	}
	if gr[2*rate-1] < -0.01 {
		t.Fatalf("gain reduction one second later = %v, want ~0", gr[2*rate-1])
	}
}

func TestLimiterNeverExceedsCeiling(t *testing.T) {
	in := testutil.Buffer(48000,
		testutil.DeterministicNoise(1, 3, 24000),
		testutil.DeterministicNoise(2, 1.5, 24000),
	)

	tests := []LimiterParams{
		{CeilingDB: -0.1, ThresholdDB: -0.1, ReleaseMs: 50, LookaheadMs: 5, Linked: true},
		{CeilingDB: -6, ThresholdDB: -20, ReleaseMs: 1, LookaheadMs: 0},
		{CeilingDB: -12, ThresholdDB: 0, ReleaseMs: 5000, LookaheadMs: 200, Linked: true},
		{CeilingDB: -1, ThresholdDB: -1, ReleaseMs: 300, LookaheadMs: 2},
	}

	for _, p := range tests {
		res := Limit(in, p)
		ceiling := core.DBToLinear(p.CeilingDB)
		for c, ch := range res.Buffer.Channels {
			testutil.RequireFinite(t, ch)
			if peak := testutil.MaxAbs(ch); peak > ceiling+1e-12 {
				t.Fatalf("%+v channel %d: peak %v exceeds ceiling %v", p, c, peak, ceiling)
			}
		}
		if res.MaxGainReductionDB > 0 {
			t.Fatalf("%+v: positive gain reduction %v", p, res.MaxGainReductionDB)
		}
	}
}

func TestLimiterZeroLookaheadIsInstantaneous(t *testing.T) {
	in := testutil.Buffer(1000, []float64{0.2, 0.2, 1.0, 0.2})
	res := Limit(in, LimiterParams{CeilingDB: -6, ThresholdDB: -6, ReleaseMs: 1, LookaheadMs: 0})

	out := res.Buffer.Channels[0]
	if out[1] != 0.2 {
		t.Fatalf("sample before spike = %v, want untouched 0.2", out[1])
	}
	if math.Abs(out[2]-core.DBToLinear(-6)) > 1e-12 {
		t.Fatalf("spike = %v, want ceiling", out[2])
	}
	if out[3] >= 0.2 {
		t.Fatalf("sample after spike = %v, want reduced during release", out[3])
	}
}

func TestLimiterLinkedVersusIndependent(t *testing.T) {
	left := testutil.Impulse(1000, 500, 1.0)
	right := testutil.DC(0.1, 1000)
	in := testutil.Buffer(1000, left, right)

	p := LimiterParams{CeilingDB: -6, ThresholdDB: -6, ReleaseMs: 10, LookaheadMs: 0}

	p.Linked = true
	linked := Limit(in, p)
	if got := linked.Buffer.Channels[1][500]; got > 0.06 {
		t.Fatalf("linked: right channel at spike = %v, want ducked", got)
	}

	p.Linked = false
	independent := Limit(in, p)
	if got := independent.Buffer.Channels[1][500]; got != 0.1 {
		t.Fatalf("independent: right channel at spike = %v, want 0.1", got)
	}
	if got := independent.Buffer.Channels[0][500]; math.Abs(got-core.DBToLinear(-6)) > 1e-12 {
		t.Fatalf("independent: left spike = %v, want ceiling", got)
	}
}

func TestLimiterChunkIndependence(t *testing.T) {
	in := testutil.Buffer(8000,
		testutil.DeterministicNoise(4, 2, 9000),
		testutil.DeterministicSine(100, 8000, 1.4, 9000),
	)
	p := DefaultLimiterParams()
	p.LookaheadMs = 20
	ref := Limit(in, p)

	for _, size := range []int{1, 7, 2048} {
		got, err := LimitContext(context.Background(), in, p, core.WithChunkSize(size))
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireBuffersEqual(t, got.Buffer, ref.Buffer, 0)
		testutil.RequireSliceNearlyEqual(t, got.GainReductionDB, ref.GainReductionDB, 0)
	}
}

func TestLimiterWindowPeakMatchesBruteForce(t *testing.T) {
	det := testutil.DeterministicNoise(8, 1, 5000)
	for i := range det {
		det[i] = math.Abs(det[i])
	}

	for _, lookahead := range []int{0, 1, 13, 4999, 10000} {
		lane := &limiterLane{detector: det, gain: 1}
		for i := range det {
			want := 0.0
			for j := i; j <= min(i+lookahead, len(det)-1); j++ {
				want = math.Max(want, det[j])
			}
			if got := lane.windowPeak(i, lookahead); got != want {
				t.Fatalf("lookahead %d index %d: got %v, want %v", lookahead, i, got, want)
			}
		}
	}
}
