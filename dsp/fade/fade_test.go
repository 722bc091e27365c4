package fade

import (
	"context"
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestGainEndpoints(t *testing.T) {
	for _, c := range []Curve{CurveLinear, CurveExponential, CurveLogarithmic, CurveSCurve} {
		t.Run(c.String(), func(t *testing.T) {
			if g := Gain(c, 0, In); math.Abs(g) > 1e-12 {
				t.Fatalf("in(0) = %v, want 0", g)
			}
			if g := Gain(c, 1, In); math.Abs(g-1) > 1e-12 {
				t.Fatalf("in(1) = %v, want 1", g)
			}
			if g := Gain(c, 0, Out); math.Abs(g-1) > 1e-12 {
				t.Fatalf("out(0) = %v, want 1", g)
			}
			if g := Gain(c, 1, Out); math.Abs(g) > 1e-12 {
				t.Fatalf("out(1) = %v, want 0", g)
			}

			prev := -1.0
			for i := 0; i <= 100; i++ {
				g := Gain(c, float64(i)/100, In)
				if g < prev-1e-15 || g < 0 || g > 1 {
					t.Fatalf("in(%v) = %v not monotonic in [0,1]", float64(i)/100, g)
				}
				prev = g
			}
		})
	}
}

func TestGainShapes(t *testing.T) {
	tests := []struct {
		curve Curve
		t     float64
		dir   Direction
		want  float64
	}{
		{CurveLinear, 0.25, In, 0.25},
		{CurveLinear, 0.25, Out, 0.75},
		{CurveExponential, 0.5, In, 0.125},
		{CurveExponential, 0.5, Out, 0.125},
		{CurveLogarithmic, 0.5, In, math.Log10(5.5)},
		{CurveSCurve, 0.5, In, 0.5},
		{CurveLinear, -3, In, 0},
		{CurveLinear, math.NaN(), In, 0},
		{CurveLinear, 7, In, 1},
	}

	for _, tt := range tests {
		if got := Gain(tt.curve, tt.t, tt.dir); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("Gain(%v, %v, %v) = %v, want %v", tt.curve, tt.t, tt.dir, got, tt.want)
		}
	}
}

func TestLinearFadeInOnConstant(t *testing.T) {
	in, _ := buffer.FromChannels(44100, testutil.Ones(44100))
	out := Apply(in, Params{InSeconds: 1})

	if out.Channels[0][0] != 0 {
		t.Fatalf("out[0] = %v, want 0", out.Channels[0][0])
	}
	if math.Abs(out.Channels[0][22050]-0.5) > 1e-12 {
		t.Fatalf("out[22050] = %v, want 0.5", out.Channels[0][22050])
	}
	if math.Abs(out.Channels[0][44099]-1) > 1e-4 {
		t.Fatalf("out[44099] = %v, want ~1", out.Channels[0][44099])
	}
	if in.Channels[0][0] != 1 {
		t.Fatal("input buffer was mutated")
	}
}

func TestFadeOutAndUntouchedMiddle(t *testing.T) {
	in, _ := buffer.FromChannels(100, testutil.Ones(400), testutil.Ones(400))
	out := Apply(in, Params{InSeconds: 1, OutSeconds: 1, OutCurve: CurveSCurve})

	for i := 100; i < 300; i++ {
		if out.Channels[0][i] != 1 || out.Channels[1][i] != 1 {
			t.Fatalf("frame %d changed outside fade windows", i)
		}
	}
	if out.Channels[1][300] != 1 {
		t.Fatalf("first fade-out frame = %v, want 1", out.Channels[1][300])
	}
	if out.Channels[1][399] >= 0.01 {
		t.Fatalf("last fade-out frame = %v, want ~0", out.Channels[1][399])
	}
}

func TestZeroLengthFadeIsNoop(t *testing.T) {
	in, _ := buffer.FromChannels(8000, testutil.DeterministicNoise(1, 0.5, 256))
	out := Apply(in, Params{})
	testutil.RequireSliceNearlyEqual(t, out.Channels[0], in.Channels[0], 0)
}

func TestOverlappingFadesMultiply(t *testing.T) {
	in, _ := buffer.FromChannels(10, testutil.Ones(10))
	out := Apply(in, Params{InSeconds: 1, OutSeconds: 1})

	for i, v := range out.Channels[0] {
		want := (float64(i) / 10) * (1 - float64(i)/10)
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("frame %d = %v, want %v", i, v, want)
		}
	}
}

func TestSanitizeClampsInvalid(t *testing.T) {
	p := Params{InSeconds: -2, OutSeconds: math.NaN(), InCurve: Curve(42)}.Sanitize()
	if p.InSeconds != 0 || p.OutSeconds != 0 || p.InCurve != CurveLinear {
		t.Fatalf("Sanitize() = %+v", p)
	}
}

func TestChunkSizeIndependence(t *testing.T) {
	in, _ := buffer.FromChannels(8000, testutil.DeterministicNoise(7, 0.9, 5000))
	p := Params{InSeconds: 0.2, OutSeconds: 0.3, InCurve: CurveLogarithmic, OutCurve: CurveExponential}

	ref := Apply(in, p)
	for _, size := range []int{1, 17, 1024} {
		got, err := ApplyContext(context.Background(), in, p, core.WithChunkSize(size))
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireSliceNearlyEqual(t, got.Channels[0], ref.Channels[0], 0)
	}
}

func TestParseCurve(t *testing.T) {
	if c, ok := ParseCurve("log"); !ok || c != CurveLogarithmic {
		t.Fatalf("ParseCurve(log) = %v, %v", c, ok)
	}
	if _, ok := ParseCurve("bogus"); ok {
		t.Fatal("ParseCurve(bogus) should fail")
	}
}
