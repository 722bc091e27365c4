package window

import (
	"math"
	"testing"
)

func TestGenerateFinite(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman} {
		t.Run(typ.String(), func(t *testing.T) {
			w := Generate(typ, 64)
			if len(w) != 64 {
				t.Fatalf("len=%d, want 64", len(w))
			}

			for i, v := range w {
				if math.IsNaN(v) || math.IsInf(v, 0) || v < -1e-12 || v > 1+1e-12 {
					t.Fatalf("coefficient[%d] invalid: %v", i, v)
				}
			}
		})
	}
}

func TestGenerateEdgeCases(t *testing.T) {
	if Generate(TypeHann, 0) != nil {
		t.Fatal("expected nil for zero length")
	}
	if w := Generate(TypeHann, 1); len(w) != 1 || w[0] != 1 {
		t.Fatalf("single-point Hann = %v, want [1]", w)
	}
	if _, err := Hann(-1); err == nil {
		t.Fatal("expected length validation error")
	}
}

func TestHannSymmetry(t *testing.T) {
	w := Generate(TypeHann, 33)
	for i := range w {
		j := len(w) - 1 - i
		if math.Abs(w[i]-w[j]) > 1e-12 {
			t.Fatalf("w[%d]=%v w[%d]=%v not symmetric", i, w[i], j, w[j])
		}
	}
	if math.Abs(w[16]-1) > 1e-12 {
		t.Fatalf("center = %v, want 1", w[16])
	}
}

func TestPeriodicHannOverlapAddIsConstant(t *testing.T) {
	const n = 64
	w := Generate(TypeHann, n, WithPeriodic())

	// Quarter-hop overlap-add of a periodic Hann window sums to 2.
	hop := n / 4
	for i := range hop {
		sum := 0.0
		for k := 0; k < n; k += hop {
			sum += w[(i+k)%n]
		}
		if math.Abs(sum-2) > 1e-12 {
			t.Fatalf("overlap sum at %d = %v, want 2", i, sum)
		}
	}
}

func TestApplyCoefficients(t *testing.T) {
	dst := make([]float64, 3)
	if err := ApplyCoefficients(dst, []float64{1, 2, 3}, []float64{0.5, 0.5, 2}); err != nil {
		t.Fatal(err)
	}
	if dst[0] != 0.5 || dst[1] != 1 || dst[2] != 6 {
		t.Fatalf("ApplyCoefficients() = %v", dst)
	}
	if err := ApplyCoefficients(dst, []float64{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestCoherentGain(t *testing.T) {
	g, err := CoherentGain(Generate(TypeHann, 1024, WithPeriodic()))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(g-0.5) > 1e-9 {
		t.Fatalf("coherent gain = %v, want 0.5", g)
	}
	if _, err := CoherentGain(nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}
}
