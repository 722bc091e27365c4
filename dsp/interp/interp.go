package interp

import "math"

// Linear2 interpolates between x0 and x1 at frac in [0,1].
func Linear2(frac, x0, x1 float64) float64 {
	return x0 + frac*(x1-x0)
}

// LinearAt reads samples at fractional position pos. The floor index is
// clamped to [0, len-1] and the ceiling index to len-1, so positions past the
// end repeat the last sample. Returns 0 for an empty slice.
func LinearAt(samples []float64, pos float64) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}

	if pos <= 0 || math.IsNaN(pos) {
		return samples[0]
	}

	i0 := int(pos)
	if i0 >= n-1 {
		return samples[n-1]
	}

	return Linear2(pos-float64(i0), samples[i0], samples[i0+1])
}
