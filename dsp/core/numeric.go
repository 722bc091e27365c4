package core

import "math"

const (
	defaultEpsilon = 1e-12

	// SoftClipUnityTolerance is the distance above ±1 that SoftClip still
	// treats as full scale. Gains computed in dB land a hair past unity.
	SoftClipUnityTolerance = 1e-12
)

// Clamp limits value to the inclusive range [min, max].
// NaN is mapped to min.
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min || math.IsNaN(value) {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampOr limits value to [min, max] and substitutes def for NaN.
// Infinities clamp to the nearest bound.
func ClampOr(value, min, max, def float64) float64 {
	if math.IsNaN(value) {
		return Clamp(def, min, max)
	}

	return Clamp(value, min, max)
}

// ClampInt limits value to the inclusive range [min, max].
func ClampInt(value, min, max int) int {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// HardClip limits x to [-limit, limit].
func HardClip(x, limit float64) float64 {
	if x > limit {
		return limit
	}

	if x < -limit {
		return -limit
	}

	return x
}

// SoftClip passes samples in [-1, 1] unchanged and folds overshoot with
// s > 1 ⇒ 1-exp(1-s), mirrored for negative samples. Samples within
// SoftClipUnityTolerance of ±1 are full scale. NaN maps to 0.
func SoftClip(x float64) float64 {
	a := math.Abs(x)
	if a <= 1 {
		return x
	}

	if math.IsNaN(x) {
		return 0
	}

	y := 1.0
	if !NearlyEqual(a, 1, SoftClipUnityTolerance) {
		y = 1 - math.Exp(1-a)
	}

	if x < 0 {
		return -y
	}

	return y
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}

// MsToSamples converts a duration in milliseconds to a rounded sample count.
// Negative results are clamped to zero.
func MsToSamples(ms float64, sampleRate int) int {
	n := int(math.Round(ms * float64(sampleRate) / 1000))
	if n < 0 {
		return 0
	}

	return n
}
