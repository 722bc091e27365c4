package fade

import "math"

// Curve selects a fade gain law.
type Curve int

const (
	CurveLinear Curve = iota
	CurveExponential
	CurveLogarithmic
	CurveSCurve
)

// Direction selects fade-in (rising) or fade-out (falling).
type Direction int

const (
	In Direction = iota
	Out
)

// String returns the curve name.
func (c Curve) String() string {
	switch c {
	case CurveLinear:
		return "linear"
	case CurveExponential:
		return "exponential"
	case CurveLogarithmic:
		return "logarithmic"
	case CurveSCurve:
		return "s-curve"
	default:
		return "unknown"
	}
}

// ParseCurve maps a curve name to a Curve. Unknown names yield CurveLinear
// and false.
func ParseCurve(name string) (Curve, bool) {
	switch name {
	case "linear":
		return CurveLinear, true
	case "exponential", "exp":
		return CurveExponential, true
	case "logarithmic", "log":
		return CurveLogarithmic, true
	case "s-curve", "scurve", "s":
		return CurveSCurve, true
	default:
		return CurveLinear, false
	}
}

// Gain returns the curve gain in [0,1] at normalized position t.
// t is clamped to [0,1]; fade-out evaluates the rising curve at 1-t.
func Gain(c Curve, t float64, dir Direction) float64 {
	if !(t > 0) {
		t = 0
	} else if t > 1 {
		t = 1
	}

	if dir == Out {
		t = 1 - t
	}

	switch c {
	case CurveExponential:
		return t * t * t
	case CurveLogarithmic:
		return math.Log10(1 + 9*t)
	case CurveSCurve:
		return (math.Sin((t-0.5)*math.Pi) + 1) / 2
	default:
		return t
	}
}
