package modulation

import "math"

// Waveform selects an LFO shape. Every waveform maps phase [0,1) to [-1,1].
type Waveform int

const (
	WaveSine Waveform = iota
	WaveTriangle
	WaveSquare
	WaveSawtooth
)

// String returns the waveform name.
func (w Waveform) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveTriangle:
		return "triangle"
	case WaveSquare:
		return "square"
	case WaveSawtooth:
		return "sawtooth"
	default:
		return "unknown"
	}
}

// ParseWaveform maps a name to a Waveform. Unknown names yield WaveSine and
// false.
func ParseWaveform(name string) (Waveform, bool) {
	switch name {
	case "sine", "sin":
		return WaveSine, true
	case "triangle", "tri":
		return WaveTriangle, true
	case "square", "sqr":
		return WaveSquare, true
	case "sawtooth", "saw":
		return WaveSawtooth, true
	default:
		return WaveSine, false
	}
}

// Valid reports whether w is a known waveform.
func (w Waveform) Valid() bool {
	return w >= WaveSine && w <= WaveSawtooth
}

// Value evaluates the waveform at phase, wrapped into [0,1).
//
// Sine starts at 0 rising, triangle starts at -1 and peaks at phase 0.5,
// square is +1 for the first half cycle and sawtooth ramps from -1 to 1.
func (w Waveform) Value(phase float64) float64 {
	phase -= math.Floor(phase)

	switch w {
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSawtooth:
		return 2*phase - 1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// PhaseOffset returns the start phase in [0,1) for a channel when successive
// channels are offset by degrees.
func PhaseOffset(channel int, degrees float64) float64 {
	p := float64(channel) * degrees / 360
	return p - math.Floor(p)
}

// LFO is a free-running low-frequency oscillator.
type LFO struct {
	Waveform Waveform
	phase    float64
	inc      float64
}

// NewLFO creates an oscillator at rateHz starting at phase [0,1).
func NewLFO(w Waveform, rateHz float64, sampleRate int, phase float64) LFO {
	return LFO{
		Waveform: w,
		phase:    phase - math.Floor(phase),
		inc:      rateHz / float64(sampleRate),
	}
}

// Phase returns the current phase in [0,1).
func (l *LFO) Phase() float64 { return l.phase }

// Next returns the value at the current phase and advances by one sample.
func (l *LFO) Next() float64 {
	v := l.Waveform.Value(l.phase)

	l.phase += l.inc
	if l.phase >= 1 {
		l.phase -= math.Floor(l.phase)
	}

	return v
}
