package spectrum

import (
	"fmt"
	"math"
)

// Goertzel evaluates a single DFT bin incrementally.
//
// Power and Magnitude reflect all samples processed since the last Reset.
// Leakage applies as with a rectangular-window DFT of the same length.
type Goertzel struct {
	coeff  float64
	s0, s1 float64
	n      int
}

// NewGoertzel creates an analyzer for freqHz at sampleRate.
func NewGoertzel(freqHz float64, sampleRate int) (*Goertzel, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	nyquist := float64(sampleRate) / 2
	if freqHz < 0 || freqHz > nyquist || math.IsNaN(freqHz) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrequency, freqHz)
	}

	return &Goertzel{coeff: 2 * math.Cos(2*math.Pi*freqHz/float64(sampleRate))}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1, g.n = 0, 0, 0
}

// ProcessBlock feeds samples into the analyzer.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1
	for _, x := range input {
		s0, s1 = x+g.coeff*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns |X[k]|^2.
func (g *Goertzel) Power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Amplitude returns the estimated sine amplitude, 2*|X[k]|/N.
func (g *Goertzel) Amplitude() float64 {
	p := g.Power()
	if p <= 0 || g.n == 0 {
		return 0
	}
	return 2 * math.Sqrt(p) / float64(g.n)
}

// ToneAmplitude returns the amplitude of freqHz in samples.
func ToneAmplitude(samples []float64, freqHz float64, sampleRate int) (float64, error) {
	g, err := NewGoertzel(freqHz, sampleRate)
	if err != nil {
		return 0, err
	}
	g.ProcessBlock(samples)
	return g.Amplitude(), nil
}
