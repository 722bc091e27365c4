package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiofx/dsp/window"
)

const (
	defaultMaxFFTSize = 1 << 16
	minFFTSize        = 16
)

// Option configures Analyze.
type Option func(*config)

type config struct {
	maxSize int
	window  window.Type
}

// WithMaxSize bounds the transform length. It is rounded down to a power of
// two and never below 16.
func WithMaxSize(n int) Option {
	return func(cfg *config) {
		if n >= minFFTSize {
			cfg.maxSize = n
		}
	}
}

// WithWindow selects the analysis window. The default is Hann.
func WithWindow(t window.Type) Option {
	return func(cfg *config) {
		cfg.window = t
	}
}

// Spectrum holds the magnitudes of the non-negative frequency bins.
type Spectrum struct {
	SampleRate int
	FFTSize    int
	Magnitudes []float64
}

// BinFrequency returns the center frequency of bin k in Hz.
func (s Spectrum) BinFrequency(k int) float64 {
	return float64(k) * float64(s.SampleRate) / float64(s.FFTSize)
}

// Dominant returns the frequency and magnitude of the strongest non-DC bin.
// The frequency is refined by parabolic interpolation over the neighbors.
func (s Spectrum) Dominant() (freqHz, magnitude float64) {
	best := -1
	for k := 1; k < len(s.Magnitudes); k++ {
		if best < 0 || s.Magnitudes[k] > s.Magnitudes[best] {
			best = k
		}
	}

	if best < 0 {
		return 0, 0
	}

	offset := 0.0
	if best > 0 && best < len(s.Magnitudes)-1 {
		a, b, c := s.Magnitudes[best-1], s.Magnitudes[best], s.Magnitudes[best+1]
		if den := a - 2*b + c; den != 0 {
			offset = 0.5 * (a - c) / den
		}
	}

	return (float64(best) + offset) * float64(s.SampleRate) / float64(s.FFTSize), s.Magnitudes[best]
}

// Analyze computes the magnitude spectrum of the first power-of-two block of
// samples, up to the configured maximum size. Inputs shorter than 16 samples
// are zero-padded.
func Analyze(samples []float64, sampleRate int, opts ...Option) (Spectrum, error) {
	if len(samples) == 0 {
		return Spectrum{}, ErrEmptyInput
	}

	if sampleRate <= 0 {
		return Spectrum{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	cfg := config{maxSize: defaultMaxFFTSize, window: window.TypeHann}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	size := max(minFFTSize, min(prevPowerOf2(len(samples)), prevPowerOf2(cfg.maxSize)))
	n := min(size, len(samples))

	coeffs := window.Generate(cfg.window, n)
	gain, err := window.CoherentGain(coeffs)
	if err != nil || gain == 0 {
		gain = 1
	}

	in := make([]complex128, size)
	for i := range n {
		in[i] = complex(samples[i]*coeffs[i], 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("spectrum: forward fft: %w", err)
	}

	bins := size/2 + 1
	mags := Magnitude(out[:bins])

	// Scale so a full-scale sine reads close to its amplitude.
	scale := 2 / (gain * float64(n))
	for k := range mags {
		mags[k] *= scale
	}

	return Spectrum{SampleRate: sampleRate, FFTSize: size, Magnitudes: mags}, nil
}

// Magnitude returns |X[k]| for each bin.
func Magnitude(in []complex128) []float64 {
	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i, v := range in {
		re[i] = real(v)
		im[i] = imag(v)
	}

	out := make([]float64, len(in))
	vecmath.Magnitude(out, re, im)

	return out
}

// MagnitudeDB converts magnitudes to dB with a -300 dB floor.
func MagnitudeDB(mags []float64) []float64 {
	out := make([]float64, len(mags))
	for i, m := range mags {
		if m <= 1e-15 {
			out[i] = -300
			continue
		}
		out[i] = 20 * math.Log10(m)
	}
	return out
}

func prevPowerOf2(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p*2 <= n {
		p *= 2
	}
	return p
}
