package spectrum

import "errors"

var (
	// ErrEmptyInput is returned when there are no samples to analyze.
	ErrEmptyInput = errors.New("spectrum: empty input")
	// ErrInvalidSampleRate is returned for non-positive sample rates.
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be > 0")
	// ErrInvalidFrequency is returned for frequencies outside [0, Nyquist].
	ErrInvalidFrequency = errors.New("spectrum: frequency outside [0, sampleRate/2]")
)
