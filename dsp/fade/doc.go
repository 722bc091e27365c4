// Package fade provides fade-in and fade-out gain curves and a transform that
// applies them to a SampleBuffer.
//
// Four curve families are available: linear, exponential (cubic),
// logarithmic and raised-sine S-curve. Gain is 1 outside the fade windows;
// when the fade-in and fade-out windows overlap their gains multiply.
package fade
