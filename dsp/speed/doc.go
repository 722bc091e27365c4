// Package speed provides the two speed-change transforms.
//
// [Resample] changes speed and pitch together by reading the input at
// fractional positions with linear interpolation.
//
// [Stretch] changes speed while keeping pitch, using magnitude-only
// Hann-windowed overlap-add: frames of fixed size are taken at an analysis
// hop of a quarter frame and summed into the output at a synthesis hop of
// analysisHop/speed. There is no phase alignment between frames, so tonal
// material can exhibit phasing and comb artifacts at speeds far from 1.
// If the accumulated signal exceeds full scale, each channel is scaled down
// by its own peak.
package speed
