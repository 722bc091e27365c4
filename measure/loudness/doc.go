// Package loudness estimates peak, RMS and an approximate integrated
// loudness of a SampleBuffer.
//
// The LUFS figure is a simplification: 400 ms blocks with 75 % overlap are
// averaged without K-weighting or gating. It tracks relative loudness well
// enough for normalization but is not an ITU-R BS.1770 measurement.
package loudness
