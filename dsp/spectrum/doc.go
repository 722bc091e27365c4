// Package spectrum provides magnitude-spectrum diagnostics for buffers.
//
// Analyze windows a block, transforms it with algo-fft and reports bin
// magnitudes together with the dominant frequency. Goertzel evaluates a single
// frequency without a full transform.
package spectrum
