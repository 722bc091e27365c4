// Package pcm defines the numeric contract between float SampleBuffers and
// 16-bit PCM consumers.
//
// Quantize16 maps [-1,1] onto the full int16 range, WriteWAV emits a
// canonical 44-byte header followed by interleaved little-endian samples,
// and Handoff feeds fixed-size interleaved blocks to any BlockEncoder.
package pcm
