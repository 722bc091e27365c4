// Package buffer provides SampleBuffer, the multi-channel float64 PCM
// container every transform in this module consumes and produces.
//
// Transforms treat their input buffer as read-only and return a freshly
// allocated SampleBuffer. Channels are stored planar (one slice per channel);
// use Interleave when a frame-interleaved layout is needed for encoding.
package buffer
