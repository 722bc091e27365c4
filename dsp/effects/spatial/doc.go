// Package spatial places audio in the stereo field.
//
// Included processors:
//   - Pan: equal-power panning driven by a static position, an LFO, a linear
//     sweep or a triangular bounce.
//   - Spatialize: minimal binaural rendering of a mono source at a point in
//     front of or behind the listener (ITD, ILD, distance, head shadow and
//     a single reflection).
//   - Widen: mid/side stereo width adjustment.
//
// Every processor returns a two-channel buffer. Mono input feeds both ears.
package spatial
