package spatial

import (
	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

const (
	minWidth = 0.0
	maxWidth = 4.0
)

// Widen scales the side component of in by width.
//
// The left/right pair is encoded to mid = (L+R)/2 and side = (L-R)/2, the
// side is multiplied by width and the pair is decoded again. Width 0 collapses
// to mono, 1 leaves the image unchanged and values up to 4 widen it. Width is
// clamped to [0,4], NaN means 1. The output is hard-clipped to ±1.
func Widen(in *buffer.SampleBuffer, width float64) *buffer.SampleBuffer {
	width = core.ClampOr(width, minWidth, maxWidth, 1)

	frames := in.Frames()
	out := buffer.New(in.SampleRate, 2, frames)
	srcL, srcR := in.StereoPair()

	for i := range frames {
		mid := (srcL[i] + srcR[i]) * 0.5
		side := (srcL[i] - srcR[i]) * 0.5 * width

		out.Channels[0][i] = core.HardClip(mid+side, 1)
		out.Channels[1][i] = core.HardClip(mid-side, 1)
	}

	return out
}
