// Package mix sums two SampleBuffers with independent gains and an offset.
package mix

import (
	"context"
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/resample"
	"github.com/cwbudde/algo-audiofx/internal/chunk"
)

const (
	defaultGain = 1.0

	minGain          = 0.0
	maxGain          = 4.0
	maxOffsetSeconds = 3600.0
)

// Params configures the mixer.
type Params struct {
	GainA float64
	GainB float64
	// OffsetSeconds delays b relative to the start of a.
	OffsetSeconds float64
}

// DefaultParams returns unity gains and no offset.
func DefaultParams() Params {
	return Params{GainA: defaultGain, GainB: defaultGain}
}

// Sanitize clamps gains to [0,4] and the offset to [0,3600] seconds. NaN
// fields take defaults.
func (p Params) Sanitize() Params {
	p.GainA = core.ClampOr(p.GainA, minGain, maxGain, defaultGain)
	p.GainB = core.ClampOr(p.GainB, minGain, maxGain, defaultGain)
	p.OffsetSeconds = core.ClampOr(p.OffsetSeconds, 0, maxOffsetSeconds, 0)
	return p
}

// Mix returns SoftClip(GainA*a + GainB*b) with b starting OffsetSeconds in.
func Mix(a, b *buffer.SampleBuffer, p Params) *buffer.SampleBuffer {
	out, _ := MixContext(context.Background(), a, b, p)
	return out
}

// MixContext is Mix driven by the chunked executor.
//
// The output has a's sample rate; b is band-limited and rate-converted
// first when needed. It
// has as many channels as the wider input. A mono input feeds every output
// channel; a multichannel input contributes silence to channels it lacks.
// The length is max(a.Frames(), offset+b.Frames()).
func MixContext(ctx context.Context, a, b *buffer.SampleBuffer, p Params, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	p = p.Sanitize()

	if b.SampleRate != a.SampleRate {
		converted, err := resample.ConvertBuffer(b, a.SampleRate)
		if err != nil {
			return nil, err
		}
		b = converted
	}

	offset := int(math.Round(p.OffsetSeconds * float64(a.SampleRate)))
	frames := max(a.Frames(), offset+b.Frames())
	channels := max(a.NumChannels(), b.NumChannels())
	out := buffer.New(a.SampleRate, channels, frames)

	scratch := make([]float64, min(frames, core.ApplyProcessorOptions(opts...).ChunkSize))

	step := chunk.Loop(frames, func(start, end int) {
		for c, dst := range out.Channels {
			addSegment(dst, sourceChannel(a, c), 0, start, end, p.GainA, scratch)
			addSegment(dst, sourceChannel(b, c), offset, start, end, p.GainB, scratch)

			for i := start; i < end; i++ {
				dst[i] = core.SoftClip(dst[i])
			}
		}
	})

	if err := chunk.New("mix", opts...).Run(ctx, step); err != nil {
		return nil, err
	}

	return out, nil
}

func sourceChannel(b *buffer.SampleBuffer, c int) []float64 {
	switch {
	case b.NumChannels() == 1:
		return b.Channels[0]
	case c < b.NumChannels():
		return b.Channels[c]
	default:
		return nil
	}
}

// addSegment adds gain*src to dst over [start,end), with src placed at
// offset in dst.
func addSegment(dst, src []float64, offset, start, end int, gain float64, scratch []float64) {
	lo := max(start, offset)
	hi := min(end, offset+len(src))
	if lo >= hi {
		return
	}

	for lo < hi {
		n := min(hi-lo, len(scratch))
		tmp := scratch[:n]
		vecmath.ScaleBlock(tmp, src[lo-offset:lo-offset+n], gain)
		vecmath.AddBlockInPlace(dst[lo:lo+n], tmp)
		lo += n
	}
}
