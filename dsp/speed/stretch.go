package speed

import (
	"context"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/window"
	"github.com/cwbudde/algo-audiofx/internal/chunk"
)

const (
	DefaultFrameSize = 2048

	minFrameSize = 256
	maxFrameSize = 16384
)

// StretchParams configures the pitch-preserving stretcher.
type StretchParams struct {
	Speed     float64
	FrameSize int
}

// DefaultStretchParams returns unity speed with 2048-sample frames.
func DefaultStretchParams() StretchParams {
	return StretchParams{Speed: 1, FrameSize: DefaultFrameSize}
}

// Sanitize clamps the speed and rounds the frame size up to a power of two
// in [256, 16384]. A zero frame size selects the default.
func (p StretchParams) Sanitize() StretchParams {
	p.Speed = ClampSpeed(p.Speed)
	if p.FrameSize == 0 {
		p.FrameSize = DefaultFrameSize
	}
	p.FrameSize = nextPowerOf2(core.ClampInt(p.FrameSize, minFrameSize, maxFrameSize))
	return p
}

// AnalysisHop returns the input hop between frames.
func (p StretchParams) AnalysisHop() int {
	return p.Sanitize().FrameSize / 4
}

// SynthesisHop returns the output hop between frames.
func (p StretchParams) SynthesisHop() int {
	s := p.Sanitize()
	return max(1, int(math.Round(float64(s.FrameSize/4)/s.Speed)))
}

// Stretch changes the speed of in without changing pitch.
func Stretch(in *buffer.SampleBuffer, p StretchParams) *buffer.SampleBuffer {
	out, _ := StretchContext(context.Background(), in, p)
	return out
}

// StretchContext is Stretch driven by the chunked executor. The work unit is
// one analysis frame.
func StretchContext(ctx context.Context, in *buffer.SampleBuffer, p StretchParams, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	p = p.Sanitize()

	inLen := in.Frames()
	out := in.Like(OutputFrames(inLen, p.Speed))
	outLen := out.Frames()
	if outLen == 0 || inLen == 0 {
		return out, nil
	}

	frameSize := p.FrameSize
	ha := p.AnalysisHop()
	hs := p.SynthesisHop()
	win := window.Generate(window.TypeHann, frameSize, window.WithPeriodic())
	numFrames := (inLen + ha - 1) / ha
	scratch := make([]float64, frameSize)

	step := chunk.Loop(numFrames, func(start, end int) {
		for k := start; k < end; k++ {
			src := k * ha
			dst := k * hs
			if dst >= outLen {
				continue
			}

			n := min(frameSize, inLen-src, outLen-dst)
			for c, ch := range in.Channels {
				frame := scratch[:n]
				_ = window.ApplyCoefficients(frame, ch[src:src+n], win[:n])

				acc := out.Channels[c][dst : dst+n]
				for j, v := range frame {
					acc[j] += v
				}
			}
		}
	})

	if err := chunk.New("time-stretch", opts...).Run(ctx, step); err != nil {
		return nil, err
	}

	for _, ch := range out.Channels {
		normalizePeak(ch)
	}

	return out, nil
}

// normalizePeak divides ch by its peak magnitude when the peak exceeds 1.
func normalizePeak(ch []float64) {
	peak := 0.0
	for _, v := range ch {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	if peak <= 1 {
		return
	}

	for i := range ch {
		ch[i] /= peak
	}
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
