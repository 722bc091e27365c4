package fade

import (
	"context"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/chunk"
)

const maxFadeSeconds = 3600.0

// Params configures a fade transform.
type Params struct {
	InSeconds  float64
	OutSeconds float64
	InCurve    Curve
	OutCurve   Curve
}

// DefaultParams returns a one-second linear fade-in and fade-out.
func DefaultParams() Params {
	return Params{InSeconds: 1, OutSeconds: 1}
}

// Sanitize clamps durations to [0, 1h] and unknown curves to linear.
func (p Params) Sanitize() Params {
	p.InSeconds = core.ClampOr(p.InSeconds, 0, maxFadeSeconds, 0)
	p.OutSeconds = core.ClampOr(p.OutSeconds, 0, maxFadeSeconds, 0)
	if p.InCurve < CurveLinear || p.InCurve > CurveSCurve {
		p.InCurve = CurveLinear
	}
	if p.OutCurve < CurveLinear || p.OutCurve > CurveSCurve {
		p.OutCurve = CurveLinear
	}
	return p
}

// Apply returns a faded copy of in.
func Apply(in *buffer.SampleBuffer, p Params) *buffer.SampleBuffer {
	out, _ := ApplyContext(context.Background(), in, p)
	return out
}

// ApplyContext is Apply driven by the chunked executor.
func ApplyContext(ctx context.Context, in *buffer.SampleBuffer, p Params, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	p = p.Sanitize()
	out := in.Clone()
	frames := out.Frames()

	inLen := min(int(math.Round(p.InSeconds*float64(in.SampleRate))), frames)
	outLen := min(int(math.Round(p.OutSeconds*float64(in.SampleRate))), frames)
	outStart := frames - outLen

	step := chunk.Loop(frames, func(start, end int) {
		for i := start; i < end; i++ {
			g := 1.0
			if i < inLen {
				g *= Gain(p.InCurve, float64(i)/float64(inLen), In)
			}
			if outLen > 0 && i >= outStart {
				g *= Gain(p.OutCurve, float64(i-outStart)/float64(outLen), Out)
			}
			if g == 1 {
				continue
			}
			for _, ch := range out.Channels {
				ch[i] *= g
			}
		}
	})

	if err := chunk.New("fade", opts...).Run(ctx, step); err != nil {
		return nil, err
	}

	return out, nil
}
