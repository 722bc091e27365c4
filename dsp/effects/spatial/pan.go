package spatial

import (
	"context"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/effects/modulation"
	"github.com/cwbudde/algo-audiofx/internal/chunk"
)

const (
	defaultPanRateHz = 0.25
	defaultPanDepth  = 1.0

	minPanRateHz = 0.01
	maxPanRateHz = 20.0
)

// PanMode selects how the pan position evolves over the buffer.
type PanMode int

const (
	// PanStatic holds Pan for the whole buffer.
	PanStatic PanMode = iota
	// PanAuto oscillates around Pan by Depth using an LFO at RateHz.
	PanAuto
	// PanSweep moves linearly from Start to End across the buffer.
	PanSweep
	// PanBounce moves back and forth between Start and End at RateHz.
	PanBounce
)

// String returns the mode name.
func (m PanMode) String() string {
	switch m {
	case PanStatic:
		return "static"
	case PanAuto:
		return "auto"
	case PanSweep:
		return "sweep"
	case PanBounce:
		return "bounce"
	default:
		return "unknown"
	}
}

// ParsePanMode maps a name to a PanMode. Unknown names yield PanStatic and
// false.
func ParsePanMode(name string) (PanMode, bool) {
	for m := PanStatic; m <= PanBounce; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return PanStatic, false
}

// PanParams configures the panner. Positions are in [-1,1], -1 is hard left.
type PanParams struct {
	Mode     PanMode
	Pan      float64
	RateHz   float64
	Depth    float64
	Waveform modulation.Waveform
	Start    float64
	End      float64
}

// DefaultPanParams returns a centered static pan. The sweep and bounce
// endpoints default to hard left and hard right.
func DefaultPanParams() PanParams {
	return PanParams{
		Mode:     PanStatic,
		RateHz:   defaultPanRateHz,
		Depth:    defaultPanDepth,
		Waveform: modulation.WaveSine,
		Start:    -1,
		End:      1,
	}
}

// Sanitize clamps every field to its legal range. NaN fields take defaults.
func (p PanParams) Sanitize() PanParams {
	if p.Mode < PanStatic || p.Mode > PanBounce {
		p.Mode = PanStatic
	}
	p.Pan = core.ClampOr(p.Pan, -1, 1, 0)
	p.RateHz = core.ClampOr(p.RateHz, minPanRateHz, maxPanRateHz, defaultPanRateHz)
	p.Depth = core.ClampOr(p.Depth, 0, 1, defaultPanDepth)
	p.Start = core.ClampOr(p.Start, -1, 1, -1)
	p.End = core.ClampOr(p.End, -1, 1, 1)
	if !p.Waveform.Valid() {
		p.Waveform = modulation.WaveSine
	}
	return p
}

// PanGains returns the equal-power left and right gains for pan in [-1,1].
//
//	theta = pan*pi/4
//	left  = cos(theta + pi/4)
//	right = sin(theta + pi/4)
func PanGains(pan float64) (left, right float64) {
	theta := core.ClampOr(pan, -1, 1, 0) * math.Pi / 4
	return math.Cos(theta + math.Pi/4), math.Sin(theta + math.Pi/4)
}

// panCurve yields the pan position for successive frames.
type panCurve struct {
	p      PanParams
	frames int
	lfo    modulation.LFO
}

func newPanCurve(p PanParams, frames, sampleRate int) *panCurve {
	c := &panCurve{p: p, frames: frames}

	switch p.Mode {
	case PanAuto:
		c.lfo = modulation.NewLFO(p.Waveform, p.RateHz, sampleRate, 0)
	case PanBounce:
		c.lfo = modulation.NewLFO(modulation.WaveTriangle, p.RateHz, sampleRate, 0)
	}

	return c
}

func (c *panCurve) at(i int) float64 {
	p := c.p

	switch p.Mode {
	case PanAuto:
		return core.Clamp(p.Pan+p.Depth*c.lfo.Next(), -1, 1)
	case PanSweep:
		if c.frames < 2 {
			return p.Start
		}
		t := float64(i) / float64(c.frames-1)
		return p.Start + (p.End-p.Start)*t
	case PanBounce:
		u := (c.lfo.Next() + 1) / 2
		return p.Start + (p.End-p.Start)*u
	default:
		return p.Pan
	}
}

// Pan positions in within the stereo field.
func Pan(in *buffer.SampleBuffer, p PanParams) *buffer.SampleBuffer {
	out, _ := PanContext(context.Background(), in, p)
	return out
}

// PanContext is Pan driven by the chunked executor.
//
// Mono input is panned as a point source. Stereo input is balanced: the left
// channel is scaled by the left gain and the right channel by the right gain.
// Channels beyond the second are ignored. Gains never exceed 1, so no
// clipping is applied.
func PanContext(ctx context.Context, in *buffer.SampleBuffer, p PanParams, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	p = p.Sanitize()

	frames := in.Frames()
	out := buffer.New(in.SampleRate, 2, frames)
	srcL, srcR := in.StereoPair()
	dstL, dstR := out.Channels[0], out.Channels[1]
	curve := newPanCurve(p, frames, in.SampleRate)

	step := chunk.Loop(frames, func(start, end int) {
		for i := start; i < end; i++ {
			gl, gr := PanGains(curve.at(i))
			dstL[i] = srcL[i] * gl
			dstR[i] = srcR[i] * gr
		}
	})

	if err := chunk.New("pan", opts...).Run(ctx, step); err != nil {
		return nil, err
	}

	return out, nil
}
