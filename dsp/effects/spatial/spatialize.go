package spatial

import (
	"context"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/chunk"
)

const (
	defaultSpatialY           = 0.5
	defaultSpatialAttenuation = 0.5
	defaultSpatialRolloff     = 0.5

	// Largest interaural delay, reached for a source at 90 degrees.
	maxITDSeconds = 0.0007
	// Largest interaural level difference as a linear gain offset.
	maxILD = 0.3
	// Head-shadow smoothing never exceeds this pole.
	maxShadowPole = 0.95

	reflectionSeconds = 0.05
	reflectionDecay   = 0.25
)

// SpatializeParams places a source relative to a listener at the origin
// facing +Y. X and Y are in [-1,1]; positive X is to the right.
type SpatializeParams struct {
	X float64
	Y float64
	// Attenuation scales the distance gain: gain = 1 - distance*Attenuation/2.
	Attenuation float64
	// Rolloff scales the head-shadow low-pass on the far ear.
	Rolloff float64
}

// DefaultSpatializeParams returns a source straight ahead at half distance.
func DefaultSpatializeParams() SpatializeParams {
	return SpatializeParams{
		Y:           defaultSpatialY,
		Attenuation: defaultSpatialAttenuation,
		Rolloff:     defaultSpatialRolloff,
	}
}

// Sanitize clamps every field to its legal range. NaN fields take defaults.
func (p SpatializeParams) Sanitize() SpatializeParams {
	p.X = core.ClampOr(p.X, -1, 1, 0)
	p.Y = core.ClampOr(p.Y, -1, 1, defaultSpatialY)
	p.Attenuation = core.ClampOr(p.Attenuation, 0, 1, defaultSpatialAttenuation)
	p.Rolloff = core.ClampOr(p.Rolloff, 0, 1, defaultSpatialRolloff)
	return p
}

// BinauralCues are the per-ear parameters derived from a source position.
type BinauralCues struct {
	Angle    float64 // radians, 0 is straight ahead, positive to the right
	Distance float64 // [0,1]
	// ITDSamples delays the far ear. Positive means the left ear is far.
	ITDSamples int
	ILD        float64
	Gain       float64
	// ShadowPole is the one-pole coefficient applied to the far ear.
	ShadowPole float64
}

// Cues computes the binaural cues for p at sampleRate.
func (p SpatializeParams) Cues(sampleRate int) BinauralCues {
	p = p.Sanitize()

	angle := math.Atan2(p.X, p.Y)
	distance := math.Min(1, math.Hypot(p.X, p.Y))
	side := math.Sin(angle)

	return BinauralCues{
		Angle:      angle,
		Distance:   distance,
		ITDSamples: int(math.Round(side * maxITDSeconds * distance * float64(sampleRate))),
		ILD:        side * maxILD * distance,
		Gain:       1 - distance*p.Attenuation*0.5,
		ShadowPole: math.Min(maxShadowPole, distance*p.Rolloff),
	}
}

// ear is the per-ear rendering state.
type ear struct {
	delay  int
	gain   float64
	pole   float64
	prev   float64
	direct []float64
}

func (e *ear) render(mono []float64, i int) float64 {
	x := 0.0
	if j := i - e.delay; j >= 0 {
		x = mono[j]
	}

	y := x
	if e.pole > 0 {
		y = (1-e.pole)*x + e.pole*e.prev
		e.prev = y
	}

	return y * e.gain
}

// Spatialize renders in as a point source at p.
func Spatialize(in *buffer.SampleBuffer, p SpatializeParams) *buffer.SampleBuffer {
	out, _ := SpatializeContext(context.Background(), in, p)
	return out
}

// SpatializeContext is Spatialize driven by the chunked executor.
//
// The input is downmixed to mono. The far ear is delayed by the ITD and
// low-passed by the head shadow; the near ear is raised and the far ear
// lowered by the ILD. A copy of each ear delayed by 50 ms and scaled by 0.25
// is added as a single reflection. The output is hard-clipped to ±1.
func SpatializeContext(ctx context.Context, in *buffer.SampleBuffer, p SpatializeParams, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	frames := in.Frames()
	mono := in.Mono()
	cues := p.Cues(in.SampleRate)
	out := buffer.New(in.SampleRate, 2, frames)

	left := &ear{gain: cues.Gain * (1 - cues.ILD), direct: make([]float64, frames)}
	right := &ear{gain: cues.Gain * (1 + cues.ILD), direct: make([]float64, frames)}

	switch far := cues.ITDSamples; {
	case far > 0:
		left.delay = far
		left.pole = cues.ShadowPole
	case far < 0:
		right.delay = -far
		right.pole = cues.ShadowPole
	case cues.ILD > 0:
		left.pole = cues.ShadowPole
	case cues.ILD < 0:
		right.pole = cues.ShadowPole
	}

	reflection := int(math.Round(reflectionSeconds * float64(in.SampleRate)))

	step := chunk.Loop(frames, func(start, end int) {
		for c, e := range []*ear{left, right} {
			dst := out.Channels[c]
			for i := start; i < end; i++ {
				d := e.render(mono, i)
				e.direct[i] = d

				if j := i - reflection; j >= 0 {
					d += reflectionDecay * e.direct[j]
				}

				dst[i] = core.HardClip(d, 1)
			}
		}
	})

	if err := chunk.New("spatialize", opts...).Run(ctx, step); err != nil {
		return nil, err
	}

	return out, nil
}
