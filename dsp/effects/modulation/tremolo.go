package modulation

import (
	"context"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/chunk"
)

const (
	defaultTremoloRateHz = 5.0
	defaultTremoloDepth  = 0.5
	defaultTremoloMix    = 1.0

	minTremoloRateHz = 0.01
	maxTremoloRateHz = 40.0
)

// LFORange selects how the LFO value is mapped to a gain.
type LFORange int

const (
	// LFORangeBipolar halves the LFO swing: gain = 1 - depth*(1-v)/2, which
	// spans [1-depth, 1].
	LFORangeBipolar LFORange = iota
	// LFORangeUnipolar applies the raw LFO value: gain = 1 - depth*(1-v),
	// floored at 0. It spans [max(0, 1-2*depth), 1], so depth 0.5 already
	// reaches silence at the trough.
	LFORangeUnipolar
)

// String returns the range name.
func (r LFORange) String() string {
	switch r {
	case LFORangeBipolar:
		return "bipolar"
	case LFORangeUnipolar:
		return "unipolar"
	default:
		return "unknown"
	}
}

// TremoloParams configures the tremolo.
type TremoloParams struct {
	RateHz         float64
	Depth          float64
	Mix            float64
	Waveform       Waveform
	StereoPhaseDeg float64
	Range          LFORange
}

// DefaultTremoloParams returns a 5 Hz sine tremolo at half depth, fully wet.
func DefaultTremoloParams() TremoloParams {
	return TremoloParams{
		RateHz:   defaultTremoloRateHz,
		Depth:    defaultTremoloDepth,
		Mix:      defaultTremoloMix,
		Waveform: WaveSine,
		Range:    LFORangeBipolar,
	}
}

// Sanitize clamps every field to its legal range. NaN fields take defaults.
func (p TremoloParams) Sanitize() TremoloParams {
	p.RateHz = core.ClampOr(p.RateHz, minTremoloRateHz, maxTremoloRateHz, defaultTremoloRateHz)
	p.Depth = core.ClampOr(p.Depth, 0, 1, defaultTremoloDepth)
	p.Mix = core.ClampOr(p.Mix, 0, 1, defaultTremoloMix)
	p.StereoPhaseDeg = core.ClampOr(p.StereoPhaseDeg, 0, 360, 0)
	if !p.Waveform.Valid() {
		p.Waveform = WaveSine
	}
	if p.Range != LFORangeUnipolar {
		p.Range = LFORangeBipolar
	}
	return p
}

// Gain maps an LFO value v in [-1,1] to a tremolo gain in [0,1].
func (p TremoloParams) Gain(v float64) float64 {
	if p.Range == LFORangeUnipolar {
		return max(0, 1-p.Depth*(1-v))
	}
	return 1 - p.Depth*(1-v)/2
}

// Tremolo applies amplitude modulation to every channel of in.
func Tremolo(in *buffer.SampleBuffer, p TremoloParams) *buffer.SampleBuffer {
	out, _ := TremoloContext(context.Background(), in, p)
	return out
}

// TremoloContext is Tremolo driven by the chunked executor.
//
// out = dry*(1-mix) + dry*gain*mix. Gain never exceeds 1, so no clipping is
// applied.
func TremoloContext(ctx context.Context, in *buffer.SampleBuffer, p TremoloParams, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	p = p.Sanitize()

	frames := in.Frames()
	out := in.Like(frames)

	lfos := make([]LFO, len(in.Channels))
	for c := range lfos {
		lfos[c] = NewLFO(p.Waveform, p.RateHz, in.SampleRate, PhaseOffset(c, p.StereoPhaseDeg))
	}

	step := chunk.Loop(frames, func(start, end int) {
		for c, ch := range in.Channels {
			lfo := &lfos[c]
			dst := out.Channels[c]
			for i := start; i < end; i++ {
				g := p.Gain(lfo.Next())
				dst[i] = ch[i]*(1-p.Mix) + ch[i]*g*p.Mix
			}
		}
	})

	if err := chunk.New("tremolo", opts...).Run(ctx, step); err != nil {
		return nil, err
	}

	return out, nil
}
