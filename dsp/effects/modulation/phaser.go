package modulation

import (
	"context"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/chunk"
)

const (
	defaultPhaserStages      = 4
	defaultPhaserRateHz      = 0.5
	defaultPhaserDepth       = 0.7
	defaultPhaserFeedback    = 0.5
	defaultPhaserBaseFreq    = 1000.0
	defaultPhaserWet         = 0.5
	defaultPhaserStereoPhase = 90.0

	minPhaserStages   = 1
	maxPhaserStages   = 24
	minPhaserRateHz   = 0.01
	maxPhaserRateHz   = 20.0
	maxPhaserFeedback = 0.95
	minPhaserBaseFreq = 50.0
	maxPhaserBaseFreq = 10000.0

	// Sweep frequencies stay below this fraction of the sample rate.
	phaserMaxFreqRatio = 0.45
	// Depth 1 sweeps two octaves either side of the base frequency.
	phaserOctavesPerDepth = 2.0
)

// PhaserParams configures the allpass-cascade phaser.
type PhaserParams struct {
	Stages         int
	RateHz         float64
	Depth          float64
	Feedback       float64
	BaseFreq       float64
	Wet            float64
	StereoPhaseDeg float64
	Waveform       Waveform
}

// DefaultPhaserParams returns a 4-stage 0.5 Hz sine phaser around 1 kHz.
func DefaultPhaserParams() PhaserParams {
	return PhaserParams{
		Stages:         defaultPhaserStages,
		RateHz:         defaultPhaserRateHz,
		Depth:          defaultPhaserDepth,
		Feedback:       defaultPhaserFeedback,
		BaseFreq:       defaultPhaserBaseFreq,
		Wet:            defaultPhaserWet,
		StereoPhaseDeg: defaultPhaserStereoPhase,
		Waveform:       WaveSine,
	}
}

// Sanitize clamps every field to its legal range. NaN fields take defaults.
func (p PhaserParams) Sanitize() PhaserParams {
	p.Stages = core.ClampInt(p.Stages, minPhaserStages, maxPhaserStages)
	p.RateHz = core.ClampOr(p.RateHz, minPhaserRateHz, maxPhaserRateHz, defaultPhaserRateHz)
	p.Depth = core.ClampOr(p.Depth, 0, 1, defaultPhaserDepth)
	p.Feedback = core.ClampOr(p.Feedback, -maxPhaserFeedback, maxPhaserFeedback, defaultPhaserFeedback)
	p.BaseFreq = core.ClampOr(p.BaseFreq, minPhaserBaseFreq, maxPhaserBaseFreq, defaultPhaserBaseFreq)
	p.Wet = core.ClampOr(p.Wet, 0, 1, defaultPhaserWet)
	p.StereoPhaseDeg = core.ClampOr(p.StereoPhaseDeg, 0, 360, defaultPhaserStereoPhase)
	if !p.Waveform.Valid() {
		p.Waveform = WaveSine
	}
	return p
}

// SweepRange returns the LFO sweep bounds in Hz for sampleRate.
func (p PhaserParams) SweepRange(sampleRate int) (minFreq, maxFreq float64) {
	p = p.Sanitize()

	span := math.Exp2(phaserOctavesPerDepth * p.Depth)
	limit := phaserMaxFreqRatio * float64(sampleRate)

	maxFreq = math.Min(p.BaseFreq*span, limit)
	minFreq = math.Min(p.BaseFreq/span, maxFreq)
	return minFreq, maxFreq
}

// phaserVoice is the per-channel filter state.
type phaserVoice struct {
	lfo      LFO
	stages   []AllPassStage
	feedback float64
}

func (v *phaserVoice) process(dry float64, p *PhaserParams, minFreq, ratio, limit float64, sampleRate int) float64 {
	u := (v.lfo.Next() + 1) / 2
	freq := minFreq * math.Pow(ratio, u)

	x := dry + p.Feedback*core.HardClip(v.feedback, 1)

	n := float64(len(v.stages))
	for s := range v.stages {
		f := math.Min(freq*(1+float64(s)/n*0.5), limit)
		x = v.stages[s].Process(x, AllPassCoefficient(f, sampleRate))
	}

	v.feedback = x

	return dry*(1-p.Wet) + p.Wet*x
}

// Phaser applies the phaser to every channel of in.
func Phaser(in *buffer.SampleBuffer, p PhaserParams) *buffer.SampleBuffer {
	out, _ := PhaserContext(context.Background(), in, p)
	return out
}

// PhaserContext is Phaser driven by the chunked executor.
//
// Each channel runs its own LFO, offset by StereoPhaseDeg per channel. The
// LFO moves the sweep frequency exponentially between the bounds returned by
// SweepRange. The output is not clipped.
func PhaserContext(ctx context.Context, in *buffer.SampleBuffer, p PhaserParams, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	p = p.Sanitize()

	frames := in.Frames()
	out := in.Like(frames)

	minFreq, maxFreq := p.SweepRange(in.SampleRate)
	ratio := maxFreq / minFreq
	limit := phaserMaxFreqRatio * float64(in.SampleRate)

	voices := make([]phaserVoice, len(in.Channels))
	for c := range voices {
		voices[c] = phaserVoice{
			lfo:    NewLFO(p.Waveform, p.RateHz, in.SampleRate, PhaseOffset(c, p.StereoPhaseDeg)),
			stages: make([]AllPassStage, p.Stages),
		}
	}

	step := chunk.Loop(frames, func(start, end int) {
		for c, ch := range in.Channels {
			v := &voices[c]
			dst := out.Channels[c]
			for i := start; i < end; i++ {
				dst[i] = v.process(ch[i], &p, minFreq, ratio, limit, in.SampleRate)
			}
		}
	})

	if err := chunk.New("phaser", opts...).Run(ctx, step); err != nil {
		return nil, err
	}

	return out, nil
}
