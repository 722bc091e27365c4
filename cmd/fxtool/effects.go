package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-audiofx/codec/decode"
	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/effects/dynamics"
	"github.com/cwbudde/algo-audiofx/dsp/effects/modulation"
	"github.com/cwbudde/algo-audiofx/dsp/effects/spatial"
	"github.com/cwbudde/algo-audiofx/dsp/fade"
	"github.com/cwbudde/algo-audiofx/dsp/mix"
	"github.com/cwbudde/algo-audiofx/dsp/normalize"
	"github.com/cwbudde/algo-audiofx/dsp/speed"
)

// options holds every effect flag. Shared modulation flags default to NaN,
// which selects the effect's own default.
type options struct {
	in, in2, out string
	chunk        int

	start, end float64

	fadeIn, fadeOut float64
	curve           string

	speed     float64
	frameSize int

	ceiling, threshold float64
	release, lookahead float64
	unlinked           bool

	stages              int
	rate, depth         float64
	feedback, base, wet float64
	stereoPhase         float64
	waveform            string
	mixAmount           float64
	lfoRange            string

	pan              float64
	panMode          string
	panStart, panEnd float64

	x, y, atten, rolloff float64
	width                float64

	mode   string
	target float64

	gainA, gainB, offset float64
}

func (o *options) register(fs *flag.FlagSet) {
	nan := math.NaN()

	fs.StringVar(&o.in, "in", "", "input file (wav, aiff, mp3, ogg)")
	fs.StringVar(&o.in2, "in2", "", "second input for mix")
	fs.StringVar(&o.out, "out", "", "output WAV file, - for stdout")
	fs.IntVar(&o.chunk, "chunk", core.DefaultChunkSize, "frames processed between progress reports")

	fs.Float64Var(&o.start, "start", 0, "trim start in seconds")
	fs.Float64Var(&o.end, "end", 0, "trim end in seconds (0 = until the end)")

	fs.Float64Var(&o.fadeIn, "fade-in", 1, "fade-in length in seconds")
	fs.Float64Var(&o.fadeOut, "fade-out", 1, "fade-out length in seconds")
	fs.StringVar(&o.curve, "curve", "linear", "fade curve (linear, exponential, logarithmic, s-curve)")

	fs.Float64Var(&o.speed, "speed", 1, "speed factor for speed and stretch")
	fs.IntVar(&o.frameSize, "frame-size", speed.DefaultFrameSize, "stretch analysis frame size")

	fs.Float64Var(&o.ceiling, "ceiling", nan, "limiter ceiling in dBFS")
	fs.Float64Var(&o.threshold, "threshold", nan, "limiter threshold in dBFS")
	fs.Float64Var(&o.release, "release", nan, "limiter release in ms")
	fs.Float64Var(&o.lookahead, "lookahead", nan, "limiter lookahead in ms")
	fs.BoolVar(&o.unlinked, "unlinked", false, "limit every channel independently")

	fs.IntVar(&o.stages, "stages", 0, "phaser allpass stages (0 = default)")
	fs.Float64Var(&o.rate, "rate", nan, "LFO rate in Hz (phaser, tremolo, pan)")
	fs.Float64Var(&o.depth, "depth", nan, "modulation depth 0..1 (phaser, tremolo, pan)")
	fs.Float64Var(&o.feedback, "feedback", nan, "phaser feedback")
	fs.Float64Var(&o.base, "base", nan, "phaser sweep center in Hz")
	fs.Float64Var(&o.wet, "wet", nan, "phaser wet amount 0..1")
	fs.Float64Var(&o.stereoPhase, "stereo-phase", nan, "LFO phase offset between channels in degrees")
	fs.StringVar(&o.waveform, "waveform", "sine", "LFO waveform (sine, triangle, square, sawtooth)")
	fs.Float64Var(&o.mixAmount, "mix", nan, "tremolo dry/wet mix 0..1")
	fs.StringVar(&o.lfoRange, "range", "bipolar", "tremolo LFO range (bipolar, unipolar)")

	fs.Float64Var(&o.pan, "pan", 0, "pan position -1..1")
	fs.StringVar(&o.panMode, "pan-mode", "static", "pan drive (static, auto, sweep, bounce)")
	fs.Float64Var(&o.panStart, "pan-start", -1, "sweep/bounce start position")
	fs.Float64Var(&o.panEnd, "pan-end", 1, "sweep/bounce end position")

	fs.Float64Var(&o.x, "x", 0, "source x position, negative is left")
	fs.Float64Var(&o.y, "y", nan, "source y position, positive is in front")
	fs.Float64Var(&o.atten, "atten", nan, "distance attenuation 0..1")
	fs.Float64Var(&o.rolloff, "rolloff", nan, "distance rolloff 0..1")
	fs.Float64Var(&o.width, "width", 1.5, "stereo width for widen")

	fs.StringVar(&o.mode, "mode", "lufs", "normalize measure (peak, rms, lufs)")
	fs.Float64Var(&o.target, "target", nan, "normalize target in dB")

	fs.Float64Var(&o.gainA, "gain-a", 1, "mix gain of -in")
	fs.Float64Var(&o.gainB, "gain-b", 1, "mix gain of -in2")
	fs.Float64Var(&o.offset, "offset", 0, "mix start of -in2 in seconds")
}

// or returns def when v is NaN.
func or(v, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return v
}

func (o options) waveformValue() (modulation.Waveform, error) {
	w, ok := modulation.ParseWaveform(o.waveform)
	if !ok {
		return w, fmt.Errorf("unknown waveform %q", o.waveform)
	}
	return w, nil
}

type applyFunc func(ctx context.Context, in *buffer.SampleBuffer, o options, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error)

type effect struct {
	name  string
	about string
	apply applyFunc
}

var effects = []effect{
	{"trim", "keep the region between -start and -end", applyTrim},
	{"fade", "fade in and out", applyFade},
	{"speed", "change speed and pitch together", applySpeed},
	{"stretch", "change speed, keep pitch", applyStretch},
	{"limit", "brick-wall lookahead limiter", applyLimit},
	{"phaser", "swept allpass phaser", applyPhaser},
	{"tremolo", "LFO amplitude modulation", applyTremolo},
	{"pan", "equal-power panner", applyPan},
	{"spatialize", "binaural source placement", applySpatialize},
	{"widen", "mid/side stereo width", applyWiden},
	{"normalize", "peak, RMS or loudness normalization", applyNormalize},
	{"mix", "mix -in2 onto -in", applyMix},
	{"info", "print level and spectrum information", nil},
}

func lookupEffect(name string) (effect, bool) {
	for _, e := range effects {
		if e.name == name {
			return e, true
		}
	}
	return effect{}, false
}

func printEffects(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range effects {
		fmt.Fprintf(tw, "%s\t%s\n", e.name, e.about)
	}
	tw.Flush()
}

func applyTrim(_ context.Context, in *buffer.SampleBuffer, o options, _ ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	return in.Trim(o.start, o.end), nil
}

func applyFade(ctx context.Context, in *buffer.SampleBuffer, o options, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	c, ok := fade.ParseCurve(o.curve)
	if !ok {
		return nil, fmt.Errorf("unknown curve %q", o.curve)
	}
	p := fade.Params{InSeconds: o.fadeIn, OutSeconds: o.fadeOut, InCurve: c, OutCurve: c}
	return fade.ApplyContext(ctx, in, p, opts...)
}

func applySpeed(ctx context.Context, in *buffer.SampleBuffer, o options, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	return speed.ResampleContext(ctx, in, o.speed, opts...)
}

func applyStretch(ctx context.Context, in *buffer.SampleBuffer, o options, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	p := speed.StretchParams{Speed: o.speed, FrameSize: o.frameSize}
	return speed.StretchContext(ctx, in, p, opts...)
}

func applyLimit(ctx context.Context, in *buffer.SampleBuffer, o options, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	d := dynamics.DefaultLimiterParams()
	p := dynamics.LimiterParams{
		CeilingDB:   or(o.ceiling, d.CeilingDB),
		ThresholdDB: or(o.threshold, d.ThresholdDB),
		ReleaseMs:   or(o.release, d.ReleaseMs),
		LookaheadMs: or(o.lookahead, d.LookaheadMs),
		Linked:      !o.unlinked,
	}
	res, err := dynamics.LimitContext(ctx, in, p, opts...)
	if err != nil {
		return nil, err
	}
	return res.Buffer, nil
}

func applyPhaser(ctx context.Context, in *buffer.SampleBuffer, o options, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	w, err := o.waveformValue()
	if err != nil {
		return nil, err
	}
	d := modulation.DefaultPhaserParams()
	p := modulation.PhaserParams{
		Stages:         d.Stages,
		RateHz:         or(o.rate, d.RateHz),
		Depth:          or(o.depth, d.Depth),
		Feedback:       or(o.feedback, d.Feedback),
		BaseFreq:       or(o.base, d.BaseFreq),
		Wet:            or(o.wet, d.Wet),
		StereoPhaseDeg: or(o.stereoPhase, d.StereoPhaseDeg),
		Waveform:       w,
	}
	if o.stages > 0 {
		p.Stages = o.stages
	}
	return modulation.PhaserContext(ctx, in, p, opts...)
}

func applyTremolo(ctx context.Context, in *buffer.SampleBuffer, o options, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	w, err := o.waveformValue()
	if err != nil {
		return nil, err
	}
	var r modulation.LFORange
	switch o.lfoRange {
	case "bipolar":
		r = modulation.LFORangeBipolar
	case "unipolar":
		r = modulation.LFORangeUnipolar
	default:
		return nil, fmt.Errorf("unknown range %q", o.lfoRange)
	}
	d := modulation.DefaultTremoloParams()
	p := modulation.TremoloParams{
		RateHz:         or(o.rate, d.RateHz),
		Depth:          or(o.depth, d.Depth),
		Mix:            or(o.mixAmount, d.Mix),
		Waveform:       w,
		StereoPhaseDeg: or(o.stereoPhase, d.StereoPhaseDeg),
		Range:          r,
	}
	return modulation.TremoloContext(ctx, in, p, opts...)
}

func applyPan(ctx context.Context, in *buffer.SampleBuffer, o options, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	mode, ok := spatial.ParsePanMode(o.panMode)
	if !ok {
		return nil, fmt.Errorf("unknown pan mode %q", o.panMode)
	}
	w, err := o.waveformValue()
	if err != nil {
		return nil, err
	}
	d := spatial.DefaultPanParams()
	p := spatial.PanParams{
		Mode:     mode,
		Pan:      o.pan,
		RateHz:   or(o.rate, d.RateHz),
		Depth:    or(o.depth, d.Depth),
		Waveform: w,
		Start:    o.panStart,
		End:      o.panEnd,
	}
	return spatial.PanContext(ctx, in, p, opts...)
}

func applySpatialize(ctx context.Context, in *buffer.SampleBuffer, o options, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	d := spatial.DefaultSpatializeParams()
	p := spatial.SpatializeParams{
		X:           o.x,
		Y:           or(o.y, d.Y),
		Attenuation: or(o.atten, d.Attenuation),
		Rolloff:     or(o.rolloff, d.Rolloff),
	}
	return spatial.SpatializeContext(ctx, in, p, opts...)
}

func applyWiden(_ context.Context, in *buffer.SampleBuffer, o options, _ ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	return spatial.Widen(in, o.width), nil
}

func applyNormalize(_ context.Context, in *buffer.SampleBuffer, o options, _ ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	mode, ok := normalize.ParseMode(o.mode)
	if !ok {
		return nil, fmt.Errorf("unknown normalize mode %q", o.mode)
	}
	p := normalize.Params{Mode: mode, TargetDB: or(o.target, normalize.DefaultParams().TargetDB)}
	return normalize.Normalize(in, p).Buffer, nil
}

func applyMix(ctx context.Context, in *buffer.SampleBuffer, o options, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	if o.in2 == "" {
		return nil, fmt.Errorf("mix needs -in2")
	}
	b, err := decode.DecodeFile(o.in2)
	if err != nil {
		return nil, err
	}
	p := mix.Params{GainA: o.gainA, GainB: o.gainB, OffsetSeconds: o.offset}
	return mix.MixContext(ctx, in, b, p, opts...)
}
