// Package normalize scales a SampleBuffer to a target level.
package normalize

import (
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/measure/loudness"
)

// Mode selects which level is matched to the target.
type Mode int

const (
	ModePeak Mode = iota
	ModeRMS
	ModeLUFS
)

const (
	defaultTargetDB = -14.0

	minTargetDB = -70.0
	maxTargetDB = 0.0
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModePeak:
		return "peak"
	case ModeRMS:
		return "rms"
	case ModeLUFS:
		return "lufs"
	default:
		return "unknown"
	}
}

// ParseMode maps a name to a Mode. Unknown names yield ModeLUFS and false.
func ParseMode(name string) (Mode, bool) {
	for m := ModePeak; m <= ModeLUFS; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return ModeLUFS, false
}

// Params configures the normalizer.
type Params struct {
	Mode     Mode
	TargetDB float64
}

// DefaultParams targets -14 LUFS.
func DefaultParams() Params {
	return Params{Mode: ModeLUFS, TargetDB: defaultTargetDB}
}

// Sanitize clamps TargetDB to [-70, 0] and resets unknown modes to LUFS.
func (p Params) Sanitize() Params {
	if p.Mode < ModePeak || p.Mode > ModeLUFS {
		p.Mode = ModeLUFS
	}
	p.TargetDB = core.ClampOr(p.TargetDB, minTargetDB, maxTargetDB, defaultTargetDB)
	return p
}

// Level returns the level of m selected by mode.
func Level(m loudness.Measurement, mode Mode) float64 {
	switch mode {
	case ModePeak:
		return m.PeakDB
	case ModeRMS:
		return m.RMSDB
	default:
		return m.LUFS
	}
}

// Result is the normalized buffer plus the gain that produced it.
type Result struct {
	Buffer *buffer.SampleBuffer
	Before loudness.Measurement
	GainDB float64
	// Saturated reports whether any sample went past full scale and was
	// folded by the soft clip.
	Saturated bool
}

// Apply normalizes in to p.TargetDB.
func Apply(in *buffer.SampleBuffer, p Params) *buffer.SampleBuffer {
	return Normalize(in, p).Buffer
}

// Normalize measures in, applies gain 10^((target-current)/20) to every
// sample and soft-clips the result. A non-finite current level (silence)
// returns an unmodified copy with zero gain.
func Normalize(in *buffer.SampleBuffer, p Params) Result {
	p = p.Sanitize()

	before := loudness.Estimate(in)
	current := Level(before, p.Mode)

	if !core.IsFinite(current) {
		return Result{Buffer: in.Clone(), Before: before}
	}

	gainDB := p.TargetDB - current
	gain := core.DBToLinear(gainDB)

	out := in.Like(in.Frames())
	saturated := false
	for c, ch := range in.Channels {
		dst := out.Channels[c]
		for i, v := range ch {
			x := v * gain
			if math.Abs(x) > 1 {
				saturated = true
			}
			dst[i] = core.SoftClip(x)
		}
	}

	return Result{
		Buffer:    out,
		Before:    before,
		GainDB:    gainDB,
		Saturated: saturated,
	}
}
