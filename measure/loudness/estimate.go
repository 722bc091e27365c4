package loudness

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
)

// lufsOffset is the BS.1770 calibration constant.
const lufsOffset = -0.691

// Measurement holds the levels of a buffer in dB. Silence yields -Inf for
// every field.
type Measurement struct {
	PeakDB float64
	RMSDB  float64
	LUFS   float64
}

// Estimate measures in.
//
// PeakDB is 20*log10(max|x|) over all channels. RMSDB is the RMS of all
// samples of all channels. LUFS is -0.691 + 10*log10 of the mean of the
// per-block mean squares, where a block's mean square is taken over every
// sample of every channel in it. A buffer shorter than one block is measured
// as a single block.
func Estimate(in *buffer.SampleBuffer, opts ...Option) Measurement {
	cfg := ApplyOptions(opts...)

	frames := in.Frames()
	if frames == 0 || len(in.Channels) == 0 {
		return Measurement{
			PeakDB: math.Inf(-1),
			RMSDB:  math.Inf(-1),
			LUFS:   math.Inf(-1),
		}
	}

	peak := 0.0
	sumSquares := 0.0
	for _, ch := range in.Channels {
		peak = math.Max(peak, floats.Norm(ch, math.Inf(1)))
		sumSquares += floats.Dot(ch, ch)
	}

	total := float64(frames * len(in.Channels))

	return Measurement{
		PeakDB: core.LinearToDB(peak),
		RMSDB:  core.LinearPowerToDB(sumSquares / total),
		LUFS:   blockLoudness(in, cfg),
	}
}

// BlockMeanSquares returns the mean square of every analysis block of in.
func BlockMeanSquares(in *buffer.SampleBuffer, opts ...Option) []float64 {
	return blockMeanSquares(in, ApplyOptions(opts...))
}

func blockMeanSquares(in *buffer.SampleBuffer, cfg Config) []float64 {
	frames := in.Frames()
	if frames == 0 || len(in.Channels) == 0 {
		return nil
	}

	size := max(1, int(math.Round(cfg.BlockSeconds*float64(in.SampleRate))))
	size = min(size, frames)
	hop := max(1, int(math.Round(float64(size)*(1-cfg.Overlap))))
	norm := float64(size * len(in.Channels))

	var out []float64
	for start := 0; start+size <= frames; start += hop {
		sum := 0.0
		for _, ch := range in.Channels {
			seg := ch[start : start+size]
			sum += floats.Dot(seg, seg)
		}
		out = append(out, sum/norm)
	}

	return out
}

func blockLoudness(in *buffer.SampleBuffer, cfg Config) float64 {
	blocks := blockMeanSquares(in, cfg)
	if len(blocks) == 0 {
		return math.Inf(-1)
	}

	mean := floats.Sum(blocks) / float64(len(blocks))
	if mean <= 0 {
		return math.Inf(-1)
	}

	return lufsOffset + 10*math.Log10(mean)
}
