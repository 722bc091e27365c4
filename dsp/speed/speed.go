package speed

import (
	"context"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/interp"
	"github.com/cwbudde/algo-audiofx/internal/chunk"
)

const (
	// MinSpeed and MaxSpeed bound the accepted speed factor.
	MinSpeed = 0.05
	MaxSpeed = 20.0
)

// ClampSpeed maps s into [MinSpeed, MaxSpeed]. NaN maps to 1.
func ClampSpeed(s float64) float64 {
	return core.ClampOr(s, MinSpeed, MaxSpeed, 1)
}

// OutputFrames returns floor(inFrames / speed) for a clamped speed.
func OutputFrames(inFrames int, speed float64) int {
	return int(math.Floor(float64(inFrames) / ClampSpeed(speed)))
}

// Resample returns in played back at the given speed factor, changing pitch.
// The output has floor(frames/speed) frames; frame i reads the input at
// position i*speed with linear interpolation.
func Resample(in *buffer.SampleBuffer, speed float64) *buffer.SampleBuffer {
	out, _ := ResampleContext(context.Background(), in, speed)
	return out
}

// ResampleContext is Resample driven by the chunked executor.
func ResampleContext(ctx context.Context, in *buffer.SampleBuffer, speed float64, opts ...core.ProcessorOption) (*buffer.SampleBuffer, error) {
	speed = ClampSpeed(speed)
	out := in.Like(OutputFrames(in.Frames(), speed))

	step := chunk.Loop(out.Frames(), func(start, end int) {
		for c, src := range in.Channels {
			dst := out.Channels[c]
			for i := start; i < end; i++ {
				dst[i] = interp.LinearAt(src, float64(i)*speed)
			}
		}
	})

	if err := chunk.New("resample", opts...).Run(ctx, step); err != nil {
		return nil, err
	}

	return out, nil
}
