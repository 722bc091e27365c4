package resample

import (
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
)

// ConvertBuffer returns a copy of in at rate. The output has
// round(frames·rate/in.SampleRate) frames and every channel is filtered
// independently. The integer part of the filter delay is removed; the
// fractional remainder is below one output sample. Equal rates return a clone.
func ConvertBuffer(in *buffer.SampleBuffer, rate int, opts ...Option) (*buffer.SampleBuffer, error) {
	if rate <= 0 || in.SampleRate <= 0 {
		return nil, ErrInvalidRate
	}
	if rate == in.SampleRate {
		return in.Clone(), nil
	}

	r, err := NewForRates(float64(in.SampleRate), float64(rate), opts...)
	if err != nil {
		return nil, err
	}

	frames := int(math.Round(float64(in.Frames()) * float64(rate) / float64(in.SampleRate)))
	out := buffer.New(rate, in.NumChannels(), frames)
	if frames == 0 || in.Frames() == 0 {
		return out, nil
	}

	skip := int(math.Round(r.Delay()))
	// Zero tail long enough to flush the filter past the last wanted sample.
	tail := make([]float64, r.maxPhaseLn+int(math.Ceil(r.center/float64(r.up)))+1)

	for c, ch := range in.Channels {
		r.Reset()
		y := r.Process(ch)
		y = append(y, r.Process(tail)...)

		if skip < len(y) {
			copy(out.Channels[c], y[skip:])
		}
	}

	return out, nil
}
