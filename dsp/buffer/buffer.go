package buffer

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInvalidSampleRate indicates a non-positive sample rate.
	ErrInvalidSampleRate = errors.New("buffer: sample rate must be > 0")
	// ErrNoChannels indicates a buffer without channels.
	ErrNoChannels = errors.New("buffer: at least one channel is required")
	// ErrChannelLength indicates channels of unequal length.
	ErrChannelLength = errors.New("buffer: channels must have equal length")
)

// SampleBuffer holds planar floating-point PCM audio.
//
// Every channel has the same length (the frame count). Values are nominally
// in [-1, 1] but may exceed that range inside a transform before its final
// clipping step.
type SampleBuffer struct {
	SampleRate int
	Channels   [][]float64
}

// New returns a zero-filled buffer. Invalid arguments are clamped: the sample
// rate to at least 1, the channel count to at least 1 and frames to at least 0.
func New(sampleRate, channels, frames int) *SampleBuffer {
	sampleRate = max(sampleRate, 1)
	channels = max(channels, 1)
	frames = max(frames, 0)

	b := &SampleBuffer{
		SampleRate: sampleRate,
		Channels:   make([][]float64, channels),
	}
	for c := range b.Channels {
		b.Channels[c] = make([]float64, frames)
	}

	return b
}

// FromChannels copies the given channel slices into a new buffer.
func FromChannels(sampleRate int, channels ...[]float64) (*SampleBuffer, error) {
	b := &SampleBuffer{SampleRate: sampleRate, Channels: make([][]float64, len(channels))}
	for c, ch := range channels {
		b.Channels[c] = append([]float64(nil), ch...)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	return b, nil
}

// FromInterleaved deinterleaves frame-ordered samples into a new buffer.
// Trailing samples that do not fill a whole frame are dropped.
func FromInterleaved(sampleRate, channels int, data []float64) (*SampleBuffer, error) {
	if channels <= 0 {
		return nil, ErrNoChannels
	}

	frames := len(data) / channels
	b := New(sampleRate, channels, frames)
	for i := range frames {
		for c := range channels {
			b.Channels[c][i] = data[i*channels+c]
		}
	}
	b.SampleRate = sampleRate

	if err := b.Validate(); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate checks the buffer invariants.
func (b *SampleBuffer) Validate() error {
	if b.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, b.SampleRate)
	}

	if len(b.Channels) == 0 {
		return ErrNoChannels
	}

	n := len(b.Channels[0])
	for c, ch := range b.Channels {
		if len(ch) != n {
			return fmt.Errorf("%w: channel %d has %d frames, want %d", ErrChannelLength, c, len(ch), n)
		}
	}

	return nil
}

// Frames returns the number of sample frames.
func (b *SampleBuffer) Frames() int {
	if len(b.Channels) == 0 {
		return 0
	}
	return len(b.Channels[0])
}

// NumChannels returns the channel count.
func (b *SampleBuffer) NumChannels() int { return len(b.Channels) }

// Duration returns the playback length.
func (b *SampleBuffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(b.Frames()) / float64(b.SampleRate) * float64(time.Second))
}

// Clone returns a deep copy.
func (b *SampleBuffer) Clone() *SampleBuffer {
	out := &SampleBuffer{SampleRate: b.SampleRate, Channels: make([][]float64, len(b.Channels))}
	for c, ch := range b.Channels {
		out.Channels[c] = append([]float64(nil), ch...)
	}
	return out
}

// Like returns a zero-filled buffer with the same rate and channel count and
// the given number of frames.
func (b *SampleBuffer) Like(frames int) *SampleBuffer {
	return New(b.SampleRate, len(b.Channels), frames)
}

// Mono returns the per-frame average of all channels.
func (b *SampleBuffer) Mono() []float64 {
	out := make([]float64, b.Frames())
	if len(b.Channels) == 0 {
		return out
	}

	if len(b.Channels) == 1 {
		copy(out, b.Channels[0])
		return out
	}

	scale := 1 / float64(len(b.Channels))
	for _, ch := range b.Channels {
		for i, v := range ch {
			out[i] += v
		}
	}
	for i := range out {
		out[i] *= scale
	}

	return out
}

// StereoPair returns the left and right source channels. A mono buffer
// returns its single channel for both ears; extra channels are ignored.
func (b *SampleBuffer) StereoPair() (left, right []float64) {
	switch len(b.Channels) {
	case 0:
		return nil, nil
	case 1:
		return b.Channels[0], b.Channels[0]
	default:
		return b.Channels[0], b.Channels[1]
	}
}

// Slice copies frames [start, end) into a new buffer. Indices are clamped to
// the valid range; an empty range yields a zero-frame buffer.
func (b *SampleBuffer) Slice(start, end int) *SampleBuffer {
	n := b.Frames()
	start = min(max(start, 0), n)
	end = min(max(end, start), n)

	out := &SampleBuffer{SampleRate: b.SampleRate, Channels: make([][]float64, len(b.Channels))}
	for c, ch := range b.Channels {
		out.Channels[c] = append([]float64(nil), ch[start:end]...)
	}

	return out
}

// Trim copies the region between startSec and endSec. A non-positive or NaN
// endSec means "until the end".
func (b *SampleBuffer) Trim(startSec, endSec float64) *SampleBuffer {
	rate := float64(b.SampleRate)

	start := 0
	if startSec > 0 && !math.IsNaN(startSec) {
		start = int(math.Round(math.Min(startSec*rate, float64(b.Frames()))))
	}

	end := b.Frames()
	if endSec > 0 && !math.IsNaN(endSec) {
		end = int(math.Round(math.Min(endSec*rate, float64(b.Frames()))))
	}

	return b.Slice(start, end)
}

// Interleave returns frame-ordered samples (L0 R0 L1 R1 ...).
func (b *SampleBuffer) Interleave() []float64 {
	nc := len(b.Channels)
	out := make([]float64, b.Frames()*nc)
	for c, ch := range b.Channels {
		for i, v := range ch {
			out[i*nc+c] = v
		}
	}
	return out
}

// Peak returns the maximum absolute sample value across all channels.
func (b *SampleBuffer) Peak() float64 {
	peak := 0.0
	for _, ch := range b.Channels {
		for _, v := range ch {
			if a := math.Abs(v); a > peak {
				peak = a
			}
		}
	}
	return peak
}
