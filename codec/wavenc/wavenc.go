// Package wavenc adapts the go-audio WAV encoder to pcm.BlockEncoder.
//
// Unlike pcm.WAVWriter it does not need the frame count up front: the
// header sizes are patched on Flush, so the destination must be seekable.
package wavenc

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-audiofx/codec/pcm"
)

const (
	bitDepth      = 16
	wavFormatPCM  = 1
	defaultFrames = pcm.BlockFrames
)

// Encoder streams 16-bit PCM blocks into a WAV container.
type Encoder struct {
	enc      *wav.Encoder
	buf      *audio.IntBuffer
	channels int
	frames   int
}

var _ pcm.BlockEncoder = (*Encoder)(nil)

// New creates an encoder writing to w.
func New(w io.WriteSeeker, sampleRate, channels int) *Encoder {
	channels = max(1, channels)

	return &Encoder{
		enc: wav.NewEncoder(w, sampleRate, bitDepth, channels, wavFormatPCM),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			Data:           make([]int, 0, defaultFrames*channels),
			SourceBitDepth: bitDepth,
		},
		channels: channels,
	}
}

// EncodeBlock appends interleaved samples.
func (e *Encoder) EncodeBlock(samples []int16) error {
	if len(samples)%e.channels != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", pcm.ErrBlockShape, len(samples), e.channels)
	}

	data := e.buf.Data[:0]
	for _, s := range samples {
		data = append(data, int(s))
	}
	e.buf.Data = data

	if err := e.enc.Write(e.buf); err != nil {
		return fmt.Errorf("wavenc: write: %w", err)
	}

	e.frames += len(samples) / e.channels

	return nil
}

// Flush finalizes the header sizes. An encoder that received no blocks
// still produces a valid, empty file.
func (e *Encoder) Flush() error {
	if e.frames == 0 {
		e.buf.Data = e.buf.Data[:0]
		if err := e.enc.Write(e.buf); err != nil {
			return fmt.Errorf("wavenc: write header: %w", err)
		}
	}

	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("wavenc: close: %w", err)
	}
	return nil
}

// Frames returns the number of frames written so far.
func (e *Encoder) Frames() int { return e.frames }
