package pcm

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
)

// HeaderSize is the length of the canonical RIFF/WAVE header.
const HeaderSize = 44

const (
	bitsPerSample = 16
	bytesPerValue = bitsPerSample / 8
	writeChunk    = 8192
)

// Header returns the canonical 44-byte header for 16-bit PCM.
func Header(sampleRate, channels, frames int) [HeaderSize]byte {
	var h [HeaderSize]byte

	blockAlign := channels * bytesPerValue
	dataSize := uint32(frames * blockAlign)

	copy(h[0:4], "RIFF")
	binary.LittleEndian.PutUint32(h[4:8], 36+dataSize)
	copy(h[8:12], "WAVE")

	copy(h[12:16], "fmt ")
	binary.LittleEndian.PutUint32(h[16:20], 16)
	binary.LittleEndian.PutUint16(h[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(h[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(h[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(h[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(h[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(h[34:36], bitsPerSample)

	copy(h[36:40], "data")
	binary.LittleEndian.PutUint32(h[40:44], dataSize)

	return h
}

// WriteWAV writes in as a canonical 16-bit PCM WAV file.
func WriteWAV(w io.Writer, in *buffer.SampleBuffer) error {
	ww, err := NewWAVWriter(w, in.SampleRate, in.NumChannels(), in.Frames())
	if err != nil {
		return err
	}

	var block []int16
	for start := 0; start < in.Frames(); start += writeChunk {
		end := min(start+writeChunk, in.Frames())
		block = QuantizeFrames(block, in, start, end)
		if err := ww.EncodeBlock(block); err != nil {
			return err
		}
	}

	return ww.Flush()
}

// WAVWriter is a BlockEncoder that streams a canonical WAV file whose frame
// count is known up front.
type WAVWriter struct {
	w        io.Writer
	channels int
	frames   int
	written  int
	scratch  []byte
}

// NewWAVWriter writes the header for frames frames and returns a writer for
// the sample data.
func NewWAVWriter(w io.Writer, sampleRate, channels, frames int) (*WAVWriter, error) {
	h := Header(sampleRate, channels, frames)
	if _, err := w.Write(h[:]); err != nil {
		return nil, fmt.Errorf("pcm: write header: %w", err)
	}

	return &WAVWriter{w: w, channels: max(1, channels), frames: frames}, nil
}

// EncodeBlock writes interleaved samples as little-endian int16.
func (ww *WAVWriter) EncodeBlock(samples []int16) error {
	if len(samples)%ww.channels != 0 {
		return fmt.Errorf("%w: %d samples, %d channels", ErrBlockShape, len(samples), ww.channels)
	}

	frames := len(samples) / ww.channels
	if ww.written+frames > ww.frames {
		return fmt.Errorf("%w: %d > %d", ErrFrameCount, ww.written+frames, ww.frames)
	}

	n := len(samples) * bytesPerValue
	if cap(ww.scratch) < n {
		ww.scratch = make([]byte, n)
	}
	buf := ww.scratch[:n]

	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*bytesPerValue:], uint16(s))
	}

	if _, err := ww.w.Write(buf); err != nil {
		return fmt.Errorf("pcm: write samples: %w", err)
	}

	ww.written += frames

	return nil
}

// Flush checks that every announced frame was written.
func (ww *WAVWriter) Flush() error {
	if ww.written != ww.frames {
		return fmt.Errorf("%w: wrote %d of %d", ErrFrameCount, ww.written, ww.frames)
	}
	return nil
}
