package decode

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"

	"github.com/cwbudde/algo-audiofx/codec/pcm"
	"github.com/cwbudde/algo-audiofx/dsp/buffer"
)

var (
	// ErrDecode is wrapped by every decoding failure.
	ErrDecode = errors.New("decode: cannot decode input")
	// ErrUnknownFormat is returned when the container cannot be identified.
	ErrUnknownFormat = errors.New("unknown audio format")
	// ErrUnsupportedBitDepth is returned for PCM sample sizes other than
	// 8, 16, 24 or 32 bits.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
)

// aiffReadFrames is the number of frames pulled from the AIFF decoder per
// read.
const aiffReadFrames = 4096

// mp3Channels is fixed: go-mp3 always produces interleaved stereo.
const mp3Channels = 2

// Decode reads the whole stream r as format f. FormatUnknown sniffs the
// stream header.
func Decode(r io.Reader, f Format) (*buffer.SampleBuffer, error) {
	if f == FormatUnknown {
		br := bufio.NewReader(r)
		head, _ := br.Peek(SniffLen)
		f = Sniff(head)
		r = br
	}

	var (
		buf *buffer.SampleBuffer
		err error
	)

	switch f {
	case FormatWAV:
		buf, err = decodeWAV(r)
	case FormatMP3:
		buf, err = decodeMP3(r)
	case FormatOgg:
		buf, err = decodeOgg(r)
	case FormatAIFF:
		buf, err = decodeAIFF(r)
	default:
		err = ErrUnknownFormat
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, f, err)
	}

	if err := buf.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, f, err)
	}

	return buf, nil
}

// DecodeFile opens path and decodes it, using the extension as a hint.
func DecodeFile(path string) (*buffer.SampleBuffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	return Decode(f, FormatFromPath(path))
}

// readSeeker buffers r in memory when it cannot seek. The go-audio decoders
// need to seek over chunks.
func readSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

func decodeWAV(r io.Reader) (*buffer.SampleBuffer, error) {
	rs, err := readSeeker(r)
	if err != nil {
		return nil, err
	}

	d := wav.NewDecoder(rs)
	if !d.IsValidFile() {
		return nil, errors.New("invalid WAV header")
	}

	ib, err := d.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	convert, err := intToFloat(int(d.BitDepth))
	if err != nil {
		return nil, err
	}

	data := make([]float64, len(ib.Data))
	for i, v := range ib.Data {
		data[i] = convert(v)
	}

	return buffer.FromInterleaved(ib.Format.SampleRate, ib.Format.NumChannels, data)
}

func intToFloat(bitDepth int) (func(int) float64, error) {
	switch bitDepth {
	case 8:
		return func(v int) float64 { return float64(v-128) / 128 }, nil
	case 16:
		return func(v int) float64 { return pcm.Dequantize16(int16(v)) }, nil
	case 24, 32:
		scale := float64(int64(1) << (bitDepth - 1))
		return func(v int) float64 { return float64(v) / scale }, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

func decodeAIFF(r io.Reader) (*buffer.SampleBuffer, error) {
	rs, err := readSeeker(r)
	if err != nil {
		return nil, err
	}

	d := aiff.NewDecoder(rs)
	if !d.IsValidFile() {
		return nil, errors.New("invalid AIFF header")
	}
	d.ReadInfo()

	format := d.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, errors.New("invalid AIFF layout")
	}

	convert, err := intToFloat(int(d.BitDepth))
	if err != nil {
		return nil, err
	}
	if d.BitDepth == 8 {
		// AIFF 8-bit samples are signed.
		convert = func(v int) float64 { return float64(int8(v)) / 128 }
	}

	ib := &audio.IntBuffer{
		Format: format,
		Data:   make([]int, aiffReadFrames*format.NumChannels),
	}

	var data []float64
	for {
		n, err := d.PCMBuffer(ib)
		for _, v := range ib.Data[:n] {
			data = append(data, convert(v))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if n == 0 {
			break
		}
	}

	return buffer.FromInterleaved(format.SampleRate, format.NumChannels, data)
}

func decodeMP3(r io.Reader) (*buffer.SampleBuffer, error) {
	d, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(d)
	if err != nil {
		return nil, err
	}

	data := make([]float64, len(raw)/2)
	for i := range data {
		data[i] = pcm.Dequantize16(int16(binary.LittleEndian.Uint16(raw[2*i:])))
	}

	return buffer.FromInterleaved(d.SampleRate(), mp3Channels, data)
}

func decodeOgg(r io.Reader) (*buffer.SampleBuffer, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, err
	}

	data := make([]float64, len(samples))
	for i, v := range samples {
		data[i] = float64(v)
	}

	return buffer.FromInterleaved(format.SampleRate, format.Channels, data)
}
