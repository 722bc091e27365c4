package decode

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-audiofx/codec/pcm"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestSniff(t *testing.T) {
	tests := []struct {
		head []byte
		want Format
	}{
		{[]byte("RIFF\x00\x00\x00\x00WAVE"), FormatWAV},
		{[]byte("OggS\x00\x02"), FormatOgg},
		{[]byte("FORM\x00\x00\x00\x00AIFF"), FormatAIFF},
		{[]byte("FORM\x00\x00\x00\x00AIFC"), FormatAIFF},
		{[]byte("ID3\x04\x00"), FormatMP3},
		{[]byte{0xFF, 0xFB, 0x90, 0x00}, FormatMP3},
		{[]byte("RIFF\x00\x00\x00\x00AVI "), FormatUnknown},
		{nil, FormatUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Sniff(tt.head), "Sniff(%q)", tt.head)
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatWAV, FormatFromPath("a/b/Take1.WAV"))
	assert.Equal(t, FormatMP3, FormatFromPath("song.mp3"))
	assert.Equal(t, FormatOgg, FormatFromPath("clip.ogg"))
	assert.Equal(t, FormatAIFF, FormatFromPath("loop.aif"))
	assert.Equal(t, FormatUnknown, FormatFromPath("notes.txt"))
}

func TestDecodeWAVRoundTrip(t *testing.T) {
	in := testutil.Buffer(22050,
		testutil.DeterministicNoise(1, 1, 3000),
		testutil.DeterministicSine(330, 22050, 0.8, 3000),
	)

	var encoded bytes.Buffer
	require.NoError(t, pcm.WriteWAV(&encoded, in))

	for _, f := range []Format{FormatWAV, FormatUnknown} {
		got, err := Decode(bytes.NewReader(encoded.Bytes()), f)
		require.NoError(t, err)

		assert.Equal(t, 22050, got.SampleRate)
		require.Equal(t, 2, got.NumChannels())
		require.Equal(t, 3000, got.Frames())

		for c := range in.Channels {
			for i, x := range in.Channels[c] {
				want := pcm.Dequantize16(pcm.Quantize16(x))
				require.Equal(t, want, got.Channels[c][i], "channel %d frame %d", c, i)
			}
		}
	}
}

func TestDecodeWAVFromPlainReader(t *testing.T) {
	in := testutil.Buffer(8000, []float64{0, 0.25, -0.25, 1, -1})

	var encoded bytes.Buffer
	require.NoError(t, pcm.WriteWAV(&encoded, in))

	// bytes.Buffer is not an io.Seeker.
	got, err := Decode(&encoded, FormatWAV)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, pcm.Dequantize16(8192), -0.25, 1, -1}, got.Channels[0])
}

func TestDecode24BitWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 48000, 24, 1, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 48000},
		Data:           []int{0, 1 << 22, -(1 << 23)},
		SourceBitDepth: 24,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	got, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Equal(t, 48000, got.SampleRate)
	assert.Equal(t, []float64{0, 0.5, -1}, got.Channels[0])
}

func TestDecodeFailures(t *testing.T) {
	garbage := []byte("this is not audio at all")

	for _, f := range []Format{FormatWAV, FormatOgg, FormatAIFF, FormatUnknown} {
		_, err := Decode(bytes.NewReader(garbage), f)
		require.ErrorIs(t, err, ErrDecode, "format %s", f)
	}

	_, err := Decode(bytes.NewReader(garbage), FormatUnknown)
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = DecodeFile(filepath.Join(t.TempDir(), "missing.wav"))
	require.ErrorIs(t, err, ErrDecode)
}

// aiff16 builds a minimal 16-bit AIFF file at 44.1 kHz.
func aiff16(channels int, samples []int16) []byte {
	frames := len(samples) / channels
	data := make([]byte, 2*len(samples))
	for i, v := range samples {
		binary.BigEndian.PutUint16(data[2*i:], uint16(v))
	}

	var b bytes.Buffer
	put := func(v any) { _ = binary.Write(&b, binary.BigEndian, v) }

	b.WriteString("FORM")
	put(uint32(4 + 8 + 18 + 8 + 8 + len(data)))
	b.WriteString("AIFF")

	b.WriteString("COMM")
	put(uint32(18))
	put(uint16(channels))
	put(uint32(frames))
	put(uint16(16))
	// 44100 as an 80-bit IEEE extended float.
	b.Write([]byte{0x40, 0x0E, 0xAC, 0x44, 0, 0, 0, 0, 0, 0})

	b.WriteString("SSND")
	put(uint32(8 + len(data)))
	put(uint32(0))
	put(uint32(0))
	b.Write(data)

	return b.Bytes()
}

func TestDecodeAIFF(t *testing.T) {
	raw := aiff16(2, []int16{0, 16384, -16384, 32767, -32768, 0})

	for _, f := range []Format{FormatAIFF, FormatUnknown} {
		got, err := Decode(bytes.NewReader(raw), f)
		require.NoError(t, err)

		assert.Equal(t, 44100, got.SampleRate)
		require.Equal(t, 2, got.NumChannels())
		require.Equal(t, 3, got.Frames())
		assert.Equal(t, []float64{0, -0.5, -1}, got.Channels[0])
		assert.Equal(t, []float64{pcm.Dequantize16(16384), 1, 0}, got.Channels[1])
	}
}
