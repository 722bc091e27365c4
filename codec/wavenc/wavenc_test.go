package wavenc

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-audiofx/codec/pcm"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func encodeToFile(t *testing.T, fn func(f *os.File) error) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "out.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	require.NoError(t, fn(f))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return data
}

func TestEncoderMatchesCanonicalWriter(t *testing.T) {
	in := testutil.Buffer(44100,
		testutil.DeterministicNoise(1, 0.9, 3*pcm.BlockFrames+11),
		testutil.DeterministicSine(440, 44100, 0.5, 3*pcm.BlockFrames+11),
	)

	var want bytes.Buffer
	require.NoError(t, pcm.WriteWAV(&want, in))

	got := encodeToFile(t, func(f *os.File) error {
		enc := New(f, in.SampleRate, in.NumChannels())
		if err := pcm.Handoff(context.Background(), in, enc, core.WithChunkSize(2)); err != nil {
			return err
		}
		assert.Equal(t, in.Frames(), enc.Frames())
		return nil
	})

	assert.Equal(t, want.Bytes(), got)
}

func TestEncoderEmpty(t *testing.T) {
	got := encodeToFile(t, func(f *os.File) error {
		return New(f, 8000, 1).Flush()
	})

	require.Len(t, got, pcm.HeaderSize)
	h := pcm.Header(8000, 1, 0)
	assert.Equal(t, h[:], got)
}

func TestEncoderRejectsPartialFrames(t *testing.T) {
	encodeToFile(t, func(f *os.File) error {
		enc := New(f, 8000, 2)
		assert.ErrorIs(t, enc.EncodeBlock([]int16{1, 2, 3}), pcm.ErrBlockShape)
		return enc.Flush()
	})
}
