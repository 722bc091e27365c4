package pcm

import "errors"

var (
	// ErrEncode wraps failures reported by a BlockEncoder.
	ErrEncode = errors.New("pcm: encoder failed")
	// ErrFrameCount is returned when a WAV writer receives more or fewer
	// frames than its header announced.
	ErrFrameCount = errors.New("pcm: frame count does not match header")
	// ErrBlockShape is returned for blocks that are not whole frames.
	ErrBlockShape = errors.New("pcm: block length is not a multiple of the channel count")
)
