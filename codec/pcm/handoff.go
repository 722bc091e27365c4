package pcm

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/chunk"
)

// BlockFrames is the number of frames per handoff block. It matches the
// MPEG-1 Layer III frame length.
const BlockFrames = 1152

// BlockEncoder consumes interleaved 16-bit blocks.
type BlockEncoder interface {
	EncodeBlock(samples []int16) error
	Flush() error
}

// handoff steps through a buffer one block per work unit.
type handoff struct {
	in     *buffer.SampleBuffer
	enc    BlockEncoder
	blocks int
	next   int
	block  []int16
	err    error
}

func (h *handoff) Total() int { return h.blocks }

func (h *handoff) Step(n int) int {
	frames := h.in.Frames()

	for end := min(h.next+n, h.blocks); h.next < end; h.next++ {
		start := h.next * BlockFrames
		h.block = QuantizeFrames(h.block, h.in, start, min(start+BlockFrames, frames))

		if err := h.enc.EncodeBlock(h.block); err != nil {
			h.err = fmt.Errorf("%w: block %d: %w", ErrEncode, h.next, err)
			return 0
		}
	}

	return h.blocks - h.next
}

// Handoff quantizes in and passes it to enc in blocks of BlockFrames frames,
// then calls Flush once. The last block may be shorter. The executor chunk
// size counts blocks. Block boundaries never depend on the chunk size.
func Handoff(ctx context.Context, in *buffer.SampleBuffer, enc BlockEncoder, opts ...core.ProcessorOption) error {
	h := &handoff{
		in:     in,
		enc:    enc,
		blocks: (in.Frames() + BlockFrames - 1) / BlockFrames,
	}

	if err := chunk.New("encode", opts...).Run(ctx, h); err != nil {
		return err
	}

	if h.err != nil {
		return h.err
	}

	if err := enc.Flush(); err != nil {
		return fmt.Errorf("%w: flush: %w", ErrEncode, err)
	}

	return nil
}
