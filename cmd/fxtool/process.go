package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-audiofx/codec/decode"
	"github.com/cwbudde/algo-audiofx/codec/pcm"
	"github.com/cwbudde/algo-audiofx/codec/wavenc"
	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/spectrum"
	"github.com/cwbudde/algo-audiofx/measure/loudness"
)

func process(ctx context.Context, log *logrus.Logger, e effect, o options, stdout io.Writer) error {
	in, err := decode.DecodeFile(o.in)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"file":     o.in,
		"rate":     in.SampleRate,
		"channels": in.NumChannels(),
		"frames":   in.Frames(),
	}).Info("decoded input")

	if e.apply == nil {
		return printInfo(stdout, o.in, in)
	}

	opts := progressOptions(log, o.chunk)

	out, err := e.apply(ctx, in, o, opts...)
	if err != nil {
		return fmt.Errorf("%s: %w", e.name, err)
	}
	log.WithFields(logrus.Fields{
		"effect":   e.name,
		"frames":   out.Frames(),
		"channels": out.NumChannels(),
		"peak":     out.Peak(),
	}).Info("applied effect")

	if err := writeOutput(ctx, o.out, stdout, out, progressOptions(log, encodeChunk(o.chunk))...); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"file": o.out}).Info("wrote output")
	return nil
}

func progressOptions(log *logrus.Logger, chunkSize int) []core.ProcessorOption {
	return []core.ProcessorOption{
		core.WithChunkSize(chunkSize),
		core.WithProgress(func(percent float64, message string) {
			log.WithFields(logrus.Fields{
				"stage":   message,
				"percent": percent,
			}).Debug("progress")
		}),
	}
}

// encodeChunk converts a chunk size in frames to the handoff's unit of
// whole blocks.
func encodeChunk(frames int) int {
	return max(1, frames/pcm.BlockFrames)
}

// writeOutput streams out into path through the block handoff. "-" writes a
// canonical WAV to stdout, which cannot seek back to patch the header.
func writeOutput(ctx context.Context, path string, stdout io.Writer, out *buffer.SampleBuffer, opts ...core.ProcessorOption) error {
	if path == "-" {
		bw := bufio.NewWriter(stdout)
		if err := pcm.WriteWAV(bw, out); err != nil {
			return err
		}
		return bw.Flush()
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wavenc.New(f, out.SampleRate, out.NumChannels())
	if err := pcm.Handoff(ctx, out, enc, opts...); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func printInfo(w io.Writer, name string, in *buffer.SampleBuffer) error {
	m := loudness.Estimate(in)

	dominant := "-"
	if s, err := spectrum.Analyze(in.Mono(), in.SampleRate); err == nil {
		f, _ := s.Dominant()
		dominant = fmt.Sprintf("%.1f Hz", f)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "file\t%s\n", name)
	fmt.Fprintf(tw, "sample rate\t%d Hz\n", in.SampleRate)
	fmt.Fprintf(tw, "channels\t%d\n", in.NumChannels())
	fmt.Fprintf(tw, "frames\t%d\n", in.Frames())
	fmt.Fprintf(tw, "duration\t%v\n", in.Duration())
	fmt.Fprintf(tw, "peak\t%.2f dBFS\n", m.PeakDB)
	fmt.Fprintf(tw, "rms\t%.2f dBFS\n", m.RMSDB)
	fmt.Fprintf(tw, "loudness\t%.2f LUFS (approx.)\n", m.LUFS)
	fmt.Fprintf(tw, "dominant\t%s\n", dominant)
	return tw.Flush()
}
