package pcm

import (
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
)

// Quantize16 converts x to a 16-bit sample.
//
// x is clamped to [-1,1]; negative values scale by 32768 and non-negative
// values by 32767, then round to nearest. NaN maps to 0.
func Quantize16(x float64) int16 {
	if math.IsNaN(x) {
		return 0
	}

	switch {
	case x > 1:
		x = 1
	case x < -1:
		x = -1
	}

	if x < 0 {
		return int16(math.Round(x * 32768))
	}

	return int16(math.Round(x * 32767))
}

// Dequantize16 is the inverse scaling of Quantize16.
func Dequantize16(v int16) float64 {
	if v < 0 {
		return float64(v) / 32768
	}

	return float64(v) / 32767
}

// QuantizeFrames writes frames [start, end) of in into dst as interleaved
// 16-bit samples and returns the filled prefix of dst.
func QuantizeFrames(dst []int16, in *buffer.SampleBuffer, start, end int) []int16 {
	channels := in.NumChannels()
	n := (end - start) * channels
	if cap(dst) < n {
		dst = make([]int16, n)
	}
	dst = dst[:n]

	for c, ch := range in.Channels {
		for i := start; i < end; i++ {
			dst[(i-start)*channels+c] = Quantize16(ch[i])
		}
	}

	return dst
}

// Interleave16 quantizes the whole buffer.
func Interleave16(in *buffer.SampleBuffer) []int16 {
	return QuantizeFrames(nil, in, 0, in.Frames())
}
