package loudness_test

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
	"github.com/cwbudde/algo-audiofx/measure/loudness"
)

func ExampleEstimate() {
	const fs = 48000

	sig := make([]float64, fs)
	for i := range sig {
		sig[i] = 0.25
	}

	buf, err := buffer.FromChannels(fs, sig)
	if err != nil {
		panic(err)
	}

	m := loudness.Estimate(buf)
	fmt.Printf("Peak: %.2f dBFS\n", m.PeakDB)
	fmt.Printf("RMS: %.2f dBFS\n", m.RMSDB)
	fmt.Printf("Loudness: %.2f LUFS\n", m.LUFS)

	// Output:
	// Peak: -12.04 dBFS
	// RMS: -12.04 dBFS
	// Loudness: -12.73 LUFS
}
