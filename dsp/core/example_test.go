package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithChunkSize(4096),
	)

	fmt.Printf("chunkSize=%d\n", cfg.ChunkSize)

	// Output:
	// chunkSize=4096
}

func ExampleSoftClip() {
	fmt.Printf("%.3f %.3f %.3f\n", core.SoftClip(0.5), core.SoftClip(1.0), core.SoftClip(-4))

	// Output:
	// 0.500 1.000 -0.950
}
