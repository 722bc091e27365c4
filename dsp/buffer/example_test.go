package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/buffer"
)

func ExampleSampleBuffer_Trim() {
	b, _ := buffer.FromChannels(4, []float64{0, 1, 2, 3, 4, 5, 6, 7})

	trimmed := b.Trim(0.5, 1.5)
	fmt.Println(trimmed.Frames(), trimmed.Channels[0])

	// Output:
	// 4 [2 3 4 5]
}
