package stft_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/dsp/stft"
)

func ExampleFramework_Process() {
	fw, err := stft.New(256, 128)
	if err != nil {
		panic(err)
	}
	signal := make([]float64, 1000)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * 0.01 * float64(i))
	}
	// Mute every bin: the output is silent.
	out, err := fw.Process(signal, len(signal), func(_ stft.Frame, bins []complex128) error {
		clear(bins)
		return nil
	})
	if err != nil {
		panic(err)
	}
	fmt.Println(len(out), fw.FrameCount(len(signal)), out[500] == 0)
	// Output:
	// 1000 9 true
}
