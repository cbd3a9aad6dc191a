package window_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/window"
)

func ExampleGenerate() {
	w := window.Generate(window.TypeHann, 4, window.WithPeriodic())
	fmt.Printf("%.2f %.2f %.2f %.2f\n", w[0], w[1], w[2], w[3])
	// Output:
	// 0.00 0.50 1.00 0.50
}

func ExampleApply() {
	buf := []float64{1, 1, 1, 1}
	_ = window.Apply(buf, window.Generate(window.TypeHann, 4))
	fmt.Printf("%.2f %.2f %.2f %.2f\n", buf[0], buf[1], buf[2], buf[3])
	// Output:
	// 0.00 0.75 0.75 0.00
}
