package fourier

import (
	"fmt"

	"github.com/mjibson/go-dsp/fft"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// Exact returns the DFT of x for any length, without padding. Lengths that
// are not powers of two use Bluestein's algorithm and are markedly slower
// than Forward.
func Exact(x []float64) ([]complex128, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("fourier: exact transform of empty input: %w", core.ErrInvalidArgument)
	}
	return fft.FFTReal(x), nil
}

// ExactInverse returns the scaled inverse DFT of X for any length.
func ExactInverse(X []complex128) ([]complex128, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("fourier: exact inverse of empty input: %w", core.ErrInvalidArgument)
	}
	return fft.IFFT(X), nil
}
