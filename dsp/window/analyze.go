package window

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// SumSquares returns sum(w[n]^2), the overlap-add weight one frame
// contributes when the same window is used for analysis and synthesis.
func SumSquares(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	return vecmath.DotProduct(coeffs, coeffs)
}

// CoherentGain returns sum(w[n]) / N, the DC response of the window.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}
	return vecmath.Sum(coeffs) / float64(len(coeffs))
}

// EquivalentNoiseBandwidth returns the ENBW in bins.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, fmt.Errorf("window: empty coefficients: %w", core.ErrInvalidArgument)
	}
	sum := vecmath.Sum(coeffs)
	if sum == 0 {
		return 0, fmt.Errorf("window: coherent gain is zero: %w", core.ErrInvalidArgument)
	}
	return float64(len(coeffs)) * SumSquares(coeffs) / (sum * sum), nil
}

// OverlapWeights returns the summed squared window weight at each of the
// hop positions of a steady-state overlap-add, that is
// sum over m of w[n+m*hop]^2 for n in [0, hop). A constant result means the
// window/hop pair reconstructs without modulation.
func OverlapWeights(coeffs []float64, hop int) ([]float64, error) {
	if hop <= 0 || hop > len(coeffs) {
		return nil, fmt.Errorf("window: hop %d outside [1, %d]: %w", hop, len(coeffs), core.ErrInvalidArgument)
	}
	out := make([]float64, hop)
	for i, c := range coeffs {
		out[i%hop] += c * c
	}
	return out, nil
}
