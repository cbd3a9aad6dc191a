package testutil

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// BandEnergy returns the summed spectral power of signal between lo and hi
// Hz (inclusive), measured with a Hann-windowed real FFT over the whole
// signal.
func BandEnergy(signal []float64, sampleRate, lo, hi float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	coeffs, fft := hannSpectrum(signal)
	energy := 0.0
	for k, c := range coeffs {
		f := fft.Freq(k) * sampleRate
		if f < lo || f > hi {
			continue
		}
		energy += real(c)*real(c) + imag(c)*imag(c)
	}
	return energy
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin
// of signal, refined by parabolic interpolation over log magnitudes.
func DominantFrequency(signal []float64, sampleRate float64) float64 {
	if len(signal) < 4 {
		return 0
	}
	coeffs, fft := hannSpectrum(signal)
	best := 1
	for k := 2; k < len(coeffs); k++ {
		if abs2(coeffs[k]) > abs2(coeffs[best]) {
			best = k
		}
	}
	offset := 0.0
	if best > 0 && best+1 < len(coeffs) {
		a := math.Log(abs2(coeffs[best-1]) + 1e-300)
		b := math.Log(abs2(coeffs[best]) + 1e-300)
		c := math.Log(abs2(coeffs[best+1]) + 1e-300)
		if den := a - 2*b + c; den != 0 {
			offset = 0.5 * (a - c) / den
		}
	}
	return (float64(best) + offset) * fft.Freq(1) * sampleRate
}

func hannSpectrum(signal []float64) ([]complex128, *fourier.FFT) {
	seq := window.Hann(append([]float64(nil), signal...))
	fft := fourier.NewFFT(len(seq))
	return fft.Coefficients(nil, seq), fft
}

func abs2(c complex128) float64 {
	return real(c)*real(c) + imag(c)*imag(c)
}
