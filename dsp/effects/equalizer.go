package effects

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/buffer"
	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/fourier"
	"github.com/cwbudde/algo-spectral/dsp/stft"
)

// Band scales the bins between Low and High Hz (either order, inclusive).
// When Curve is set it gives the gain at each bin frequency and Amplitude is
// ignored.
type Band struct {
	Low       float64
	High      float64
	Amplitude float64
	Curve     func(freq float64) float64
}

// BandDB returns a Band between lo and hi Hz with its gain given in dB.
func BandDB(lo, hi, gainDB float64) Band {
	return Band{Low: lo, High: hi, Amplitude: core.DBToLinear(gainDB)}
}

func (b Band) contains(freq float64) bool {
	lo, hi := b.Low, b.High
	if lo > hi {
		lo, hi = hi, lo
	}
	return freq >= lo && freq <= hi
}

func (b Band) gain(freq float64) float64 {
	if b.Curve != nil {
		return b.Curve(freq)
	}
	return b.Amplitude
}

// Equalizer is a set of bands. Gains of overlapping bands multiply.
type Equalizer []Band

// Validate checks every band against sampleRate.
func (eq Equalizer) Validate(sampleRate float64) error {
	if !core.IsFinitePositive(sampleRate) {
		return fmt.Errorf("effects: sample rate must be positive and finite: %v: %w", sampleRate, core.ErrInvalidArgument)
	}
	if len(eq) == 0 {
		return fmt.Errorf("effects: equalizer needs at least one band: %w", core.ErrInvalidArgument)
	}
	for i, b := range eq {
		if err := checkEdge(b.Low, sampleRate); err != nil {
			return fmt.Errorf("effects: band %d: %w", i, err)
		}
		if err := checkEdge(b.High, sampleRate); err != nil {
			return fmt.Errorf("effects: band %d: %w", i, err)
		}
		if b.Curve == nil && (!core.IsFinite(b.Amplitude) || b.Amplitude < 0) {
			return fmt.Errorf("effects: band %d amplitude must be finite and >= 0: %v: %w", i, b.Amplitude, core.ErrInvalidArgument)
		}
	}
	return nil
}

// Gains returns the gain of bins 0..fftSize/2 at sampleRate. Curve values
// are checked here, before any processing.
func (eq Equalizer) Gains(sampleRate float64, fftSize int) ([]float64, error) {
	if err := eq.Validate(sampleRate); err != nil {
		return nil, err
	}
	if err := fourier.CheckSize(fftSize); err != nil {
		return nil, fmt.Errorf("effects: %w", err)
	}
	gains := make([]float64, fftSize/2+1)
	for k := range gains {
		gains[k] = 1
		freq := fourier.BinFrequency(k, sampleRate, fftSize)
		for i, b := range eq {
			if !b.contains(freq) {
				continue
			}
			g := b.gain(freq)
			if !core.IsFinite(g) || g < 0 {
				return nil, fmt.Errorf("effects: band %d gain at %v Hz is %v: %w", i, freq, g, core.ErrInvalidArgument)
			}
			gains[k] *= g
		}
	}
	return gains, nil
}

// Mutation returns the per-frame mutation applying the equalizer to
// fftSize-point spectra.
func (eq Equalizer) Mutation(sampleRate float64, fftSize int) (stft.SpectralFunc, error) {
	gains, err := eq.Gains(sampleRate, fftSize)
	if err != nil {
		return nil, err
	}
	return gainMutation(gains, fftSize), nil
}

// Equalizer scales the configured bands of every channel of buf in place.
func (p *Processor) Equalizer(buf *buffer.Buffer, bands ...Band) error {
	const effect = "equalizer"
	sr, err := checkBuffer(buf)
	if err != nil {
		return p.reject(effect, err)
	}
	fn, err := Equalizer(bands).Mutation(sr, p.fftSize)
	if err != nil {
		return p.reject(effect, err)
	}
	return p.mutateChannels(buf, effect, fn)
}
