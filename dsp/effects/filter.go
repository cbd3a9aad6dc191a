package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/dsp/buffer"
	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/fourier"
	"github.com/cwbudde/algo-spectral/dsp/stft"
)

// Kind selects the pass region of a Filter.
type Kind int

const (
	// KindLowPass passes frequencies up to High.
	KindLowPass Kind = iota
	// KindHighPass passes frequencies from Low upwards.
	KindHighPass
	// KindBandPass passes frequencies in [Low, High].
	KindBandPass
	// KindBandCut removes frequencies in [Low, High].
	KindBandCut
)

func (k Kind) String() string {
	switch k {
	case KindLowPass:
		return "lowpass"
	case KindHighPass:
		return "highpass"
	case KindBandPass:
		return "bandpass"
	case KindBandCut:
		return "bandcut"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// HardEdge is the Transition value that forces a hard edge. A Transition of
// 0 is a hard edge too, except in Processor.ApplyFilter, which replaces 0
// with the processor's WithTransition default.
const HardEdge = -1.0

// Filter is a zero-phase spectral gain mask. Band edges may be given in
// either order. Transition is the width in Hz of a raised-cosine edge
// centred on each cutoff; 0 or HardEdge gives a hard edge.
type Filter struct {
	Kind       Kind
	Low        float64
	High       float64
	Transition float64
}

// LowPass returns a filter passing frequencies up to cutoff.
func LowPass(cutoff float64) Filter { return Filter{Kind: KindLowPass, High: cutoff} }

// HighPass returns a filter passing frequencies from cutoff upwards.
func HighPass(cutoff float64) Filter { return Filter{Kind: KindHighPass, Low: cutoff} }

// BandPass returns a filter passing frequencies between lo and hi.
func BandPass(lo, hi float64) Filter { return Filter{Kind: KindBandPass, Low: lo, High: hi} }

// BandCut returns a filter removing frequencies between lo and hi.
func BandCut(lo, hi float64) Filter { return Filter{Kind: KindBandCut, Low: lo, High: hi} }

func (f Filter) width() float64 {
	if f.Transition == HardEdge {
		return 0
	}
	return f.Transition
}

func (f Filter) edges() (lo, hi float64) {
	if f.Low > f.High && (f.Kind == KindBandPass || f.Kind == KindBandCut) {
		return f.High, f.Low
	}
	return f.Low, f.High
}

// Validate checks the filter against sampleRate. Edges must be finite,
// non-negative and below the Nyquist frequency.
func (f Filter) Validate(sampleRate float64) error {
	if !core.IsFinitePositive(sampleRate) {
		return fmt.Errorf("effects: sample rate must be positive and finite: %v: %w", sampleRate, core.ErrInvalidArgument)
	}
	if f.Transition != HardEdge && (!core.IsFinite(f.Transition) || f.Transition < 0) {
		return fmt.Errorf("effects: transition must be finite and >= 0 or HardEdge: %v: %w", f.Transition, core.ErrInvalidArgument)
	}
	var edges []float64
	switch f.Kind {
	case KindLowPass:
		edges = []float64{f.High}
	case KindHighPass:
		edges = []float64{f.Low}
	case KindBandPass, KindBandCut:
		edges = []float64{f.Low, f.High}
	default:
		return fmt.Errorf("effects: unknown filter kind %v: %w", f.Kind, core.ErrInvalidArgument)
	}
	for _, e := range edges {
		if err := checkEdge(e, sampleRate); err != nil {
			return err
		}
	}
	return nil
}

func checkEdge(f, sampleRate float64) error {
	nyquist := sampleRate / 2
	if !core.IsFinite(f) || f < 0 || f >= nyquist {
		return fmt.Errorf("effects: band edge %v Hz outside [0, %v): %w", f, nyquist, core.ErrInvalidArgument)
	}
	return nil
}

// Gains returns the gain of bins 0..fftSize/2 at sampleRate.
func (f Filter) Gains(sampleRate float64, fftSize int) ([]float64, error) {
	if err := f.Validate(sampleRate); err != nil {
		return nil, err
	}
	if err := fourier.CheckSize(fftSize); err != nil {
		return nil, fmt.Errorf("effects: %w", err)
	}
	lo, hi := f.edges()
	width := f.width()
	gains := make([]float64, fftSize/2+1)
	for k := range gains {
		freq := fourier.BinFrequency(k, sampleRate, fftSize)
		switch f.Kind {
		case KindLowPass:
			gains[k] = below(freq, hi, width)
		case KindHighPass:
			gains[k] = above(freq, lo, width)
		case KindBandPass:
			gains[k] = above(freq, lo, width) * below(freq, hi, width)
		case KindBandCut:
			gains[k] = 1 - above(freq, lo, width)*below(freq, hi, width)
		}
	}
	return gains, nil
}

// Mutation returns the per-frame mutation applying the filter to
// fftSize-point spectra.
func (f Filter) Mutation(sampleRate float64, fftSize int) (stft.SpectralFunc, error) {
	gains, err := f.Gains(sampleRate, fftSize)
	if err != nil {
		return nil, err
	}
	return gainMutation(gains, fftSize), nil
}

// below is the gain of a pass region ending at edge.
func below(freq, edge, width float64) float64 {
	if width == 0 {
		if freq <= edge {
			return 1
		}
		return 0
	}
	start := edge - width/2
	switch {
	case freq <= start:
		return 1
	case freq >= edge+width/2:
		return 0
	}
	return 0.5 * (1 + math.Cos(math.Pi*(freq-start)/width))
}

// above is the gain of a pass region starting at edge.
func above(freq, edge, width float64) float64 {
	if width == 0 {
		if freq >= edge {
			return 1
		}
		return 0
	}
	return 1 - below(freq, edge, width)
}

// mirrorGains expands gains for bins 0..n/2 to all n bins so that bin n-k
// gets the gain of bin k.
func mirrorGains(half []float64, n int) []float64 {
	full := make([]float64, n)
	for k := range full {
		full[k] = half[min(k, n-k)]
	}
	return full
}

func gainMutation(half []float64, fftSize int) stft.SpectralFunc {
	full := mirrorGains(half, fftSize)
	return func(_ stft.Frame, bins []complex128) error {
		return buffer.ComplexFromSlice(bins).MulReal(full)
	}
}

// ApplyFilter applies f to every channel of buf in place. A zero
// Transition takes the processor's default; use HardEdge for a hard edge
// on a processor built WithTransition.
func (p *Processor) ApplyFilter(buf *buffer.Buffer, f Filter) error {
	effect := f.Kind.String()
	sr, err := checkBuffer(buf)
	if err != nil {
		return p.reject(effect, err)
	}
	if f.Transition == 0 {
		f.Transition = p.transition
	}
	fn, err := f.Mutation(sr, p.fftSize)
	if err != nil {
		return p.reject(effect, err)
	}
	return p.mutateChannels(buf, effect, fn)
}

// LowPassFilter removes content above cutoff Hz from buf.
func (p *Processor) LowPassFilter(buf *buffer.Buffer, cutoff float64) error {
	return p.ApplyFilter(buf, LowPass(cutoff))
}

// HighPassFilter removes content below cutoff Hz from buf.
func (p *Processor) HighPassFilter(buf *buffer.Buffer, cutoff float64) error {
	return p.ApplyFilter(buf, HighPass(cutoff))
}

// BandPassFilter keeps only content between lo and hi Hz.
func (p *Processor) BandPassFilter(buf *buffer.Buffer, lo, hi float64) error {
	return p.ApplyFilter(buf, BandPass(lo, hi))
}

// BandCutFilter removes content between lo and hi Hz.
func (p *Processor) BandCutFilter(buf *buffer.Buffer, lo, hi float64) error {
	return p.ApplyFilter(buf, BandCut(lo, hi))
}
