package stft

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/fourier"
	"github.com/cwbudde/algo-spectral/dsp/window"
	"github.com/cwbudde/algo-spectral/logging"
)

// ErrConsumed is returned when an Analysis is used after Synthesize.
var ErrConsumed = fmt.Errorf("stft: analysis already synthesized: %w", core.ErrInvalidOperation)

// Analysis holds the spectra of every frame of one signal.
type Analysis struct {
	fw        *Framework
	frames    []Frame
	bins      [][]complex128
	signalLen int
	consumed  bool
}

// Len returns the number of frames.
func (a *Analysis) Len() int { return len(a.frames) }

// SignalLen returns the length of the analyzed signal.
func (a *Analysis) SignalLen() int { return a.signalLen }

// Frame returns the layout of frame i.
func (a *Analysis) Frame(i int) Frame { return a.frames[i] }

// Bins returns the spectrum of frame i. The slice is owned by the Analysis.
func (a *Analysis) Bins(i int) []complex128 { return a.bins[i] }

// Consumed reports whether Synthesize has taken the frames.
func (a *Analysis) Consumed() bool { return a.consumed }

func (a *Analysis) check(fw *Framework) error {
	switch {
	case a == nil:
		return fmt.Errorf("stft: nil analysis: %w", core.ErrInvalidOperation)
	case a.consumed:
		return ErrConsumed
	case a.fw != fw:
		return fmt.Errorf("stft: analysis belongs to another framework: %w", core.ErrInvalidOperation)
	}
	return nil
}

// Analyze windows, zero-pads and transforms every frame of signal.
// Frames are processed in parallel when the framework has several workers.
func (fw *Framework) Analyze(signal []float64) (*Analysis, error) {
	a := &Analysis{fw: fw, frames: fw.Frames(len(signal)), signalLen: len(signal)}
	a.bins = make([][]complex128, len(a.frames))
	err := fw.exec.ForEach(len(a.frames), func(i int) error {
		a.bins[i] = make([]complex128, fw.fftSize)
		return fw.analyzeFrame(signal, a.frames[i], a.bins[i])
	})
	if err != nil {
		return nil, err
	}
	fw.log.Debug("stft analyze", logging.Fields{
		"samples": len(signal), "frames": len(a.frames), "window": fw.windowSize,
		"hop": fw.hop, "fft": fw.fftSize, "workers": fw.Workers(),
	})
	return a, nil
}

// analyzeFrame writes the transformed, windowed frame into dst, which must
// be fftSize long.
func (fw *Framework) analyzeFrame(signal []float64, f Frame, dst []complex128) error {
	clear(dst)
	lo := max(0, -f.Start)
	hi := min(fw.windowSize, len(signal)-f.Start)
	if lo < hi {
		tmp := fw.scratch.Get(hi - lo)
		seg := tmp.Samples()
		if err := window.ApplyTo(seg, signal[f.Start+lo:f.Start+hi], fw.coeffs[lo:hi]); err != nil {
			fw.scratch.Put(tmp)
			return err
		}
		for j, v := range seg {
			dst[lo+j] = complex(v, 0)
		}
		fw.scratch.Put(tmp)
	}
	return fourier.ForwardInPlace(dst)
}

// Apply calls fn on every frame. Frames are independent and may be visited
// concurrently; use ApplySequential for mutations that carry state from one
// frame to the next.
func (fw *Framework) Apply(a *Analysis, fn SpectralFunc) error {
	if err := a.check(fw); err != nil {
		return err
	}
	return fw.exec.ForEach(len(a.frames), func(i int) error {
		return fn(a.frames[i], a.bins[i])
	})
}

// ApplySequential calls fn on every frame in ascending order on the calling
// goroutine.
func (fw *Framework) ApplySequential(a *Analysis, fn SpectralFunc) error {
	if err := a.check(fw); err != nil {
		return err
	}
	for i := range a.frames {
		if err := fn(a.frames[i], a.bins[i]); err != nil {
			return err
		}
	}
	return nil
}
