package stft

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/buffer"
	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/fourier"
	"github.com/cwbudde/algo-spectral/dsp/parallel"
	"github.com/cwbudde/algo-spectral/dsp/window"
	"github.com/cwbudde/algo-spectral/logging"
)

// batchFrames bounds how many frames are held in flight by Process.
const batchFrames = 64

// accumulator collects overlap-added frames and their window weights.
type accumulator struct {
	fw   *Framework
	out  []float64
	norm []float64
}

func (fw *Framework) newAccumulator(outLen int) *accumulator {
	return &accumulator{fw: fw, out: make([]float64, outLen), norm: make([]float64, outLen)}
}

// add overlap-adds one windowed time frame placed for frame index i.
func (acc *accumulator) add(i int, frame []float64) {
	start := acc.fw.SynthesisStart(i)
	lo := max(0, -start)
	hi := min(len(frame), len(acc.out)-start)
	for j := lo; j < hi; j++ {
		acc.out[start+j] += frame[j]
		acc.norm[start+j] += acc.fw.coeffsSq[j]
	}
}

func (acc *accumulator) finish() []float64 {
	for n, w := range acc.norm {
		if w > NormFloor {
			acc.out[n] = core.FlushDenormals(acc.out[n] / w)
		}
	}
	return acc.out
}

// synthesizeFrame inverse-transforms bins in place and writes the windowed
// first windowSize samples into dst.
func (fw *Framework) synthesizeFrame(bins []complex128, dst []float64) error {
	if err := fourier.InverseInPlace(bins, true); err != nil {
		return err
	}
	for j := range dst {
		dst[j] = real(bins[j])
	}
	return window.Apply(dst, fw.coeffs)
}

// mergeBatch synthesizes frames [r.Start, r.End) in parallel into per-frame
// buffers and then overlap-adds them in frame order, so the result does not
// depend on the worker count.
func (fw *Framework) mergeBatch(acc *accumulator, r parallel.Range, bins func(i int) []complex128, scratch [][]float64) error {
	err := fw.exec.ForEach(r.Len(), func(k int) error {
		return fw.synthesizeFrame(bins(r.Start+k), scratch[k])
	})
	if err != nil {
		return err
	}
	for k := range r.Len() {
		acc.add(r.Start+k, scratch[k])
	}
	return nil
}

func (fw *Framework) batchScratch(n int) [][]float64 {
	scratch := make([][]float64, min(n, batchFrames))
	for k := range scratch {
		scratch[k] = make([]float64, fw.windowSize)
	}
	return scratch
}

// Synthesize inverse-transforms every frame and overlap-adds the result into
// a signal of outLen samples. The Analysis is consumed; using it again
// returns an error wrapping core.ErrInvalidOperation.
func (fw *Framework) Synthesize(a *Analysis, outLen int) ([]float64, error) {
	if err := a.check(fw); err != nil {
		return nil, err
	}
	if outLen < 0 {
		return nil, fmt.Errorf("stft: output length must be >= 0: %d: %w", outLen, core.ErrInvalidArgument)
	}
	a.consumed = true
	acc := fw.newAccumulator(outLen)
	scratch := fw.batchScratch(len(a.frames))
	for start := 0; start < len(a.frames); start += batchFrames {
		r := parallel.Range{Start: start, End: min(start+batchFrames, len(a.frames))}
		if err := fw.mergeBatch(acc, r, a.Bins, scratch); err != nil {
			return nil, err
		}
	}
	a.bins = nil
	fw.log.Debug("stft synthesize", logging.Fields{
		"frames": len(a.frames), "samples": outLen, "synthesis_hop": fw.synthesisHop,
	})
	return acc.finish(), nil
}

// Process runs Analyze, Apply and Synthesize in bounded batches of frames,
// without holding the whole analysis in memory. The output is identical to
// the three-step form.
func (fw *Framework) Process(signal []float64, outLen int, fn SpectralFunc) ([]float64, error) {
	return fw.process(signal, outLen, fn, false)
}

// ProcessSequential is Process with frames mutated in ascending order on
// the calling goroutine, for stateful mutations.
func (fw *Framework) ProcessSequential(signal []float64, outLen int, fn SpectralFunc) ([]float64, error) {
	return fw.process(signal, outLen, fn, true)
}

func (fw *Framework) process(signal []float64, outLen int, fn SpectralFunc, sequential bool) ([]float64, error) {
	if outLen < 0 {
		return nil, fmt.Errorf("stft: output length must be >= 0: %d: %w", outLen, core.ErrInvalidArgument)
	}
	if fn == nil {
		return nil, fmt.Errorf("stft: nil spectral function: %w", core.ErrInvalidArgument)
	}
	frames := fw.Frames(len(signal))
	acc := fw.newAccumulator(outLen)
	scratch := fw.batchScratch(len(frames))
	spectra := make([]*buffer.Complex, min(len(frames), batchFrames))
	bins := make([][]complex128, len(spectra))
	for k := range spectra {
		spectra[k] = fw.spectra.Get(fw.fftSize)
		bins[k] = spectra[k].Bins()
	}
	defer func() {
		for _, c := range spectra {
			fw.spectra.Put(c)
		}
	}()

	for start := 0; start < len(frames); start += batchFrames {
		r := parallel.Range{Start: start, End: min(start+batchFrames, len(frames))}
		batch := func(i int) []complex128 { return bins[i-r.Start] }

		err := fw.exec.ForEach(r.Len(), func(k int) error {
			return fw.analyzeFrame(signal, frames[r.Start+k], bins[k])
		})
		if err != nil {
			return nil, err
		}
		if sequential {
			for k := range r.Len() {
				if err := fn(frames[r.Start+k], bins[k]); err != nil {
					return nil, err
				}
			}
		} else {
			err = fw.exec.ForEach(r.Len(), func(k int) error {
				return fn(frames[r.Start+k], bins[k])
			})
			if err != nil {
				return nil, err
			}
		}
		if err := fw.mergeBatch(acc, r, batch, scratch); err != nil {
			return nil, err
		}
	}
	fw.log.Debug("stft process", logging.Fields{
		"samples": len(signal), "frames": len(frames), "output": outLen,
		"sequential": sequential, "workers": fw.Workers(),
	})
	return acc.finish(), nil
}
