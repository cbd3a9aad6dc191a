package stft

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/dsp/buffer"
	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/fourier"
	"github.com/cwbudde/algo-spectral/dsp/parallel"
	"github.com/cwbudde/algo-spectral/dsp/window"
	"github.com/cwbudde/algo-spectral/logging"
)

// NormFloor is the smallest summed squared window weight an output sample
// is divided by. Samples with less weight keep their accumulated value.
const NormFloor = 1e-12

// Frame describes one analysis frame. Start may be negative and
// Start+Length may exceed the signal; samples outside it read as zero.
type Frame struct {
	Index  int
	Start  int
	Length int
	Hop    int
}

// End returns the exclusive end position of the frame.
func (f Frame) End() int { return f.Start + f.Length }

// SpectralFunc mutates the bins of one frame in place.
type SpectralFunc func(f Frame, bins []complex128) error

// Option configures a Framework.
type Option func(*config)

type config struct {
	fftSize      int
	window       window.Function
	synthesisHop int
	scale        float64
	workers      int
	exec         *parallel.Executor
	logger       logging.Logger
}

// WithFFTSize sets the transform size. It must be a power of two no smaller
// than the window size. The default is the next power of two.
func WithFFTSize(n int) Option {
	return func(c *config) { c.fftSize = n }
}

// WithWindow sets the window shape. The default is a periodic Hann window.
func WithWindow(w window.Function) Option {
	return func(c *config) { c.window = w }
}

// WithSynthesisHop sets the output hop. A value different from the
// analysis hop stretches (larger) or compresses (smaller) time; frame
// centres are scaled by synthesisHop/hop.
func WithSynthesisHop(hop int) Option {
	return func(c *config) { c.synthesisHop = hop }
}

// WithTimeScale places output frames scale times as far apart as the
// analysis frames, so the output runs scale times as long. Frame positions
// are rounded individually and do not drift. It takes precedence over
// WithSynthesisHop.
func WithTimeScale(scale float64) Option {
	return func(c *config) { c.scale = scale }
}

// WithWorkers sets the number of goroutines used per call. 1 (the default)
// keeps all work on the calling goroutine; <= 0 uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n; c.exec = nil }
}

// WithExecutor shares an existing executor.
func WithExecutor(e *parallel.Executor) Option {
	return func(c *config) { c.exec = e }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l logging.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Framework holds the immutable parameters of an STFT: window coefficients,
// transform size and hops.
type Framework struct {
	windowSize   int
	hop          int
	synthesisHop int
	scale        float64
	fftSize      int
	pad          int
	coeffs       []float64
	coeffsSq     []float64
	exec         *parallel.Executor
	log          logging.Logger
	scratch      *buffer.Pool
	spectra      *buffer.ComplexPool
}

// New validates the parameters and precomputes the window.
func New(windowSize, hop int, opts ...Option) (*Framework, error) {
	cfg := config{workers: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if windowSize < 1 {
		return nil, fmt.Errorf("stft: window size must be >= 1: %d: %w", windowSize, core.ErrInvalidArgument)
	}
	if hop < 1 || hop > windowSize {
		return nil, fmt.Errorf("stft: hop %d outside [1, %d]: %w", hop, windowSize, core.ErrInvalidArgument)
	}
	scale := cfg.scale
	switch {
	case scale != 0:
		exact := float64(hop) * scale
		if !core.IsFinitePositive(scale) || exact < 1 || exact > float64(windowSize) {
			return nil, fmt.Errorf("stft: time scale %v gives synthesis hop outside [1, %d]: %w", scale, windowSize, core.ErrInvalidArgument)
		}
		cfg.synthesisHop = int(math.Round(exact))
	case cfg.synthesisHop == 0:
		cfg.synthesisHop = hop
		scale = 1
	default:
		scale = float64(cfg.synthesisHop) / float64(hop)
	}
	if cfg.synthesisHop < 1 || cfg.synthesisHop > windowSize {
		return nil, fmt.Errorf("stft: synthesis hop %d outside [1, %d]: %w", cfg.synthesisHop, windowSize, core.ErrInvalidArgument)
	}
	if cfg.fftSize == 0 {
		cfg.fftSize = fourier.Size(windowSize)
	}
	if cfg.fftSize < windowSize {
		return nil, fmt.Errorf("stft: fft size %d below window size %d: %w", cfg.fftSize, windowSize, core.ErrInvalidArgument)
	}
	if err := fourier.CheckSize(cfg.fftSize); err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}
	if cfg.window == nil {
		cfg.window = window.Shape(window.TypeHann, window.WithPeriodic())
	}
	coeffs := cfg.window.Generate(windowSize)
	if err := window.Validate(coeffs, windowSize); err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}
	coeffs = append([]float64(nil), coeffs...)
	coeffsSq := make([]float64, windowSize)
	if err := window.ApplyTo(coeffsSq, coeffs, coeffs); err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}

	exec := cfg.exec
	if exec == nil {
		exec = parallel.New(cfg.workers)
	}

	return &Framework{
		windowSize:   windowSize,
		hop:          hop,
		synthesisHop: cfg.synthesisHop,
		scale:        scale,
		fftSize:      cfg.fftSize,
		pad:          windowSize - hop,
		coeffs:       coeffs,
		coeffsSq:     coeffsSq,
		exec:         exec,
		log:          logging.OrNoOp(cfg.logger),
		scratch:      buffer.NewPool(),
		spectra:      buffer.NewComplexPool(),
	}, nil
}

// WindowSize returns the frame length in samples.
func (fw *Framework) WindowSize() int { return fw.windowSize }

// Hop returns the analysis hop.
func (fw *Framework) Hop() int { return fw.hop }

// SynthesisHop returns the output hop.
func (fw *Framework) SynthesisHop() int { return fw.synthesisHop }

// FFTSize returns the transform size.
func (fw *Framework) FFTSize() int { return fw.fftSize }

// Pad returns the number of implicit zeros before and after the signal.
func (fw *Framework) Pad() int { return fw.pad }

// Workers returns the number of goroutines used per call.
func (fw *Framework) Workers() int { return fw.exec.Workers() }

// WindowCoefficients returns a copy of the window.
func (fw *Framework) WindowCoefficients() []float64 {
	return append([]float64(nil), fw.coeffs...)
}

// FrameCount returns the number of frames covering a signal of n samples:
// ceil((n + 2*pad - windowSize) / hop) + 1, or 0 for an empty signal.
func (fw *Framework) FrameCount(n int) int {
	if n <= 0 {
		return 0
	}
	span := n + 2*fw.pad - fw.windowSize
	if span <= 0 {
		return 1
	}
	return (span+fw.hop-1)/fw.hop + 1
}

// Frames returns the layout of all frames covering a signal of n samples.
func (fw *Framework) Frames(n int) []Frame {
	out := make([]Frame, fw.FrameCount(n))
	for i := range out {
		out[i] = fw.frame(i)
	}
	return out
}

func (fw *Framework) frame(i int) Frame {
	return Frame{Index: i, Start: i*fw.hop - fw.pad, Length: fw.windowSize, Hop: fw.hop}
}

// SynthesisStart returns the output position of frame i. Frame centres
// are scaled by the time scale and rounded.
func (fw *Framework) SynthesisStart(i int) int {
	if fw.scale == 1 {
		return i*fw.hop - fw.pad
	}
	half := float64(fw.windowSize) / 2
	centre := float64(i*fw.hop-fw.pad) + half
	return int(math.Round(centre*fw.scale - half))
}

// SynthesisAdvance returns the distance between the output positions of
// frames i-1 and i. Frame 0 reports the nominal synthesis hop.
func (fw *Framework) SynthesisAdvance(i int) int {
	if i <= 0 {
		return fw.synthesisHop
	}
	return fw.SynthesisStart(i) - fw.SynthesisStart(i-1)
}

// TimeScale returns the ratio of output to input duration.
func (fw *Framework) TimeScale() float64 { return fw.scale }

// OutputLength returns the output length implied by the time scale for an
// input of n samples.
func (fw *Framework) OutputLength(n int) int {
	if fw.scale == 1 {
		return n
	}
	return int(math.Round(float64(n) * fw.scale))
}
