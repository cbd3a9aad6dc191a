// Package window generates the tapering windows applied to analysis and
// synthesis frames.
//
// Shapes come from gonum's dsp/window package. Any other shape can be
// plugged in through the Function interface, for example with Func.
package window

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	gwindow "gonum.org/v1/gonum/dsp/window"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// Function produces window coefficients of a requested size.
type Function interface {
	Generate(size int) []float64
}

// Func adapts a plain function to Function.
type Func func(size int) []float64

// Generate calls f.
func (f Func) Generate(size int) []float64 { return f(size) }

// Type identifies a built-in window shape.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris
	TypeBlackmanNuttall
	TypeNuttall
	TypeFlatTop
	TypeBartlettHann
	TypeTriangular
	TypeSine
	TypeLanczos
	TypeTukey
	TypeGaussian
)

var typeNames = [...]string{
	TypeRectangular:     "Rectangular",
	TypeHann:            "Hann",
	TypeHamming:         "Hamming",
	TypeBlackman:        "Blackman",
	TypeBlackmanHarris:  "BlackmanHarris",
	TypeBlackmanNuttall: "BlackmanNuttall",
	TypeNuttall:         "Nuttall",
	TypeFlatTop:         "FlatTop",
	TypeBartlettHann:    "BartlettHann",
	TypeTriangular:      "Triangular",
	TypeSine:            "Sine",
	TypeLanczos:         "Lanczos",
	TypeTukey:           "Tukey",
	TypeGaussian:        "Gaussian",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

const (
	defaultTukeyAlpha    = 0.5
	defaultGaussianSigma = 0.4
)

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	hasAlpha bool
	periodic bool
}

// WithAlpha sets the shape parameter of parametric windows: the taper ratio
// for Tukey (clamped to [0, 1]) and sigma for Gaussian. Negative values are
// ignored.
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.alpha = v
			c.hasAlpha = true
		}
	}
}

// WithPeriodic selects the periodic form used for FFT framing instead of the
// symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns window coefficients of the given size.
// A size <= 0 yields nil and size 1 yields [1].
func Generate(t Type, size int, opts ...Option) []float64 {
	if size <= 0 {
		return nil
	}
	if size == 1 {
		return []float64{1}
	}

	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := size
	if cfg.periodic {
		n++
	}
	seq := make([]float64, n)
	for i := range seq {
		seq[i] = 1
	}
	transform(t, cfg)(seq)
	return seq[:size:size]
}

// Shape returns t with opts bound as a Function.
func Shape(t Type, opts ...Option) Function {
	return Func(func(size int) []float64 {
		return Generate(t, size, opts...)
	})
}

func transform(t Type, cfg config) func([]float64) []float64 {
	switch t {
	case TypeHann:
		return gwindow.Hann
	case TypeHamming:
		return gwindow.Hamming
	case TypeBlackman:
		return gwindow.Blackman
	case TypeBlackmanHarris:
		return gwindow.BlackmanHarris
	case TypeBlackmanNuttall:
		return gwindow.BlackmanNuttall
	case TypeNuttall:
		return gwindow.Nuttall
	case TypeFlatTop:
		return gwindow.FlatTop
	case TypeBartlettHann:
		return gwindow.BartlettHann
	case TypeTriangular:
		return gwindow.Triangular
	case TypeSine:
		return gwindow.Sine
	case TypeLanczos:
		return gwindow.Lanczos
	case TypeTukey:
		alpha := defaultTukeyAlpha
		if cfg.hasAlpha {
			alpha = min(cfg.alpha, 1)
		}
		return gwindow.Tukey{Alpha: alpha}.Transform
	case TypeGaussian:
		sigma := defaultGaussianSigma
		if cfg.hasAlpha && cfg.alpha > 0 {
			sigma = cfg.alpha
		}
		return gwindow.Gaussian{Sigma: sigma}.Transform
	default:
		return gwindow.Rectangular
	}
}

// Apply multiplies buf in place by coeffs.
func Apply(buf, coeffs []float64) error {
	if len(buf) != len(coeffs) {
		return fmt.Errorf("window: %d samples for %d coefficients: %w", len(buf), len(coeffs), core.ErrInvalidArgument)
	}
	if len(buf) == 0 {
		return nil
	}
	vecmath.MulBlockInPlace(buf, coeffs)
	return nil
}

// ApplyTo writes samples*coeffs into dst. All three slices must share a length.
func ApplyTo(dst, samples, coeffs []float64) error {
	if len(samples) != len(coeffs) || len(dst) != len(coeffs) {
		return fmt.Errorf("window: lengths %d/%d/%d differ: %w", len(dst), len(samples), len(coeffs), core.ErrInvalidArgument)
	}
	if len(dst) == 0 {
		return nil
	}
	vecmath.MulBlock(dst, samples, coeffs)
	return nil
}

// Validate checks coefficients produced by a Function for the given size.
func Validate(coeffs []float64, size int) error {
	if len(coeffs) != size {
		return fmt.Errorf("window: function returned %d coefficients for size %d: %w", len(coeffs), size, core.ErrInvalidArgument)
	}
	for i, c := range coeffs {
		if !core.IsFinite(c) {
			return fmt.Errorf("window: coefficient %d is %v: %w", i, c, core.ErrInvalidArgument)
		}
	}
	return nil
}
