package buffer

import (
	"fmt"
	"math/cmplx"
	"slices"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/spectrum"
)

// Complex holds the bins of one transformed frame.
type Complex struct {
	bins []complex128
}

// NewComplex returns a zeroed Complex of n bins.
func NewComplex(n int) *Complex {
	if n < 0 {
		n = 0
	}
	return &Complex{bins: make([]complex128, n)}
}

// ComplexFromSlice wraps bins without copying.
func ComplexFromSlice(bins []complex128) *Complex {
	return &Complex{bins: bins}
}

// ComplexFromReal returns a Complex of size bins holding samples as real
// parts. Samples beyond size are dropped and missing ones are zero.
// A non-positive size uses len(samples).
func ComplexFromReal(samples []float64, size int) *Complex {
	if size <= 0 {
		size = len(samples)
	}
	c := NewComplex(size)
	for i, v := range samples[:min(len(samples), size)] {
		c.bins[i] = complex(v, 0)
	}
	return c
}

// Len returns the number of bins.
func (c *Complex) Len() int { return len(c.bins) }

// Bins returns the underlying slice.
func (c *Complex) Bins() []complex128 { return c.bins }

// At returns bin k.
func (c *Complex) At(k int) complex128 { return c.bins[k] }

// Set stores v in bin k.
func (c *Complex) Set(k int, v complex128) { c.bins[k] = v }

// SetPolar stores the bin with the given magnitude and phase.
func (c *Complex) SetPolar(k int, mag, phase float64) {
	c.bins[k] = cmplx.Rect(mag, phase)
}

// Resize sets the bin count, zero-filling growth.
func (c *Complex) Resize(n int) {
	c.bins = core.Resize(c.bins, n)
}

// Zero sets all bins to 0.
func (c *Complex) Zero() { clear(c.bins) }

// Copy returns a deep copy.
func (c *Complex) Copy() *Complex {
	return &Complex{bins: slices.Clone(c.bins)}
}

// SubBuffer returns an independent copy of length bins starting at offset.
func (c *Complex) SubBuffer(offset, length int) (*Complex, error) {
	bins, err := core.Sub(c.bins, offset, length)
	if err != nil {
		return nil, fmt.Errorf("buffer: complex bins [%d, %d+%d) outside %d: %w", offset, offset, length, len(c.bins), ErrOutOfRange)
	}
	return &Complex{bins: bins}, nil
}

// Insert inserts the bins of other before index at.
func (c *Complex) Insert(other *Complex, at int) error {
	bins, err := core.Insert(c.bins, other.bins, at)
	if err != nil {
		return fmt.Errorf("buffer: complex insert at %d: %w", at, ErrOutOfRange)
	}
	c.bins = bins
	return nil
}

// Append adds the bins of other at the end.
func (c *Complex) Append(other *Complex) {
	c.bins = append(c.bins, other.bins...)
}

// Cut removes length bins starting at at.
func (c *Complex) Cut(at, length int) error {
	bins, err := core.Cut(c.bins, at, length)
	if err != nil {
		return fmt.Errorf("buffer: complex cut [%d, %d+%d): %w", at, at, length, ErrOutOfRange)
	}
	c.bins = bins
	return nil
}

// Conjugate replaces every bin with its complex conjugate.
func (c *Complex) Conjugate() {
	for i, v := range c.bins {
		c.bins[i] = cmplx.Conj(v)
	}
}

// Real returns the real parts.
func (c *Complex) Real() []float64 {
	out := make([]float64, len(c.bins))
	for i, v := range c.bins {
		out[i] = real(v)
	}
	return out
}

// Magnitude returns |X[k]| for every bin.
func (c *Complex) Magnitude() []float64 {
	return spectrum.Magnitude(c.bins)
}

// Power returns |X[k]|^2 for every bin.
func (c *Complex) Power() []float64 {
	return spectrum.Power(c.bins)
}

// Phase returns arg(X[k]) for every bin.
func (c *Complex) Phase() []float64 {
	return spectrum.Phase(c.bins)
}

// Add adds other element-wise.
func (c *Complex) Add(other *Complex) error {
	return c.zip(other, func(a, b complex128) complex128 { return a + b })
}

// Sub subtracts other element-wise.
func (c *Complex) Sub(other *Complex) error {
	return c.zip(other, func(a, b complex128) complex128 { return a - b })
}

// Mul multiplies by other element-wise.
func (c *Complex) Mul(other *Complex) error {
	return c.zip(other, func(a, b complex128) complex128 { return a * b })
}

// Div divides by other element-wise. Division by a zero bin follows complex
// float semantics and yields Inf or NaN.
func (c *Complex) Div(other *Complex) error {
	return c.zip(other, func(a, b complex128) complex128 { return a / b })
}

// Scale multiplies every bin by f.
func (c *Complex) Scale(f float64) {
	s := complex(f, 0)
	for i := range c.bins {
		c.bins[i] *= s
	}
}

// MulReal multiplies bin k by gains[k], preserving phase for non-negative
// gains.
func (c *Complex) MulReal(gains []float64) error {
	if len(gains) != len(c.bins) {
		return fmt.Errorf("buffer: %d gains for %d bins: %w", len(gains), len(c.bins), core.ErrInvalidArgument)
	}
	for i, g := range gains {
		c.bins[i] *= complex(g, 0)
	}
	return nil
}

// MirrorHermitian rebuilds bins above N/2 as conjugates of bins below it and
// clears the imaginary parts of DC and Nyquist, so the inverse transform of
// the buffer is real.
func (c *Complex) MirrorHermitian() {
	n := len(c.bins)
	if n == 0 {
		return
	}
	c.bins[0] = complex(real(c.bins[0]), 0)
	if n == 1 {
		return
	}
	half := n / 2
	for k := 1; k < (n+1)/2; k++ {
		c.bins[n-k] = cmplx.Conj(c.bins[k])
	}
	if n%2 == 0 {
		c.bins[half] = complex(real(c.bins[half]), 0)
	}
}

func (c *Complex) zip(other *Complex, op func(a, b complex128) complex128) error {
	if other == nil || len(other.bins) != len(c.bins) {
		n := 0
		if other != nil {
			n = len(other.bins)
		}
		return fmt.Errorf("buffer: complex length %d vs %d: %w", len(c.bins), n, core.ErrInvalidArgument)
	}
	for i, v := range other.bins {
		c.bins[i] = op(c.bins[i], v)
	}
	return nil
}
