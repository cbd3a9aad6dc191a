package buffer

import (
	"errors"
	"math"
	"math/cmplx"
	"slices"
	"testing"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

func TestComplexFromReal(t *testing.T) {
	c := ComplexFromReal([]float64{1, 2, 3}, 4)
	want := []complex128{1, 2, 3, 0}
	if !slices.Equal(c.Bins(), want) {
		t.Fatalf("padded = %v, want %v", c.Bins(), want)
	}
	if got := ComplexFromReal([]float64{1, 2, 3}, 2).Bins(); !slices.Equal(got, []complex128{1, 2}) {
		t.Fatalf("truncated = %v", got)
	}
	if got := ComplexFromReal([]float64{1, 2}, 0).Len(); got != 2 {
		t.Fatalf("natural size Len() = %d", got)
	}
}

func TestComplexArithmetic(t *testing.T) {
	a := ComplexFromSlice([]complex128{1 + 1i, 2})
	b := ComplexFromSlice([]complex128{1i, 2})

	if err := a.Mul(b); err != nil {
		t.Fatalf("Mul: %v", err)
	}
	if !slices.Equal(a.Bins(), []complex128{-1 + 1i, 4}) {
		t.Fatalf("Mul = %v", a.Bins())
	}
	if err := a.Div(b); err != nil {
		t.Fatalf("Div: %v", err)
	}
	if !slices.Equal(a.Bins(), []complex128{1 + 1i, 2}) {
		t.Fatalf("Div = %v", a.Bins())
	}
	if err := a.Add(b); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := a.Sub(b); err != nil {
		t.Fatalf("Sub: %v", err)
	}
	if !slices.Equal(a.Bins(), []complex128{1 + 1i, 2}) {
		t.Fatalf("Add/Sub = %v", a.Bins())
	}
	a.Scale(2)
	a.Conjugate()
	if !slices.Equal(a.Bins(), []complex128{2 - 2i, 4}) {
		t.Fatalf("Scale/Conjugate = %v", a.Bins())
	}
	if err := a.Add(NewComplex(3)); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("length mismatch err = %v", err)
	}
	if err := a.MulReal([]float64{1}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("MulReal mismatch err = %v", err)
	}
}

func TestComplexMulRealPreservesPhase(t *testing.T) {
	c := NewComplex(2)
	c.SetPolar(0, 1, 0.7)
	c.SetPolar(1, 2, -2.1)
	before := c.Phase()
	if err := c.MulReal([]float64{0.5, 3}); err != nil {
		t.Fatalf("MulReal: %v", err)
	}
	after := c.Phase()
	for k := range before {
		if math.Abs(before[k]-after[k]) > 1e-12 {
			t.Fatalf("bin %d phase %v -> %v", k, before[k], after[k])
		}
	}
	mag := c.Magnitude()
	if math.Abs(mag[0]-0.5) > 1e-12 || math.Abs(mag[1]-6) > 1e-12 {
		t.Fatalf("Magnitude() = %v", mag)
	}
	if pw := c.Power(); math.Abs(pw[1]-36) > 1e-9 {
		t.Fatalf("Power() = %v", pw)
	}
}

func TestComplexEditing(t *testing.T) {
	c := ComplexFromSlice([]complex128{1, 4})
	if err := c.Insert(ComplexFromSlice([]complex128{2, 3}), 1); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	sub, err := c.SubBuffer(1, 2)
	if err != nil {
		t.Fatalf("SubBuffer: %v", err)
	}
	if err := c.Cut(1, 2); err != nil {
		t.Fatalf("Cut: %v", err)
	}
	c.Append(sub)
	if !slices.Equal(c.Bins(), []complex128{1, 4, 2, 3}) {
		t.Fatalf("Bins() = %v", c.Bins())
	}
	if _, err := c.SubBuffer(3, 2); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("SubBuffer err = %v", err)
	}
	if err := c.Cut(4, 1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Cut err = %v", err)
	}
	if err := c.Insert(sub, 9); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Insert err = %v", err)
	}
	if got := c.Real(); !slices.Equal(got, []float64{1, 4, 2, 3}) {
		t.Fatalf("Real() = %v", got)
	}
}

func TestMirrorHermitian(t *testing.T) {
	for _, n := range []int{1, 2, 5, 8} {
		c := NewComplex(n)
		for k := range c.Bins() {
			c.Set(k, complex(float64(k+1), float64(k+2)))
		}
		c.MirrorHermitian()
		bins := c.Bins()
		if imag(bins[0]) != 0 {
			t.Fatalf("n=%d: DC not real: %v", n, bins[0])
		}
		for k := 1; k < n; k++ {
			if bins[n-k] != cmplx.Conj(bins[k]) {
				t.Fatalf("n=%d: X[%d]=%v, conj X[%d]=%v", n, n-k, bins[n-k], k, cmplx.Conj(bins[k]))
			}
		}
	}
}
