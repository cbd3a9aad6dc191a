package fourier

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	algofft "github.com/cwbudde/algo-fft"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// MaxSize is the largest supported transform length.
const MaxSize = 1 << 24

// ErrNotPowerOfTwo is returned for lengths the radix-2 kernel cannot handle.
var ErrNotPowerOfTwo = fmt.Errorf("fourier: length is not a power of two: %w", core.ErrInvalidArgument)

var plans sync.Map // int -> *sync.Pool of *algofft.Plan[complex128]

func planPool(n int) *sync.Pool {
	if p, ok := plans.Load(n); ok {
		return p.(*sync.Pool)
	}
	p, _ := plans.LoadOrStore(n, &sync.Pool{})
	return p.(*sync.Pool)
}

func acquire(n int) (*algofft.Plan[complex128], error) {
	if p, ok := planPool(n).Get().(*algofft.Plan[complex128]); ok {
		return p, nil
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fourier: plan for length %d: %v: %w", n, err, core.ErrInsufficientResource)
	}
	return plan, nil
}

func release(n int, plan *algofft.Plan[complex128]) {
	planPool(n).Put(plan)
}

// CheckSize validates n as a transform length.
func CheckSize(n int) error {
	switch {
	case n <= 0:
		return fmt.Errorf("fourier: length %d must be positive: %w", n, core.ErrInvalidArgument)
	case n > MaxSize:
		return fmt.Errorf("fourier: length %d exceeds %d: %w", n, MaxSize, core.ErrInsufficientResource)
	case !core.IsPowerOfTwo(n):
		return fmt.Errorf("fourier: length %d: %w", n, ErrNotPowerOfTwo)
	}
	return nil
}

// ForwardInPlace replaces x with its forward transform.
func ForwardInPlace(x []complex128) error {
	n := len(x)
	if err := CheckSize(n); err != nil {
		return err
	}
	if n == 1 {
		return nil
	}
	plan, err := acquire(n)
	if err != nil {
		return err
	}
	defer release(n, plan)
	if err := plan.Forward(x, x); err != nil {
		return fmt.Errorf("fourier: forward transform of length %d: %v: %w", n, err, core.ErrInsufficientResource)
	}
	return nil
}

// InverseInPlace replaces X with its inverse transform. With scale the
// result is divided by N.
func InverseInPlace(X []complex128, scale bool) error {
	n := len(X)
	if err := CheckSize(n); err != nil {
		return err
	}
	// IDFT(X) = conj(DFT(conj(X))) / N
	for k, v := range X {
		X[k] = cmplx.Conj(v)
	}
	if err := ForwardInPlace(X); err != nil {
		for k, v := range X {
			X[k] = cmplx.Conj(v)
		}
		return err
	}
	f := 1.0
	if scale {
		f = 1 / float64(n)
	}
	for i, v := range X {
		X[i] = complex(real(v)*f, -imag(v)*f)
	}
	return nil
}

// Forward returns the forward transform of x without modifying it.
func Forward(x []complex128) ([]complex128, error) {
	if err := CheckSize(len(x)); err != nil {
		return nil, err
	}
	out := make([]complex128, len(x))
	copy(out, x)
	if err := ForwardInPlace(out); err != nil {
		return nil, err
	}
	return out, nil
}

// ForwardReal returns the forward transform of real samples.
func ForwardReal(x []float64) ([]complex128, error) {
	if err := CheckSize(len(x)); err != nil {
		return nil, err
	}
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = complex(v, 0)
	}
	if err := ForwardInPlace(out); err != nil {
		return nil, err
	}
	return out, nil
}

// Inverse returns the inverse transform of X without modifying it.
func Inverse(X []complex128, scale bool) ([]complex128, error) {
	if err := CheckSize(len(X)); err != nil {
		return nil, err
	}
	out := make([]complex128, len(X))
	copy(out, X)
	if err := InverseInPlace(out, scale); err != nil {
		return nil, err
	}
	return out, nil
}

// InverseReal returns the real part of the scaled inverse transform of X.
func InverseReal(X []complex128) ([]float64, error) {
	tmp, err := Inverse(X, true)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(tmp))
	for i, v := range tmp {
		out[i] = real(v)
	}
	return out, nil
}

// Size returns the transform length used for a signal of n samples: the
// smallest power of two >= n.
func Size(n int) int {
	return core.NextPowerOfTwo(n)
}

// Pad returns x zero-extended to n samples. When x is already n long it is
// returned as is; n below len(x) is an error.
func Pad(x []float64, n int) ([]float64, error) {
	if n < len(x) {
		return nil, fmt.Errorf("fourier: cannot pad %d samples to %d: %w", len(x), n, core.ErrInvalidArgument)
	}
	if n == len(x) {
		return x, nil
	}
	out := make([]float64, n)
	copy(out, x)
	return out, nil
}

// BinFrequency returns the centre frequency in Hz of bin k of an n-point
// transform at sampleRate.
func BinFrequency(k int, sampleRate float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(k) * sampleRate / float64(n)
}

// FrequencyBin returns the (fractional) bin position of frequency f in an
// n-point transform at sampleRate.
func FrequencyBin(f, sampleRate float64, n int) float64 {
	if sampleRate <= 0 {
		return math.NaN()
	}
	return f * float64(n) / sampleRate
}
