package core

import (
	"math"
	"math/bits"
)

// denormalFloor is the magnitude below which FlushDenormals returns zero.
const denormalFloor = 1e-30

// Clamp limits value to [lo, hi]. The bounds may be given in either order.
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Min(math.Max(value, lo), hi)
}

// FlushDenormals returns 0 for values too small to matter in an audio
// signal and x otherwise.
func FlushDenormals(x float64) float64 {
	if math.Abs(x) < denormalFloor {
		return 0
	}
	return x
}

// DBToLinear converts a level in dB to an amplitude factor (20*log10).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearPowerToDB converts a power ratio to dB (10*log10). Zero gives -Inf
// and negative ratios NaN.
func LinearPowerToDB(power float64) float64 {
	switch {
	case power < 0:
		return math.NaN()
	case power == 0:
		return math.Inf(-1)
	}
	return 10 * math.Log10(power)
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two >= n. It returns 1 for n <= 1.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// IsFinitePositive reports whether v is finite and > 0.
func IsFinitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
