package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

// Split writes the real and imaginary parts of in into re and im.
// Both must be at least len(in) long.
func Split(re, im []float64, in []complex128) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// Magnitude returns |X[k]| for each bin.
//
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	MagnitudeInto(out, in)
	return out
}

// MagnitudeInto writes |X[k]| into dst, which must be len(in) long.
func MagnitudeInto(dst []float64, in []complex128) {
	re, im, buf := getScratch(len(in))
	Split(re, im, in)
	vecmath.Magnitude(dst[:len(in)], re, im)
	scratchPool.Put(buf)
}

// Power returns |X[k]|^2 for each bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))
	Split(re, im, in)
	vecmath.Power(out, re, im)
	scratchPool.Put(buf)
	return out
}

// Phase returns arg(X[k]) for each bin in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// UnwrapPhase returns a new phase slice with +/-2*pi discontinuities removed.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}
		out[i] = phase[i] + offset
	}
	return out
}

// WrapPhase maps phase into [-pi, pi).
func WrapPhase(phase float64) float64 {
	if phase >= -math.Pi && phase < math.Pi {
		return phase
	}
	w := math.Mod(phase+math.Pi, 2*math.Pi)
	if w < 0 {
		w += 2 * math.Pi
	}
	return w - math.Pi
}

// IsPeak reports whether mag[k] is a strict local maximum over its
// neighbours. Edge bins compare against their single neighbour.
func IsPeak(mag []float64, k int) bool {
	if k < 0 || k >= len(mag) || mag[k] <= 0 {
		return false
	}
	if k > 0 && mag[k] <= mag[k-1] {
		return false
	}
	if k+1 < len(mag) && mag[k] < mag[k+1] {
		return false
	}
	return true
}

// Peaks returns the indices of all local maxima of mag in ascending order.
func Peaks(mag []float64) []int {
	var peaks []int
	for k := range mag {
		if IsPeak(mag, k) {
			peaks = append(peaks, k)
		}
	}
	return peaks
}

// DominantBin returns the index of the largest value in mag[lo:hi].
// The range is clamped to mag; -1 is returned when it is empty.
func DominantBin(mag []float64, lo, hi int) int {
	lo = max(lo, 0)
	hi = min(hi, len(mag))
	best := -1
	for k := lo; k < hi; k++ {
		if best < 0 || mag[k] > mag[best] {
			best = k
		}
	}
	return best
}
