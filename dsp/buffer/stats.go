package buffer

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Min returns the smallest sample across all channels, or 0 when empty.
func (b *Buffer) Min() float64 {
	if len(b.samples) == 0 {
		return 0
	}
	return floats.Min(b.samples)
}

// Max returns the largest sample across all channels, or 0 when empty.
func (b *Buffer) Max() float64 {
	if len(b.samples) == 0 {
		return 0
	}
	return floats.Max(b.samples)
}

// AbsMax returns the peak absolute sample value.
func (b *Buffer) AbsMax() float64 {
	return math.Max(math.Abs(b.Min()), math.Abs(b.Max()))
}

// Mean returns the arithmetic mean of all samples, or 0 when empty.
func (b *Buffer) Mean() float64 {
	if len(b.samples) == 0 {
		return 0
	}
	return stat.Mean(b.samples, nil)
}

// RMS returns the root mean square of all samples, or 0 when empty.
func (b *Buffer) RMS() float64 {
	if len(b.samples) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(b.samples, b.samples) / float64(len(b.samples)))
}

// Duration returns the playback length implied by the sample rate.
// It is 0 when the sample rate is unknown.
func (b *Buffer) Duration() time.Duration {
	if b.format.SampleRate <= 0 {
		return 0
	}
	seconds := float64(b.FrameCount()) / float64(b.format.SampleRate)
	return time.Duration(math.Round(seconds * float64(time.Second)))
}

// FrameIndexAt returns the frame that contains offset t, clamped to
// [0, FrameCount]. It is 0 when the sample rate is unknown.
func (b *Buffer) FrameIndexAt(t time.Duration) int {
	if b.format.SampleRate <= 0 || t <= 0 {
		return 0
	}
	idx := int(math.Floor(t.Seconds() * float64(b.format.SampleRate)))
	return min(idx, b.FrameCount())
}
