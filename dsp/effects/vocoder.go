package effects

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-spectral/dsp/buffer"
	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/fourier"
	"github.com/cwbudde/algo-spectral/dsp/spectrum"
)

const (
	// MinRatio and MaxRatio bound pitch-shift ratios and speed factors.
	MinRatio = 0.25
	MaxRatio = 4.0
)

// VocoderState carries the phase of one channel from frame to frame. It is
// advanced by Shift or Stretch once per frame, in frame order.
//
// Each spectral peak owns the bins closest to it. A frame is resynthesized
// by moving every peak's bins rigidly by a whole number of bins and rotating
// them by one common phase, so the shape of each partial and its level are
// kept. The peak's phase advances by its instantaneous frequency times the
// synthesis hop; the other bins keep their analysis offset to the peak.
type VocoderState struct {
	fftSize int
	hop     int
	half    int
	primed  bool

	omega      []float64
	prevPhase  []float64
	synthPhase []float64

	mag      []float64
	phase    []float64
	instFreq []float64
	out      []complex128

	peaks []int
	shift []int
	turn  []float64
}

// NewVocoderState returns a zeroed state for fftSize-point spectra analyzed
// with the given hop.
func NewVocoderState(fftSize, hop int) (*VocoderState, error) {
	if err := fourier.CheckSize(fftSize); err != nil {
		return nil, fmt.Errorf("effects: vocoder: %w", err)
	}
	if hop < 1 {
		return nil, fmt.Errorf("effects: vocoder hop must be >= 1: %d: %w", hop, core.ErrInvalidArgument)
	}
	half := fftSize / 2
	bins := half + 1
	s := &VocoderState{
		fftSize:    fftSize,
		hop:        hop,
		half:       half,
		omega:      make([]float64, bins),
		prevPhase:  make([]float64, bins),
		synthPhase: make([]float64, bins),
		mag:        make([]float64, bins),
		phase:      make([]float64, bins),
		instFreq:   make([]float64, bins),
		out:        make([]complex128, bins),
		peaks:      make([]int, 0, bins),
		shift:      make([]int, 0, bins),
		turn:       make([]float64, 0, bins),
	}
	for k := range s.omega {
		s.omega[k] = 2 * math.Pi * float64(k) / float64(fftSize)
	}
	return s, nil
}

// Reset clears the phase history.
func (s *VocoderState) Reset() {
	clear(s.prevPhase)
	clear(s.synthPhase)
	s.primed = false
}

// Shift moves the frame's partials to ratio times their frequency.
func (s *VocoderState) Shift(bins []complex128, ratio float64) error {
	if !core.IsFinite(ratio) || ratio < MinRatio || ratio > MaxRatio {
		return fmt.Errorf("effects: pitch ratio %v outside [%v, %v]: %w", ratio, MinRatio, MaxRatio, core.ErrInvalidArgument)
	}
	return s.step(bins, ratio, s.hop)
}

// Stretch resynthesizes the frame for placement synthesisHop samples after
// the previous one, keeping its frequencies.
func (s *VocoderState) Stretch(bins []complex128, synthesisHop int) error {
	if synthesisHop < 1 {
		return fmt.Errorf("effects: synthesis hop must be >= 1: %d: %w", synthesisHop, core.ErrInvalidArgument)
	}
	return s.step(bins, 1, synthesisHop)
}

func (s *VocoderState) step(bins []complex128, ratio float64, synthesisHop int) error {
	if len(bins) != s.fftSize {
		return fmt.Errorf("effects: vocoder got %d bins, want %d: %w", len(bins), s.fftSize, core.ErrInvalidArgument)
	}
	half := s.half
	hopA := float64(s.hop)
	hopS := float64(synthesisHop)
	binsPerRadian := float64(s.fftSize) / (2 * math.Pi)

	// Magnitudes, phases and instantaneous frequencies in radians per sample.
	spectrum.MagnitudeInto(s.mag, bins[:half+1])
	for k := 0; k <= half; k++ {
		s.phase[k] = cmplx.Phase(bins[k])
		delta := spectrum.WrapPhase(s.phase[k] - s.prevPhase[k] - s.omega[k]*hopA)
		s.instFreq[k] = s.omega[k] + delta/hopA
		s.prevPhase[k] = s.phase[k]
	}

	s.peaks, s.shift, s.turn = s.peaks[:0], s.shift[:0], s.turn[:0]
	for k := 0; k <= half; k++ {
		if !spectrum.IsPeak(s.mag, k) {
			continue
		}
		target := s.phase[k]
		if s.primed {
			target = s.synthPhase[k] + ratio*s.instFreq[k]*hopS
		}
		shift := 0
		if ratio != 1 {
			shift = int(math.Round((ratio - 1) * s.instFreq[k] * binsPerRadian))
		}
		s.peaks = append(s.peaks, k)
		s.shift = append(s.shift, shift)
		s.turn = append(s.turn, target-s.phase[k])
	}

	clear(s.out)
	if len(s.peaks) == 0 {
		copy(s.synthPhase, s.phase)
	}
	p := 0
	for k := 0; k <= half && len(s.peaks) > 0; k++ {
		for p+1 < len(s.peaks) && absInt(s.peaks[p+1]-k) < absInt(s.peaks[p]-k) {
			p++
		}
		s.synthPhase[k] = spectrum.WrapPhase(s.phase[k] + s.turn[p])
		if t := k + s.shift[p]; t >= 0 && t <= half {
			s.out[t] += cmplx.Rect(s.mag[k], s.synthPhase[k])
		}
	}
	s.primed = true

	copy(bins, s.out)
	buffer.ComplexFromSlice(bins).MirrorHermitian()
	return nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
