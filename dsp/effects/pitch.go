package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/dsp/buffer"
	"github.com/cwbudde/algo-spectral/dsp/core"
)

// SemitonesToRatio converts a pitch change in semitones to a frequency
// ratio.
func SemitonesToRatio(semitones float64) float64 {
	return math.Pow(2, semitones/12)
}

// PitchShift moves every channel of buf by semitones without changing its
// length. The ratio 2^(semitones/12) must lie in [MinRatio, MaxRatio].
func (p *Processor) PitchShift(buf *buffer.Buffer, semitones float64) error {
	const effect = "pitchshift"
	if _, err := checkBuffer(buf); err != nil {
		return p.reject(effect, err)
	}
	if !core.IsFinite(semitones) {
		return p.reject(effect, fmt.Errorf("effects: semitones must be finite: %v: %w", semitones, core.ErrInvalidArgument))
	}
	ratio := SemitonesToRatio(semitones)
	if ratio < MinRatio || ratio > MaxRatio {
		return p.reject(effect, fmt.Errorf("effects: pitch ratio %v outside [%v, %v]: %w", ratio, MinRatio, MaxRatio, core.ErrInvalidArgument))
	}
	if ratio == 1 {
		return nil
	}
	return p.vocodeChannels(buf, effect, 1, buf.FrameCount(), func(st *VocoderState, _ int, bins []complex128) error {
		return st.Shift(bins, ratio)
	})
}

// SynthesisHop returns the nominal output hop ChangeSpeed uses for speed,
// or an error when hop/speed falls outside [1, WindowSize]. Individual
// frames are placed at exact multiples of hop/speed, so successive
// distances may differ from the nominal hop by one sample.
func (p *Processor) SynthesisHop(speed float64) (int, error) {
	if !core.IsFinite(speed) || speed < MinRatio || speed > MaxRatio {
		return 0, fmt.Errorf("effects: speed %v outside [%v, %v]: %w", speed, MinRatio, MaxRatio, core.ErrInvalidArgument)
	}
	exact := float64(p.hop) / speed
	if exact < 1 || exact > float64(p.windowSize) {
		return 0, fmt.Errorf("effects: speed %v needs synthesis hop %v outside [1, %d]: %w",
			speed, exact, p.windowSize, core.ErrInvalidArgument)
	}
	return int(math.Round(exact)), nil
}

// ChangeSpeed plays buf speed times faster while keeping its pitch. The
// buffer is resized to round(frames/speed) frames.
func (p *Processor) ChangeSpeed(buf *buffer.Buffer, speed float64) error {
	const effect = "speed"
	if _, err := checkBuffer(buf); err != nil {
		return p.reject(effect, err)
	}
	if _, err := p.SynthesisHop(speed); err != nil {
		return p.reject(effect, err)
	}
	if speed == 1 {
		return nil
	}
	outLen := int(math.Round(float64(buf.FrameCount()) / speed))
	return p.vocodeChannels(buf, effect, 1/speed, outLen, func(st *VocoderState, advance int, bins []complex128) error {
		return st.Stretch(bins, advance)
	})
}
