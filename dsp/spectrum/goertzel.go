package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// Goertzel evaluates a single DFT term at an arbitrary frequency.
//
// The analyzer is stateful: Power and Magnitude describe every sample
// processed since the last Reset. The result equals |X(f)|^2 of a DFT over
// the same block, which makes it a cheap probe for the level of one tone
// before and after a spectral effect.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
}

// NewGoertzel creates an analyzer for frequency Hz at sampleRate Hz.
// frequency must lie in [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if !core.IsFinitePositive(sampleRate) {
		return nil, fmt.Errorf("goertzel: sample rate must be > 0: %v: %w", sampleRate, core.ErrInvalidArgument)
	}
	if !core.IsFinite(frequency) || frequency < 0 || frequency > sampleRate/2 {
		return nil, fmt.Errorf("goertzel: frequency %v outside [0, %v]: %w", frequency, sampleRate/2, core.ErrInvalidArgument)
	}
	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1 = 0, 0
}

// ProcessBlock feeds a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1 := g.s0, g.s1
	coeff := g.coeff
	for _, x := range input {
		s0, s1 = x+coeff*s0-s1, s0
	}
	g.s0, g.s1 = s0, s1
}

// Power returns the squared magnitude of the tracked component.
func (g *Goertzel) Power() float64 {
	return math.Max(g.s0*g.s0+g.s1*g.s1-g.coeff*g.s0*g.s1, 0)
}

// Magnitude returns the magnitude of the tracked component.
func (g *Goertzel) Magnitude() float64 {
	return math.Sqrt(g.Power())
}

// Frequency returns the tracked frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// ToneLevel returns the Goertzel magnitude of frequency in input,
// normalized so that a full-block sine of amplitude A yields about A.
func ToneLevel(input []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}
	if len(input) == 0 {
		return 0, nil
	}
	g.ProcessBlock(input)
	return 2 * g.Magnitude() / float64(len(input)), nil
}
