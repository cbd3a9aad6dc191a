package buffer

import (
	"fmt"
	"math"

	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// FromAudio copies a go-audio buffer into a host-order Buffer.
// Integer PCM is scaled into [-1, 1) by its source bit depth; when the depth
// is unknown it is inferred from the peak sample.
func FromAudio(src audio.Buffer) (*Buffer, error) {
	if src == nil || src.PCMFormat() == nil {
		return nil, fmt.Errorf("buffer: audio buffer without format: %w", core.ErrInvalidArgument)
	}
	pcm := src.PCMFormat()
	format := Format{Channels: max(pcm.NumChannels, 1), SampleRate: pcm.SampleRate, Order: nativeOrder}

	var samples []float64
	switch v := src.(type) {
	case *audio.IntBuffer:
		depth := v.SourceBitDepth
		if depth == 0 {
			depth = v.Clone().AsFloat32Buffer().SourceBitDepth
		}
		scale := 1 / math.Ldexp(1, depth-1)
		samples = make([]float64, len(v.Data))
		for i, s := range v.Data {
			samples[i] = float64(s) * scale
		}
	case *audio.Float32Buffer:
		samples = make([]float64, len(v.Data))
		for i, s := range v.Data {
			samples[i] = float64(s)
		}
	default:
		samples = append([]float64(nil), src.AsFloatBuffer().Data...)
	}
	return FromSlice(samples, format)
}

// AsFloatBuffer returns a copy of b as a go-audio float buffer.
func (b *Buffer) AsFloatBuffer() *audio.FloatBuffer {
	return &audio.FloatBuffer{
		Format: &audio.Format{NumChannels: b.format.Channels, SampleRate: b.format.SampleRate},
		Data:   append([]float64(nil), b.samples...),
	}
}

// AsIntBuffer quantizes b to integer PCM of the given bit depth (8, 16, 24
// or 32). Samples outside [-1, 1] are clipped.
func (b *Buffer) AsIntBuffer(bitDepth int) (*audio.IntBuffer, error) {
	peak := audio.IntMaxSignedValue(bitDepth)
	if peak == 0 {
		return nil, fmt.Errorf("buffer: unsupported bit depth %d: %w", bitDepth, core.ErrInvalidArgument)
	}
	full := math.Ldexp(1, bitDepth-1)
	data := make([]int, len(b.samples))
	for i, v := range b.samples {
		q := math.Round(v * full)
		if math.IsNaN(q) {
			q = 0
		}
		data[i] = int(core.Clamp(q, -float64(peak)-1, float64(peak)))
	}
	return &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: b.format.Channels, SampleRate: b.format.SampleRate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}, nil
}
