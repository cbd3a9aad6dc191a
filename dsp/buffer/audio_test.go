package buffer

import (
	"errors"
	"math"
	"testing"

	"github.com/go-audio/audio"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

func TestFromAudioIntBuffer(t *testing.T) {
	src := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 44100},
		Data:           []int{0, 16384, -32768, 32767},
		SourceBitDepth: 16,
	}
	b, err := FromAudio(src)
	if err != nil {
		t.Fatalf("FromAudio: %v", err)
	}
	if b.Channels() != 2 || b.SampleRate() != 44100 || b.FrameCount() != 2 {
		t.Fatalf("format = %+v frames=%d", b.Format(), b.FrameCount())
	}
	want := []float64{0, 0.5, -1, 32767.0 / 32768}
	for i, w := range want {
		if b.Samples()[i] != w {
			t.Fatalf("sample %d = %v, want %v", i, b.Samples()[i], w)
		}
	}

	back, err := b.AsIntBuffer(16)
	if err != nil {
		t.Fatalf("AsIntBuffer: %v", err)
	}
	for i, s := range src.Data {
		if back.Data[i] != s {
			t.Fatalf("round trip sample %d = %d, want %d", i, back.Data[i], s)
		}
	}
	if back.Format.NumChannels != 2 || back.SourceBitDepth != 16 {
		t.Fatalf("round trip format = %+v depth %d", back.Format, back.SourceBitDepth)
	}
}

func TestFromAudioInfersBitDepth(t *testing.T) {
	src := &audio.IntBuffer{
		Format: &audio.Format{NumChannels: 1, SampleRate: 8000},
		Data:   []int{100, -64},
	}
	b, err := FromAudio(src)
	if err != nil {
		t.Fatalf("FromAudio: %v", err)
	}
	if got := b.Samples()[0]; got != 100.0/128 {
		t.Fatalf("sample = %v, want %v", got, 100.0/128)
	}
	if src.SourceBitDepth != 0 {
		t.Fatalf("source buffer mutated: depth %d", src.SourceBitDepth)
	}
}

func TestFromAudioFloatBuffers(t *testing.T) {
	f64 := &audio.FloatBuffer{Format: &audio.Format{NumChannels: 1, SampleRate: 48000}, Data: []float64{0.25, -0.5}}
	b, err := FromAudio(f64)
	if err != nil {
		t.Fatalf("FromAudio: %v", err)
	}
	b.Samples()[0] = 9
	if f64.Data[0] != 0.25 {
		t.Fatal("FromAudio aliases the source data")
	}

	f32 := &audio.Float32Buffer{Format: &audio.Format{NumChannels: 0, SampleRate: 48000}, Data: []float32{0.5}}
	b, err = FromAudio(f32)
	if err != nil {
		t.Fatalf("FromAudio float32: %v", err)
	}
	if b.Channels() != 1 || b.Samples()[0] != 0.5 {
		t.Fatalf("float32 import = %v, %d channels", b.Samples(), b.Channels())
	}
}

func TestFromAudioErrors(t *testing.T) {
	if _, err := FromAudio(nil); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("nil buffer err = %v", err)
	}
	if _, err := FromAudio(&audio.FloatBuffer{Data: []float64{1}}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("missing format err = %v", err)
	}
	odd := &audio.FloatBuffer{Format: &audio.Format{NumChannels: 2}, Data: []float64{1, 2, 3}}
	if _, err := FromAudio(odd); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("partial frame err = %v", err)
	}
}

func TestAsIntBufferClips(t *testing.T) {
	b, _ := FromSlice([]float64{2, -2, math.NaN(), 0.5}, Mono(8000))
	out, err := b.AsIntBuffer(8)
	if err != nil {
		t.Fatalf("AsIntBuffer: %v", err)
	}
	want := []int{127, -128, 0, 64}
	for i, w := range want {
		if out.Data[i] != w {
			t.Fatalf("sample %d = %d, want %d", i, out.Data[i], w)
		}
	}
	if _, err := b.AsIntBuffer(12); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("bit depth 12 err = %v", err)
	}
}

func TestAsFloatBufferCopies(t *testing.T) {
	b := stereo(t, 1, 2, 3, 4)
	fb := b.AsFloatBuffer()
	if fb.NumFrames() != 2 || fb.Format.SampleRate != 48000 {
		t.Fatalf("NumFrames/SampleRate = %d/%d", fb.NumFrames(), fb.Format.SampleRate)
	}
	fb.Data[0] = 42
	if b.At(0, 0) != 1 {
		t.Fatal("AsFloatBuffer aliases the buffer")
	}
}
