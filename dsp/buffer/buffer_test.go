package buffer

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

func stereo(t *testing.T, samples ...float64) *Buffer {
	t.Helper()
	b, err := FromSlice(samples, Stereo(48000))
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return b
}

func TestNewZeroFilled(t *testing.T) {
	b := New(8, Stereo(44100))
	if b.Len() != 16 || b.FrameCount() != 8 {
		t.Fatalf("Len/FrameCount = %d/%d, want 16/8", b.Len(), b.FrameCount())
	}
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0", i, v)
		}
	}
}

func TestNewNormalizesFormat(t *testing.T) {
	b := New(-1, Format{})
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 for negative input", b.Len())
	}
	if b.Channels() != 1 {
		t.Fatalf("Channels() = %d, want 1", b.Channels())
	}
}

func TestFromSliceSharesMemory(t *testing.T) {
	s := []float64{1, 2, 3, 4}
	b := stereo(t, s...)
	b.Samples()[0] = 99
	if s[0] != 99 {
		t.Fatal("FromSlice should share underlying memory")
	}
}

func TestFromSliceRejectsPartialFrame(t *testing.T) {
	_, err := FromSlice([]float64{1, 2, 3}, Stereo(48000))
	if !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	_, err = FromSlice(nil, Format{Channels: 0})
	if !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("zero channels: err = %v, want ErrInvalidArgument", err)
	}
}

func TestAccessors(t *testing.T) {
	b := stereo(t, 1, -1, 2, -2, 3, -3)
	if got := b.At(1, 1); got != -2 {
		t.Fatalf("At(1, 1) = %v, want -2", got)
	}
	b.Set(2, 0, 30)
	if got := b.Frame(2); !slices.Equal(got, []float64{30, -3}) {
		t.Fatalf("Frame(2) = %v", got)
	}
	right, err := b.Channel(1)
	if err != nil {
		t.Fatalf("Channel: %v", err)
	}
	if !slices.Equal(right, []float64{-1, -2, -3}) {
		t.Fatalf("Channel(1) = %v", right)
	}
	if _, err := b.Channel(2); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Channel(2) err = %v, want ErrOutOfRange", err)
	}
}

func TestSplitMergeRoundTrip(t *testing.T) {
	b := stereo(t, 1, 10, 2, 20, 3, 30)
	channels := b.Split()
	if !slices.Equal(channels[0], []float64{1, 2, 3}) || !slices.Equal(channels[1], []float64{10, 20, 30}) {
		t.Fatalf("Split() = %v", channels)
	}
	merged, err := Merge(channels, 48000)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if !slices.Equal(merged.Samples(), b.Samples()) {
		t.Fatalf("Merge(Split()) = %v, want %v", merged.Samples(), b.Samples())
	}
	if _, err := Merge([][]float64{{1, 2}, {1}}, 48000); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("ragged merge err = %v", err)
	}
	if _, err := Merge(nil, 48000); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("empty merge err = %v", err)
	}
}

func TestSetChannel(t *testing.T) {
	b := New(3, Stereo(8000))
	if err := b.SetChannel(1, []float64{4, 5, 6}); err != nil {
		t.Fatalf("SetChannel: %v", err)
	}
	if !slices.Equal(b.Samples(), []float64{0, 4, 0, 5, 0, 6}) {
		t.Fatalf("Samples() = %v", b.Samples())
	}
	if err := b.SetChannel(0, []float64{1}); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("short data err = %v", err)
	}
}

func TestGrowPreservesData(t *testing.T) {
	b := New(4, Mono(8000))
	b.Samples()[0] = 42
	b.Grow(16)
	if b.Cap() < 16 {
		t.Fatalf("Cap() = %d, want >= 16", b.Cap())
	}
	if b.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 after Grow", b.Len())
	}
	if b.Samples()[0] != 42 {
		t.Fatal("Grow did not preserve data")
	}
}

func TestResize(t *testing.T) {
	b := stereo(t, 1, 2, 3, 4)
	b.Resize(3)
	if !slices.Equal(b.Samples(), []float64{1, 2, 3, 4, 0, 0}) {
		t.Fatalf("grow: %v", b.Samples())
	}
	b.Resize(1)
	if !slices.Equal(b.Samples(), []float64{1, 2}) {
		t.Fatalf("shrink: %v", b.Samples())
	}
	b.Resize(2)
	if !slices.Equal(b.Samples(), []float64{1, 2, 0, 0}) {
		t.Fatalf("regrow must not expose stale data: %v", b.Samples())
	}
}

func TestZeroRangeClamps(t *testing.T) {
	b := stereo(t, 1, 1, 2, 2, 3, 3)
	b.ZeroRange(-5, 1)
	b.ZeroRange(2, 99)
	if !slices.Equal(b.Samples(), []float64{0, 0, 2, 2, 0, 0}) {
		t.Fatalf("Samples() = %v", b.Samples())
	}
	b.Zero()
	if b.AbsMax() != 0 {
		t.Fatal("Zero left non-zero samples")
	}
}

func TestInsertCutRoundTrip(t *testing.T) {
	b := stereo(t, 1, 1, 4, 4)
	ins := stereo(t, 2, 2, 3, 3)
	if err := b.Insert(ins, 1); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if !slices.Equal(b.Samples(), []float64{1, 1, 2, 2, 3, 3, 4, 4}) {
		t.Fatalf("after Insert: %v", b.Samples())
	}
	if err := b.Cut(1, 2); err != nil {
		t.Fatalf("Cut: %v", err)
	}
	if !slices.Equal(b.Samples(), []float64{1, 1, 4, 4}) {
		t.Fatalf("after Cut: %v", b.Samples())
	}
}

func TestInsertErrors(t *testing.T) {
	b := stereo(t, 1, 1)
	if err := b.Insert(stereo(t, 2, 2), 2); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Insert past end err = %v", err)
	}
	mono := New(1, Mono(48000))
	if err := b.Insert(mono, 0); !errors.Is(err, ErrFormatMismatch) {
		t.Fatalf("Insert mono err = %v", err)
	}
	if err := b.Insert(nil, 0); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("Insert nil err = %v", err)
	}
	if err := b.Cut(0, 2); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Cut past end err = %v", err)
	}
}

func TestAppendAndReplace(t *testing.T) {
	b := stereo(t, 1, 1)
	if err := b.Append(stereo(t, 2, 2, 3, 3)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := b.Replace(stereo(t, 9, 9), 2); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if !slices.Equal(b.Samples(), []float64{1, 1, 2, 2, 9, 9}) {
		t.Fatalf("Samples() = %v", b.Samples())
	}
	if err := b.Replace(stereo(t, 9, 9, 9, 9), 2); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Replace overflow err = %v", err)
	}
}

func TestSubBufferIsIndependent(t *testing.T) {
	b := stereo(t, 1, 2, 3, 4, 5, 6)
	sub, err := b.SubBuffer(1, 2)
	if err != nil {
		t.Fatalf("SubBuffer: %v", err)
	}
	if !slices.Equal(sub.Samples(), []float64{3, 4, 5, 6}) {
		t.Fatalf("SubBuffer = %v", sub.Samples())
	}
	b.Samples()[2] = 99
	b.Resize(0)
	if sub.Samples()[0] != 3 {
		t.Fatal("sub-buffer aliases its parent")
	}
}

func TestSubBufferOutOfRange(t *testing.T) {
	b := stereo(t, 1, 2, 3, 4)
	for _, tc := range []struct{ frame, count int }{{1, 2}, {-1, 1}, {0, -1}, {3, 0}} {
		_, err := b.SubBuffer(tc.frame, tc.count)
		if !errors.Is(err, ErrOutOfRange) || !errors.Is(err, core.ErrInvalidArgument) {
			t.Fatalf("SubBuffer(%d, %d) err = %v, want ErrOutOfRange", tc.frame, tc.count, err)
		}
	}
	if sub, err := b.SubBuffer(2, 0); err != nil || sub.Len() != 0 {
		t.Fatalf("empty sub-buffer at end: %v, %v", sub, err)
	}
}

func TestConcat(t *testing.T) {
	out, err := Concat(stereo(t, 1, 1), stereo(t), stereo(t, 2, 2))
	if err != nil {
		t.Fatalf("Concat: %v", err)
	}
	if !slices.Equal(out.Samples(), []float64{1, 1, 2, 2}) {
		t.Fatalf("Concat = %v", out.Samples())
	}
	if _, err := Concat(stereo(t, 1, 1), New(1, Mono(48000))); !errors.Is(err, ErrFormatMismatch) {
		t.Fatalf("mismatch err = %v", err)
	}
	if _, err := Concat(); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("empty err = %v", err)
	}
}

func TestChangeEndianTwiceIsIdentity(t *testing.T) {
	want := []float64{0.5, -0.25, 1e-9, math.Pi}
	b, _ := FromSlice(slices.Clone(want), Mono(8000))
	order := b.Order()

	b.ChangeEndian()
	if b.Order() != order.Swapped() {
		t.Fatalf("Order() = %v, want %v", b.Order(), order.Swapped())
	}
	if math.Float64bits(b.Samples()[0]) == math.Float64bits(want[0]) {
		t.Fatal("ChangeEndian did not swap bytes")
	}
	b.ChangeEndian()
	if b.Order() != order || !slices.Equal(b.Samples(), want) {
		t.Fatalf("double swap = %v (%v), want %v (%v)", b.Samples(), b.Order(), want, order)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	b := stereo(t, 0.5, -0.5, 0.25, -0.25)
	got, err := FromBytes(b.Bytes(), b.Format())
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !slices.Equal(got.Samples(), b.Samples()) {
		t.Fatalf("round trip = %v", got.Samples())
	}

	swapped := b.Copy()
	swapped.ChangeEndian()
	got, err = FromBytes(swapped.Bytes(), swapped.Format())
	if err != nil {
		t.Fatalf("FromBytes swapped: %v", err)
	}
	if !slices.Equal(got.Samples(), b.Samples()) || got.Order() != NativeEndian() {
		t.Fatalf("swapped round trip = %v (%v)", got.Samples(), got.Order())
	}

	if _, err := FromBytes(make([]byte, 12), Mono(8000)); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("partial unit err = %v", err)
	}
}

func TestReverse(t *testing.T) {
	b := stereo(t, 1, 10, 2, 20, 3, 30)
	b.Reverse()
	if !slices.Equal(b.Samples(), []float64{3, 30, 2, 20, 1, 10}) {
		t.Fatalf("Reverse() = %v", b.Samples())
	}
	m, _ := FromSlice([]float64{1, 2, 3}, Mono(8000))
	m.Reverse()
	if !slices.Equal(m.Samples(), []float64{3, 2, 1}) {
		t.Fatalf("mono Reverse() = %v", m.Samples())
	}
}

func TestCopyIsIndependent(t *testing.T) {
	b := stereo(t, 1, 2)
	c := b.Copy()
	c.Samples()[0] = 99
	if b.Samples()[0] != 1 {
		t.Fatal("Copy shares memory")
	}
	if c.Format() != b.Format() {
		t.Fatal("Copy dropped format")
	}
}
