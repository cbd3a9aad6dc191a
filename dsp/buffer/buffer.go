package buffer

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"
	"slices"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// ErrOutOfRange is returned when a frame range does not fit the buffer.
var ErrOutOfRange = fmt.Errorf("buffer: range out of bounds: %w", core.ErrInvalidArgument)

// ErrFormatMismatch is returned when two buffers with different channel
// counts or byte orders are combined.
var ErrFormatMismatch = fmt.Errorf("buffer: format mismatch: %w", core.ErrInvalidArgument)

const sampleBytes = 8

// Buffer holds interleaved float64 samples described by a Format.
// DSP functions accept raw []float64; use Samples or Channel to bridge.
type Buffer struct {
	samples []float64
	format  Format
}

// New returns a zero-filled Buffer holding frames frames of format.
// A channel count below one is treated as mono.
func New(frames int, format Format) *Buffer {
	format = format.normalized()
	if frames < 0 {
		frames = 0
	}
	return &Buffer{samples: make([]float64, frames*format.Channels), format: format}
}

// FromSlice wraps an existing interleaved slice without copying.
// Mutations to the slice are visible through the Buffer and vice versa.
func FromSlice(samples []float64, format Format) (*Buffer, error) {
	if err := format.validate(); err != nil {
		return nil, err
	}
	if len(samples)%format.Channels != 0 {
		return nil, fmt.Errorf("buffer: %d samples do not form whole frames of %d channels: %w",
			len(samples), format.Channels, core.ErrInvalidArgument)
	}
	return &Buffer{samples: samples, format: format}, nil
}

// FromBytes decodes float64 sample units stored in format.Order.
// The resulting buffer holds host-order values.
func FromBytes(data []byte, format Format) (*Buffer, error) {
	if err := format.validate(); err != nil {
		return nil, err
	}
	frameBytes := sampleBytes * format.Channels
	if len(data)%frameBytes != 0 {
		return nil, fmt.Errorf("buffer: %d bytes do not form whole frames of %d bytes: %w",
			len(data), frameBytes, core.ErrInvalidArgument)
	}
	order := format.Order.binary()
	samples := make([]float64, len(data)/sampleBytes)
	for i := range samples {
		samples[i] = math.Float64frombits(order.Uint64(data[i*sampleBytes:]))
	}
	format.Order = nativeOrder
	return &Buffer{samples: samples, format: format}, nil
}

// Merge interleaves equally long per-channel slices into a new Buffer.
func Merge(channels [][]float64, sampleRate int) (*Buffer, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("buffer: merge needs at least one channel: %w", core.ErrInvalidArgument)
	}
	frames := len(channels[0])
	for ch, data := range channels {
		if len(data) != frames {
			return nil, fmt.Errorf("buffer: channel %d has %d frames, want %d: %w",
				ch, len(data), frames, core.ErrInvalidArgument)
		}
	}
	format := Format{Channels: len(channels), SampleRate: sampleRate, Order: nativeOrder}
	if err := format.validate(); err != nil {
		return nil, err
	}
	b := New(frames, format)
	for ch, data := range channels {
		b.writeChannel(ch, data)
	}
	return b, nil
}

// Concat joins buffers of identical channel count and byte order into a new
// Buffer. The sample rate of the first buffer is kept.
func Concat(buffers ...*Buffer) (*Buffer, error) {
	if len(buffers) == 0 {
		return nil, fmt.Errorf("buffer: concat needs at least one buffer: %w", core.ErrInvalidArgument)
	}
	parts := make([][]float64, len(buffers))
	for i, b := range buffers {
		if err := buffers[0].compatible(b); err != nil {
			return nil, err
		}
		parts[i] = b.samples
	}
	return &Buffer{samples: core.Concat(parts...), format: buffers[0].format}, nil
}

// Samples returns the underlying interleaved slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples across all channels.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Cap returns the current capacity of the backing slice in samples.
func (b *Buffer) Cap() int {
	return cap(b.samples)
}

// FrameCount returns the number of frames.
func (b *Buffer) FrameCount() int {
	return len(b.samples) / b.format.Channels
}

// Channels returns the channel count.
func (b *Buffer) Channels() int {
	return b.format.Channels
}

// SampleRate returns the informational sample rate in Hz.
func (b *Buffer) SampleRate() int {
	return b.format.SampleRate
}

// Format returns the buffer's format.
func (b *Buffer) Format() Format {
	return b.format
}

// Order returns the byte order of the held sample units.
func (b *Buffer) Order() ByteOrder {
	return b.format.Order
}

// At returns the sample of channel ch in frame.
// It panics if either index is out of range, like slice indexing.
func (b *Buffer) At(frame, ch int) float64 {
	return b.samples[b.index(frame, ch)]
}

// Set stores v as the sample of channel ch in frame.
func (b *Buffer) Set(frame, ch int, v float64) {
	b.samples[b.index(frame, ch)] = v
}

// Frame returns the samples of frame i as a view into the buffer.
func (b *Buffer) Frame(i int) []float64 {
	c := b.format.Channels
	return b.samples[i*c : (i+1)*c : (i+1)*c]
}

// Channel returns a de-interleaved copy of channel ch.
func (b *Buffer) Channel(ch int) ([]float64, error) {
	if err := b.checkChannel(ch); err != nil {
		return nil, err
	}
	out := make([]float64, b.FrameCount())
	c := b.format.Channels
	for i := range out {
		out[i] = b.samples[i*c+ch]
	}
	return out, nil
}

// SetChannel overwrites channel ch with data. data must hold exactly
// FrameCount samples.
func (b *Buffer) SetChannel(ch int, data []float64) error {
	if err := b.checkChannel(ch); err != nil {
		return err
	}
	if len(data) != b.FrameCount() {
		return fmt.Errorf("buffer: channel data has %d frames, want %d: %w",
			len(data), b.FrameCount(), core.ErrInvalidArgument)
	}
	b.writeChannel(ch, data)
	return nil
}

// Split returns a de-interleaved copy of every channel.
func (b *Buffer) Split() [][]float64 {
	out := make([][]float64, b.format.Channels)
	for ch := range out {
		out[ch], _ = b.Channel(ch)
	}
	return out
}

// Bytes returns the memory image of the held sample units. For a host-order
// buffer this is the native encoding of its values; after ChangeEndian it is
// their encoding in the swapped order. FromBytes with Format reverses it.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.samples)*sampleBytes)
	for i, v := range b.samples {
		binary.NativeEndian.PutUint64(out[i*sampleBytes:], math.Float64bits(v))
	}
	return out
}

// Grow ensures capacity for at least frames frames, preserving existing data.
func (b *Buffer) Grow(frames int) {
	n := frames * b.format.Channels
	if n <= cap(b.samples) {
		return
	}
	grown := make([]float64, len(b.samples), n)
	copy(grown, b.samples)
	b.samples = grown
}

// Resize sets the frame count, preserving existing frames up to the smaller
// of the two counts. New frames are zeroed.
func (b *Buffer) Resize(frames int) {
	b.samples = core.Resize(b.samples, frames*b.format.Channels)
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	clear(b.samples)
}

// ZeroRange sets frames in [start, end) to 0.
// Indices are clamped to valid bounds.
func (b *Buffer) ZeroRange(start, end int) {
	start = max(start, 0)
	end = min(end, b.FrameCount())
	if start >= end {
		return
	}
	c := b.format.Channels
	clear(b.samples[start*c : end*c])
}

// Insert inserts other before frame at. at may equal FrameCount to append.
func (b *Buffer) Insert(other *Buffer, at int) error {
	if err := b.compatible(other); err != nil {
		return err
	}
	if at < 0 || at > b.FrameCount() {
		return fmt.Errorf("buffer: insert frame %d outside [0, %d]: %w", at, b.FrameCount(), ErrOutOfRange)
	}
	samples, err := core.Insert(b.samples, other.samples, at*b.format.Channels)
	if err != nil {
		return err
	}
	b.samples = samples
	return nil
}

// Append adds the frames of other at the end of the buffer.
func (b *Buffer) Append(other *Buffer) error {
	return b.Insert(other, b.FrameCount())
}

// Cut removes count frames starting at frame at.
func (b *Buffer) Cut(at, count int) error {
	if err := b.checkFrames(at, count); err != nil {
		return err
	}
	c := b.format.Channels
	samples, err := core.Cut(b.samples, at*c, count*c)
	if err != nil {
		return err
	}
	b.samples = samples
	return nil
}

// Replace overwrites frames starting at at with the frames of other.
// The replaced range must lie within the buffer.
func (b *Buffer) Replace(other *Buffer, at int) error {
	if err := b.compatible(other); err != nil {
		return err
	}
	if err := b.checkFrames(at, other.FrameCount()); err != nil {
		return err
	}
	copy(b.samples[at*b.format.Channels:], other.samples)
	return nil
}

// SubBuffer returns an independent copy of count frames starting at frame.
func (b *Buffer) SubBuffer(frame, count int) (*Buffer, error) {
	if err := b.checkFrames(frame, count); err != nil {
		return nil, err
	}
	c := b.format.Channels
	samples, err := core.Sub(b.samples, frame*c, count*c)
	if err != nil {
		return nil, err
	}
	return &Buffer{samples: samples, format: b.format}, nil
}

// ChangeEndian reverses the bytes of every sample unit in place and flips
// the buffer's byte order. Calling it twice restores the original values.
func (b *Buffer) ChangeEndian() {
	for i, v := range b.samples {
		b.samples[i] = math.Float64frombits(bits.ReverseBytes64(math.Float64bits(v)))
	}
	b.format.Order = b.format.Order.Swapped()
}

// Reverse reverses the frame order in place. Channel order inside each
// frame is kept.
func (b *Buffer) Reverse() {
	c := b.format.Channels
	if c == 1 {
		slices.Reverse(b.samples)
		return
	}
	for i, j := 0, b.FrameCount()-1; i < j; i, j = i+1, j-1 {
		for ch := 0; ch < c; ch++ {
			b.samples[i*c+ch], b.samples[j*c+ch] = b.samples[j*c+ch], b.samples[i*c+ch]
		}
	}
}

// Copy returns a deep copy of the buffer.
func (b *Buffer) Copy() *Buffer {
	return &Buffer{samples: slices.Clone(b.samples), format: b.format}
}

func (b *Buffer) index(frame, ch int) int {
	if ch < 0 || ch >= b.format.Channels {
		panic(fmt.Sprintf("buffer: channel %d out of range [0, %d)", ch, b.format.Channels))
	}
	return frame*b.format.Channels + ch
}

func (b *Buffer) writeChannel(ch int, data []float64) {
	c := b.format.Channels
	for i, v := range data {
		b.samples[i*c+ch] = v
	}
}

func (b *Buffer) checkChannel(ch int) error {
	if ch < 0 || ch >= b.format.Channels {
		return fmt.Errorf("buffer: channel %d outside [0, %d): %w", ch, b.format.Channels, ErrOutOfRange)
	}
	return nil
}

func (b *Buffer) checkFrames(at, count int) error {
	n := b.FrameCount()
	if at < 0 || count < 0 || at > n || count > n-at {
		return fmt.Errorf("buffer: frames [%d, %d+%d) outside %d frames: %w", at, at, count, n, ErrOutOfRange)
	}
	return nil
}

func (b *Buffer) compatible(other *Buffer) error {
	if other == nil {
		return fmt.Errorf("buffer: nil buffer: %w", core.ErrInvalidArgument)
	}
	if other.format.Channels != b.format.Channels || other.format.Order != b.format.Order {
		return fmt.Errorf("buffer: %d channels/%s endian vs %d channels/%s endian: %w",
			b.format.Channels, b.format.Order, other.format.Channels, other.format.Order, ErrFormatMismatch)
	}
	return nil
}
