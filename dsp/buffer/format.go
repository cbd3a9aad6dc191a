package buffer

import (
	"encoding/binary"
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// ByteOrder describes how the bytes of one sample unit are laid out.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

var nativeOrder = func() ByteOrder {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 1)
	if b[0] == 1 {
		return LittleEndian
	}
	return BigEndian
}()

// NativeEndian returns the byte order of the host.
func NativeEndian() ByteOrder { return nativeOrder }

// String returns "little" or "big".
func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big"
	}
	return "little"
}

// Swapped returns the opposite byte order.
func (o ByteOrder) Swapped() ByteOrder {
	if o == BigEndian {
		return LittleEndian
	}
	return BigEndian
}

func (o ByteOrder) binary() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Format describes the layout of a Buffer.
//
// SampleRate is informational; the buffer never resamples. Effects that map
// bins to Hz read it and reject a non-positive rate.
type Format struct {
	Channels   int
	SampleRate int
	Order      ByteOrder
}

// Mono returns a single-channel, host-order format at sampleRate.
func Mono(sampleRate int) Format {
	return Format{Channels: 1, SampleRate: sampleRate, Order: nativeOrder}
}

// Stereo returns a two-channel, host-order format at sampleRate.
func Stereo(sampleRate int) Format {
	return Format{Channels: 2, SampleRate: sampleRate, Order: nativeOrder}
}

func (f Format) validate() error {
	if f.Channels < 1 {
		return fmt.Errorf("buffer: channel count must be >= 1: %d: %w", f.Channels, core.ErrInvalidArgument)
	}
	if f.SampleRate < 0 {
		return fmt.Errorf("buffer: sample rate must be >= 0: %d: %w", f.SampleRate, core.ErrInvalidArgument)
	}
	return nil
}

func (f Format) normalized() Format {
	if f.Channels < 1 {
		f.Channels = 1
	}
	if f.SampleRate < 0 {
		f.SampleRate = 0
	}
	return f
}
