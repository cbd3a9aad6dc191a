package core

import "fmt"

// Resize returns s with length n. Existing elements up to min(len(s), n) are
// preserved and growth is zero-filled, even when spare capacity held stale data.
func Resize[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	old := len(s)
	if n <= cap(s) {
		s = s[:n]
	} else {
		grown := make([]T, n)
		copy(grown, s)
		s = grown
	}
	if n > old {
		clear(s[old:])
	}
	return s
}

// Sub returns an independent copy of s[offset:offset+length].
func Sub[T any](s []T, offset, length int) ([]T, error) {
	if err := checkRange(len(s), offset, length); err != nil {
		return nil, err
	}
	out := make([]T, length)
	copy(out, s[offset:offset+length])
	return out, nil
}

// Insert returns s with ins inserted before index at. Elements from at onward
// are shifted towards the end. at may equal len(s) to append.
func Insert[T any](s, ins []T, at int) ([]T, error) {
	if at < 0 || at > len(s) {
		return s, fmt.Errorf("insert position %d outside [0, %d]: %w", at, len(s), ErrInvalidArgument)
	}
	if len(ins) == 0 {
		return s, nil
	}
	out := make([]T, len(s)+len(ins))
	copy(out, s[:at])
	copy(out[at:], ins)
	copy(out[at+len(ins):], s[at:])
	return out, nil
}

// Cut removes s[at:at+length] and shifts the remaining tail down.
func Cut[T any](s []T, at, length int) ([]T, error) {
	if err := checkRange(len(s), at, length); err != nil {
		return s, err
	}
	if length == 0 {
		return s, nil
	}
	n := copy(s[at:], s[at+length:])
	tail := s[at+n:]
	clear(tail)
	return s[:at+n], nil
}

// Concat joins parts into a newly allocated slice.
func Concat[T any](parts ...[]T) []T {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make([]T, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func checkRange(size, offset, length int) error {
	if offset < 0 || length < 0 || offset > size || length > size-offset {
		return fmt.Errorf("range [%d, %d+%d) outside length %d: %w", offset, offset, length, size, ErrInvalidArgument)
	}
	return nil
}
