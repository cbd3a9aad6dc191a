package core

import (
	"errors"
	"testing"
)

func TestResizePreservesAndZeroFills(t *testing.T) {
	s := []float64{1, 2, 3, 4}
	s = Resize(s, 2)
	s = Resize(s, 4)

	want := []float64{1, 2, 0, 0}
	for i := range want {
		if s[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, s[i], want[i])
		}
	}

	if got := Resize(s, -3); len(got) != 0 {
		t.Fatalf("len = %d, want 0 for negative size", len(got))
	}
}

func TestSubIsIndependentCopy(t *testing.T) {
	s := []int{0, 1, 2, 3, 4}

	sub, err := Sub(s, 1, 3)
	if err != nil {
		t.Fatalf("Sub() error = %v", err)
	}

	sub[0] = 99
	if s[1] != 1 {
		t.Fatal("Sub result aliases the source")
	}
}

func TestSubOutOfRange(t *testing.T) {
	tests := []struct {
		name           string
		offset, length int
	}{
		{name: "past end", offset: 3, length: 3},
		{name: "negative offset", offset: -1, length: 2},
		{name: "negative length", offset: 0, length: -1},
		{name: "offset beyond", offset: 6, length: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Sub([]int{0, 1, 2, 3, 4}, tt.offset, tt.length)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("Sub() error = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestInsertAndCut(t *testing.T) {
	s := []int{1, 2, 5}

	s, err := Insert(s, []int{3, 4}, 2)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	want := []int{1, 2, 3, 4, 5}
	for i := range want {
		if s[i] != want[i] {
			t.Fatalf("after insert %v, want %v", s, want)
		}
	}

	s, err = Cut(s, 1, 3)
	if err != nil {
		t.Fatalf("Cut() error = %v", err)
	}

	if len(s) != 2 || s[0] != 1 || s[1] != 5 {
		t.Fatalf("after cut %v, want [1 5]", s)
	}

	if _, err := Insert(s, []int{9}, 3); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Insert() past end error = %v, want ErrInvalidArgument", err)
	}

	if _, err := Cut(s, 1, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Cut() past end error = %v, want ErrInvalidArgument", err)
	}
}

func TestConcat(t *testing.T) {
	got := Concat([]float64{1}, nil, []float64{2, 3})
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("Concat() = %v", got)
	}
}
