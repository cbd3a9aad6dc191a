package fourier

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/internal/testutil"
)

func TestExactMatchesForwardOnPowerOfTwo(t *testing.T) {
	x := testutil.DeterministicNoise(9, 1, 64)
	want, err := ForwardReal(x)
	if err != nil {
		t.Fatalf("ForwardReal: %v", err)
	}
	got, err := Exact(x)
	if err != nil {
		t.Fatalf("Exact: %v", err)
	}
	if d := maxComplexDiff(got, want); d > 1e-9 {
		t.Fatalf("Exact vs Forward diff %v", d)
	}
}

func TestExactRoundTripArbitraryLength(t *testing.T) {
	for _, n := range []int{1, 3, 100, 441} {
		x := testutil.DeterministicNoise(int64(n), 1, n)
		X, err := Exact(x)
		if err != nil {
			t.Fatalf("n=%d Exact: %v", n, err)
		}
		if len(X) != n {
			t.Fatalf("n=%d: %d bins", n, len(X))
		}
		y, err := ExactInverse(X)
		if err != nil {
			t.Fatalf("n=%d ExactInverse: %v", n, err)
		}
		for i := range x {
			if d := real(y[i]) - x[i]; d > 1e-9 || d < -1e-9 {
				t.Fatalf("n=%d: sample %d off by %v", n, i, d)
			}
		}
	}
}

func TestExactEmpty(t *testing.T) {
	if _, err := Exact(nil); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("Exact(nil) err = %v", err)
	}
	if _, err := ExactInverse(nil); !errors.Is(err, core.ErrInvalidArgument) {
		t.Fatalf("ExactInverse(nil) err = %v", err)
	}
}
