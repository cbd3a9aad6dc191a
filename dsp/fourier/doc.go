// Package fourier computes discrete Fourier transforms of power-of-two
// length.
//
// Forward maps N samples to N bins. Inverse maps bins back to samples and,
// when asked to scale, divides by N so that Inverse(Forward(x)) == x.
// Signals of other lengths are zero-padded explicitly with Pad before
// transforming; Exact offers a slower arbitrary-length transform for
// callers that cannot accept padding.
//
// Plans are pooled per size, so every function here may be called from
// many goroutines at once.
package fourier
