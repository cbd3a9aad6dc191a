// Package stft implements windowed short-time Fourier analysis, per-frame
// spectral mutation, and weighted overlap-add resynthesis.
//
// The signal is conceptually extended by windowSize-hop zeros on both sides
// so that every input sample is covered by the same number of frames. Frame
// i starts at i*hop - (windowSize-hop); samples outside the signal read as
// zero. Resynthesis multiplies each inverse-transformed frame by the window
// again, overlap-adds it and divides every output sample by the summed
// squared window weight it received. With an unmodified spectrum this
// reproduces the input for any hop in [1, windowSize].
//
// A Framework is immutable after New and safe for concurrent use. An
// Analysis has a single owner and is consumed by Synthesize.
package stft
