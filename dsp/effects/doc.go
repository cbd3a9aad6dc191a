// Package effects provides spectral audio effects built on the STFT
// framework in dsp/stft.
//
// Every effect is a per-frame mutation of a spectrum:
//   - Filter: low-pass, high-pass, band-pass and band-cut gain masks with an
//     optional raised-cosine transition.
//   - Equalizer: per-band amplitude scaling with phase preserved.
//   - VocoderState: phase-vocoder bin remapping for pitch shifting and time
//     stretching, with identity phase locking around spectral peaks.
//
// A Processor runs these mutations over every channel of a buffer.Buffer.
// Parameters are validated before the buffer is touched, so a failed call
// leaves it unchanged. With WithWorkers(n > 1) frames and channels are
// processed concurrently; the output is bit-identical to the serial run.
package effects
