// Package buffer provides the sample and complex buffer types the spectral
// engine is built on.
//
// Buffer holds interleaved float64 samples together with a Format (channel
// count, informational sample rate, byte order of the held sample units).
// Positions and lengths in the Buffer API are expressed in frames, one frame
// being one sample per channel. Complex holds the (real, imaginary) bins a
// transform produces for one analysis frame.
//
// Buffers have a single writer. Sub-buffers are independent copies, never
// aliasing views, so a parent may be resized or mutated freely afterwards.
package buffer
