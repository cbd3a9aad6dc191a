// Package spectrum provides helpers over complex spectrum bins: magnitude,
// power and phase extraction, phase wrapping and unwrapping, peak picking,
// and single-bin Goertzel analysis.
//
// The package does not compute transforms itself; see package fourier.
package spectrum
