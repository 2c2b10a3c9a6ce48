// Package design provides RBJ-style biquad coefficient designers.
//
// The functions in this package produce coefficients consumable by
// dsp/filter/biquad for runtime processing: the high-pass used for DC
// removal and the shelving pair used for tape pre- and de-emphasis.
//
// Out-of-range inputs (non-positive or super-Nyquist frequency, invalid
// sample rate) yield the zero [biquad.Coefficients] value; a non-positive Q
// falls back to the Butterworth value 1/sqrt(2).
package design
