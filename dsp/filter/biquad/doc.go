// Package biquad provides the second-order IIR section used by the tape
// emphasis and DC-removal stages.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Its delay-line state is
// flushed to zero when it decays into the denormal range, so long silent
// tails never fall onto the slow floating-point path.
//
// This package provides the processing runtime only. Coefficient design
// lives in dsp/filter/design.
package biquad
