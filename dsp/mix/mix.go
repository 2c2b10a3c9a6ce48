// Package mix provides dry/wet blending and equal-power crossfades.
package mix

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// DryWet blends a single sample. amount 0 is fully dry, 1 fully wet.
// It performs the same operations as DryWetBlock.
func DryWet(dry, wet, amount float64) float64 {
	// Explicit conversions forbid fused multiply-add.
	return float64(dry*(1-amount)) + float64(wet*amount)
}

// DryWetBlock writes dry*(1-g)+wet*g into dst, where g is the per-sample
// gain in mixGains. scratch must hold at least len(dst) samples. dst may
// alias dry but not wet or scratch.
//
// All slices are truncated to the shortest length.
func DryWetBlock(dst, dry, wet, mixGains, scratch []float64) {
	n := min(len(dst), len(dry), len(wet), len(mixGains), len(scratch))
	if n == 0 {
		return
	}

	dst, dry, wet, mixGains, scratch = dst[:n], dry[:n], wet[:n], mixGains[:n], scratch[:n]

	for i, g := range mixGains {
		scratch[i] = 1 - g
	}

	vecmath.MulBlock(dst, dry, scratch)
	vecmath.MulBlock(scratch, wet, mixGains)
	vecmath.AddBlockInPlace(dst, scratch)
}

// Gain scales buf in place by a constant.
func Gain(buf []float64, gain float64) {
	if gain == 1 || len(buf) == 0 {
		return
	}

	vecmath.ScaleBlock(buf, buf, gain)
}

// EqualPower returns cosine/sine gains for a crossfade position in [0, 1].
// The sum of squares of the two gains is always one.
func EqualPower(pos float64) (from, to float64) {
	switch {
	case pos <= 0:
		return 1, 0
	case pos >= 1:
		return 0, 1
	}

	s, c := math.Sincos(pos * math.Pi / 2)

	return c, s
}
