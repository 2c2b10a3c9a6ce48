package core

import "math"

const (
	defaultEpsilon  = 1e-12
	denormalEpsilon = 1e-30
	referenceRateHz = 44100.0
)

// ReferenceSampleRate is the rate at which time-scaled recursions are tuned.
const ReferenceSampleRate = referenceRateHz

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// SanitizeFinite returns x, or 0 when x is NaN or ±Inf.
func SanitizeFinite(x float64) float64 {
	if !IsFinite(x) {
		return 0
	}

	return x
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// This can reduce denormal-related CPU slowdowns in hot DSP loops.
func FlushDenormals(x float64) float64 {
	if x > -denormalEpsilon && x < denormalEpsilon {
		return 0
	}

	return x
}

// TimeScale returns ReferenceSampleRate / sampleRate, or 1 for an invalid rate.
func TimeScale(sampleRate float64) float64 {
	if sampleRate <= 0 || !IsFinite(sampleRate) {
		return 1
	}

	return referenceRateHz / sampleRate
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
