package core

// EnsureLen returns buf resliced to n, allocating only when its capacity is
// short. Processors call it from Prepare so the audio path never grows a
// buffer.
func EnsureLen(buf []float64, n int) []float64 {
	switch {
	case n <= 0:
		return buf[:0]
	case cap(buf) < n:
		return make([]float64, n)
	default:
		return buf[:n]
	}
}
