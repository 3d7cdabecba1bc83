package component

import "math"

// Finite maps v onto the finite float64 range: NaN becomes 0 and an
// infinity saturates at ±math.MaxFloat64. Variants apply it to state that
// accumulates across ticks so snapshots stay encodable.
func Finite(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case math.IsInf(v, 1):
		return math.MaxFloat64
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	default:
		return v
	}
}
