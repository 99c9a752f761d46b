package irb

import "math"

// unitScale maps v from [lo, hi] to [0, 1], clamping outside values. NaN maps to 0.
func unitScale(v, lo, hi float32) float32 {
	if math.IsNaN(float64(v)) || hi <= lo {
		return 0
	}
	u := (v - lo) / (hi - lo)
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}
