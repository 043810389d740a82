package path

import "math"

const twoPi = 2 * math.Pi

// angleEps is the tolerance for angle comparisons. Angles are dimensionless
// and bounded, so no magnitude scaling applies.
const angleEps = 1e-9

// sweepSpan returns the positive traversed angle of a sweep from start to
// end in the given direction. A difference of a full revolution or more is
// clamped to exactly one revolution, so (0, 2*pi) describes a full circle.
func sweepSpan(start, end float64, clockwise bool) float64 {
	diff := end - start
	if math.Abs(diff) >= twoPi-angleEps {
		return twoPi
	}
	if clockwise {
		diff = -diff
	}
	span := math.Mod(diff, twoPi)
	if span < 0 {
		span += twoPi
	}
	return span
}

// sweepContains reports whether theta lies on the sweep from start to end
// in the given direction. The sweep endpoints are included, with a small
// angular tolerance on either side.
func sweepContains(theta, start, end float64, clockwise bool) bool {
	span := sweepSpan(start, end, clockwise)
	if span >= twoPi-angleEps {
		return true
	}
	rel := theta - start
	if clockwise {
		rel = -rel
	}
	rel = math.Mod(rel, twoPi)
	if rel < 0 {
		rel += twoPi
	}
	if rel <= span+angleEps {
		return true
	}
	// Angles a hair before the start wrap around to just under 2*pi.
	return twoPi-rel <= angleEps
}

// sweepSamples returns the number of polyline segments for a sweep of the
// given span at the given full-revolution resolution, never fewer than 2.
func sweepSamples(span float64, resolution int) int {
	n := int(math.Ceil(float64(resolution) * span / twoPi))
	if n < 2 {
		n = 2
	}
	return n
}
