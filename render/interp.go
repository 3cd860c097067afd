// SPDX-License-Identifier: EPL-2.0

package render

import "math"

// cubic is a Catmull-Rom spline through y0..y3, evaluated at x in [0,1]
// between y1 and y2.
func cubic(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2

	return ((a0*x+a1)*x+a2)*x + y1
}

// Float32ToInt16 clamps x to [-1, 1] and scales it by 32767.
func Float32ToInt16(x float32) int16 {
	x = max(-1, min(1, x))

	return int16(x * math.MaxInt16)
}
