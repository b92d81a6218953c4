package face

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// RotationIncrement is the step in degrees rotation angles are quantized to
const RotationIncrement = 5.0

// ExtractRotationInDegrees converts a face rotation quaternion to Euler
// angles in degrees, each quantized to the nearest RotationIncrement
func ExtractRotationInDegrees(q quat.Number) (pitch, yaw, roll int) {

	if n := quat.Abs(q); n > 0 && n != 1 {
		q = quat.Scale(1/n, q)
	}

	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag

	pitchD := math.Atan2(2*(y*z+w*x), 1-2*(x*x+y*y))
	yawD := math.Asin(clamp(2*(w*y-x*z), -1, 1))
	rollD := math.Atan2(2*(x*y+w*z), 1-2*(y*y+z*z))

	return quantize(degrees(pitchD)), quantize(degrees(yawD)), quantize(degrees(rollD))
}

// quantize rounds an angle to the nearest multiple of RotationIncrement,
// halves away from zero
func quantize(deg float64) int {
	return int(math.Round(deg/RotationIncrement) * RotationIncrement)
}

func degrees(rad float64) float64 {
	return rad / math.Pi * 180.0
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
