package math

import "math"

// Pi is the circle constant at float32 precision.
const Pi = float32(math.Pi)

// Lerp returns the linear interpolation between a and b at t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Abs returns the absolute value of v.
func Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// Floor returns the largest integer value less than or equal to v.
func Floor(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

// Sqrt returns the square root of v.
func Sqrt(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

// Sin returns the sine of v (radians).
func Sin(v float32) float32 {
	return float32(math.Sin(float64(v)))
}

// Cos returns the cosine of v (radians).
func Cos(v float32) float32 {
	return float32(math.Cos(float64(v)))
}

// Acos returns the arccosine of v in radians.
func Acos(v float32) float32 {
	return float32(math.Acos(float64(v)))
}

// Pow returns x raised to the power y.
func Pow(x, y float32) float32 {
	return float32(math.Pow(float64(x), float64(y)))
}

// Mod returns the floating-point remainder of x/y with the sign of y's
// period, so the result is always in [0, y) for positive y.
func Mod(x, y float32) float32 {
	m := float32(math.Mod(float64(x), float64(y)))
	if m < 0 {
		m += y
	}
	return m
}
