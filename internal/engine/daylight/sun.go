// Package daylight derives the sun position from the simulated time of day.
package daylight

import (
	"time"

	"github.com/terravista/terravista/pkg/math"
)

// Default sunrise/sunset hours (fractional, 24h clock).
const (
	DefaultSunriseHour = 6
	DefaultSunsetHour  = 20
)

// horizonOffset pins the night-time sun angle just below the horizon
// instead of continuing the arc, so night lighting is stable.
const horizonOffset = 0.05

// minVertical is the floor on the light direction's vertical component.
// A perfectly horizontal light would break the look-at orientation of
// the shadow cameras.
const minVertical = 0.1

// Calculator maps a time of day to a sun angle and light direction.
type Calculator struct {
	SunriseHour float32
	SunsetHour  float32

	// Wobble adds a small sinusoidal variation to the sun angle for
	// non-repeating visuals. Keep it below the shadow controller's
	// direction hysteresis threshold or it defeats the hysteresis.
	Wobble float32
}

// NewCalculator returns a Calculator with default sunrise/sunset hours.
func NewCalculator() *Calculator {
	return &Calculator{
		SunriseHour: DefaultSunriseHour,
		SunsetHour:  DefaultSunsetHour,
	}
}

// Angle returns the sun elevation angle in radians for the given time of
// day in fractional hours. The angle sweeps a half circle from 0 at
// sunrise to pi at sunset. Outside daylight hours it is pinned slightly
// below the horizon.
func (c *Calculator) Angle(hours float32) float32 {
	t := math.Mod(hours, 24)

	var angle float32
	switch {
	case t < c.SunriseHour:
		angle = -horizonOffset
	case t > c.SunsetHour:
		angle = math.Pi + horizonOffset
	default:
		angle = (t - c.SunriseHour) / (c.SunsetHour - c.SunriseHour) * math.Pi
	}

	if c.Wobble != 0 {
		angle += c.Wobble * math.Sin(t*12.9)
	}
	return angle
}

// Direction returns the normalized light direction for the given time of
// day. The direction points from the sun toward the scene: westward in
// the morning, straight down around noon, eastward in the evening, with
// a fixed southward tilt.
func (c *Calculator) Direction(hours float32) math.Vec3 {
	angle := c.Angle(hours)

	down := math.Sin(angle)
	if down < minVertical {
		down = minVertical
	}

	return math.Vec3{
		X: -math.Cos(angle),
		Y: -down,
		Z: 0.5,
	}.Normalize()
}

// Hours converts a wall-clock time to fractional hours in [0, 24).
func Hours(t time.Time) float32 {
	return float32(t.Hour()) +
		float32(t.Minute())/60 +
		float32(t.Second())/3600
}
