package daylight

import "time"

// Clock advances a simulated time of day at a configurable rate.
type Clock struct {
	hours float32
	// Scale is simulated hours per real second. Zero freezes the clock.
	Scale float32
}

// NewClock returns a clock starting at the given fractional hour.
func NewClock(startHour, scale float32) *Clock {
	return &Clock{hours: startHour, Scale: scale}
}

// Advance moves the clock forward by the given real elapsed time.
func (c *Clock) Advance(dt time.Duration) {
	c.hours += float32(dt.Seconds()) * c.Scale
	for c.hours >= 24 {
		c.hours -= 24
	}
}

// Hours returns the current simulated time in fractional hours [0, 24).
func (c *Clock) Hours() float32 {
	return c.hours
}

// Set jumps the clock to the given fractional hour.
func (c *Clock) Set(hours float32) {
	c.hours = hours
	for c.hours >= 24 {
		c.hours -= 24
	}
	for c.hours < 0 {
		c.hours += 24
	}
}
