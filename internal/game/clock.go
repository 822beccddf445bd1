package game

import "fmt"

// Clock is the in-game calendar. Days start at 1.
type Clock struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Advance moves the clock forward and reports whether a day boundary was
// crossed. Crossing several boundaries at once still reports a single change.
func (c *Clock) Advance(minutes int) bool {
	if minutes <= 0 {
		return false
	}
	c.Minute += minutes
	if c.Minute >= 60 {
		c.Hour += c.Minute / 60
		c.Minute %= 60
	}
	if c.Hour < 24 {
		return false
	}
	c.Day += c.Hour / 24
	c.Hour %= 24
	return true
}

// Display renders the time of day as "h:mm AM".
func (c Clock) Display() string {
	period := "AM"
	if c.Hour >= 12 {
		period = "PM"
	}
	h := c.Hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, c.Minute, period)
}
