package dashboard

import (
	"math"
	"time"
)

// CountUpDuration is how long a stat card takes to reach its value.
const CountUpDuration = time.Second

// CountUp animates an integer from From to To.
type CountUp struct {
	From     int
	To       int
	Duration time.Duration
}

// NewCountUp starts a count from zero to target.
func NewCountUp(target int) CountUp {
	return CountUp{From: 0, To: target, Duration: CountUpDuration}
}

// Progress returns elapsed/Duration clamped to [0, 1].
func (c CountUp) Progress(elapsed time.Duration) float64 {
	if c.Duration <= 0 || elapsed >= c.Duration {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(c.Duration)
}

// Value is the number to display after elapsed. It lands exactly on To once
// the duration has passed.
func (c CountUp) Value(elapsed time.Duration) int {
	p := c.Progress(elapsed)
	if p >= 1 {
		return c.To
	}
	return c.From + int(math.Floor(float64(c.To-c.From)*EaseOutCubic(p)))
}

// Done reports whether the animation has finished.
func (c CountUp) Done(elapsed time.Duration) bool {
	return c.Progress(elapsed) >= 1
}

// EaseOutCubic decelerates towards the end: fast start, gentle landing.
func EaseOutCubic(p float64) float64 {
	p = math.Max(0, math.Min(1, p))
	q := 1 - p
	return 1 - q*q*q
}
