package app

import "time"

// TurnClock tracks the single pending turn deadline of one match.
//
// The match loop ticks once per second; arming records the tick at which the
// deadline elapses and the absolute unix deadline advertised to clients so
// they can render a local countdown. Expiry is checked from inside the match
// loop, which keeps deadline handling on the same sequential event stream as
// moves and joins.
type TurnClock struct {
	armed        bool
	expiresTick  int64
	deadlineUnix int64
}

// Arm schedules the deadline budget seconds after the given tick, replacing
// any previously armed deadline.
func (c *TurnClock) Arm(tick int64, now time.Time, budget time.Duration) {
	seconds := int64(budget / time.Second)
	c.armed = true
	c.expiresTick = tick + seconds
	c.deadlineUnix = now.Unix() + seconds
}

// Cancel removes a pending deadline without firing it.
func (c *TurnClock) Cancel() {
	c.armed = false
	c.expiresTick = 0
	c.deadlineUnix = 0
}

// Expired reports whether an armed deadline has elapsed at the given tick.
func (c *TurnClock) Expired(tick int64) bool {
	return c.armed && tick >= c.expiresTick
}

// Deadline returns the advertised absolute deadline in unix seconds, 0 when unarmed.
func (c *TurnClock) Deadline() int64 {
	return c.deadlineUnix
}
