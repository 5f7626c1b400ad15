package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTurnClockArmExpireCancel(t *testing.T) {
	var c TurnClock
	now := time.Unix(1_000_000, 0)

	assert.False(t, c.Expired(100), "unarmed clock never expires")
	assert.EqualValues(t, 0, c.Deadline())

	c.Arm(100, now, 15*time.Second)
	assert.False(t, c.Expired(114))
	assert.True(t, c.Expired(115))
	assert.Equal(t, now.Unix()+15, c.Deadline())

	c.Cancel()
	assert.False(t, c.Expired(200))
	assert.EqualValues(t, 0, c.Deadline())
}

func TestTurnClockRearmReplacesPendingDeadline(t *testing.T) {
	var c TurnClock
	now := time.Unix(2_000_000, 0)

	c.Arm(10, now, 15*time.Second)
	c.Arm(20, now.Add(10*time.Second), 15*time.Second)

	assert.False(t, c.Expired(25), "old deadline must not fire after re-arm")
	assert.True(t, c.Expired(35))
	assert.Equal(t, now.Unix()+25, c.Deadline())
}
