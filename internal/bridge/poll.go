package bridge

import (
	"sync"
	"time"
)

// ShouldTrigger is the poll cooldown decision: a check may run when no
// previous trigger exists or the cooldown has fully elapsed.
func ShouldTrigger(lastTrigger, now time.Time, cooldown time.Duration) bool {
	if lastTrigger.IsZero() {
		return true
	}

	return now.Sub(lastTrigger) >= cooldown
}

// Gate applies ShouldTrigger atomically: concurrent callers within one
// cooldown window get exactly one true.
type Gate struct {
	mu       sync.Mutex
	cooldown time.Duration
	last     time.Time
}

// NewGate creates a gate with the given cooldown.
func NewGate(cooldown time.Duration) *Gate {
	return &Gate{cooldown: cooldown}
}

// Try returns true and arms the cooldown if a trigger is allowed at now.
func (g *Gate) Try(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !ShouldTrigger(g.last, now, g.cooldown) {
		return false
	}

	g.last = now

	return true
}
