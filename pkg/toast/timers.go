package toast

import (
	"sync"
	"time"
)

// TimerRegistry tracks at most one armed countdown timer per toast ID.
// All methods are safe for concurrent use.
type TimerRegistry struct {
	timers map[string]*time.Timer
	mu     sync.Mutex
}

// NewTimerRegistry creates an empty timer registry.
func NewTimerRegistry() *TimerRegistry {
	return &TimerRegistry{
		timers: make(map[string]*time.Timer),
	}
}

// Schedule arms a timer that invokes onExpire once after delay. Any existing
// timer for the same ID is cancelled first. The registry entry is removed
// before onExpire runs, and a timer cancelled or replaced before firing never
// invokes its callback. Returns ErrInvalidDelay when delay is not positive;
// persistent toasts are expressed by never scheduling, not by a zero delay.
func (r *TimerRegistry) Schedule(id string, delay time.Duration, onExpire func()) error {
	if delay <= 0 {
		return ErrInvalidDelay
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, exists := r.timers[id]; exists {
		prev.Stop()
	}

	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		r.mu.Lock()
		cur, exists := r.timers[id]
		if !exists || cur != t {
			// Cancelled or replaced between firing and acquiring the lock.
			r.mu.Unlock()
			return
		}
		delete(r.timers, id)
		r.mu.Unlock()

		onExpire()
	})
	r.timers[id] = t

	return nil
}

// Cancel stops and removes the timer for id. It reports whether a timer was
// armed; cancelling an unknown ID is a no-op.
func (r *TimerRegistry) Cancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, exists := r.timers[id]
	if !exists {
		return false
	}

	t.Stop()
	delete(r.timers, id)
	return true
}

// CancelAll stops every armed timer and returns the number cancelled.
func (r *TimerRegistry) CancelAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.timers)
	for _, t := range r.timers {
		t.Stop()
	}
	clear(r.timers)
	return n
}

// Len returns the number of armed timers.
func (r *TimerRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.timers)
}
