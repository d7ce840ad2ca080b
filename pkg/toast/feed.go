package toast

import (
	"context"
	"sync"
	"time"
)

// EventType identifies the kind of change carried by an Event.
type EventType string

const (
	// EventPushed is emitted after a toast is inserted.
	EventPushed EventType = "pushed"
	// EventDismissed is emitted after a toast is removed by an explicit dismiss.
	EventDismissed EventType = "dismissed"
	// EventExpired is emitted after a toast is removed by its countdown timer.
	EventExpired EventType = "expired"
	// EventCleared is emitted once after DismissAll; Toast is the zero value.
	EventCleared EventType = "cleared"
)

// Event describes a single change to a manager's toast set.
type Event struct {
	Type  EventType `json:"type"`
	Toast Toast     `json:"toast"`
	At    time.Time `json:"at"`
}

// Subscription receives manager events until closed. Events are delivered on
// a buffered channel; when the buffer is full the subscription is dropped
// rather than blocking the manager.
type Subscription struct {
	ch     chan Event
	closed bool
	mu     sync.RWMutex
}

func newSubscription(bufferSize int) *Subscription {
	return &Subscription{
		ch: make(chan Event, bufferSize),
	}
}

// Events returns the channel events arrive on. The channel is closed when
// the subscription is closed.
func (s *Subscription) Events() <-chan Event {
	return s.ch
}

// Close closes the subscription. It is safe to call multiple times.
func (s *Subscription) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
	return nil
}

func (s *Subscription) send(ev Event) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}

	select {
	case s.ch <- ev:
		return true
	default:
		return false
	}
}

// feed fans events out to subscribers. Sends are non-blocking so manager
// operations never wait on delivery.
type feed struct {
	subscribers map[*Subscription]struct{}
	bufferSize  int
	done        chan struct{}
	closed      bool
	mu          sync.RWMutex
	cleanupWg   sync.WaitGroup // tracks cleanup goroutines
}

func newFeed(bufferSize int) *feed {
	return &feed{
		subscribers: make(map[*Subscription]struct{}),
		// Minimum buffer size of 1 prevents zero-buffer channels which would
		// make all sends blocking and defeat the non-blocking design
		bufferSize: max(bufferSize, 1),
		done:       make(chan struct{}),
	}
}

// subscribe registers a new subscription. It is automatically cleaned up when
// the provided context is cancelled. A closed feed returns an already-closed
// subscription.
func (f *feed) subscribe(ctx context.Context) *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		sub := newSubscription(f.bufferSize)
		_ = sub.Close()
		return sub
	}

	sub := newSubscription(f.bufferSize)
	f.subscribers[sub] = struct{}{}

	// Auto-cleanup on context cancellation
	if ctx.Done() != nil {
		f.cleanupWg.Add(1)
		go func() {
			defer f.cleanupWg.Done()
			select {
			case <-ctx.Done():
				f.unsubscribe(sub)
			case <-f.done:
			}
		}()
	}

	return sub
}

// publish sends an event to all active subscriptions. If a subscription's
// buffer is full the event is dropped for it and it is marked for removal.
func (f *feed) publish(ev Event) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return
	}

	for sub := range f.subscribers {
		if !sub.send(ev) {
			// Remove slow/closed subscribers asynchronously to avoid blocking
			// this publish under the read lock
			go f.unsubscribe(sub)
		}
	}
}

func (f *feed) unsubscribe(sub *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.subscribers, sub)
	_ = sub.Close()
}

// close shuts down the feed and closes all subscriptions. Safe to call
// multiple times.
func (f *feed) close() {
	f.mu.Lock()

	if f.closed {
		f.mu.Unlock()
		return
	}

	f.closed = true
	close(f.done)

	for sub := range f.subscribers {
		_ = sub.Close()
	}
	clear(f.subscribers)
	f.mu.Unlock()

	// Wait for cleanup goroutines so no unsubscribe races a later reuse
	// of the subscription set
	f.cleanupWg.Wait()
}
