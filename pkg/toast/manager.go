package toast

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/toastkit/toastkit/pkg/logger"
)

// DefaultDuration is the display duration applied when neither the manager
// nor the individual toast specifies one.
const DefaultDuration = 5 * time.Second

const defaultFeedBuffer = 16

// Manager owns the toast lifecycle: it generates IDs, stores toasts,
// schedules their expiration, and publishes change events. Construct one per
// scope (user, session, window) and pass it explicitly to whoever needs it.
type Manager struct {
	store  Store
	timers *TimerRegistry
	feed   *feed
	log    *slog.Logger

	defaultDuration atomic.Int64 // nanoseconds
	feedBuffer      int
	newID           func() string
	closed          atomic.Bool
}

// NewManager creates a toast manager over the given store. A nil store
// defaults to an in-memory one.
func NewManager(store Store, opts ...ManagerOption) *Manager {
	if store == nil {
		store = NewMemoryStore()
	}

	m := &Manager{
		store:      store,
		timers:     NewTimerRegistry(),
		log:        slog.Default(),
		feedBuffer: defaultFeedBuffer,
		newID:      uuid.NewString,
	}
	m.defaultDuration.Store(int64(DefaultDuration))

	for _, opt := range opts {
		opt(m)
	}

	m.feed = newFeed(m.feedBuffer)

	return m
}

// Notify stores a new toast, arms its expiration timer, and returns the
// generated toast ID. An explicit WithDuration wins; zero means persistent;
// when no duration option is given, the manager default at call time applies.
func (m *Manager) Notify(ctx context.Context, severity Severity, message string, opts ...NotifyOption) (string, error) {
	if m.closed.Load() {
		return "", ErrManagerClosed
	}
	if !severity.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSeverity, severity)
	}

	var cfg notifyConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	duration := m.DefaultDuration()
	if cfg.durationSet {
		duration = cfg.duration
	}
	if duration < 0 {
		return "", ErrInvalidDuration
	}

	t := Toast{
		ID:        m.newID(),
		Severity:  severity,
		Title:     cfg.title,
		Message:   message,
		Data:      cfg.data,
		Duration:  duration,
		Action:    cfg.action,
		CreatedAt: time.Now(),
	}

	// Store first so the toast exists before its countdown can fire
	if err := m.store.Insert(ctx, t); err != nil {
		return "", fmt.Errorf("failed to store toast: %w", err)
	}

	if duration > 0 {
		if err := m.timers.Schedule(t.ID, duration, func() { m.expire(t.ID) }); err != nil {
			// The toast stays visible as if persistent; surfaced for operators
			m.log.LogAttrs(ctx, slog.LevelWarn, "Failed to schedule toast expiration",
				logger.ToastID(t.ID),
				logger.Error(err),
			)
		}
	}

	m.feed.publish(Event{Type: EventPushed, Toast: t, At: time.Now()})

	return t.ID, nil
}

// Success pushes a success toast. See Notify for duration resolution.
func (m *Manager) Success(ctx context.Context, message string, opts ...NotifyOption) (string, error) {
	return m.Notify(ctx, SeveritySuccess, message, opts...)
}

// Error pushes an error toast. See Notify for duration resolution.
func (m *Manager) Error(ctx context.Context, message string, opts ...NotifyOption) (string, error) {
	return m.Notify(ctx, SeverityError, message, opts...)
}

// Warning pushes a warning toast. See Notify for duration resolution.
func (m *Manager) Warning(ctx context.Context, message string, opts ...NotifyOption) (string, error) {
	return m.Notify(ctx, SeverityWarning, message, opts...)
}

// Info pushes an info toast. See Notify for duration resolution.
func (m *Manager) Info(ctx context.Context, message string, opts ...NotifyOption) (string, error) {
	return m.Notify(ctx, SeverityInfo, message, opts...)
}

// Dismiss cancels the toast's timer and removes it from the store.
// Dismissing an unknown or already-removed ID is a benign no-op.
func (m *Manager) Dismiss(ctx context.Context, id string) error {
	m.timers.Cancel(id)

	removed, err := m.store.RemoveByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to remove toast: %w", err)
	}
	if removed != nil {
		m.feed.publish(Event{Type: EventDismissed, Toast: *removed, At: time.Now()})
	}

	return nil
}

// DismissAll cancels every armed timer, then clears the store. Subscribers
// receive a single EventCleared instead of per-toast events.
func (m *Manager) DismissAll(ctx context.Context) error {
	m.timers.CancelAll()

	if _, err := m.store.RemoveAll(ctx); err != nil {
		return fmt.Errorf("failed to clear toasts: %w", err)
	}

	m.feed.publish(Event{Type: EventCleared, At: time.Now()})

	return nil
}

func (m *Manager) Get(ctx context.Context, id string) (*Toast, error) {
	return m.store.Get(ctx, id)
}

func (m *Manager) List(ctx context.Context) ([]Toast, error) {
	return m.store.List(ctx)
}

func (m *Manager) Count(ctx context.Context) (int, error) {
	return m.store.Count(ctx)
}

// Subscribe registers for change events. The subscription is cleaned up when
// ctx is cancelled or the manager closes; slow subscribers have events
// dropped rather than blocking manager operations.
func (m *Manager) Subscribe(ctx context.Context) *Subscription {
	return m.feed.subscribe(ctx)
}

// SetDefaultDuration changes the duration applied to subsequent toasts that
// do not specify one. Zero makes them persistent. Countdowns already in
// flight are not affected. Returns ErrInvalidDuration when d is negative.
func (m *Manager) SetDefaultDuration(d time.Duration) error {
	if d < 0 {
		return ErrInvalidDuration
	}
	m.defaultDuration.Store(int64(d))
	return nil
}

// DefaultDuration returns the duration currently applied to toasts that do
// not specify one.
func (m *Manager) DefaultDuration() time.Duration {
	return time.Duration(m.defaultDuration.Load())
}

// ActiveTimers reports how many expiration timers are currently armed.
func (m *Manager) ActiveTimers() int {
	return m.timers.Len()
}

// Store returns the underlying toast store.
func (m *Manager) Store() Store {
	return m.store
}

// Close cancels all timers and closes the event feed. The store is left
// untouched so persistent backends survive restarts. Close is idempotent;
// after Close, Notify returns ErrManagerClosed.
func (m *Manager) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}

	m.timers.CancelAll()
	m.feed.close()

	return nil
}

// expire runs on the timer goroutine after the registry entry is gone.
// Losing the removal race to a concurrent dismiss is expected and silent.
func (m *Manager) expire(id string) {
	ctx := context.Background()

	removed, err := m.store.RemoveByID(ctx, id)
	if err != nil {
		m.log.LogAttrs(ctx, slog.LevelWarn, "Failed to remove expired toast",
			logger.ToastID(id),
			logger.Error(err),
		)
		return
	}
	if removed != nil {
		m.feed.publish(Event{Type: EventExpired, Toast: *removed, At: time.Now()})
	}
}
