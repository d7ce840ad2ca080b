package toast

import (
	"container/list"
	"sync"
)

const defaultMaxScopes = 1024

// ManagerFactory builds the manager for a scope key on first use.
type ManagerFactory func(scope string) *Manager

// Hub hands out one Manager per scope key (user, session, browser tab) and
// bounds the number of live scopes with LRU eviction. Evicted and dropped
// managers are closed: their timers are cancelled and their feeds shut down.
type Hub struct {
	factory   ManagerFactory
	maxScopes int
	entries   map[string]*list.Element
	lru       *list.List // front = most recently used
	closed    bool
	mu        sync.Mutex
}

type hubEntry struct {
	scope   string
	manager *Manager
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithMaxScopes bounds the number of concurrently tracked scopes. When the
// bound is exceeded the least recently used scope is evicted and its manager
// closed. Values below 1 are ignored.
func WithMaxScopes(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.maxScopes = n
		}
	}
}

// NewHub creates a scope hub. The factory is called once per scope key and
// must not return nil.
func NewHub(factory ManagerFactory, opts ...HubOption) *Hub {
	if factory == nil {
		panic("toast: hub factory is nil")
	}

	h := &Hub{
		factory:   factory,
		maxScopes: defaultMaxScopes,
		entries:   make(map[string]*list.Element),
		lru:       list.New(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Scope returns the manager for the given scope key, creating it on first
// use and marking it most recently used. After the hub is closed, Scope
// returns a fresh closed manager whose Notify fails with ErrManagerClosed.
func (h *Hub) Scope(key string) *Manager {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		m := NewManager(NewMemoryStore())
		_ = m.Close()
		return m
	}

	if el, exists := h.entries[key]; exists {
		h.lru.MoveToFront(el)
		return el.Value.(*hubEntry).manager
	}

	mgr := h.factory(key)
	if mgr == nil {
		panic("toast: hub factory returned nil manager")
	}

	el := h.lru.PushFront(&hubEntry{scope: key, manager: mgr})
	h.entries[key] = el

	for h.lru.Len() > h.maxScopes {
		h.evictOldest()
	}

	return mgr
}

// Drop closes and forgets the manager for a scope. It reports whether the
// scope existed.
func (h *Hub) Drop(key string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	el, exists := h.entries[key]
	if !exists {
		return false
	}

	entry := el.Value.(*hubEntry)
	h.lru.Remove(el)
	delete(h.entries, key)
	_ = entry.manager.Close()

	return true
}

// Len returns the number of live scopes.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.lru.Len()
}

// Close closes every managed scope. It is safe to call multiple times.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil
	}
	h.closed = true

	for _, el := range h.entries {
		_ = el.Value.(*hubEntry).manager.Close()
	}
	clear(h.entries)
	h.lru.Init()

	return nil
}

// evictOldest removes the least recently used scope. Callers must hold h.mu.
func (h *Hub) evictOldest() {
	el := h.lru.Back()
	if el == nil {
		return
	}

	entry := el.Value.(*hubEntry)
	h.lru.Remove(el)
	delete(h.entries, entry.scope)
	_ = entry.manager.Close()
}
