package toast

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub(opts ...HubOption) *Hub {
	return NewHub(func(scope string) *Manager {
		return NewManager(NewMemoryStore(), WithDefaultDuration(0))
	}, opts...)
}

func TestNewHub_NilFactoryPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewHub(nil)
	})
}

func TestHub_Scope_CreatesOncePerKey(t *testing.T) {
	var calls int
	hub := NewHub(func(scope string) *Manager {
		calls++
		return NewManager(NewMemoryStore(), WithDefaultDuration(0))
	})
	defer hub.Close()

	a := hub.Scope("user-1")
	b := hub.Scope("user-1")
	c := hub.Scope("user-2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, hub.Len())
}

func TestHub_Scope_IsolatesState(t *testing.T) {
	hub := newTestHub()
	defer hub.Close()
	ctx := context.Background()

	_, err := hub.Scope("user-1").Info(ctx, "only for user 1")
	require.NoError(t, err)

	count, err := hub.Scope("user-1").Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = hub.Scope("user-2").Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestHub_EvictsLeastRecentlyUsed(t *testing.T) {
	hub := newTestHub(WithMaxScopes(2))
	defer hub.Close()
	ctx := context.Background()

	first := hub.Scope("user-1")
	_ = hub.Scope("user-2")

	// Touch user-1 so user-2 becomes the eviction candidate.
	_ = hub.Scope("user-1")
	second := hub.Scope("user-2")

	third := hub.Scope("user-3")
	assert.Equal(t, 2, hub.Len())

	// user-1 was least recently used, so its manager is the closed one.
	_, err := first.Info(ctx, "m")
	assert.ErrorIs(t, err, ErrManagerClosed)
	_, err = second.Info(ctx, "m")
	assert.NoError(t, err)
	_, err = third.Info(ctx, "m")
	assert.NoError(t, err)

	// Asking for the evicted scope again builds a fresh manager.
	fresh := hub.Scope("user-1")
	assert.NotSame(t, first, fresh)
	_, err = fresh.Info(ctx, "m")
	assert.NoError(t, err)
}

func TestHub_Drop(t *testing.T) {
	hub := newTestHub()
	defer hub.Close()
	ctx := context.Background()

	mgr := hub.Scope("user-1")
	require.Equal(t, 1, hub.Len())

	assert.True(t, hub.Drop("user-1"))
	assert.Zero(t, hub.Len())
	assert.False(t, hub.Drop("user-1"))

	_, err := mgr.Info(ctx, "m")
	assert.ErrorIs(t, err, ErrManagerClosed)
}

func TestHub_Close(t *testing.T) {
	hub := newTestHub()
	ctx := context.Background()

	a := hub.Scope("user-1")
	b := hub.Scope("user-2")

	require.NoError(t, hub.Close())
	require.NoError(t, hub.Close())
	assert.Zero(t, hub.Len())

	_, err := a.Info(ctx, "m")
	assert.ErrorIs(t, err, ErrManagerClosed)
	_, err = b.Info(ctx, "m")
	assert.ErrorIs(t, err, ErrManagerClosed)

	// Scopes requested after Close are unusable rather than panicking.
	late := hub.Scope("user-3")
	_, err = late.Info(ctx, "m")
	assert.ErrorIs(t, err, ErrManagerClosed)
	assert.Zero(t, hub.Len())
}

func TestHub_ConcurrentScopeAccess(t *testing.T) {
	var mu sync.Mutex
	created := make(map[string]int)
	hub := NewHub(func(scope string) *Manager {
		mu.Lock()
		created[scope]++
		mu.Unlock()
		return NewManager(NewMemoryStore(), WithDefaultDuration(0))
	})
	defer hub.Close()

	numGoroutines := 50
	numScopes := 5

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := range numGoroutines {
		go func(idx int) {
			defer wg.Done()
			key := fmt.Sprintf("user-%d", idx%numScopes)
			mgr := hub.Scope(key)
			_, _ = mgr.Info(context.Background(), "concurrent")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, numScopes, hub.Len())
	mu.Lock()
	defer mu.Unlock()
	for scope, n := range created {
		assert.Equal(t, 1, n, "factory called %d times for %s", n, scope)
	}

	for i := range numScopes {
		count, err := hub.Scope(fmt.Sprintf("user-%d", i)).Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, numGoroutines/numScopes, count)
	}
}
