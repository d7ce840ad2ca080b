package toast

import "context"

// Store handles ordered toast persistence. Implementations must be safe for
// concurrent use and must preserve insertion order in List.
type Store interface {
	// Insert appends a toast. Returns ErrDuplicateID if a toast with the
	// same ID is already stored.
	Insert(ctx context.Context, t Toast) error

	// Get retrieves a single toast. Returns ErrToastNotFound if absent.
	Get(ctx context.Context, id string) (*Toast, error)

	// RemoveByID removes a toast and returns the removed record.
	// Removing an absent ID is a benign no-op returning (nil, nil).
	RemoveByID(ctx context.Context, id string) (*Toast, error)

	// RemoveAll clears the store and returns the removed IDs in
	// insertion order.
	RemoveAll(ctx context.Context) ([]string, error)

	// List returns a snapshot of all stored toasts in insertion order.
	// The returned slice is a copy; mutating it does not affect the store.
	List(ctx context.Context) ([]Toast, error)

	// Count returns the number of stored toasts.
	Count(ctx context.Context) (int, error)
}
