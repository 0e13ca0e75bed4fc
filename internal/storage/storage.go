package storage

import "context"

// AllowList defines the interface for the persisted set of user IDs
// that are permitted to use the bot. Implementations must tolerate
// interleaved calls from overlapping update handlers.
type AllowList interface {
	// Contains reports whether userID is currently a member.
	Contains(ctx context.Context, userID int64) (bool, error)

	// Add inserts userID into the allow-list. Returns false if the
	// user was already present; adding a present user is a no-op.
	Add(ctx context.Context, userID int64) (bool, error)

	// Remove deletes userID from the allow-list. Returns false if the
	// user was not a member.
	Remove(ctx context.Context, userID int64) (bool, error)

	// List returns all current members in ascending user ID order.
	List(ctx context.Context) ([]int64, error)

	// Lifecycle
	Initialize(ctx context.Context) error
	Close() error
}
