package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	ItemStore
	PreferenceStore
	EnsureSchema(ctx context.Context) error
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ItemFilter restricts item reads. An empty Category matches every item.
type ItemFilter struct {
	Category string
}

// ItemStore provides FAQ item operations. Reads return items in insertion order.
// InsertItems writes the initial catalog batch; once a batch is stored, a competing
// batch fails with ErrBatchClaimed and writes nothing.
type ItemStore interface {
	FindItem(ctx context.Context, id string) (ItemRecord, error)
	FindItems(ctx context.Context, f ItemFilter) ([]ItemRecord, error)
	CountItems(ctx context.Context, f ItemFilter) (int, error)
	InsertItems(ctx context.Context, items []ItemRecord) error
}

// PreferenceStore provides per-user preference operations keyed by user id.
type PreferenceStore interface {
	FindPreferences(ctx context.Context, userID string) (PreferencesRecord, error)
	// InsertPreferencesIfAbsent stores rec unless a record exists and returns the stored record.
	InsertPreferencesIfAbsent(ctx context.Context, rec PreferencesRecord) (stored PreferencesRecord, created bool, err error)
	// ReplacePreferences upserts rec and reports whether a record already existed.
	ReplacePreferences(ctx context.Context, rec PreferencesRecord) (existed bool, err error)
}
