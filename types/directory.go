package types

import "context"

// Directory is the remote directory service owning categories and channels.
//
// The sorting core consumes and produces plain data; all mutation of the real
// category/channel layout goes through this interface. Implementations are
// expected to keep the shared position space dense on their side when a move
// is applied (the core computes plans under that assumption).
//
// All methods accept a context for cancellation and per-call deadlines.
type Directory interface {
	// ListCategories returns every category known to the directory service,
	// in the service's own order.
	ListCategories(ctx context.Context) ([]Category, error)

	// ListChannels returns the channels currently inside the category,
	// ordered by position.
	ListChannels(ctx context.Context, categoryID int64) ([]Channel, error)

	// MoveChannel places a channel into a category at the given position.
	MoveChannel(ctx context.Context, channelID, categoryID int64, position int) error

	// RenameCategory changes a category's display label.
	RenameCategory(ctx context.Context, categoryID int64, name string) error

	// CreateChannel creates a new channel inside a category at the given
	// position and returns it.
	CreateChannel(ctx context.Context, name string, categoryID int64, position int) (Channel, error)
}

// Registry persists which categories participate in sorting.
//
// The only durable state outside the directory service is this flat list of
// category identifiers; everything else is re-derived from the directory's
// current truth on each run.
type Registry interface {
	// IDs returns the registered project category ids, in registration order.
	IDs(ctx context.Context) ([]int64, error)

	// SetIDs replaces the registered project category ids.
	SetIDs(ctx context.Context, ids []int64) error
}
