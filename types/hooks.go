package types

import "context"

// Hooks defines callbacks for Sorter lifecycle events.
//
// All hooks are optional and are invoked synchronously between directory
// mutations, so they see a consistent view of the run in progress. Hook
// errors are logged but do not abort the run.
//
// Best practices for hook implementation:
//   - Complete quickly (< 1 second recommended)
//   - Respect context cancellation
//   - Make hooks idempotent (a retried run may call them again)
type Hooks struct {
	// OnCategoryRenamed is called after a category label was changed.
	OnCategoryRenamed func(ctx context.Context, categoryID int64, oldName, newName string) error

	// OnChannelMoved is called after a channel was moved to a new category
	// or position. fromCategory is zero when the channel was newly placed.
	OnChannelMoved func(ctx context.Context, ch Channel, fromCategory int64) error

	// OnError is called when a recoverable error occurs during a run.
	OnError func(ctx context.Context, err error) error
}
