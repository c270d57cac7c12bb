package registry

import (
	"context"
	"sync"

	"github.com/UberPyro/ChannelSorter2/types"
)

// Static is a category registry with an in-memory id list.
type Static struct {
	mu  sync.RWMutex
	ids []int64
}

var _ types.Registry = (*Static)(nil)

// NewStatic creates a registry holding a fixed list of category ids.
//
// Useful for testing and for embedders that resolve the category set through
// their own configuration.
//
// Parameters:
//   - ids: Initial category ids, in sorting order
//
// Returns:
//   - *Static: Initialized registry
func NewStatic(ids []int64) *Static {
	s := &Static{ids: make([]int64, len(ids))}
	copy(s.ids, ids)

	return s
}

// IDs returns the registered category ids.
func (s *Static) IDs(_ context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]int64, len(s.ids))
	copy(out, s.ids)

	return out, nil
}

// SetIDs replaces the registered category ids.
func (s *Static) SetIDs(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids = make([]int64, len(ids))
	copy(s.ids, ids)

	return nil
}
