package directory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/UberPyro/ChannelSorter2/types"
)

// Memory is an in-process directory service.
//
// It mimics the position semantics of a real chat platform: each move is a
// remove-then-insert over the shared ordinal space, so every other channel's
// position stays dense without the caller spelling out the shifts. That makes
// Memory a faithful collaborator for exercising move plans end to end.
type Memory struct {
	mu         sync.Mutex
	categories []types.Category
	channels   []types.Channel
	nextID     int64
}

var _ types.Directory = (*Memory)(nil)

// NewMemory creates an empty in-memory directory.
func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

// AddCategory registers a category and returns it. Test/setup helper.
func (m *Memory) AddCategory(name string) types.Category {
	m.mu.Lock()
	defer m.mu.Unlock()

	cat := types.Category{ID: m.nextID, Name: name}
	m.nextID++
	m.categories = append(m.categories, cat)

	return cat
}

// AddChannel places a channel at the end of the shared position space inside
// the given category. Test/setup helper.
func (m *Memory) AddChannel(name string, categoryID int64) types.Channel {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := types.Channel{ID: m.nextID, Name: name, Position: len(m.channels), CategoryID: categoryID}
	m.nextID++
	m.channels = append(m.channels, ch)

	return ch
}

// ListCategories returns every category in registration order.
func (m *Memory) ListCategories(_ context.Context) ([]types.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.Category, len(m.categories))
	copy(out, m.categories)

	return out, nil
}

// ListChannels returns the channels of one category ordered by position.
func (m *Memory) ListChannels(_ context.Context, categoryID int64) ([]types.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.findCategory(categoryID); !ok {
		return nil, fmt.Errorf("%w: %d", types.ErrUnknownCategory, categoryID)
	}

	var out []types.Channel
	for _, ch := range m.channels {
		if ch.CategoryID == categoryID {
			out = append(out, ch)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })

	return out, nil
}

// MoveChannel places a channel into a category at the given position,
// renumbering every other channel to keep the space dense.
func (m *Memory) MoveChannel(_ context.Context, channelID, categoryID int64, position int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.findCategory(categoryID); !ok {
		return fmt.Errorf("%w: %d", types.ErrUnknownCategory, categoryID)
	}
	idx := m.findChannel(channelID)
	if idx < 0 {
		return fmt.Errorf("%w: %d", types.ErrUnknownChannel, channelID)
	}

	// Remove from the old slot, then insert at the requested one.
	oldPos := m.channels[idx].Position
	for i := range m.channels {
		if m.channels[i].Position > oldPos {
			m.channels[i].Position--
		}
	}
	for i := range m.channels {
		if i != idx && m.channels[i].Position >= position {
			m.channels[i].Position++
		}
	}
	m.channels[idx].Position = position
	m.channels[idx].CategoryID = categoryID

	return nil
}

// RenameCategory changes a category label.
func (m *Memory) RenameCategory(_ context.Context, categoryID int64, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.categories {
		if m.categories[i].ID == categoryID {
			m.categories[i].Name = name

			return nil
		}
	}

	return fmt.Errorf("%w: %d", types.ErrUnknownCategory, categoryID)
}

// CreateChannel creates a channel inside a category at the given position,
// shifting later channels to make room.
func (m *Memory) CreateChannel(_ context.Context, name string, categoryID int64, position int) (types.Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.findCategory(categoryID); !ok {
		return types.Channel{}, fmt.Errorf("%w: %d", types.ErrUnknownCategory, categoryID)
	}

	for i := range m.channels {
		if m.channels[i].Position >= position {
			m.channels[i].Position++
		}
	}
	ch := types.Channel{ID: m.nextID, Name: name, Position: position, CategoryID: categoryID}
	m.nextID++
	m.channels = append(m.channels, ch)

	return ch, nil
}

// RenameChannel changes a channel's display name in place, without touching
// positions. Test/setup helper mimicking a platform-side rename.
func (m *Memory) RenameChannel(channelID int64, name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.findChannel(channelID)
	if idx < 0 {
		return false
	}
	m.channels[idx].Name = name

	return true
}

// Channel returns a channel snapshot by id. Test helper.
func (m *Memory) Channel(channelID int64) (types.Channel, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := m.findChannel(channelID)
	if idx < 0 {
		return types.Channel{}, false
	}

	return m.channels[idx], true
}

// AllChannels returns every channel ordered by position. Test helper.
func (m *Memory) AllChannels() []types.Channel {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]types.Channel, len(m.channels))
	copy(out, m.channels)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })

	return out
}

func (m *Memory) findCategory(id int64) (types.Category, bool) {
	for _, cat := range m.categories {
		if cat.ID == id {
			return cat, true
		}
	}

	return types.Category{}, false
}

func (m *Memory) findChannel(id int64) int {
	for i, ch := range m.channels {
		if ch.ID == id {
			return i
		}
	}

	return -1
}
