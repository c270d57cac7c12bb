package reconcile

import (
	"fmt"
	"sort"

	"github.com/UberPyro/ChannelSorter2/types"
)

// Adjustment shifts one unaffected channel by exactly one slot so the space
// stays dense around a move.
type Adjustment struct {
	ChannelID int64
	Position  int
}

// Plan is the complete outcome of one reposition computation: the moved
// channel's target category and final position, plus every sibling shift
// required to keep the position space dense and ordered.
//
// The shifts must be applied before, or atomically with, the channel's own
// move to avoid transient duplicate positions. Plans are computed fresh per
// call and never persisted.
type Plan struct {
	ChannelID   int64
	CategoryID  int64
	Position    int
	Adjustments []Adjustment
}

// Space models the shared ordinal space of every channel across all project
// categories. It is a local, transient snapshot of the directory service's
// current truth; it holds no durable state.
type Space struct {
	channels []types.Channel
}

// NewSpace builds a space from the flattened channel lists of every project
// category. The input is copied and ordered by position.
//
// Parameters:
//   - channels: All channels sharing one ordinal space, in any order
//
// Returns:
//   - *Space: Snapshot ready for reposition computations
func NewSpace(channels []types.Channel) *Space {
	s := &Space{channels: make([]types.Channel, len(channels))}
	copy(s.channels, channels)
	sort.Slice(s.channels, func(i, j int) bool { return s.channels[i].Position < s.channels[j].Position })

	return s
}

// Len returns the number of channels in the space.
func (s *Space) Len() int { return len(s.channels) }

// Channels returns a position-ordered copy of every channel in the space.
func (s *Space) Channels() []types.Channel {
	out := make([]types.Channel, len(s.channels))
	copy(out, s.channels)

	return out
}

// CategoryChannels returns the channels currently inside one category,
// ordered by position.
func (s *Space) CategoryChannels(categoryID int64) []types.Channel {
	var out []types.Channel
	for _, ch := range s.channels {
		if ch.CategoryID == categoryID {
			out = append(out, ch)
		}
	}

	return out
}

// Lookup finds a channel by id.
//
// Returns:
//   - types.Channel: The channel's current snapshot state
//   - bool: false when the channel is not part of this space
func (s *Space) Lookup(channelID int64) (types.Channel, bool) {
	for _, ch := range s.channels {
		if ch.ID == channelID {
			return ch, true
		}
	}

	return types.Channel{}, false
}

// BasePosition returns the smallest position in the space, or zero for an
// empty space.
func (s *Space) BasePosition() int {
	if len(s.channels) == 0 {
		return 0
	}

	return s.channels[0].Position
}

// NextPosition returns the position one past the last channel in the space,
// or zero for an empty space. Useful as an append anchor.
func (s *Space) NextPosition() int {
	if len(s.channels) == 0 {
		return 0
	}

	return s.channels[len(s.channels)-1].Position + 1
}

// Verify checks that positions form a contiguous, duplicate-free range.
//
// The range may start at a non-zero base: real directory services interleave
// unrelated containers in the same guild-wide numbering, so only the tracked
// slice of the ordinal space has to be dense.
//
// Returns:
//   - error: types.ErrInconsistentPositions describing the first violation
func (s *Space) Verify() error {
	for i := 1; i < len(s.channels); i++ {
		prev, cur := s.channels[i-1], s.channels[i]
		if cur.Position == prev.Position {
			return fmt.Errorf("%w: channels %d and %d share position %d",
				types.ErrInconsistentPositions, prev.ID, cur.ID, cur.Position)
		}
		if cur.Position != prev.Position+1 {
			return fmt.Errorf("%w: gap between positions %d and %d",
				types.ErrInconsistentPositions, prev.Position, cur.Position)
		}
	}

	return nil
}

// RankByName computes the desired rank of a channel among its prospective
// siblings: insert before the first sibling whose name sorts after the
// channel's name, else append at the end. Siblings with an identical name
// keep their place; the channel slots in after them.
//
// Parameters:
//   - name: Display name of the channel being placed
//   - siblings: Prospective siblings, sorted by name
//
// Returns:
//   - int: Rank in [0, len(siblings)]
func RankByName(name string, siblings []types.Channel) int {
	rank := 0
	for _, sib := range siblings {
		if sib.Name > name {
			break
		}
		rank++
	}

	return rank
}

// Reposition computes the move plan placing ch at desiredRank among the
// channels of categoryID.
//
// The desired rank counts the target category's channels excluding ch
// itself. When the target category is currently empty, anchor supplies the
// position to use (conventionally one past the end of the preceding
// category); its exact source is the caller's concern.
//
// The returned plan shifts every channel strictly between the old and new
// position by exactly one slot and touches nothing else, so after applying
// it the space remains dense and every unaffected pair keeps its relative
// order. Repositioning a channel to the rank it already occupies yields a
// plan with no adjustments and the channel's current position.
//
// Returns:
//   - Plan: Target placement plus required sibling adjustments
//   - error: types.ErrInvalidRank or types.ErrInconsistentPositions
func (s *Space) Reposition(ch types.Channel, categoryID int64, desiredRank int, anchor int) (Plan, error) {
	siblings := s.siblingsOf(ch.ID, categoryID)
	if desiredRank < 0 || desiredRank > len(siblings) {
		return Plan{}, fmt.Errorf("%w: rank %d over %d siblings", types.ErrInvalidRank, desiredRank, len(siblings))
	}
	if err := checkSiblings(siblings); err != nil {
		return Plan{}, err
	}

	// The raw slot is the position of the sibling currently occupying the
	// desired rank, one past the last sibling when appending, or the anchor
	// when the category is empty.
	var slot int
	switch {
	case desiredRank < len(siblings):
		slot = siblings[desiredRank].Position
	case len(siblings) > 0:
		slot = siblings[len(siblings)-1].Position + 1
	default:
		slot = anchor
	}

	plan := Plan{ChannelID: ch.ID, CategoryID: categoryID}

	current, present := s.Lookup(ch.ID)
	if !present {
		// New to the space: open a one-slot gap at the raw slot.
		plan.Position = slot
		for _, other := range s.channels {
			if other.Position >= slot {
				plan.Adjustments = append(plan.Adjustments, Adjustment{ChannelID: other.ID, Position: other.Position + 1})
			}
		}

		return plan, nil
	}

	oldPos := current.Position
	switch {
	case oldPos < slot:
		// Moving down: the channel's own departure shifts everything after
		// it up a slot, so it lands one before the raw slot, and the
		// channels it passes over close the gap left behind.
		plan.Position = slot - 1
		for _, other := range s.channels {
			if other.ID != ch.ID && other.Position > oldPos && other.Position <= plan.Position {
				plan.Adjustments = append(plan.Adjustments, Adjustment{ChannelID: other.ID, Position: other.Position - 1})
			}
		}
	case oldPos > slot:
		// Moving up: open a gap at the raw slot.
		plan.Position = slot
		for _, other := range s.channels {
			if other.ID != ch.ID && other.Position >= slot && other.Position < oldPos {
				plan.Adjustments = append(plan.Adjustments, Adjustment{ChannelID: other.ID, Position: other.Position + 1})
			}
		}
	default:
		// Already in place; only the category may change.
		plan.Position = oldPos
	}

	return plan, nil
}

// Apply folds a plan back into the local model so successive reposition
// computations during one run see the evolving state.
func (s *Space) Apply(plan Plan) {
	shifted := make(map[int64]int, len(plan.Adjustments))
	for _, adj := range plan.Adjustments {
		shifted[adj.ChannelID] = adj.Position
	}

	found := false
	for i := range s.channels {
		ch := &s.channels[i]
		if ch.ID == plan.ChannelID {
			ch.Position = plan.Position
			ch.CategoryID = plan.CategoryID
			found = true

			continue
		}
		if pos, ok := shifted[ch.ID]; ok {
			ch.Position = pos
		}
	}
	if !found {
		s.channels = append(s.channels, types.Channel{
			ID:         plan.ChannelID,
			Position:   plan.Position,
			CategoryID: plan.CategoryID,
		})
	}

	sort.Slice(s.channels, func(i, j int) bool { return s.channels[i].Position < s.channels[j].Position })
}

// siblingsOf returns the channels of categoryID excluding the given channel,
// ordered by position.
func (s *Space) siblingsOf(channelID, categoryID int64) []types.Channel {
	var siblings []types.Channel
	for _, ch := range s.channels {
		if ch.CategoryID == categoryID && ch.ID != channelID {
			siblings = append(siblings, ch)
		}
	}

	return siblings
}

// checkSiblings is the cheap per-call consistency guard: sibling positions
// must be strictly increasing. A full density Verify on every call would cost
// more than it is worth; callers run it once per batch instead.
func checkSiblings(siblings []types.Channel) error {
	for i := 1; i < len(siblings); i++ {
		if siblings[i].Position <= siblings[i-1].Position {
			return fmt.Errorf("%w: sibling %d at position %d not after sibling %d at %d",
				types.ErrInconsistentPositions,
				siblings[i].ID, siblings[i].Position,
				siblings[i-1].ID, siblings[i-1].Position)
		}
	}

	return nil
}
