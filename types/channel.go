package types

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Channel represents an orderable, positionable chat channel.
//
// A channel belongs to exactly one category at a time. Its Position is a
// dense, zero-based ordinal that is unique across every category sharing the
// same position space, not merely within its own category: moving a channel
// in one category shifts the positions of channels in other categories too.
type Channel struct {
	// ID is the directory service's opaque identifier for the channel.
	ID int64 `json:"id"`

	// Name is the display name used for lexicographic ordering.
	Name string `json:"name"`

	// Position is the channel's ordinal in the shared position space.
	Position int `json:"position"`

	// CategoryID identifies the category currently holding the channel.
	CategoryID int64 `json:"categoryId"`
}

// Compare orders channels by display name, breaking ties by current position
// so that equally named channels keep a stable relative order.
//
// Returns:
//   - int: -1 if c sorts before d, 0 if equal, +1 if c sorts after d
func (c Channel) Compare(d Channel) int {
	if r := strings.Compare(c.Name, d.Name); r != 0 {
		return r
	}
	switch {
	case c.Position < d.Position:
		return -1
	case c.Position > d.Position:
		return 1
	}

	return 0
}

// FirstLetter returns the uppercased leading rune of the channel name.
//
// The leading rune identifies the weight bucket the channel contributes to
// during balanced partitioning. An empty name yields rune 0, which forms its
// own bucket sorting before every letter.
func (c Channel) FirstLetter() rune {
	if c.Name == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.Name)

	return unicode.ToUpper(r)
}

// Category represents an ordered group of channels.
//
// Categories participating in sorting are tracked by a Registry; the set of
// channels inside a category is owned by the directory service and re-read on
// every sorting run.
type Category struct {
	// ID is the directory service's opaque identifier for the category.
	ID int64 `json:"id"`

	// Name is the human-readable category label (e.g. "Projects A-D").
	Name string `json:"name"`
}
