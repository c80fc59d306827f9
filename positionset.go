package listpos

import (
	"iter"

	"github.com/replistruct/listpos/order"
)

// PositionSet is a set of Positions with list-order traversal,
// backed by the same presence-only machinery as Outline. Membership is
// tested by Position rather than by index, which suits use cases like
// tombstone marking or selection tracking where callers think in terms
// of stable positions, not offsets.
type PositionSet struct {
	outline *Outline
}

// NewPositionSet constructs an empty PositionSet, sharing cfg.Order if
// given.
func NewPositionSet(cfg Config) *PositionSet {
	return &PositionSet{outline: NewOutline(cfg)}
}

// Order returns the underlying Order, for sharing with other wrappers.
func (s *PositionSet) Order() *order.Order { return s.outline.Order() }

// Len returns the number of members.
func (s *PositionSet) Len() int { return s.outline.Len() }

// Has reports whether pos is a member.
func (s *PositionSet) Has(pos order.Position) (bool, error) {
	index, err := s.outline.IndexOf(Cursor{Position: pos, Mode: Bound})
	if err != nil {
		return false, nil
	}
	return s.outline.Has(index), nil
}

// InsertAfter adds count new members, ordered immediately after the
// member currently at list index index (index -1 inserts at the start),
// and returns the position of the first one added.
func (s *PositionSet) InsertAfter(index, count int) (order.Position, error) {
	return s.outline.InsertAt(index+1, count)
}

// Remove deletes pos from the set, if present.
func (s *PositionSet) Remove(pos order.Position) error {
	index, err := s.outline.IndexOf(Cursor{Position: pos, Mode: Bound})
	if err != nil {
		return nil
	}
	return s.outline.DeleteAt(index, 1)
}

// Positions yields every member in list order.
func (s *PositionSet) Positions() iter.Seq[order.Position] {
	return s.outline.Positions(0, -1)
}

// Save returns a snapshot of the set's tree metadata and membership.
func (s *PositionSet) Save() Saved { return s.outline.Save() }

// Load replaces the set's contents from a snapshot.
func (s *PositionSet) Load(saved Saved) error { return s.outline.Load(saved) }
