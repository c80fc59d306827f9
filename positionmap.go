package listpos

import (
	"iter"

	"github.com/replistruct/listpos/order"
)

// PositionMap is a map-like structure keyed by Position rather than by
// index, backed by a List[T] into which each entry is inserted as a single
// value (adjacent entries may share a stored run). It suits use cases like
// per-character annotations or per-item metadata that must stay attached
// to a position as the surrounding sequence is edited.
type PositionMap[T any] struct {
	list *List[T]
}

// NewPositionMap constructs an empty PositionMap, sharing cfg.Order if
// given.
func NewPositionMap[T any](cfg Config) *PositionMap[T] {
	return &PositionMap[T]{list: NewList[T](cfg)}
}

// Order returns the underlying Order, for sharing with other wrappers.
func (m *PositionMap[T]) Order() *order.Order { return m.list.Order() }

// Len returns the number of entries.
func (m *PositionMap[T]) Len() int { return m.list.Len() }

// Get returns the value stored at pos, if any.
func (m *PositionMap[T]) Get(pos order.Position) (T, bool) {
	index, err := m.list.IndexOf(Cursor{Position: pos, Mode: Bound})
	if err != nil {
		var zero T
		return zero, false
	}
	return m.list.Get(index)
}

// PutAfter inserts value as a new entry, ordered immediately after the
// entry currently at list index index (index -1 inserts at the start),
// and returns the new entry's position.
func (m *PositionMap[T]) PutAfter(index int, value T) (order.Position, error) {
	return m.list.InsertAt(index+1, value)
}

// Set overwrites the value already stored at pos.
func (m *PositionMap[T]) Set(pos order.Position, value T) error {
	index, err := m.list.IndexOf(Cursor{Position: pos, Mode: Bound})
	if err != nil {
		return err
	}
	return m.list.Set(index, value)
}

// Delete removes the entry at pos, if present.
func (m *PositionMap[T]) Delete(pos order.Position) error {
	index, err := m.list.IndexOf(Cursor{Position: pos, Mode: Bound})
	if err != nil {
		return nil
	}
	return m.list.DeleteAt(index, 1)
}

// Items yields every (position, value) pair in list order.
func (m *PositionMap[T]) Items() iter.Seq2[order.Position, T] {
	return m.list.Items(0, -1)
}

// Save returns a snapshot of the map's tree metadata and entries.
func (m *PositionMap[T]) Save() Saved { return m.list.Save() }

// Load replaces the map's contents from a snapshot.
func (m *PositionMap[T]) Load(s Saved) error { return m.list.Load(s) }
