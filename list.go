package listpos

import (
	"iter"

	"github.com/replistruct/listpos/itemlist"
	"github.com/replistruct/listpos/order"
)

// List is a replicated, ordered sequence of values of type T.
type List[T any] struct {
	ord   *order.Order
	items *itemlist.ItemList[[]T, T]
}

// NewList constructs an empty List, sharing cfg.Order if given.
func NewList[T any](cfg Config) *List[T] {
	ord := cfg.resolveOrder()
	return &List[T]{
		ord:   ord,
		items: itemlist.New(itemlist.Config[[]T, T]{Order: ord, Manager: valuesManager[T]{}, Logger: cfg.Logger}),
	}
}

// Order returns the underlying Order, for sharing with other wrappers.
func (l *List[T]) Order() *order.Order { return l.ord }

// Len returns the number of values in the list.
func (l *List[T]) Len() int { return l.items.Len() }

// Get returns the value at index.
func (l *List[T]) Get(index int) (T, bool) { return l.items.Get(index) }

// Set overwrites the value already present at index, without changing the
// list's shape.
func (l *List[T]) Set(index int, value T) error {
	pos, err := l.items.PositionAt(index)
	if err != nil {
		return err
	}
	return l.items.SetAt(pos, value)
}

// InsertAt inserts values starting at index, shifting subsequent values
// right. index == Len() appends. It returns the position of the first
// inserted value.
func (l *List[T]) InsertAt(index int, values ...T) (order.Position, error) {
	if len(values) == 0 {
		return order.Position{}, itemlist.ErrEmptyBulk
	}
	pos, _, err := l.items.InsertAt(index, values)
	return pos, err
}

// DeleteAt removes count values starting at index.
func (l *List[T]) DeleteAt(index, count int) error {
	return l.items.DeleteAt(index, count)
}

// Items yields every (position, value) pair in [start, end). end < 0
// means to the end of the list.
func (l *List[T]) Items(start, end int) iter.Seq2[order.Position, T] {
	return func(yield func(order.Position, T) bool) {
		for pos, run := range l.items.Items(start, end) {
			for i, v := range run {
				if !yield(order.Position{BunchID: pos.BunchID, InnerIndex: pos.InnerIndex + i}, v) {
					return
				}
			}
		}
	}
}

// Positions yields every position holding a value in [start, end).
func (l *List[T]) Positions(start, end int) iter.Seq[order.Position] {
	return func(yield func(order.Position) bool) {
		for pos := range l.Items(start, end) {
			if !yield(pos) {
				return
			}
		}
	}
}

// Values yields every value in [start, end), in list order.
func (l *List[T]) Values(start, end int) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range l.Items(start, end) {
			if !yield(v) {
				return
			}
		}
	}
}

// Cursor returns a Cursor bound to pos with the given binding mode.
func (l *List[T]) Cursor(pos order.Position, mode BindingMode) Cursor {
	return Cursor{Position: pos, Mode: mode}
}

// IndexOf resolves a Cursor to a list index according to its binding mode.
func (l *List[T]) IndexOf(c Cursor) (int, error) {
	switch c.Mode {
	case StickyLeft:
		return l.items.IndexOfPosition(c.Position, itemlist.SearchLeft)
	case StickyRight:
		return l.items.IndexOfPosition(c.Position, itemlist.SearchRight)
	default:
		return l.items.IndexOfPosition(c.Position, itemlist.SearchNone)
	}
}

// Save returns a snapshot of the list's tree metadata and values.
func (l *List[T]) Save() Saved {
	return Saved{Order: l.ord.SaveState(), Items: l.items.SaveState()}
}

// Load replaces the list's contents from a snapshot. Order metadata is
// merged first so every bunch Items references is already known.
func (l *List[T]) Load(s Saved) error {
	if err := l.ord.LoadState(s.Order); err != nil {
		return err
	}
	return l.items.LoadState(s.Items)
}
