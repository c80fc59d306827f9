package listpos

import (
	"iter"

	"github.com/replistruct/listpos/abspos"
	"github.com/replistruct/listpos/itemlist"
	"github.com/replistruct/listpos/order"
)

// AbsList is a List[T] whose positions are handed out as self-contained
// AbsPositions instead of Positions, so a peer that has not yet received
// this replica's BunchMetas can still make sense of them once it does
// (e.g. positions embedded in a document before the edit history that
// produced them arrives).
type AbsList[T any] struct {
	list *List[T]
}

// NewAbsList constructs an empty AbsList, sharing cfg.Order if given.
func NewAbsList[T any](cfg Config) *AbsList[T] {
	return &AbsList[T]{list: NewList[T](cfg)}
}

// Order returns the underlying Order, for sharing with other wrappers.
func (a *AbsList[T]) Order() *order.Order { return a.list.Order() }

// Len returns the number of values in the list.
func (a *AbsList[T]) Len() int { return a.list.Len() }

// Get returns the value at index.
func (a *AbsList[T]) Get(index int) (T, bool) { return a.list.Get(index) }

// Set overwrites the value already present at index.
func (a *AbsList[T]) Set(index int, value T) error { return a.list.Set(index, value) }

// InsertAt inserts values starting at index and returns the absolute
// position of the first inserted value, embedding its whole ancestor
// chain so a peer can decode it without first learning this replica's
// BunchMetas.
func (a *AbsList[T]) InsertAt(index int, values ...T) (abspos.AbsPosition, error) {
	pos, err := a.list.InsertAt(index, values...)
	if err != nil {
		return abspos.AbsPosition{}, err
	}
	return abspos.Encode(a.list.Order(), pos)
}

// DeleteAt removes count values starting at index.
func (a *AbsList[T]) DeleteAt(index, count int) error { return a.list.DeleteAt(index, count) }

// Items yields every (absolute position, value) pair in [start, end).
func (a *AbsList[T]) Items(start, end int) iter.Seq2[abspos.AbsPosition, T] {
	return func(yield func(abspos.AbsPosition, T) bool) {
		for pos, v := range a.list.Items(start, end) {
			ap, err := abspos.Encode(a.list.Order(), pos)
			if err != nil {
				return
			}
			if !yield(ap, v) {
				return
			}
		}
	}
}

// Resolve installs the BunchMetas carried by ap (if not already known)
// and returns the list index it currently occupies.
func (a *AbsList[T]) Resolve(ap abspos.AbsPosition) (int, error) {
	pos, metas, err := abspos.Decode(ap)
	if err != nil {
		return 0, err
	}
	if len(metas) > 0 {
		if err := a.list.Order().AddMetas(metas); err != nil {
			return 0, err
		}
	}
	return a.list.items.IndexOfPosition(pos, itemlist.SearchNone)
}

// Save returns a snapshot of the list's tree metadata and values.
func (a *AbsList[T]) Save() Saved { return a.list.Save() }

// Load replaces the list's contents from a snapshot.
func (a *AbsList[T]) Load(s Saved) error { return a.list.Load(s) }
