package itemlist

import (
	"github.com/replistruct/listpos/order"
	"github.com/replistruct/listpos/sparseitems"
)

// InsertAt mints count := Manager.Length(item) new positions starting at
// list index, stores item there, and returns the first minted position
// plus, if a new bunch had to be created, its BunchMeta. index == Len() is
// always allowed (append).
func (l *ItemList[I, V]) InsertAt(index int, item I) (order.Position, *order.BunchMeta, error) {
	length := l.Len()
	if index < 0 || index > length {
		return order.Position{}, nil, rangeErr("InsertAt", index, length)
	}
	count := l.mgr.Length(item)
	if count == 0 {
		return order.Position{}, nil, ErrEmptyBulk
	}

	prevPos, err := l.positionBefore(index)
	if err != nil {
		return order.Position{}, nil, err
	}
	nextPos, err := l.positionAtOrMax(index)
	if err != nil {
		return order.Position{}, nil, err
	}

	startPos, meta, err := l.ord.CreatePositions(prevPos, nextPos, count)
	if err != nil {
		return order.Position{}, nil, err
	}

	h, err := l.ord.HandleOf(startPos)
	if err != nil {
		return order.Position{}, nil, err
	}
	l.mutateNode(h, func(values *sparseitems.SparseItems[I, V]) int {
		replaced := values.Set(startPos.InnerIndex, item)
		return count - replaced.Size()
	})

	return startPos, meta, nil
}

// positionBefore returns the position immediately before list index (or
// MinPosition at the start of the list).
func (l *ItemList[I, V]) positionBefore(index int) (order.Position, error) {
	if index == 0 {
		return order.MinPosition, nil
	}
	return l.PositionAt(index - 1)
}

// positionAtOrMax returns the position currently at list index (or
// MaxPosition at the end of the list).
func (l *ItemList[I, V]) positionAtOrMax(index int) (order.Position, error) {
	if index == l.Len() {
		return order.MaxPosition, nil
	}
	return l.PositionAt(index)
}

// DeleteAt marks count values starting at list index as deleted.
func (l *ItemList[I, V]) DeleteAt(index, count int) error {
	length := l.Len()
	if index < 0 || count < 0 || index+count > length {
		return rangeErr("DeleteAt", index, length)
	}
	if count == 0 {
		return nil
	}

	type span struct {
		pos    order.Position
		length int
	}
	var spans []span
	for pos, item := range l.Items(index, index+count) {
		spans = append(spans, span{pos, l.mgr.Length(item)})
	}

	for _, sp := range spans {
		h, err := l.ord.HandleOf(sp.pos)
		if err != nil {
			return err
		}
		l.mutateNode(h, func(values *sparseitems.SparseItems[I, V]) int {
			replaced := values.Delete(sp.pos.InnerIndex, sp.length)
			return -replaced.Size()
		})
	}
	return nil
}
