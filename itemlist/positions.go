package itemlist

import (
	"github.com/replistruct/listpos/order"
)

// SearchDir controls IndexOfPosition's behavior when the queried position
// is absent.
type SearchDir int

const (
	// SearchNone requires pos to be present; IndexOfPosition errors otherwise.
	SearchNone SearchDir = iota
	// SearchLeft returns the index of the nearest present value before pos.
	SearchLeft
	// SearchRight returns the index the next present value after pos would have.
	SearchRight
)

// beforeCountOf returns the count of present values strictly before h in
// list order, using (and refreshing) the single-slot cache.
func (l *ItemList[I, V]) beforeCountOf(h order.NodeHandle) int {
	if l.hasCached && l.cachedNode == h {
		return l.cachedBeforeNode
	}
	count := l.computeBeforeCount(h)
	l.cachedNode = h
	l.cachedBeforeNode = count
	l.hasCached = true
	return count
}

func (l *ItemList[I, V]) computeBeforeCount(h order.NodeHandle) int {
	total := 0
	cur := h
	for {
		parent, ok := l.ord.ParentOf(cur)
		if !ok {
			return total
		}
		if pd, known := l.state[parent]; known {
			anchor := l.ord.NextInnerIndexOf(cur)
			_, count := pd.values.CountPresentBefore(anchor)
			total += count
		}
		for _, sib := range l.ord.ChildrenOf(parent) {
			if sib == cur {
				break
			}
			if sd, known := l.state[sib]; known {
				total += sd.total
			}
		}
		cur = parent
	}
}

// childTotalBefore sums the totals of h's known children anchored at or
// before innerIndex.
func (l *ItemList[I, V]) childTotalBefore(h order.NodeHandle, innerIndex int) int {
	total := 0
	for _, c := range l.ord.ChildrenOf(h) {
		cd, known := l.state[c]
		if !known {
			continue
		}
		if l.ord.NextInnerIndexOf(c) <= innerIndex {
			total += cd.total
		}
	}
	return total
}

// IndexOfPosition converts pos to a list index. If pos is absent, dir
// controls the result: SearchNone errors, SearchLeft returns the index of
// the nearest present value before pos, SearchRight returns the index the
// next present value would have.
func (l *ItemList[I, V]) IndexOfPosition(pos order.Position, dir SearchDir) (int, error) {
	h, err := l.ord.HandleOf(pos)
	if err != nil {
		return 0, err
	}

	before := l.beforeCountOf(h)
	isPresent := false
	presentBeforeInBunch := 0
	if d, ok := l.state[h]; ok {
		isPresent, presentBeforeInBunch = d.values.CountPresentBefore(pos.InnerIndex)
	}
	idx := before + presentBeforeInBunch + l.childTotalBefore(h, pos.InnerIndex)

	if isPresent {
		return idx, nil
	}
	switch dir {
	case SearchLeft:
		return idx - 1, nil
	case SearchRight:
		return idx, nil
	default:
		return 0, positionErr(ErrRangeError, pos, "position is absent")
	}
}

// PositionAt converts a list index to the position holding its value.
func (l *ItemList[I, V]) PositionAt(index int) (order.Position, error) {
	length := l.Len()
	if index < 0 || index >= length {
		return order.Position{}, rangeErr("PositionAt", index, length)
	}
	return l.positionAtNode(order.RootHandle, index)
}

// positionAtNode descends from h toward the node holding list index
// remaining (counted from h's own start). The descent is a loop, not
// recursion: each step either returns or moves h to exactly one child,
// so an explicit loop variable carries the walk across unbounded tree
// depth instead of growing the call stack one frame per level.
func (l *ItemList[I, V]) positionAtNode(h order.NodeHandle, remaining int) (order.Position, error) {
	for {
		d := l.state[h]
		prevInner := 0
		consumedOwn := 0
		next := order.NodeHandle(0)
		descending := false

		for _, c := range l.ord.ChildrenOf(h) {
			cd, known := l.state[c]
			if !known {
				continue
			}
			anchor := l.ord.NextInnerIndexOf(c)
			_, ownBefore := d.values.CountPresentBefore(anchor)
			ownHere := ownBefore - consumedOwn

			if remaining < ownHere {
				innerIdx, err := d.values.FindNthPresent(prevInner, remaining)
				if err != nil {
					return order.Position{}, err
				}
				return order.Position{BunchID: l.ord.BunchIDOf(h), InnerIndex: innerIdx}, nil
			}
			remaining -= ownHere
			consumedOwn = ownBefore

			if remaining < cd.total {
				next, descending = c, true
				break
			}
			remaining -= cd.total
			prevInner = anchor
		}

		if descending {
			h = next
			continue
		}

		innerIdx, err := d.values.FindNthPresent(prevInner, remaining)
		if err != nil {
			return order.Position{}, err
		}
		return order.Position{BunchID: l.ord.BunchIDOf(h), InnerIndex: innerIdx}, nil
	}
}
