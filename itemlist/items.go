package itemlist

import (
	"iter"

	"github.com/replistruct/listpos/order"
)

// itemsFrame is one level of an in-order tree walk: the node being
// visited, its sorted children, and how far the walk has progressed
// through both the children and the node's own values.
type itemsFrame[I, V any] struct {
	node      order.NodeHandle
	data      *nodeData[I, V]
	children  []order.NodeHandle
	childIdx  int
	prevInner int
}

// Items returns an in-order traversal of [start, end) as (position,
// contiguous-run) pairs, clipped to that index range. end < 0 means to the
// end of the list. The walk uses an explicit stack rather than recursion,
// and skips any subtree whose total places it entirely outside the
// requested range.
func (l *ItemList[I, V]) Items(start, end int) iter.Seq2[order.Position, I] {
	length := l.Len()
	if end < 0 || end > length {
		end = length
	}
	return func(yield func(order.Position, I) bool) {
		root, ok := l.state[order.RootHandle]
		if !ok || start >= end {
			return
		}

		stack := []*itemsFrame[I, V]{{
			node:     order.RootHandle,
			data:     root,
			children: l.ord.ChildrenOf(order.RootHandle),
		}}
		pos := 0

		for len(stack) > 0 && pos < end {
			f := stack[len(stack)-1]

			var anchor int
			var child order.NodeHandle
			var childData *nodeData[I, V]
			hasChild := false
			for f.childIdx < len(f.children) {
				c := f.children[f.childIdx]
				cd, known := l.state[c]
				if !known {
					f.childIdx++
					continue
				}
				child, childData, hasChild = c, cd, true
				anchor = l.ord.NextInnerIndexOf(c)
				break
			}

			gapEnd := -1
			if hasChild {
				gapEnd = anchor
			}
			runs := f.data.values.PresentRuns(f.prevInner, gapEnd)

			stopped := false
			for _, r := range runs {
				runLen := l.mgr.Length(r.Item)
				if pos+runLen <= start {
					pos += runLen
					continue
				}
				if pos >= end {
					stopped = true
					break
				}
				lo, hi := 0, runLen
				if pos < start {
					lo = start - pos
				}
				if pos+runLen > end {
					hi = end - pos
				}
				bunchID := l.ord.BunchIDOf(f.node)
				if !yield(order.Position{BunchID: bunchID, InnerIndex: r.Index + lo}, l.mgr.Slice(r.Item, lo, hi)) {
					return
				}
				pos += runLen
			}
			if stopped || pos >= end {
				return
			}

			if !hasChild {
				stack = stack[:len(stack)-1]
				continue
			}
			f.prevInner = anchor
			f.childIdx++

			if pos+childData.total <= start {
				pos += childData.total
				continue
			}
			stack = append(stack, &itemsFrame[I, V]{
				node:     child,
				data:     childData,
				children: l.ord.ChildrenOf(child),
			})
		}
	}
}
