package itemlist

import (
	"fmt"

	"github.com/replistruct/listpos/order"
	"github.com/replistruct/listpos/sparseitems"
)

// SavedState maps a bunch ID to its values' serialized SparseItems form,
// for every bunch whose values are non-empty.
type SavedState map[string][]any

// SaveState emits every bunch's non-empty values, keyed by bunch ID.
func (l *ItemList[I, V]) SaveState() SavedState {
	out := make(SavedState)
	for h, d := range l.state {
		if d.values.Size() == 0 {
			continue
		}
		out[l.ord.BunchIDOf(h)] = d.values.Serialize()
	}
	return out
}

// LoadState replaces this ItemList's contents with state. Every bunch ID
// named in state must already be known to the underlying Order (deliver
// its BunchMeta first). On error, the ItemList is left empty.
func (l *ItemList[I, V]) LoadState(state SavedState) error {
	l.state = make(map[order.NodeHandle]*nodeData[I, V])
	l.hasCached = false

	type loaded struct {
		handle order.NodeHandle
		values *sparseitems.SparseItems[I, V]
	}
	entries := make([]loaded, 0, len(state))
	for bunchID, raw := range state {
		h, ok := l.ord.HandleForBunch(bunchID)
		if !ok {
			return fmt.Errorf("%w: bunch %q not known to order", ErrLoadFailed, bunchID)
		}
		values, err := sparseitems.Deserialize[I, V](l.mgr, raw)
		if err != nil {
			l.state = make(map[order.NodeHandle]*nodeData[I, V])
			return fmt.Errorf("%w: bunch %q: %v", ErrLoadFailed, bunchID, err)
		}
		entries = append(entries, loaded{h, values})
	}

	for _, e := range entries {
		d := l.ensureData(e.handle)
		d.values = e.values
	}

	l.rebuildAggregates(order.RootHandle)
	return nil
}

// rebuildAggregates recomputes total and parentValuesBefore bottom-up for
// the subtree rooted at h, pruning entries whose total is zero.
//
// This walks with an explicit stack rather than recursing, since bunch
// trees have unbounded depth (unlike the teacher's fixed 8-bit stride):
// an iterative preorder pass records visit order, then processing that
// order in reverse guarantees every node's children are finalized before
// the node itself, without ever growing the Go call stack with tree depth.
func (l *ItemList[I, V]) rebuildAggregates(h order.NodeHandle) {
	var visited []order.NodeHandle
	stack := []order.NodeHandle{h}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visited = append(visited, cur)
		stack = append(stack, l.ord.ChildrenOf(cur)...)
	}

	totals := make(map[order.NodeHandle]int, len(visited))
	for i := len(visited) - 1; i >= 0; i-- {
		n := visited[i]
		total := 0
		if d, hasOwn := l.state[n]; hasOwn {
			total = d.values.Size()
		}
		for _, c := range l.ord.ChildrenOf(n) {
			total += totals[c]
		}
		totals[n] = total

		if total == 0 {
			delete(l.state, n)
			continue
		}
		d := l.ensureData(n)
		d.total = total
		l.refreshChildrenBefore(n)
	}
}
