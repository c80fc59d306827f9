// Package itemlist composes an order.Order with per-bunch sparse storage
// and cached tree aggregates, giving O(depth) conversion between list
// indexes and positions instead of a linear scan over the whole sequence.
package itemlist

import (
	"go.uber.org/zap"

	"github.com/replistruct/listpos/order"
	"github.com/replistruct/listpos/sparseitems"
)

// nodeData is the per-bunch aggregate state ItemList keeps, present only
// for nodes whose subtree holds at least one value.
type nodeData[I, V any] struct {
	total              int
	parentValuesBefore int
	values             *sparseitems.SparseItems[I, V]
}

// Config configures an ItemList. Order and Manager are required; the zero
// value of everything else is ready to use.
type Config[I, V any] struct {
	Order   *order.Order
	Manager sparseitems.ItemManager[I, V]
	Logger  *zap.Logger
}

// ItemList maps list indexes to positions (and back) over the tree an
// Order maintains, storing a value of type V per index via runs of type I.
// The zero value is not usable; construct with New.
type ItemList[I, V any] struct {
	ord *order.Order
	mgr sparseitems.ItemManager[I, V]
	log *zap.Logger

	state map[order.NodeHandle]*nodeData[I, V]

	hasCached        bool
	cachedNode       order.NodeHandle
	cachedBeforeNode int
}

// New constructs an empty ItemList over cfg.Order.
func New[I, V any](cfg Config[I, V]) *ItemList[I, V] {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &ItemList[I, V]{
		ord:   cfg.Order,
		mgr:   cfg.Manager,
		log:   log.Named("itemlist"),
		state: make(map[order.NodeHandle]*nodeData[I, V]),
	}
}

// Len returns the total number of present values in the list.
func (l *ItemList[I, V]) Len() int {
	if d, ok := l.state[order.RootHandle]; ok {
		return d.total
	}
	return 0
}

func (l *ItemList[I, V]) ensureData(h order.NodeHandle) *nodeData[I, V] {
	d, ok := l.state[h]
	if !ok {
		d = &nodeData[I, V]{values: sparseitems.New[I, V](l.mgr)}
		l.state[h] = d
	}
	return d
}

// mutateNode applies mutate to node h's own values, then propagates the
// resulting present-count delta up to the root (creating or dropping
// entries as totals cross zero) and refreshes the parentValuesBefore of
// h's known children.
func (l *ItemList[I, V]) mutateNode(h order.NodeHandle, mutate func(values *sparseitems.SparseItems[I, V]) int) {
	d := l.ensureData(h)
	delta := mutate(d.values)
	if delta != 0 {
		d.total += delta
		if d.total == 0 {
			delete(l.state, h)
		}
		if delta > 0 {
			l.log.Debug("slots turned present", zap.String("bunchID", l.ord.BunchIDOf(h)), zap.Int("count", delta))
		} else {
			l.log.Debug("slots turned absent", zap.String("bunchID", l.ord.BunchIDOf(h)), zap.Int("count", -delta))
		}
		l.propagateDelta(h, delta)
	}
	if _, ok := l.state[h]; ok {
		l.refreshChildrenBefore(h)
	}
	l.invalidateCache(h)
}

func (l *ItemList[I, V]) propagateDelta(h order.NodeHandle, delta int) {
	cur := h
	for {
		parent, ok := l.ord.ParentOf(cur)
		if !ok {
			return
		}
		d := l.ensureData(parent)
		d.total += delta
		if d.total == 0 {
			delete(l.state, parent)
		}
		cur = parent
	}
}

// refreshChildrenBefore recomputes parentValuesBefore for every known
// direct child of h, from h's current values.
func (l *ItemList[I, V]) refreshChildrenBefore(h order.NodeHandle) {
	d, ok := l.state[h]
	if !ok {
		return
	}
	for _, c := range l.ord.ChildrenOf(h) {
		cd, known := l.state[c]
		if !known {
			continue
		}
		anchor := l.ord.NextInnerIndexOf(c)
		_, count := d.values.CountPresentBefore(anchor)
		cd.parentValuesBefore = count
	}
}

// invalidateCache drops the single-slot before-count cache unless it
// already belongs to h.
func (l *ItemList[I, V]) invalidateCache(h order.NodeHandle) {
	if !l.hasCached || l.cachedNode != h {
		l.hasCached = false
	}
}

// Get returns the value at list index.
func (l *ItemList[I, V]) Get(index int) (V, bool) {
	pos, err := l.PositionAt(index)
	if err != nil {
		var zero V
		return zero, false
	}
	return l.GetAt(pos)
}

// GetAt returns the value stored at pos, if present.
func (l *ItemList[I, V]) GetAt(pos order.Position) (V, bool) {
	h, err := l.ord.HandleOf(pos)
	if err != nil {
		var zero V
		return zero, false
	}
	d, ok := l.state[h]
	if !ok {
		var zero V
		return zero, false
	}
	return d.values.Get(pos.InnerIndex)
}

// SetAt overwrites the already-present value at pos, without changing the
// list's shape. It errors if pos is absent.
func (l *ItemList[I, V]) SetAt(pos order.Position, value V) error {
	h, err := l.ord.HandleOf(pos)
	if err != nil {
		return err
	}
	d, ok := l.state[h]
	if !ok {
		return positionErr(ErrRangeError, pos, "position has no value to overwrite")
	}
	return d.values.SetScalar(pos.InnerIndex, value)
}
