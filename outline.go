package listpos

import (
	"iter"

	"github.com/replistruct/listpos/itemlist"
	"github.com/replistruct/listpos/order"
)

// Outline is a replicated, ordered sequence tracking presence only — no
// value is stored per slot — suited to tree/outline structures where the
// position itself is the payload.
type Outline struct {
	ord   *order.Order
	items *itemlist.ItemList[int, struct{}]
}

// NewOutline constructs an empty Outline, sharing cfg.Order if given.
func NewOutline(cfg Config) *Outline {
	ord := cfg.resolveOrder()
	return &Outline{
		ord:   ord,
		items: itemlist.New(itemlist.Config[int, struct{}]{Order: ord, Manager: countManager{}, Logger: cfg.Logger}),
	}
}

// Order returns the underlying Order, for sharing with other wrappers.
func (o *Outline) Order() *order.Order { return o.ord }

// Len returns the number of present slots.
func (o *Outline) Len() int { return o.items.Len() }

// Has reports whether index is present.
func (o *Outline) Has(index int) bool {
	_, ok := o.items.Get(index)
	return ok
}

// InsertAt inserts count new present slots starting at index. index ==
// Len() appends.
func (o *Outline) InsertAt(index, count int) (order.Position, error) {
	if count <= 0 {
		return order.Position{}, itemlist.ErrEmptyBulk
	}
	pos, _, err := o.items.InsertAt(index, count)
	return pos, err
}

// DeleteAt removes count slots starting at index.
func (o *Outline) DeleteAt(index, count int) error {
	return o.items.DeleteAt(index, count)
}

// Positions yields every present position in [start, end).
func (o *Outline) Positions(start, end int) iter.Seq[order.Position] {
	return func(yield func(order.Position) bool) {
		for pos, run := range o.items.Items(start, end) {
			for i := 0; i < run; i++ {
				if !yield(order.Position{BunchID: pos.BunchID, InnerIndex: pos.InnerIndex + i}) {
					return
				}
			}
		}
	}
}

// Cursor returns a Cursor bound to pos with the given binding mode.
func (o *Outline) Cursor(pos order.Position, mode BindingMode) Cursor {
	return Cursor{Position: pos, Mode: mode}
}

// IndexOf resolves a Cursor to an index according to its binding mode.
func (o *Outline) IndexOf(c Cursor) (int, error) {
	switch c.Mode {
	case StickyLeft:
		return o.items.IndexOfPosition(c.Position, itemlist.SearchLeft)
	case StickyRight:
		return o.items.IndexOfPosition(c.Position, itemlist.SearchRight)
	default:
		return o.items.IndexOfPosition(c.Position, itemlist.SearchNone)
	}
}

// Save returns a snapshot of the outline's tree metadata and presence.
func (o *Outline) Save() Saved {
	return Saved{Order: o.ord.SaveState(), Items: o.items.SaveState()}
}

// Load replaces the outline's contents from a snapshot.
func (o *Outline) Load(s Saved) error {
	if err := o.ord.LoadState(s.Order); err != nil {
		return err
	}
	return o.items.LoadState(s.Items)
}
