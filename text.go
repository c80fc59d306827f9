package listpos

import (
	"fmt"
	"iter"

	"github.com/replistruct/listpos/itemlist"
	"github.com/replistruct/listpos/order"
)

// Text is a replicated, ordered sequence of runes.
type Text struct {
	ord   *order.Order
	items *itemlist.ItemList[string, rune]
}

// NewText constructs an empty Text, sharing cfg.Order if given.
func NewText(cfg Config) *Text {
	ord := cfg.resolveOrder()
	return &Text{
		ord:   ord,
		items: itemlist.New(itemlist.Config[string, rune]{Order: ord, Manager: stringManager{}, Logger: cfg.Logger}),
	}
}

// Order returns the underlying Order, for sharing with other wrappers.
func (t *Text) Order() *order.Order { return t.ord }

// Len returns the number of runes in the text.
func (t *Text) Len() int { return t.items.Len() }

// Get returns the rune at index.
func (t *Text) Get(index int) (rune, bool) { return t.items.Get(index) }

// SetChar overwrites the rune already present at index. value must be
// exactly one rune.
func (t *Text) SetChar(index int, value string) error {
	r := []rune(value)
	if len(r) != 1 {
		return fmt.Errorf("%w: %q", ErrCharShape, value)
	}
	pos, err := t.items.PositionAt(index)
	if err != nil {
		return err
	}
	return t.items.SetAt(pos, r[0])
}

// InsertAt inserts value starting at index, shifting subsequent runes
// right. index == Len() appends.
func (t *Text) InsertAt(index int, value string) (order.Position, error) {
	if value == "" {
		return order.Position{}, itemlist.ErrEmptyBulk
	}
	pos, _, err := t.items.InsertAt(index, value)
	return pos, err
}

// DeleteAt removes count runes starting at index.
func (t *Text) DeleteAt(index, count int) error {
	return t.items.DeleteAt(index, count)
}

// String returns the text's current contents.
func (t *Text) String() string {
	var out []rune
	for _, r := range t.Values(0, -1) {
		out = append(out, r)
	}
	return string(out)
}

// Items yields every (position, rune) pair in [start, end).
func (t *Text) Items(start, end int) iter.Seq2[order.Position, rune] {
	return func(yield func(order.Position, rune) bool) {
		for pos, run := range t.items.Items(start, end) {
			for i, r := range []rune(run) {
				if !yield(order.Position{BunchID: pos.BunchID, InnerIndex: pos.InnerIndex + i}, r) {
					return
				}
			}
		}
	}
}

// Positions yields every position holding a rune in [start, end).
func (t *Text) Positions(start, end int) iter.Seq[order.Position] {
	return func(yield func(order.Position) bool) {
		for pos := range t.Items(start, end) {
			if !yield(pos) {
				return
			}
		}
	}
}

// Values yields every rune in [start, end), in text order.
func (t *Text) Values(start, end int) iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range t.Items(start, end) {
			if !yield(r) {
				return
			}
		}
	}
}

// Cursor returns a Cursor bound to pos with the given binding mode.
func (t *Text) Cursor(pos order.Position, mode BindingMode) Cursor {
	return Cursor{Position: pos, Mode: mode}
}

// IndexOf resolves a Cursor to a rune index according to its binding mode.
func (t *Text) IndexOf(c Cursor) (int, error) {
	switch c.Mode {
	case StickyLeft:
		return t.items.IndexOfPosition(c.Position, itemlist.SearchLeft)
	case StickyRight:
		return t.items.IndexOfPosition(c.Position, itemlist.SearchRight)
	default:
		return t.items.IndexOfPosition(c.Position, itemlist.SearchNone)
	}
}

// Save returns a snapshot of the text's tree metadata and contents.
func (t *Text) Save() Saved {
	return Saved{Order: t.ord.SaveState(), Items: t.items.SaveState()}
}

// Load replaces the text's contents from a snapshot.
func (t *Text) Load(s Saved) error {
	if err := t.ord.LoadState(s.Order); err != nil {
		return err
	}
	return t.items.LoadState(s.Items)
}
