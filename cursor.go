package listpos

import "github.com/replistruct/listpos/order"

// BindingMode controls how a Cursor resolves to a list index once the
// position it names has been deleted.
type BindingMode int

const (
	// Bound requires the position to still be present; resolving a
	// deleted position errors.
	Bound BindingMode = iota
	// StickyLeft resolves to the nearest present value before the
	// position, tracking deletions leftward.
	StickyLeft
	// StickyRight resolves to where the next present value after the
	// position would be, tracking deletions rightward.
	StickyRight
)

// Cursor names a stable point in a list by position rather than by index,
// so it survives insertions and deletions elsewhere in the list.
type Cursor struct {
	Position order.Position
	Mode     BindingMode
}
