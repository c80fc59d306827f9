package listpos

import (
	"github.com/replistruct/listpos/itemlist"
	"github.com/replistruct/listpos/order"
)

// Saved is the combined saved-state shape every wrapper in this package
// produces: the replicated tree's metadata plus the values stored over
// it. The two halves are independently JSON-serializable; Order is
// shared, and only needs saving/loading once per Order even if several
// wrappers share it.
type Saved struct {
	Order order.SavedState   `json:"order"`
	Items itemlist.SavedState `json:"items"`
}
