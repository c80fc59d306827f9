// Package order implements the replicated tree of bunches that defines the
// total order on positions in a list-CRDT, and mints new positions between
// any two existing ones without ever needing to renumber anything that came
// before.
//
// The tree uses an arena of nodes addressed by handle plus a sorted
// child-array per node, rather than pointer-linked nodes, so that node
// identity survives serialization and traversal never allocates.
package order

// RootBunchID is the distinguished bunch holding MinPosition and
// MaxPosition. No user value may ever be stored at a position in it.
const RootBunchID = "ROOT"

// Position is the immutable, value-typed identity of a single list slot:
// a bunch plus an index within it.
type Position struct {
	BunchID    string
	InnerIndex int
}

// MinPosition and MaxPosition bound every other position: MinPosition is
// strictly less than, and MaxPosition strictly greater than, every
// position any Order will ever issue or accept.
var (
	MinPosition = Position{BunchID: RootBunchID, InnerIndex: 0}
	MaxPosition = Position{BunchID: RootBunchID, InnerIndex: 1}
)

// BunchMeta is the minimum metadata needed to place a bunch in the tree:
// its ID, its parent's ID, and the offset determining its side and
// sibling rank. BunchMeta is the unit exchanged between replicas via
// AddMetas.
type BunchMeta struct {
	BunchID  string
	ParentID string
	Offset   int
}

// NodeHandle is a stable, arena-interned identifier for a bunch's tree
// node, used as a map key by collaborating packages (itemlist in
// particular) instead of a raw pointer.
type NodeHandle int32

// RootHandle is the handle of the root bunch, valid on every Order.
const RootHandle NodeHandle = 0
