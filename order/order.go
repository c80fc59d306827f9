package order

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/replistruct/listpos/idfactory"
)

type bunchNode struct {
	bunchID  string
	parent   NodeHandle
	offset   int
	depth    int
	children []NodeHandle // sorted in sibling order

	// createdCounter is the next innerIndex to mint in this bunch, for
	// bunches created by this process. -1 means this process did not
	// create the bunch (it arrived via AddMetas).
	createdCounter int
}

// Config configures an Order. Every field is enumerated and defaulted, so
// the zero value plus New is always ready to use.
type Config struct {
	// ID is this replica's identifier. If empty, a random one is
	// generated with idfactory.NewReplicaID.
	ID string
	// NewBunchID mints bunch IDs. If nil, idfactory.Default(ID) is used.
	NewBunchID idfactory.Factory
	// Logger receives debug-level tracing of bunch creation and meta
	// merges. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// Order owns the replicated tree of bunches and the total order over the
// positions it defines. The zero value is not usable; construct with New.
//
// An Order is not safe for concurrent use: it (and any ItemList built over
// it) is a single logical resource owned by one execution context at a
// time.
type Order struct {
	replicaID  string
	newBunchID idfactory.Factory
	log        *zap.Logger

	nodes []bunchNode
	byID  map[string]NodeHandle

	// ownChildByParentOffset implements the "same-parent-and-offset"
	// conflict-avoidance rule in createPositions, tracking only bunches
	// this process created. Bunches that arrive via AddMetas are never
	// reused as insertion targets, so two replicas never race to extend
	// the same (parent, offset) slot.
	ownChildByParentOffset map[NodeHandle]map[int]NodeHandle
}

// New constructs an Order ready to mint and accept positions.
func New(cfg Config) *Order {
	if cfg.ID == "" {
		cfg.ID = idfactory.NewReplicaID()
	}
	if cfg.NewBunchID == nil {
		cfg.NewBunchID = idfactory.Default(cfg.ID)
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("order")

	o := &Order{
		replicaID:  cfg.ID,
		newBunchID: cfg.NewBunchID,
		log:        log,
		byID:       make(map[string]NodeHandle),
		ownChildByParentOffset: make(map[NodeHandle]map[int]NodeHandle),
	}
	o.nodes = append(o.nodes, bunchNode{
		bunchID:        RootBunchID,
		parent:         -1,
		depth:          0,
		createdCounter: -1,
	})
	o.byID[RootBunchID] = RootHandle
	return o
}

// ReplicaID returns this Order's replica identifier.
func (o *Order) ReplicaID() string { return o.replicaID }

// HandleForBunch looks up a bunch's node handle by ID.
func (o *Order) HandleForBunch(bunchID string) (NodeHandle, bool) {
	h, ok := o.byID[bunchID]
	return h, ok
}

// HandleOf resolves a Position to its bunch's node handle, validating the
// position's shape along the way.
func (o *Order) HandleOf(p Position) (NodeHandle, error) {
	if p.InnerIndex < 0 {
		return 0, positionErr(ErrInvalidPosition, p, "negative innerIndex")
	}
	if p.BunchID == RootBunchID && p.InnerIndex > 1 {
		return 0, positionErr(ErrInvalidPosition, p, "ROOT bunch only holds innerIndex 0 and 1")
	}
	h, ok := o.byID[p.BunchID]
	if !ok {
		return 0, positionErr(ErrUnknownBunch, p, "bunch not known to this Order")
	}
	return h, nil
}

// BunchIDOf, ParentOf, OffsetOf, DepthOf and ChildrenOf expose the node
// arena's shape to collaborating packages (itemlist) by handle, rather
// than by pointer, so node identity survives serialization and never
// dangles.
func (o *Order) BunchIDOf(h NodeHandle) string { return o.nodes[h].bunchID }

func (o *Order) ParentOf(h NodeHandle) (NodeHandle, bool) {
	p := o.nodes[h].parent
	return p, p >= 0
}

func (o *Order) OffsetOf(h NodeHandle) int { return o.nodes[h].offset }

func (o *Order) DepthOf(h NodeHandle) int { return o.nodes[h].depth }

func (o *Order) ChildrenOf(h NodeHandle) []NodeHandle {
	return o.nodes[h].children
}

// NextInnerIndexOf returns the insertion point a child bunch is anchored
// at within its parent. Present values in the parent strictly before this
// index are the ones counted into the child's parentValuesBefore.
func (o *Order) NextInnerIndexOf(h NodeHandle) int {
	return (o.nodes[h].offset + 1) / 2
}

// IsRoot reports whether h is the root bunch's handle.
func (o *Order) IsRoot(h NodeHandle) bool { return h == RootHandle }

// siblingLess orders two children of the same parent: by offset, ties
// broken by lexicographic order of bunchID+",".
func (o *Order) siblingLess(a, b NodeHandle) bool {
	na, nb := &o.nodes[a], &o.nodes[b]
	if na.offset != nb.offset {
		return na.offset < nb.offset
	}
	return strings.Compare(na.bunchID+",", nb.bunchID+",") < 0
}

func (o *Order) insertChildSorted(parent NodeHandle, child NodeHandle) {
	children := o.nodes[parent].children
	i := sort.Search(len(children), func(i int) bool {
		return !o.siblingLess(children[i], child)
	})
	children = append(children, 0)
	copy(children[i+1:], children[i:])
	children[i] = child
	o.nodes[parent].children = children
}
