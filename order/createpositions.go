package order

import (
	"fmt"

	"go.uber.org/zap"
)

// CreatePositions mints count new positions strictly between prevPos and
// nextPos, sharing one bunch with contiguous innerIndexes. It returns the
// first minted position and, if a new bunch had to be created, the
// BunchMeta for it (callers must deliver this to every other replica
// before — or in the same message as — any of the new positions).
func (o *Order) CreatePositions(prevPos, nextPos Position, count int) (startPos Position, newMeta *BunchMeta, err error) {
	if count < 1 {
		return Position{}, nil, fmt.Errorf("order: CreatePositions count must be >= 1, got %d", count)
	}
	if prevPos == MaxPosition {
		return Position{}, nil, positionErr(ErrOrderBoundary, prevPos, "cannot insert after MAX_POSITION")
	}
	if nextPos == MinPosition {
		return Position{}, nil, positionErr(ErrOrderBoundary, nextPos, "cannot insert before MIN_POSITION")
	}

	rel, err := o.Compare(prevPos, nextPos)
	if err != nil {
		return Position{}, nil, err
	}
	if rel >= 0 {
		return Position{}, nil, fmt.Errorf("order: CreatePositions requires prevPos < nextPos, got %+v >= %+v", prevPos, nextPos)
	}

	nextIsDescendant, err := o.IsDescendant(nextPos, prevPos)
	if err != nil {
		return Position{}, nil, err
	}

	if !nextIsDescendant {
		return o.extendRightOf(prevPos, count)
	}
	return o.extendLeftOf(nextPos, count)
}

func (o *Order) extendRightOf(prevPos Position, count int) (Position, *BunchMeta, error) {
	prevNode, err := o.HandleOf(prevPos)
	if err != nil {
		return Position{}, nil, err
	}

	// Extend-own-bunch shortcut: no gap between prevPos and our own
	// process's next free slot in its bunch.
	if n := &o.nodes[prevNode]; n.createdCounter >= 0 && n.createdCounter == prevPos.InnerIndex+1 {
		start := Position{BunchID: n.bunchID, InnerIndex: n.createdCounter}
		n.createdCounter += count
		o.log.Debug("extend-own-bunch", zap.String("bunch", n.bunchID))
		return start, nil, nil
	}

	offset := 2*prevPos.InnerIndex + 1
	return o.appendChildOrMint(prevNode, offset, count)
}

func (o *Order) extendLeftOf(nextPos Position, count int) (Position, *BunchMeta, error) {
	nextNode, err := o.HandleOf(nextPos)
	if err != nil {
		return Position{}, nil, err
	}
	offset := 2 * nextPos.InnerIndex
	return o.appendChildOrMint(nextNode, offset, count)
}

// appendChildOrMint implements createPositions steps 3-4: reuse an
// existing own-created child bunch at (parent, offset) if one exists,
// otherwise mint a brand new bunch.
func (o *Order) appendChildOrMint(parent NodeHandle, offset, count int) (Position, *BunchMeta, error) {
	if byOffset, ok := o.ownChildByParentOffset[parent]; ok {
		if child, ok := byOffset[offset]; ok {
			n := &o.nodes[child]
			start := Position{BunchID: n.bunchID, InnerIndex: n.createdCounter}
			n.createdCounter += count
			return start, nil, nil
		}
	}

	newBunchID := o.newBunchID()
	meta := BunchMeta{BunchID: newBunchID, ParentID: o.nodes[parent].bunchID, Offset: offset}

	child, err := o.installBunch(meta)
	if err != nil {
		return Position{}, nil, err
	}
	o.nodes[child].createdCounter = count

	if o.ownChildByParentOffset[parent] == nil {
		o.ownChildByParentOffset[parent] = make(map[int]NodeHandle)
	}
	o.ownChildByParentOffset[parent][offset] = child

	o.log.Debug("mint-bunch", zap.String("bunch", newBunchID), zap.String("parent", meta.ParentID))

	return Position{BunchID: newBunchID, InnerIndex: 0}, &meta, nil
}

// installBunch adds a single, already-validated-in-shape bunch to the
// tree, inserting it into its parent's children at the position sibling
// order dictates. It errors with ErrMetaMissingParent if the parent is not
// known; it performs no other validation of meta.
func (o *Order) installBunch(meta BunchMeta) (NodeHandle, error) {
	parent, ok := o.byID[meta.ParentID]
	if !ok {
		return 0, metaErr(ErrMetaMissingParent, meta.BunchID, "parent not known")
	}

	h := NodeHandle(len(o.nodes))
	o.nodes = append(o.nodes, bunchNode{
		bunchID:        meta.BunchID,
		parent:         parent,
		offset:         meta.Offset,
		depth:          o.nodes[parent].depth + 1,
		createdCounter: -1,
	})
	o.byID[meta.BunchID] = h
	o.insertChildSorted(parent, h)
	return h, nil
}
