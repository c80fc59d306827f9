package order

import "cmp"

// Compare returns a negative number if a < b, zero if a == b, and a
// positive number if a > b. It errors with ErrUnknownBunch if either
// position's bunch is not known to this Order.
func (o *Order) Compare(a, b Position) (int, error) {
	if a.BunchID == b.BunchID {
		if _, err := o.HandleOf(a); err != nil {
			return 0, err
		}
		if _, err := o.HandleOf(b); err != nil {
			return 0, err
		}
		return cmp.Compare(a.InnerIndex, b.InnerIndex), nil
	}

	nA, err := o.HandleOf(a)
	if err != nil {
		return 0, err
	}
	nB, err := o.HandleOf(b)
	if err != nil {
		return 0, err
	}
	return o.compareNodes(nA, a.InnerIndex, nB, b.InnerIndex), nil
}

// MustCompare panics if Compare errors; useful once positions are known
// valid.
func (o *Order) MustCompare(a, b Position) int {
	c, err := o.Compare(a, b)
	if err != nil {
		panic(err)
	}
	return c
}

// compareNodes walks the deeper node's side up to equal depth (checking
// for an ancestor relationship along the way), then walks both up in
// lockstep to a common parent, and finally compares as siblings.
func (o *Order) compareNodes(nA NodeHandle, iA int, nB NodeHandle, iB int) int {
	curA, curB := nA, nB

	for o.nodes[curA].depth > o.nodes[curB].depth {
		parent := o.nodes[curA].parent
		if parent == nB {
			// curA's subtree sits, relative to (nB, iB), on the side its
			// offset parity implies: left of/at iB or right of/after iB.
			boundary := o.NextInnerIndexOf(curA)
			if iB >= boundary {
				return -1 // subtree(curA) < b, so a < b
			}
			return 1
		}
		curA = parent
	}

	for o.nodes[curB].depth > o.nodes[curA].depth {
		parent := o.nodes[curB].parent
		if parent == nA {
			boundary := o.NextInnerIndexOf(curB)
			if iA >= boundary {
				return 1 // subtree(curB) < a, so a > b
			}
			return -1
		}
		curB = parent
	}

	for o.nodes[curA].parent != o.nodes[curB].parent {
		curA = o.nodes[curA].parent
		curB = o.nodes[curB].parent
	}

	return o.compareSiblings(curA, curB)
}

func (o *Order) compareSiblings(a, b NodeHandle) int {
	na, nb := &o.nodes[a], &o.nodes[b]
	if na.offset != nb.offset {
		return cmp.Compare(na.offset, nb.offset)
	}
	return cmp.Compare(na.bunchID+",", nb.bunchID+",")
}

// IsDescendant reports whether p lies within q's subtree in the
// position-tree sense used by CreatePositions' side-selection rule: q's
// bunch node is an ancestor of p's, and the child on that path is anchored
// exactly at q's innerIndex (as a left or right child of q specifically,
// not merely some other position in q's bunch).
func (o *Order) IsDescendant(p, q Position) (bool, error) {
	if p.BunchID == q.BunchID {
		return false, nil
	}
	nP, err := o.HandleOf(p)
	if err != nil {
		return false, err
	}
	nQ, err := o.HandleOf(q)
	if err != nil {
		return false, err
	}

	cur := nP
	for o.nodes[cur].depth > o.nodes[nQ].depth {
		parent := o.nodes[cur].parent
		if parent == nQ {
			off := o.nodes[cur].offset
			return off == 2*q.InnerIndex || off == 2*q.InnerIndex+1, nil
		}
		cur = parent
	}
	return false, nil
}
