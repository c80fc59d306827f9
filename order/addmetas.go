package order

import "go.uber.org/zap"

// AddMetas idempotently merges a batch of BunchMetas delivered from other
// replicas into the tree. Already-known metas are required to be
// structurally identical to what's already installed; unknown metas are
// installed in ancestry order so each meta's parent is processed before
// it, with cycles and missing-ancestor cases detected explicitly.
//
// AddMetas is not atomic across the whole batch: if it errors partway
// through, metas already installed earlier in the same call remain
// installed. Callers should treat a failed batch as failed and retry the
// whole thing; duplicate delivery is always safe.
func (o *Order) AddMetas(metas []BunchMeta) error {
	pending := make(map[string]BunchMeta, len(metas))
	order := make([]string, 0, len(metas))

	for _, m := range metas {
		if m.BunchID == RootBunchID {
			return metaErr(ErrRootMeta, m.BunchID, "cannot submit meta for ROOT")
		}
		if existing, ok := o.byID[m.BunchID]; ok {
			n := &o.nodes[existing]
			if n.parent >= 0 && (o.nodes[n.parent].bunchID != m.ParentID || n.offset != m.Offset) {
				return metaErr(ErrMetaConflict, m.BunchID, "conflicts with already-known meta")
			}
			continue // duplicate submission: silent
		}
		if _, dup := pending[m.BunchID]; !dup {
			order = append(order, m.BunchID)
		}
		pending[m.BunchID] = m
	}

	installOrder, err := o.topoSortByAncestry(pending, order)
	if err != nil {
		return err
	}

	for _, id := range installOrder {
		m := pending[id]
		if _, err := o.installBunch(m); err != nil {
			return err
		}
		o.log.Debug("merged meta", zap.String("bunch", m.BunchID), zap.String("parent", m.ParentID), zap.Int("offset", m.Offset))
	}
	return nil
}

// topoSortByAncestry orders pending metas so each is installed only after
// its parent (either already known, or earlier in this same batch),
// distinguishing a missing ancestor (not in the input and not already
// known) from a cycle confined to the batch.
func (o *Order) topoSortByAncestry(pending map[string]BunchMeta, ids []string) ([]string, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(pending))
	out := make([]string, 0, len(pending))

	var visit func(id string) error
	visit = func(id string) error {
		switch state[id] {
		case done:
			return nil
		case visiting:
			return metaErr(ErrMetaCycle, id, "cycle among submitted metas")
		}
		state[id] = visiting

		m := pending[id]
		if _, knownParent := o.byID[m.ParentID]; !knownParent {
			if _, isPending := pending[m.ParentID]; !isPending {
				return metaErr(ErrMetaMissingParent, id, "parent "+m.ParentID+" is neither known nor in this batch")
			}
			if err := visit(m.ParentID); err != nil {
				return err
			}
		}

		state[id] = done
		out = append(out, id)
		return nil
	}

	for _, id := range ids {
		if err := visit(id); err != nil {
			return nil, err
		}
	}
	return out, nil
}
