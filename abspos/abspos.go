// Package abspos encodes a Position as a self-contained value that embeds
// its whole ancestor chain, so a freshly constructed replica can use a
// position it has never seen a BunchMeta for — useful when positions are
// saved to a document format ahead of the BunchMetas that would otherwise
// need to be delivered first.
package abspos

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/replistruct/listpos/order"
)

// BunchMeta is the path from the root to a bunch, compressed into four
// parallel arrays: replicaIDs holds each distinct replica seen along the
// path, replicaIndices names the replica that minted each ancestor bunch
// (as an index into replicaIDs), counters holds that bunch's numeric
// suffix, and offsets holds its offset in its parent. All four are empty
// for the root bunch.
type BunchMeta struct {
	ReplicaIDs     []string `json:"replicaIDs"`
	ReplicaIndices []int    `json:"replicaIndices"`
	Counters       []int    `json:"counters"`
	Offsets        []int    `json:"offsets"`
}

// RootBunchMeta is the zero-value BunchMeta, naming the root bunch.
var RootBunchMeta = BunchMeta{}

// AbsPosition is a Position plus the ancestor chain needed to reconstruct
// every bunch leading to it, without consulting an Order that already
// knows them.
type AbsPosition struct {
	BunchMeta  BunchMeta `json:"bunchMeta"`
	InnerIndex int       `json:"innerIndex"`
}

// splitBunchID and buildBunchID assume the default idfactory naming
// scheme ("replicaID_counter", counter in base36); a custom ID factory
// that doesn't follow this shape can't round-trip through Encode/Decode.
func splitBunchID(id string) (replicaID string, counter int, ok bool) {
	i := strings.LastIndexByte(id, '_')
	if i < 0 {
		return "", 0, false
	}
	n, err := strconv.ParseInt(id[i+1:], 36, 64)
	if err != nil {
		return "", 0, false
	}
	return id[:i], int(n), true
}

func buildBunchID(replicaID string, counter int) string {
	return replicaID + "_" + strconv.FormatInt(int64(counter), 36)
}

// Encode walks p's bunch's ancestor chain up to (excluding) the root,
// compressing it into an AbsPosition.
func Encode(o *order.Order, p order.Position) (AbsPosition, error) {
	h, err := o.HandleOf(p)
	if err != nil {
		return AbsPosition{}, err
	}

	var chain []order.NodeHandle
	for cur := h; !o.IsRoot(cur); {
		chain = append(chain, cur)
		parent, ok := o.ParentOf(cur)
		if !ok {
			break
		}
		cur = parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	meta := BunchMeta{}
	seen := make(map[string]int)
	for _, nh := range chain {
		bunchID := o.BunchIDOf(nh)
		replicaID, counter, ok := splitBunchID(bunchID)
		if !ok {
			return AbsPosition{}, fmt.Errorf("%w: bunch %q", ErrUnsupportedBunchID, bunchID)
		}
		idx, known := seen[replicaID]
		if !known {
			idx = len(meta.ReplicaIDs)
			meta.ReplicaIDs = append(meta.ReplicaIDs, replicaID)
			seen[replicaID] = idx
		}
		meta.ReplicaIndices = append(meta.ReplicaIndices, idx)
		meta.Counters = append(meta.Counters, counter)
		meta.Offsets = append(meta.Offsets, o.OffsetOf(nh))
	}

	return AbsPosition{BunchMeta: meta, InnerIndex: p.InnerIndex}, nil
}

// Decode reconstructs the Position a.InnerIndex refers to, along with the
// BunchMetas needed to install its ancestor chain (in root-to-leaf order,
// so passing them to Order.AddMetas in this order, or all at once, both
// work).
func Decode(a AbsPosition) (order.Position, []order.BunchMeta, error) {
	n := len(a.BunchMeta.Offsets)
	if len(a.BunchMeta.ReplicaIndices) != n || len(a.BunchMeta.Counters) != n {
		return order.Position{}, nil, fmt.Errorf("%w: mismatched array lengths", ErrMalformed)
	}
	if n == 0 {
		return order.Position{BunchID: order.RootBunchID, InnerIndex: a.InnerIndex}, nil, nil
	}

	parentID := order.RootBunchID
	metas := make([]order.BunchMeta, 0, n)
	for i := 0; i < n; i++ {
		ri := a.BunchMeta.ReplicaIndices[i]
		if ri < 0 || ri >= len(a.BunchMeta.ReplicaIDs) {
			return order.Position{}, nil, fmt.Errorf("%w: replica index %d out of range", ErrMalformed, ri)
		}
		bunchID := buildBunchID(a.BunchMeta.ReplicaIDs[ri], a.BunchMeta.Counters[i])
		metas = append(metas, order.BunchMeta{BunchID: bunchID, ParentID: parentID, Offset: a.BunchMeta.Offsets[i]})
		parentID = bunchID
	}

	return order.Position{BunchID: parentID, InnerIndex: a.InnerIndex}, metas, nil
}
