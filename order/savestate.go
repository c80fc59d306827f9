package order

import (
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
)

// SavedMeta is a single bunch's saved shape, excluding its ID (the map
// key).
type SavedMeta struct {
	ParentID string `json:"parentID"`
	Offset   int    `json:"offset"`
}

// SavedState is the Order's persisted shape: every known bunch, excluding
// ROOT, keyed by bunch ID.
type SavedState map[string]SavedMeta

// SaveState emits the tree's metadata. Marshaling the result emits keys in
// lexicographic order for byte-stable output.
func (o *Order) SaveState() SavedState {
	state := make(SavedState, len(o.nodes)-1)
	for h := 1; h < len(o.nodes); h++ {
		n := &o.nodes[h]
		state[n.bunchID] = SavedMeta{ParentID: o.nodes[n.parent].bunchID, Offset: n.offset}
	}
	return state
}

// MarshalJSON sorts keys before delegating, so repeated saves of an
// unchanged Order byte-compare equal.
func (s SavedState) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := []byte{'{'}
	for i, k := range keys {
		if i > 0 {
			buf = append(buf, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(s[k])
		if err != nil {
			return nil, err
		}
		buf = append(buf, kb...)
		buf = append(buf, ':')
		buf = append(buf, vb...)
	}
	buf = append(buf, '}')
	return buf, nil
}

// LoadState merges saved metadata into this Order via AddMetas, which
// tolerates re-loading a state that overlaps what's already known.
func (o *Order) LoadState(state SavedState) error {
	metas := make([]BunchMeta, 0, len(state))
	for id, m := range state {
		metas = append(metas, BunchMeta{BunchID: id, ParentID: m.ParentID, Offset: m.Offset})
	}
	if err := o.AddMetas(metas); err != nil {
		return fmt.Errorf("order: LoadState: %w", err)
	}
	return nil
}
