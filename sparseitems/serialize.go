package sparseitems

import "fmt"

// trim removes the trailing deleted run (if any) and drops trailing
// zero-length item runs, producing the canonical form used on the wire.
func (s *SparseItems[I, V]) trim() {
	for len(s.runs) > 1 && s.mgr.Length(s.runs[len(s.runs)-1].item) == 0 {
		s.runs = s.runs[:len(s.runs)-1]
	}
	s.runs[len(s.runs)-1].deleted = 0
}

// Trim returns a canonical copy: no trailing deleted run, no trailing
// zero-length item run past the first.
func (s *SparseItems[I, V]) Trim() *SparseItems[I, V] {
	c := s.Clone()
	c.trim()
	return c
}

// Serialize returns the wire form: an alternating [item, deletedCount,
// item, ...] slice, trimmed of any trailing deleted run. Serialize is
// idempotent on an already-trimmed SparseItems.
func (s *SparseItems[I, V]) Serialize() []any {
	c := s.Trim()
	out := make([]any, 0, len(c.runs)*2-1)
	for i, r := range c.runs {
		out = append(out, r.item)
		if i != len(c.runs)-1 {
			out = append(out, r.deleted)
		}
	}
	return out
}

// Deserialize parses a wire-form array (as produced by Serialize) back
// into a SparseItems.
func Deserialize[I, V any](mgr ItemManager[I, V], raw []any) (*SparseItems[I, V], error) {
	if len(raw) == 0 {
		return New(mgr), nil
	}

	runs := make([]run[I], 0, (len(raw)+1)/2)
	for i := 0; i < len(raw); i += 2 {
		item, err := mgr.Deserialize(raw[i])
		if err != nil {
			return nil, fmt.Errorf("sparseitems: deserialize item at %d: %w", i, err)
		}

		deleted := 0
		if i+1 < len(raw) {
			n, ok := toInt(raw[i+1])
			if !ok || n <= 0 {
				return nil, fmt.Errorf("%w: expected positive deleted count at %d", ErrMalformed, i+1)
			}
			deleted = n
		}
		runs = append(runs, run[I]{item: item, deleted: deleted})
	}
	return &SparseItems[I, V]{mgr: mgr, runs: runs}, nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
