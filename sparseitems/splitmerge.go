package sparseitems

// cut splits s into two SparseItems at global index at (0 <= at <= s.Len()),
// the fundamental single-point primitive behind Split.
func cut[I, V any](s *SparseItems[I, V], at int) (left, right *SparseItems[I, V]) {
	mgr := s.mgr
	pos := 0

	for idx, r := range s.runs {
		itemLen := mgr.Length(r.item)
		itemEnd := pos + itemLen
		runEnd := itemEnd + r.deleted

		switch {
		case at <= pos:
			left = &SparseItems[I, V]{mgr: mgr, runs: append([]run[I]{}, s.runs[:idx]...)}
			right = &SparseItems[I, V]{mgr: mgr, runs: append([]run[I]{}, s.runs[idx:]...)}
			return ensureNonEmpty(left), ensureNonEmpty(right)

		case at < itemEnd:
			leftRuns := append([]run[I]{}, s.runs[:idx]...)
			leftRuns = append(leftRuns, run[I]{item: mgr.Slice(r.item, 0, at-pos)})
			rightRuns := []run[I]{{item: mgr.Slice(r.item, at-pos, itemLen), deleted: r.deleted}}
			rightRuns = append(rightRuns, s.runs[idx+1:]...)
			return &SparseItems[I, V]{mgr: mgr, runs: leftRuns}, &SparseItems[I, V]{mgr: mgr, runs: rightRuns}

		case at <= runEnd:
			dPos := at - itemEnd
			leftRuns := append([]run[I]{}, s.runs[:idx]...)
			leftRuns = append(leftRuns, run[I]{item: r.item, deleted: dPos})
			rightRuns := []run[I]{{item: mgr.New(), deleted: r.deleted - dPos}}
			rightRuns = append(rightRuns, s.runs[idx+1:]...)
			return &SparseItems[I, V]{mgr: mgr, runs: leftRuns}, &SparseItems[I, V]{mgr: mgr, runs: rightRuns}

		default:
			pos = runEnd
		}
	}

	// at == s.Len(): everything goes left.
	left = &SparseItems[I, V]{mgr: mgr, runs: append([]run[I]{}, s.runs...)}
	right = New(mgr)
	return left, right
}

func ensureNonEmpty[I, V any](s *SparseItems[I, V]) *SparseItems[I, V] {
	if len(s.runs) == 0 {
		return New(s.mgr)
	}
	return s
}

// Split cuts items at each of the given ascending, distinct indices
// (each in [0, items.Len()]), returning len(indices)+1 pieces whose
// concatenation via Merge reconstructs the original sequence.
func Split[I, V any](items *SparseItems[I, V], indices ...int) []*SparseItems[I, V] {
	out := make([]*SparseItems[I, V], 0, len(indices)+1)
	rest := items
	prev := 0
	for _, at := range indices {
		left, right := cut(rest, at-prev)
		out = append(out, left)
		rest = right
		prev = at
	}
	out = append(out, rest)
	return out
}

// mergeTwo concatenates a and b, coalescing the run at their boundary
// when it would otherwise violate the "no empty intermediate run" /
// "alternating" invariants.
func mergeTwo[I, V any](a, b *SparseItems[I, V]) *SparseItems[I, V] {
	mgr := a.mgr
	out := append([]run[I]{}, a.runs...)
	last := &out[len(out)-1]

	bRuns := b.runs
	for len(bRuns) > 0 && mgr.Length(bRuns[0].item) == 0 {
		last.deleted += bRuns[0].deleted
		bRuns = bRuns[1:]
	}
	if len(bRuns) > 0 && last.deleted == 0 {
		last.item = mgr.Append(last.item, bRuns[0].item)
		last.deleted = bRuns[0].deleted
		bRuns = bRuns[1:]
	}
	out = append(out, bRuns...)

	return &SparseItems[I, V]{mgr: mgr, runs: out}
}

// Merge concatenates two or more SparseItems in order, coalescing adjacent
// same-kind runs at each boundary. It is the inverse of Split.
func Merge[I, V any](pieces ...*SparseItems[I, V]) *SparseItems[I, V] {
	if len(pieces) == 0 {
		panic("sparseitems: Merge requires at least one piece")
	}
	acc := pieces[0]
	for _, p := range pieces[1:] {
		acc = mergeTwo(acc, p)
	}
	return acc
}
