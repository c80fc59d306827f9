package sparseitems

// IndexedRun pairs a present run's starting absolute index with the run
// itself, as yielded by PresentRuns.
type IndexedRun[I any] struct {
	Index int
	Item  I
}

// PresentRuns returns every present run that overlaps [start, end), each
// clipped to that range, in ascending index order. Unlike NewSlicer (which
// yields one scalar value at a time), PresentRuns keeps each maximal
// present span intact — the shape an in-order list traversal wants, since
// it reports whole contiguous runs rather than individual slots.
func (s *SparseItems[I, V]) PresentRuns(start, end int) []IndexedRun[I] {
	if end < 0 {
		end = s.Len()
	}
	if start >= end {
		return nil
	}

	var out []IndexedRun[I]
	pos := 0
	for _, r := range s.runs {
		itemLen := s.mgr.Length(r.item)
		runEnd := pos + itemLen

		lo, hi := clampRange(pos, runEnd, start, end)
		if lo < hi {
			out = append(out, IndexedRun[I]{Index: lo, Item: s.mgr.Slice(r.item, lo-pos, hi-pos)})
		}

		pos += itemLen + r.deleted
		if pos >= end {
			break
		}
	}
	return out
}
