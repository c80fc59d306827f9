package sparseitems

// IndexValue pairs a present slot's absolute index with its value, as
// yielded by Slicer.
type IndexValue[V any] struct {
	Index int
	Value V
}

// Slicer is a stateful forward cursor over a SparseItems's present slots.
// Each call to Slice must be given an end at or after the previous call's
// end (or -1, meaning "to the end of the sequence"); driving it
// non-monotonically yields undefined results. This lets a forward
// traversal collect present values without rescanning earlier runs on
// every step.
type Slicer[I, V any] struct {
	items  *SparseItems[I, V]
	runIdx int
	runPos int // absolute index at which the current run begins
	offset int // offset already consumed within the current run
}

// NewSlicer returns a cursor positioned at the start of items.
func (s *SparseItems[I, V]) NewSlicer() *Slicer[I, V] {
	return &Slicer[I, V]{items: s}
}

// Slice advances the cursor and returns every present (index, value) pair
// in [previous end, end). Pass end = -1 to consume to the end of the
// sequence.
func (sl *Slicer[I, V]) Slice(end int) []IndexValue[V] {
	items := sl.items
	mgr := items.mgr
	if end < 0 {
		end = items.Len()
	}

	var out []IndexValue[V]
	for sl.runIdx < len(items.runs) {
		r := items.runs[sl.runIdx]
		itemLen := mgr.Length(r.item)
		total := itemLen + r.deleted

		if sl.runPos+sl.offset >= end {
			break
		}

		if sl.offset < itemLen {
			stop := itemLen
			if sl.runPos+stop > end {
				stop = end - sl.runPos
			}
			for i := sl.offset; i < stop; i++ {
				out = append(out, IndexValue[V]{Index: sl.runPos + i, Value: mgr.Get(r.item, i)})
			}
			sl.offset = stop
			if sl.runPos+sl.offset >= end {
				break
			}
		}

		if sl.offset < total {
			skip := total
			if sl.runPos+skip > end {
				skip = end - sl.runPos
			}
			sl.offset = skip
		}

		if sl.offset >= total {
			sl.runPos += total
			sl.offset = 0
			sl.runIdx++
		}
	}
	return out
}
