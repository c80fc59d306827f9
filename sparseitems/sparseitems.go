// Package sparseitems implements a generic, run-length-encoded sparse
// sequence: an integer-indexed array where long runs of absent ("deleted")
// slots cost O(1) to store and O(k) to touch, k being the number of runs a
// given operation crosses.
//
// The sequence is a list of alternating runs: even positions hold a present
// item of some caller-defined kind (a value slice, a string, or a bare
// count), odd positions hold a positive integer — the number of deleted
// slots that follow. Run-length encoding keeps this cheap even when a list
// sees long stretches of deletions, since positions in a list-CRDT are not
// dense over a small fixed domain the way a fixed-width bitset array is.
package sparseitems

import "fmt"

// ItemManager is the capability set a concrete run kind must provide.
// The root listpos package supplies three: a value-slice manager (List), a
// string manager (Text), and a bare-count manager (Outline) — modeled as a small
// capability set rather than an interface hierarchy, since each run kind
// needs only a handful of primitive operations and none of them share
// behavior worth factoring into a base type.
//
// I is the run ("item") type; V is the scalar type of a single slot within
// a run.
type ItemManager[I any, V any] interface {
	// New returns an empty present item (length 0).
	New() I
	// Deserialize parses a wire-form value (as produced by a JSON decode of
	// a SparseItems.Serialize result) into an item.
	Deserialize(raw any) (I, error)
	// Length reports how many slots item occupies.
	Length(item I) int
	// Slice returns the sub-run covering [start, end).
	Slice(item I, start, end int) I
	// Append concatenates two same-kind items, dst first.
	Append(dst, src I) I
	// Get returns the scalar value at offset within item.
	Get(item I, offset int) V
	// Replace returns a copy of item with the slot at offset set to value,
	// same length.
	Replace(item I, offset int, value V) I
}

type run[I any] struct {
	item    I
	deleted int
}

// SparseItems is a run-length-encoded sparse sequence of items managed by
// an ItemManager[I, V]. The zero value is not usable; construct with New.
type SparseItems[I any, V any] struct {
	mgr  ItemManager[I, V]
	runs []run[I]
}

// New returns an empty SparseItems.
func New[I any, V any](mgr ItemManager[I, V]) *SparseItems[I, V] {
	return &SparseItems[I, V]{mgr: mgr, runs: []run[I]{{item: mgr.New()}}}
}

func single[I, V any](mgr ItemManager[I, V], item I) *SparseItems[I, V] {
	return &SparseItems[I, V]{mgr: mgr, runs: []run[I]{{item: item}}}
}

func deletedOnly[I, V any](mgr ItemManager[I, V], count int) *SparseItems[I, V] {
	if count == 0 {
		return New(mgr)
	}
	return &SparseItems[I, V]{mgr: mgr, runs: []run[I]{{item: mgr.New(), deleted: count}}}
}

// Clone returns a shallow copy: the run slice is copied, but item values
// are copied by assignment (no deep clone of e.g. a backing value slice).
func (s *SparseItems[I, V]) Clone() *SparseItems[I, V] {
	runs := make([]run[I], len(s.runs))
	copy(runs, s.runs)
	return &SparseItems[I, V]{mgr: s.mgr, runs: runs}
}

// Len returns the total span of the sequence, present and deleted slots
// alike. It is an implementation quantity used by Set/Delete/Split, not a
// document "length" in the wrapper sense.
func (s *SparseItems[I, V]) Len() int {
	total := 0
	for _, r := range s.runs {
		total += s.mgr.Length(r.item) + r.deleted
	}
	return total
}

// Size returns the count of present slots.
func (s *SparseItems[I, V]) Size() int {
	total := 0
	for _, r := range s.runs {
		total += s.mgr.Length(r.item)
	}
	return total
}

// locate finds the run containing global index i, returning the run's
// index in s.runs, the absolute index at which that run starts, and the
// offset of i within the run (which may land in the item part or the
// deleted part, or past the end of the final run).
func (s *SparseItems[I, V]) locate(i int) (runIdx, runStart, offset int) {
	pos := 0
	for idx, r := range s.runs {
		total := s.mgr.Length(r.item) + r.deleted
		if idx == len(s.runs)-1 || i < pos+total {
			return idx, pos, i - pos
		}
		pos += total
	}
	return 0, 0, i
}

// Get returns the value at i, if present.
func (s *SparseItems[I, V]) Get(i int) (value V, ok bool) {
	runIdx, _, offset := s.locate(i)
	r := s.runs[runIdx]
	if offset < 0 || offset >= s.mgr.Length(r.item) {
		return value, false
	}
	return s.mgr.Get(r.item, offset), true
}

// SetScalar overwrites the value at the already-present slot i in place,
// without touching the run structure. It errors if i is absent.
func (s *SparseItems[I, V]) SetScalar(i int, value V) error {
	runIdx, _, offset := s.locate(i)
	r := &s.runs[runIdx]
	if offset < 0 || offset >= s.mgr.Length(r.item) {
		return fmt.Errorf("%w: index %d", ErrSlotAbsent, i)
	}
	r.item = s.mgr.Replace(r.item, offset, value)
	return nil
}

// Has reports whether i is present.
func (s *SparseItems[I, V]) Has(i int) bool {
	_, ok := s.Get(i)
	return ok
}

// CountPresentBefore reports whether i is present, and how many present
// slots precede i (i.e. have index strictly less than i).
func (s *SparseItems[I, V]) CountPresentBefore(i int) (isPresent bool, count int) {
	pos := 0
	for _, r := range s.runs {
		itemLen := s.mgr.Length(r.item)
		total := itemLen + r.deleted
		if i < pos+itemLen {
			return true, count + (i - pos)
		}
		if i < pos+total {
			return false, count + itemLen
		}
		count += itemLen
		pos += total
	}
	return false, count
}

// padTo extends the sequence with trailing deleted slots so that Len() >= n.
func (s *SparseItems[I, V]) padTo(n int) {
	cur := s.Len()
	if cur >= n {
		return
	}
	s.runs[len(s.runs)-1].deleted += n - cur
}

// Set overwrites the run of length Length(item) starting at startIndex,
// extending the sequence with deleted slots first if startIndex lies
// beyond the current length. It returns the content that was replaced,
// padded on each side with deletes so its length equals Length(item).
func (s *SparseItems[I, V]) Set(startIndex int, item I) (replaced *SparseItems[I, V]) {
	itemLen := s.mgr.Length(item)
	end := startIndex + itemLen

	s.padTo(startIndex)
	total := s.Len()

	var left, mid, right *SparseItems[I, V]
	if end <= total {
		pieces := Split(s, startIndex, end)
		left, mid, right = pieces[0], pieces[1], pieces[2]
	} else {
		pieces := Split(s, startIndex)
		left, mid = pieces[0], pieces[1]
		mid = Merge(mid, deletedOnly(s.mgr, end-total))
		right = New(s.mgr)
	}

	*s = *Merge(left, single(s.mgr, item), right)
	return mid
}

// Delete marks count slots deleted starting at startIndex, extending the
// sequence first if needed. It returns the content that was replaced.
func (s *SparseItems[I, V]) Delete(startIndex, count int) (replaced *SparseItems[I, V]) {
	if count <= 0 {
		return New(s.mgr)
	}
	s.padTo(startIndex + count)

	pieces := Split(s, startIndex, startIndex+count)
	left, mid, right := pieces[0], pieces[1], pieces[2]

	*s = *Merge(left, deletedOnly(s.mgr, count), right)
	return mid
}

// FindNthPresent finds the absolute index of the k-th present slot (0-based)
// at or after startIndex. It errors if fewer than k+1 present slots exist
// from startIndex onward.
func (s *SparseItems[I, V]) FindNthPresent(startIndex, k int) (int, error) {
	runIdx, runStart, offset := s.locate(startIndex)
	remaining := k
	pos := runStart

	for i := runIdx; i < len(s.runs); i++ {
		r := s.runs[i]
		itemLen := s.mgr.Length(r.item)

		off := 0
		if i == runIdx {
			off = offset
			if off < 0 {
				off = 0
			}
		}
		if off < itemLen {
			avail := itemLen - off
			if remaining < avail {
				return pos + off + remaining, nil
			}
			remaining -= avail
		}
		pos += itemLen + r.deleted
	}
	return 0, fmt.Errorf("%w: wanted %d present slots from index %d, found fewer", ErrNotEnoughPresent, k+1, startIndex)
}
