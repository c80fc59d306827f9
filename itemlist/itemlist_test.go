package itemlist_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/replistruct/listpos/itemlist"
	"github.com/replistruct/listpos/order"
)

// intsManager treats the run's item as []int and the scalar as int.
type intsManager struct{}

func (intsManager) New() []int { return []int{} }

func (intsManager) Deserialize(raw any) ([]int, error) {
	switch v := raw.(type) {
	case []int:
		return v, nil
	case []any:
		out := make([]int, len(v))
		for i, x := range v {
			switch n := x.(type) {
			case int:
				out[i] = n
			case float64:
				out[i] = int(n)
			}
		}
		return out, nil
	default:
		return nil, nil
	}
}

func (intsManager) Length(item []int) int { return len(item) }

func (intsManager) Slice(item []int, start, end int) []int {
	out := make([]int, end-start)
	copy(out, item[start:end])
	return out
}

func (intsManager) Append(dst, src []int) []int {
	out := make([]int, 0, len(dst)+len(src))
	out = append(out, dst...)
	out = append(out, src...)
	return out
}

func (intsManager) Get(item []int, offset int) int { return item[offset] }

func (intsManager) Replace(item []int, offset int, value int) []int {
	out := append([]int(nil), item...)
	out[offset] = value
	return out
}

func newList(t *testing.T) (*order.Order, *itemlist.ItemList[[]int, int]) {
	t.Helper()
	ord := order.New(order.Config{ID: "A"})
	l := itemlist.New(itemlist.Config[[]int, int]{Order: ord, Manager: intsManager{}})
	return ord, l
}

func insertOne(t *testing.T, l *itemlist.ItemList[[]int, int], index, value int) order.Position {
	t.Helper()
	pos, _, err := l.InsertAt(index, []int{value})
	require.NoError(t, err)
	return pos
}

func TestInsertAtAppendAndGet(t *testing.T) {
	_, l := newList(t)
	insertOne(t, l, 0, 10)
	insertOne(t, l, 1, 20)
	insertOne(t, l, 2, 30)

	require.Equal(t, 3, l.Len())
	for i, want := range []int{10, 20, 30} {
		v, ok := l.Get(i)
		require.True(t, ok)
		require.Equal(t, want, v)
	}
}

func TestInsertAtMiddle(t *testing.T) {
	_, l := newList(t)
	insertOne(t, l, 0, 10)
	insertOne(t, l, 1, 30)
	insertOne(t, l, 1, 20) // between 10 and 30

	got := []int{}
	for i := 0; i < l.Len(); i++ {
		v, _ := l.Get(i)
		got = append(got, v)
	}
	require.Equal(t, []int{10, 20, 30}, got)
}

func TestInsertAtRejectsOutOfRange(t *testing.T) {
	_, l := newList(t)
	_, _, err := l.InsertAt(1, []int{1})
	require.ErrorIs(t, err, itemlist.ErrRangeError)
}

func TestInsertAtRejectsEmpty(t *testing.T) {
	_, l := newList(t)
	_, _, err := l.InsertAt(0, []int{})
	require.ErrorIs(t, err, itemlist.ErrEmptyBulk)
}

func TestDeleteAtRemovesValues(t *testing.T) {
	_, l := newList(t)
	for i, v := range []int{10, 20, 30, 40} {
		insertOne(t, l, i, v)
	}
	require.NoError(t, l.DeleteAt(1, 2))
	require.Equal(t, 2, l.Len())

	got := []int{}
	for i := 0; i < l.Len(); i++ {
		v, _ := l.Get(i)
		got = append(got, v)
	}
	require.Equal(t, []int{10, 40}, got)
}

func TestIndexOfPositionRoundTrip(t *testing.T) {
	_, l := newList(t)
	var positions []order.Position
	for i, v := range []int{1, 2, 3, 4, 5} {
		positions = append(positions, insertOne(t, l, i, v))
	}

	for i, pos := range positions {
		idx, err := l.IndexOfPosition(pos, itemlist.SearchNone)
		require.NoError(t, err)
		require.Equal(t, i, idx)

		got, err := l.PositionAt(i)
		require.NoError(t, err)
		require.Equal(t, pos, got)
	}
}

func TestItemsYieldsInOrderRuns(t *testing.T) {
	_, l := newList(t)
	insertOne(t, l, 0, 1)
	insertOne(t, l, 1, 3)
	insertOne(t, l, 1, 2) // interleaves to force more than one bunch

	var values []int
	for _, item := range l.Items(0, -1) {
		values = append(values, item...)
	}
	require.Equal(t, []int{1, 2, 3}, values)
}

func TestItemsClipsToRange(t *testing.T) {
	_, l := newList(t)
	for i, v := range []int{0, 1, 2, 3, 4} {
		insertOne(t, l, i, v)
	}
	var values []int
	for _, item := range l.Items(1, 3) {
		values = append(values, item...)
	}
	require.Equal(t, []int{1, 2}, values)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ord, l := newList(t)
	for i, v := range []int{1, 2, 3} {
		insertOne(t, l, i, v)
	}

	saved := l.SaveState()

	l2 := itemlist.New(itemlist.Config[[]int, int]{Order: ord, Manager: intsManager{}})
	require.NoError(t, l2.LoadState(saved))
	require.Equal(t, l.Len(), l2.Len())

	for i := 0; i < l.Len(); i++ {
		want, _ := l.Get(i)
		got, ok := l2.Get(i)
		require.True(t, ok)
		require.Equal(t, want, got)
	}
}

func TestLoadStateUnknownBunchErrors(t *testing.T) {
	ord := order.New(order.Config{ID: "A"})
	l := itemlist.New(itemlist.Config[[]int, int]{Order: ord, Manager: intsManager{}})
	err := l.LoadState(itemlist.SavedState{"ghost": {[]int{1}, 0}})
	require.ErrorIs(t, err, itemlist.ErrLoadFailed)
}

// TestItemListAgainstDenseModel differentially tests InsertAt/DeleteAt/Get
// against a plain Go slice, driving random operations through one ItemList.
func TestItemListAgainstDenseModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		_, l := newList(t)
		var model []int

		ops := rt.IntRange(1, 30).Draw(rt, "ops")
		for op := 0; op < ops; op++ {
			if len(model) == 0 || rt.IntRange(0, 1).Draw(rt, "kind") == 0 {
				idx := rt.IntRange(0, len(model)).Draw(rt, "insertIdx")
				v := rt.IntRange(0, 1000).Draw(rt, "value")
				_, _, err := l.InsertAt(idx, []int{v})
				require.NoError(t, err)
				model = append(model, 0)
				copy(model[idx+1:], model[idx:])
				model[idx] = v
			} else {
				idx := rt.IntRange(0, len(model)-1).Draw(rt, "deleteIdx")
				n := rt.IntRange(1, len(model)-idx).Draw(rt, "deleteN")
				require.NoError(t, l.DeleteAt(idx, n))
				model = append(model[:idx], model[idx+n:]...)
			}
		}

		require.Equal(t, len(model), l.Len())
		for i, want := range model {
			got, ok := l.Get(i)
			require.True(t, ok)
			require.Equal(t, want, got)
		}
	})
}
