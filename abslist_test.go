package listpos_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/replistruct/listpos"
	"github.com/replistruct/listpos/abspos"
	"github.com/replistruct/listpos/order"
)

func TestAbsListInsertAndResolve(t *testing.T) {
	a := listpos.NewAbsList[string](listpos.Config{Order: order.New(order.Config{ID: "A"})})

	ap, err := a.InsertAt(0, "hello")
	require.NoError(t, err)

	idx, err := a.Resolve(ap)
	require.NoError(t, err)
	require.Equal(t, 0, idx)
}

// TestAbsListPositionUsableBeforeMetaDelivered is the scenario AbsList
// exists for: a replica that has never seen any BunchMeta for the
// position can still install its whole ancestor chain from the
// AbsPosition alone, without a separate metadata delivery step.
func TestAbsListPositionUsableBeforeMetaDelivered(t *testing.T) {
	writer := listpos.NewAbsList[string](listpos.Config{Order: order.New(order.Config{ID: "A"})})
	_, err := writer.InsertAt(0, "x")
	require.NoError(t, err)
	ap, err := writer.InsertAt(1, "y")
	require.NoError(t, err)

	fresh := order.New(order.Config{ID: "B"})
	pos, metas, err := abspos.Decode(ap)
	require.NoError(t, err)
	_, err = fresh.HandleOf(pos)
	require.Error(t, err, "fresh replica must not already know this bunch")

	require.NoError(t, fresh.AddMetas(metas))
	h, err := fresh.HandleOf(pos)
	require.NoError(t, err)
	require.False(t, fresh.IsRoot(h))
}

func TestAbsListItems(t *testing.T) {
	a := listpos.NewAbsList[int](listpos.Config{Order: order.New(order.Config{ID: "A"})})
	_, err := a.InsertAt(0, 1, 2, 3)
	require.NoError(t, err)

	var got []int
	for _, v := range a.Items(0, -1) {
		got = append(got, v)
	}
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestAbsListSaveLoadRoundTrip(t *testing.T) {
	ord := order.New(order.Config{ID: "A"})
	a := listpos.NewAbsList[int](listpos.Config{Order: ord})
	_, err := a.InsertAt(0, 1, 2)
	require.NoError(t, err)

	saved := a.Save()
	a2 := listpos.NewAbsList[int](listpos.Config{Order: order.New(order.Config{ID: "B"})})
	require.NoError(t, a2.Load(saved))
	require.Equal(t, a.Len(), a2.Len())
}
