package listpos_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/replistruct/listpos"
	"github.com/replistruct/listpos/order"
)

func TestOutlineInsertAndHas(t *testing.T) {
	o := listpos.NewOutline(listpos.Config{Order: order.New(order.Config{ID: "A"})})

	_, err := o.InsertAt(0, 3)
	require.NoError(t, err)
	require.Equal(t, 3, o.Len())
	require.True(t, o.Has(0))
	require.True(t, o.Has(2))
}

func TestOutlineDeleteAt(t *testing.T) {
	o := listpos.NewOutline(listpos.Config{Order: order.New(order.Config{ID: "A"})})
	_, err := o.InsertAt(0, 5)
	require.NoError(t, err)

	require.NoError(t, o.DeleteAt(1, 2))
	require.Equal(t, 3, o.Len())
}

func TestOutlineInsertAtRejectsZeroCount(t *testing.T) {
	o := listpos.NewOutline(listpos.Config{Order: order.New(order.Config{ID: "A"})})
	_, err := o.InsertAt(0, 0)
	require.Error(t, err)
}

func TestOutlineSaveLoadRoundTrip(t *testing.T) {
	ord := order.New(order.Config{ID: "A"})
	o := listpos.NewOutline(listpos.Config{Order: ord})
	_, err := o.InsertAt(0, 4)
	require.NoError(t, err)

	saved := o.Save()
	o2 := listpos.NewOutline(listpos.Config{Order: order.New(order.Config{ID: "B"})})
	require.NoError(t, o2.Load(saved))
	require.Equal(t, o.Len(), o2.Len())
}

func TestOutlineCursorRoundTrip(t *testing.T) {
	o := listpos.NewOutline(listpos.Config{Order: order.New(order.Config{ID: "A"})})
	_, err := o.InsertAt(0, 3)
	require.NoError(t, err)

	var positions []order.Position
	for pos := range o.Positions(0, -1) {
		positions = append(positions, pos)
	}
	require.Len(t, positions, 3)

	idx, err := o.IndexOf(o.Cursor(positions[1], listpos.Bound))
	require.NoError(t, err)
	require.Equal(t, 1, idx)
}
