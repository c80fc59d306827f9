package listpos_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/replistruct/listpos"
	"github.com/replistruct/listpos/order"
)

func TestTextInsertAndString(t *testing.T) {
	tx := listpos.NewText(listpos.Config{Order: order.New(order.Config{ID: "A"})})

	_, err := tx.InsertAt(0, "hllo")
	require.NoError(t, err)
	_, err = tx.InsertAt(1, "e")
	require.NoError(t, err)

	require.Equal(t, "hello", tx.String())
	require.Equal(t, 5, tx.Len())
}

func TestTextSetChar(t *testing.T) {
	tx := listpos.NewText(listpos.Config{Order: order.New(order.Config{ID: "A"})})
	_, err := tx.InsertAt(0, "cat")
	require.NoError(t, err)

	require.NoError(t, tx.SetChar(0, "b"))
	require.Equal(t, "bat", tx.String())

	err = tx.SetChar(0, "xy")
	require.ErrorIs(t, err, listpos.ErrCharShape)
}

func TestTextDeleteAt(t *testing.T) {
	tx := listpos.NewText(listpos.Config{Order: order.New(order.Config{ID: "A"})})
	_, err := tx.InsertAt(0, "hello world")
	require.NoError(t, err)

	require.NoError(t, tx.DeleteAt(5, 6))
	require.Equal(t, "hello", tx.String())
}

func TestTextInsertAtRejectsEmpty(t *testing.T) {
	tx := listpos.NewText(listpos.Config{Order: order.New(order.Config{ID: "A"})})
	_, err := tx.InsertAt(0, "")
	require.Error(t, err)
}

func TestTextConcurrentInsertsMerge(t *testing.T) {
	a := listpos.NewText(listpos.Config{Order: order.New(order.Config{ID: "A"})})
	b := listpos.NewText(listpos.Config{Order: order.New(order.Config{ID: "B"})})

	_, err := a.InsertAt(0, "hello")
	require.NoError(t, err)
	saved := a.Save()

	require.NoError(t, b.Load(saved))
	require.Equal(t, "hello", b.String())

	_, err = b.InsertAt(5, "!")
	require.NoError(t, err)
	require.NoError(t, a.Load(b.Save()))
	require.Equal(t, "hello!", a.String())
}

func TestTextSaveLoadRoundTrip(t *testing.T) {
	ord := order.New(order.Config{ID: "A"})
	tx := listpos.NewText(listpos.Config{Order: ord})
	_, err := tx.InsertAt(0, "roundtrip")
	require.NoError(t, err)

	saved := tx.Save()
	tx2 := listpos.NewText(listpos.Config{Order: order.New(order.Config{ID: "B"})})
	require.NoError(t, tx2.Load(saved))
	require.Equal(t, "roundtrip", tx2.String())
}
