package order_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/replistruct/listpos/order"
)

func newOrder(t *testing.T, id string) *order.Order {
	t.Helper()
	return order.New(order.Config{ID: id})
}

func TestMinMaxBounds(t *testing.T) {
	o := newOrder(t, "A")
	pos, _, err := o.CreatePositions(order.MinPosition, order.MaxPosition, 1)
	require.NoError(t, err)

	lt, err := o.Compare(order.MinPosition, pos)
	require.NoError(t, err)
	require.Less(t, lt, 0)

	gt, err := o.Compare(pos, order.MaxPosition)
	require.NoError(t, err)
	require.Less(t, gt, 0)
}

func TestCreatePositionsBetween(t *testing.T) {
	o := newOrder(t, "A")
	start, _, err := o.CreatePositions(order.MinPosition, order.MaxPosition, 3)
	require.NoError(t, err)

	lt, _ := o.Compare(order.MinPosition, start)
	require.Less(t, lt, 0)

	last := order.Position{BunchID: start.BunchID, InnerIndex: start.InnerIndex + 2}
	gt, _ := o.Compare(last, order.MaxPosition)
	require.Less(t, gt, 0)
}

func TestOrderBoundaryErrors(t *testing.T) {
	o := newOrder(t, "A")
	_, _, err := o.CreatePositions(order.MaxPosition, order.MaxPosition, 1)
	require.ErrorIs(t, err, order.ErrOrderBoundary)

	_, _, err = o.CreatePositions(order.MinPosition, order.MinPosition, 1)
	require.ErrorIs(t, err, order.ErrOrderBoundary)
}

func TestExtendOwnBunchShortcut(t *testing.T) {
	o := newOrder(t, "A")
	prev := order.MinPosition
	var firstBunch string

	for i := 0; i < 20; i++ {
		start, meta, err := o.CreatePositions(prev, order.MaxPosition, 1)
		require.NoError(t, err)
		if i == 0 {
			firstBunch = start.BunchID
			require.NotNil(t, meta)
		} else {
			require.Equal(t, firstBunch, start.BunchID, "forward typing must stay in one bunch")
			require.Nil(t, meta, "no new bunch after the first insert")
		}
		prev = start
	}
}

// TestConcurrentForwardTypingNoInterleave exercises scenario S3: two
// replicas concurrently extend forward from the same (prev, next) pair;
// after exchanging metas, their blocks are contiguous, never interleaved.
func TestConcurrentForwardTypingNoInterleave(t *testing.T) {
	a := newOrder(t, "A")
	b := newOrder(t, "B")

	var aPositions, bPositions []order.Position
	prev := order.MinPosition
	for i := 0; i < 3; i++ {
		start, _, err := a.CreatePositions(prev, order.MaxPosition, 1)
		require.NoError(t, err)
		aPositions = append(aPositions, start)
		prev = start
	}

	prev = order.MinPosition
	for i := 0; i < 3; i++ {
		start, _, err := b.CreatePositions(prev, order.MaxPosition, 1)
		require.NoError(t, err)
		bPositions = append(bPositions, start)
		prev = start
	}

	// Exchange metas: each bunch created is its own single-bunch meta.
	aBunch := aPositions[0].BunchID
	bBunch := bPositions[0].BunchID
	require.NoError(t, a.AddMetas([]order.BunchMeta{{BunchID: bBunch, ParentID: order.RootBunchID, Offset: 1}}))
	require.NoError(t, b.AddMetas([]order.BunchMeta{{BunchID: aBunch, ParentID: order.RootBunchID, Offset: 1}}))

	// Merged order must put one whole block before the other.
	rel, err := a.Compare(aPositions[0], bPositions[0])
	require.NoError(t, err)

	if rel < 0 {
		for i := 0; i < len(aPositions); i++ {
			for j := 0; j < len(bPositions); j++ {
				c, err := a.Compare(aPositions[i], bPositions[j])
				require.NoError(t, err)
				require.Less(t, c, 0)
			}
		}
	} else {
		for i := 0; i < len(aPositions); i++ {
			for j := 0; j < len(bPositions); j++ {
				c, err := a.Compare(bPositions[j], aPositions[i])
				require.NoError(t, err)
				require.Less(t, c, 0)
			}
		}
	}

	// Both replicas must agree on the tiebreak direction.
	relB, err := b.Compare(aPositions[0], bPositions[0])
	require.NoError(t, err)
	require.Equal(t, rel < 0, relB < 0)
}

func TestAddMetasConflict(t *testing.T) {
	o := newOrder(t, "A")
	require.NoError(t, o.AddMetas([]order.BunchMeta{{BunchID: "x", ParentID: order.RootBunchID, Offset: 1}}))
	err := o.AddMetas([]order.BunchMeta{{BunchID: "x", ParentID: order.RootBunchID, Offset: 3}})
	require.ErrorIs(t, err, order.ErrMetaConflict)
}

func TestAddMetasDuplicateIsSilent(t *testing.T) {
	o := newOrder(t, "A")
	meta := order.BunchMeta{BunchID: "x", ParentID: order.RootBunchID, Offset: 1}
	require.NoError(t, o.AddMetas([]order.BunchMeta{meta}))
	require.NoError(t, o.AddMetas([]order.BunchMeta{meta}))
}

func TestAddMetasMissingParent(t *testing.T) {
	o := newOrder(t, "A")
	err := o.AddMetas([]order.BunchMeta{{BunchID: "x", ParentID: "ghost", Offset: 1}})
	require.ErrorIs(t, err, order.ErrMetaMissingParent)
}

func TestAddMetasCycle(t *testing.T) {
	o := newOrder(t, "A")
	err := o.AddMetas([]order.BunchMeta{
		{BunchID: "x", ParentID: "y", Offset: 1},
		{BunchID: "y", ParentID: "x", Offset: 1},
	})
	require.ErrorIs(t, err, order.ErrMetaCycle)
}

func TestAddMetasRejectsRoot(t *testing.T) {
	o := newOrder(t, "A")
	err := o.AddMetas([]order.BunchMeta{{BunchID: order.RootBunchID, ParentID: "x", Offset: 1}})
	require.ErrorIs(t, err, order.ErrRootMeta)
}

func TestAddMetasOutOfOrderAncestry(t *testing.T) {
	o := newOrder(t, "A")
	// Child listed before its parent in the batch.
	err := o.AddMetas([]order.BunchMeta{
		{BunchID: "child", ParentID: "mid", Offset: 1},
		{BunchID: "mid", ParentID: order.RootBunchID, Offset: 1},
	})
	require.NoError(t, err)

	_, ok := o.HandleForBunch("child")
	require.True(t, ok)
}

func TestCompareUnknownBunch(t *testing.T) {
	o := newOrder(t, "A")
	_, err := o.Compare(order.Position{BunchID: "ghost", InnerIndex: 0}, order.MaxPosition)
	require.True(t, errors.Is(err, order.ErrUnknownBunch))
}

// TestCompareTotalOrder checks compare's axioms (reflexivity, antisymmetry,
// transitivity) over a randomly generated tree, the same property-testing
// shape brunokim/causal-tree's rapid-based tests use.
func TestCompareTotalOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		o := newOrder(t, "A")
		positions := []order.Position{order.MinPosition, order.MaxPosition}

		steps := rt.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			pi := rt.IntRange(0, len(positions)-1).Draw(rt, "pi")
			qi := rt.IntRange(0, len(positions)-1).Draw(rt, "qi")
			p, q := positions[pi], positions[qi]

			c, err := o.Compare(p, q)
			if err != nil || c == 0 {
				continue
			}
			if c > 0 {
				p, q = q, p
			}
			start, _, err := o.CreatePositions(p, q, 1)
			if err != nil {
				continue
			}
			positions = append(positions, start)
		}

		for _, a := range positions {
			self, err := o.Compare(a, a)
			require.NoError(t, err)
			require.Equal(t, 0, self)
		}
		for _, a := range positions {
			for _, b := range positions {
				ab, _ := o.Compare(a, b)
				ba, _ := o.Compare(b, a)
				require.Equal(t, sign(ab), -sign(ba), "antisymmetry for %+v, %+v", a, b)
			}
		}
		for _, a := range positions {
			for _, b := range positions {
				for _, c := range positions {
					ab, _ := o.Compare(a, b)
					bc, _ := o.Compare(b, c)
					if ab < 0 && bc < 0 {
						ac, _ := o.Compare(a, c)
						require.Less(t, ac, 0, "transitivity for %+v < %+v < %+v", a, b, c)
					}
				}
			}
		}
	})
}

// TestSaveStateLoadStateRoundTrip checks that an Order's saved shape is
// byte-for-byte reproducible after loading into a fresh Order, using
// cmp.Diff for a precise structural failure message if it ever isn't.
func TestSaveStateLoadStateRoundTrip(t *testing.T) {
	o := newOrder(t, "A")
	prev := order.MinPosition
	for i := 0; i < 4; i++ {
		pos, _, err := o.CreatePositions(prev, order.MaxPosition, 1)
		require.NoError(t, err)
		prev = pos
	}
	mid, _, err := o.CreatePositions(order.MinPosition, prev, 1)
	require.NoError(t, err)
	_, _, err = o.CreatePositions(order.MinPosition, mid, 1)
	require.NoError(t, err)

	saved := o.SaveState()

	reloaded := newOrder(t, "B")
	require.NoError(t, reloaded.LoadState(saved))

	if diff := cmp.Diff(saved, reloaded.SaveState()); diff != "" {
		t.Fatalf("SaveState mismatch after round trip (-want +got):\n%s", diff)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}
