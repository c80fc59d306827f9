package sparseitems

import "golang.org/x/exp/constraints"

// clampRange narrows [lo, hi) to fit within [bound0, bound1), returning an
// empty (lo >= hi) range if the two don't overlap at all.
func clampRange[T constraints.Ordered](lo, hi, bound0, bound1 T) (T, T) {
	if lo < bound0 {
		lo = bound0
	}
	if hi > bound1 {
		hi = bound1
	}
	return lo, hi
}
