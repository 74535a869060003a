package rates

import "cmp"

// Candidate pairs a position on the time axis with an arbitrary value.
type Candidate[X cmp.Ordered, V any] struct {
	X     X
	Value V
}

// FindNeighborsLeftBiased picks the true (left, right) bracket around target
// from up to two unordered candidates.
//
// With both candidates present they are first ordered by X. A target inside
// the closed range yields both; a target past the second candidate yields only
// it as the left neighbor; a target before the first candidate yields nothing.
// A single candidate becomes the left neighbor only when the target is at or
// after it. Exact ties resolve leftward, matching the interpolator's bias.
func FindNeighborsLeftBiased[X cmp.Ordered, V any](target X, a, b *Candidate[X, V]) (left, right *V) {
	switch {
	case a != nil && b != nil:
		first, second := a, b
		if second.X < first.X {
			first, second = second, first
		}
		if target < first.X {
			return nil, nil
		}
		if target <= second.X {
			return &first.Value, &second.Value
		}
		return &second.Value, nil
	case a != nil:
		if target >= a.X {
			return &a.Value, nil
		}
		return nil, nil
	case b != nil:
		if target >= b.X {
			return &b.Value, nil
		}
		return nil, nil
	default:
		return nil, nil
	}
}
