package rates

import (
	"github.com/shopspring/decimal"

	"github.com/fintrackd/fintrack_backend/internal/apperrors"
)

// divisionScale bounds the number of decimal places kept when computing the
// interpolation slope. Rates are re-rounded at the response boundary, so the
// working scale only has to exceed it.
const divisionScale = 28

// XY is a single decimal point on the interpolation axis.
type XY struct {
	X decimal.Decimal
	Y decimal.Decimal
}

// TryLinearInterpolate linearly interpolates between left and right for targetX.
//
// The function is left-biased: with only a left point, its value propagates
// indefinitely rightward. If the two points share the same X, the right one
// wins. A target at or after the right anchor clamps to the right value, and a
// target strictly before the left anchor is unresolved (nil), leaving the
// caller to fall back.
func TryLinearInterpolate(left, right *XY, targetX decimal.Decimal) (*decimal.Decimal, error) {
	switch {
	case left != nil && right == nil:
		y := left.Y
		return &y, nil
	case left != nil && right != nil:
		if left.X.Equal(right.X) && targetX.Equal(left.X) {
			y := right.Y
			return &y, nil
		}
		if targetX.GreaterThanOrEqual(left.X) && targetX.GreaterThanOrEqual(right.X) {
			y := right.Y
			return &y, nil
		}
		if targetX.LessThan(left.X) {
			return nil, nil
		}
		run := right.X.Sub(left.X)
		if run.IsZero() {
			return nil, apperrors.ErrOverflowOrUnderflow
		}
		slope := right.Y.Sub(left.Y).DivRound(run, divisionScale)
		delta, err := MulChecked(slope, targetX.Sub(left.X))
		if err != nil {
			return nil, err
		}
		y := left.Y.Add(delta)
		return &y, nil
	default:
		return nil, nil
	}
}
