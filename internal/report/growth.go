package report

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Growth returns the percentage change from previous to current, signed.
// A zero baseline always yields 0, even when current is non-zero: reporting
// 0% beats reporting an infinite or undefined growth figure.
func Growth(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred)
}

// GrowthCount is Growth over plain counts.
func GrowthCount(current, previous int) decimal.Decimal {
	return Growth(decimal.NewFromInt(int64(current)), decimal.NewFromInt(int64(previous)))
}
