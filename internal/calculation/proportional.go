package calculation

import (
	"fmt"

	"github.com/luanwie/cltfacil/internal/domain"
	"github.com/shopspring/decimal"
)

// ProportionalAmount scales monthlyBase by numerator/denominator. It is
// the one twelfths/thirtieths formula in the engine: year-end bonus and
// vacation proration call it with denominator 12, daily-rate settlements
// with denominator 30. Callers supply both numbers and never re-derive
// the ratio themselves.
func ProportionalAmount(monthlyBase decimal.Decimal, numerator, denominator int) (decimal.Decimal, error) {
	if monthlyBase.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("monthly base %s: %w", monthlyBase, domain.ErrNegativeValue)
	}
	if numerator < 0 {
		return decimal.Decimal{}, fmt.Errorf("numerator %d: %w", numerator, domain.ErrNegativeValue)
	}
	if denominator <= 0 {
		return decimal.Decimal{}, fmt.Errorf("proportional denominator must be positive, got %d", denominator)
	}
	return monthlyBase.
		Mul(decimal.NewFromInt(int64(numerator))).
		Div(decimal.NewFromInt(int64(denominator))), nil
}

// ConstitutionalThird is the one-third addition on a vacation
// entitlement. Applied only when the calling policy asks for it.
func ConstitutionalThird(entitlement decimal.Decimal) decimal.Decimal {
	return entitlement.Div(decimal.NewFromInt(3))
}
