package calculation

import (
	"fmt"

	"github.com/luanwie/cltfacil/internal/domain"
	"github.com/shopspring/decimal"
)

// BracketEvaluation is the outcome of running a base through a
// progressive schedule. A value object: callers may cache it keyed by
// (table version, base) since Evaluate is pure.
type BracketEvaluation struct {
	Amount        decimal.Decimal
	EffectiveRate decimal.Decimal
	MarginalRate  decimal.Decimal
}

// Evaluate runs base through the progressive table using the cumulative
// deduction form: amount = base*rate - deduction of the highest band whose
// floor does not exceed base, clamped at zero. The same function serves
// the contribution and the income-withholding schedules; only the table
// differs.
func Evaluate(table domain.BracketTable, base decimal.Decimal) (BracketEvaluation, error) {
	if base.IsNegative() {
		return BracketEvaluation{}, fmt.Errorf("bracket base %s: %w", base, domain.ErrNegativeValue)
	}
	if len(table.Bands) == 0 {
		return BracketEvaluation{}, fmt.Errorf("bracket table %s has no bands", table.Version)
	}
	band := table.Bands[0]
	for _, b := range table.Bands[1:] {
		if b.Floor.GreaterThan(base) {
			break
		}
		band = b
	}
	amount := base.Mul(band.Rate).Sub(band.Deduction)
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	effective := decimal.Zero
	if base.IsPositive() {
		effective = amount.Div(base)
	}
	return BracketEvaluation{Amount: amount, EffectiveRate: effective, MarginalRate: band.Rate}, nil
}

// EvaluateWithAllowances applies the flat per-dependent and alimony
// deductions to the base before running the schedule. This is the
// income-withholding path; the contribution schedule takes no allowances.
func EvaluateWithAllowances(policy domain.WithholdingPolicy, base decimal.Decimal, dependents int, alimony decimal.Decimal) (BracketEvaluation, error) {
	if dependents < 0 {
		return BracketEvaluation{}, fmt.Errorf("dependents %d: %w", dependents, domain.ErrNegativeValue)
	}
	if alimony.IsNegative() {
		return BracketEvaluation{}, fmt.Errorf("alimony %s: %w", alimony, domain.ErrNegativeValue)
	}
	if base.IsNegative() {
		return BracketEvaluation{}, fmt.Errorf("withholding base %s: %w", base, domain.ErrNegativeValue)
	}
	adjusted := base.
		Sub(policy.DependentDeduction.Mul(decimal.NewFromInt(int64(dependents)))).
		Sub(alimony)
	if adjusted.IsNegative() {
		adjusted = decimal.Zero
	}
	return Evaluate(policy.Table, adjusted)
}

// EvaluateSimplified is the flat-deduction alternative schedule: the same
// table evaluated against max(0, base - simplified deduction). Kept as a
// distinct named strategy rather than a flag on Evaluate.
func EvaluateSimplified(policy domain.WithholdingPolicy, base decimal.Decimal) (BracketEvaluation, error) {
	if base.IsNegative() {
		return BracketEvaluation{}, fmt.Errorf("withholding base %s: %w", base, domain.ErrNegativeValue)
	}
	adjusted := base.Sub(policy.SimplifiedDeduction)
	if adjusted.IsNegative() {
		adjusted = decimal.Zero
	}
	return Evaluate(policy.Table, adjusted)
}
