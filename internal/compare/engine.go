package compare

import (
	"errors"
	"fmt"

	"github.com/luanwie/cltfacil/internal/calculation"
	"github.com/luanwie/cltfacil/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareEngine runs one employment history through several termination
// variants and reports the outcomes side by side.
type CompareEngine struct {
	Policies *domain.PolicySet
}

// NewCompareEngine creates a comparison engine over a validated policy set.
func NewCompareEngine(policies *domain.PolicySet) *CompareEngine {
	return &CompareEngine{Policies: policies}
}

// Compare settles the input under its declared variant and under every
// requested alternative. Variants that cannot apply to the facts are
// skipped silently only when the failure is variant-specific; broken
// facts fail the whole comparison.
func (ce *CompareEngine) Compare(input domain.TerminationInput, variants []domain.TerminationVariant) (*ComparisonSet, error) {
	if len(variants) == 0 {
		variants = AllVariants
	}

	baseResult, err := ce.settle(input, input.Variant)
	if err != nil {
		return nil, fmt.Errorf("base variant %s: %w", input.Variant, err)
	}

	alternatives := []VariantResult{}
	for _, variant := range variants {
		if variant == input.Variant {
			continue
		}
		altResult, err := ce.settle(input, variant)
		if err != nil {
			if errors.Is(err, domain.ErrUnsupportedVariant) {
				return nil, err
			}
			return nil, fmt.Errorf("variant %s: %w", variant, err)
		}
		alternatives = append(alternatives, withDeltas(*altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseVariant:        input.Variant,
		BaseResult:         baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Notes = GenerateNotes(compSet)

	return compSet, nil
}

// settle runs the settlement calculator for one variant, rounding the
// amounts to cents the same way the single-variant path does.
func (ce *CompareEngine) settle(input domain.TerminationInput, variant domain.TerminationVariant) (*VariantResult, error) {
	input.Variant = variant
	settlement, err := calculation.CalculateSettlement(input, ce.Policies.Termination)
	if err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, len(settlement.LineItems))
	for i, item := range settlement.LineItems {
		items[i] = domain.LineItem{Label: item.Label, Amount: item.Amount.Round(2)}
	}

	return &VariantResult{
		Variant:    variant,
		LineItems:  items,
		Total:      settlement.Total.Round(2),
		NoticeDays: settlement.NoticeDays,
	}, nil
}

// withDeltas fills in the comparison fields against the base result.
func withDeltas(alt VariantResult, base *VariantResult) VariantResult {
	alt.DiffFromBase = alt.Total.Sub(base.Total)
	if !base.Total.IsZero() {
		alt.PctFromBase = alt.DiffFromBase.
			Div(base.Total).
			Mul(decimal.NewFromInt(100)).
			Round(1)
	}
	return alt
}
