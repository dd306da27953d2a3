package compare

import (
	"github.com/luanwie/cltfacil/internal/domain"
	"github.com/shopspring/decimal"
)

// VariantResult is one termination variant's full settlement outcome
// plus its deltas against the base variant.
type VariantResult struct {
	Variant    domain.TerminationVariant `json:"variant"`
	LineItems  []domain.LineItem         `json:"line_items"`
	Total      decimal.Decimal           `json:"total"`
	NoticeDays int                       `json:"notice_days"`

	// Comparison to base
	DiffFromBase decimal.Decimal `json:"diff_from_base"`
	PctFromBase  decimal.Decimal `json:"pct_from_base"`
}

// ComparisonSet holds one settlement computed under every requested
// variant, anchored on the variant the request declared.
type ComparisonSet struct {
	BaseVariant        domain.TerminationVariant `json:"base_variant"`
	BaseResult         *VariantResult            `json:"base_result"`
	AlternativeResults []VariantResult           `json:"alternative_results"`
	Notes              []string                  `json:"notes,omitempty"`
}

// AllVariants lists every supported termination variant in display order.
var AllVariants = []domain.TerminationVariant{
	domain.WithoutCause,
	domain.ByEmployeeRequest,
	domain.MutualAgreement,
	domain.FixedTermEnd,
	domain.ForCause,
}

// variantLabels maps variants to display names.
var variantLabels = map[domain.TerminationVariant]string{
	domain.WithoutCause:      "Dismissal without cause",
	domain.ByEmployeeRequest: "Resignation",
	domain.MutualAgreement:   "Mutual agreement",
	domain.FixedTermEnd:      "Fixed-term contract end",
	domain.ForCause:          "Dismissal for cause",
}

// Label returns the display name for a variant, falling back to the raw
// identifier for unknown values.
func Label(variant domain.TerminationVariant) string {
	if label, ok := variantLabels[variant]; ok {
		return label
	}
	return string(variant)
}

// GenerateNotes summarizes the spread across variants: which pays the
// most, which the least, and how far apart they land.
func GenerateNotes(compSet *ComparisonSet) []string {
	notes := []string{}
	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return notes
	}

	highest := compSet.BaseResult
	lowest := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Total.GreaterThan(highest.Total) {
			highest = alt
		}
		if alt.Total.LessThan(lowest.Total) {
			lowest = alt
		}
	}

	if highest != compSet.BaseResult {
		diff := highest.Total.Sub(compSet.BaseResult.Total)
		notes = append(notes,
			"Highest total: "+Label(highest.Variant)+" pays R$ "+diff.StringFixed(2)+
				" more than "+Label(compSet.BaseVariant))
	}
	if lowest != compSet.BaseResult {
		diff := compSet.BaseResult.Total.Sub(lowest.Total)
		notes = append(notes,
			"Lowest total: "+Label(lowest.Variant)+" pays R$ "+diff.StringFixed(2)+
				" less than "+Label(compSet.BaseVariant))
	}
	if !highest.Total.Equal(lowest.Total) {
		spread := highest.Total.Sub(lowest.Total)
		notes = append(notes,
			"Spread between variants: R$ "+spread.StringFixed(2))
	}

	return notes
}
