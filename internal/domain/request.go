package domain

import (
	"github.com/shopspring/decimal"
)

// CalculationKind selects which calculator a request runs.
type CalculationKind string

const (
	KindTermination    CalculationKind = "termination"
	KindINSS           CalculationKind = "inss"
	KindIRRF           CalculationKind = "irrf"
	KindIRRFSimplified CalculationKind = "irrf_simplified"
	KindNightShift     CalculationKind = "night_shift"
)

// CalculationRequest is the single request value the engine consumes.
// Exactly one of the kind-specific sections must be populated, matching
// Kind. Everything derived during evaluation is a pure function of this
// value plus the policy set.
type CalculationRequest struct {
	Kind        CalculationKind   `yaml:"kind" json:"kind"`
	Termination *TerminationInput `yaml:"termination,omitempty" json:"termination,omitempty"`
	Withholding *WithholdingInput `yaml:"withholding,omitempty" json:"withholding,omitempty"`
	NightShift  *NightShiftInput  `yaml:"night_shift,omitempty" json:"night_shift,omitempty"`
}

// TerminationInput is a settlement request.
type TerminationInput struct {
	Facts      EmploymentFacts    `yaml:"facts" json:"facts"`
	Variant    TerminationVariant `yaml:"variant" json:"variant"`
	NoticeMode NoticeMode         `yaml:"notice_mode" json:"notice_mode"`
	Deductions decimal.Decimal    `yaml:"deductions" json:"deductions"`
}

// WithholdingInput is a bracket-schedule request. Dependents and Alimony
// only apply to the income-withholding schedule.
type WithholdingInput struct {
	Base       decimal.Decimal `yaml:"base" json:"base"`
	Dependents int             `yaml:"dependents" json:"dependents"`
	Alimony    decimal.Decimal `yaml:"alimony" json:"alimony"`
}

// NightShiftInput is a night-differential request. Shift boundaries are
// minutes since midnight; MonthlyHours of zero applies the standard
// divisor, recorded as an assumption in the response.
type NightShiftInput struct {
	ShiftStartMinute int             `yaml:"shift_start_minute" json:"shift_start_minute"`
	ShiftEndMinute   int             `yaml:"shift_end_minute" json:"shift_end_minute"`
	BreakMinutes     int             `yaml:"break_minutes" json:"break_minutes"`
	Category         WorkerCategory  `yaml:"category" json:"category"`
	AllowExtension   bool            `yaml:"allow_extension" json:"allow_extension"`
	MonthlyBase      decimal.Decimal `yaml:"monthly_base" json:"monthly_base"`
	MonthlyHours     decimal.Decimal `yaml:"monthly_hours" json:"monthly_hours"`
}

// ResponseStatus classifies a calculation outcome.
type ResponseStatus string

const (
	StatusOK         ResponseStatus = "ok"
	StatusNeedsInput ResponseStatus = "needs_input"
	StatusError      ResponseStatus = "error"
)

// LineItem is one labelled amount in a result. Amounts are negative for
// deductions.
type LineItem struct {
	Label  string          `yaml:"label" json:"label"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// CalculationResponse is the full outcome of one request. It is built
// fresh per request and never mutated afterwards. AssumptionsApplied
// enumerates every default the engine filled in silently.
type CalculationResponse struct {
	Status             ResponseStatus             `yaml:"status" json:"status"`
	LineItems          []LineItem                 `yaml:"line_items" json:"line_items"`
	Total              decimal.Decimal            `yaml:"total" json:"total"`
	EffectiveRatesUsed map[string]decimal.Decimal `yaml:"effective_rates_used,omitempty" json:"effective_rates_used,omitempty"`
	AssumptionsApplied []string                   `yaml:"assumptions_applied,omitempty" json:"assumptions_applied,omitempty"`
	MissingFields      []string                   `yaml:"missing_fields,omitempty" json:"missing_fields,omitempty"`
	Message            string                     `yaml:"message,omitempty" json:"message,omitempty"`
}
