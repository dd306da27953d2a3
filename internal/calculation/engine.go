package calculation

import (
	"fmt"

	"github.com/luanwie/cltfacil/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultMonthlyHours is the documented default hours divisor applied
// when a night-shift request does not supply one. Its use is always
// recorded in AssumptionsApplied.
var DefaultMonthlyHours = decimal.NewFromInt(220)

// Engine routes calculation requests to the calculator their kind
// selects. It holds only the immutable policy set for the current epoch;
// every evaluation is a pure function of (policies, request), so any
// number of requests may run concurrently on one Engine. Moving to a new
// policy epoch means constructing a new Engine, never mutating the tables
// of this one.
type Engine struct {
	Policies *domain.PolicySet
}

// NewEngine creates an engine over a validated policy set.
func NewEngine(policies *domain.PolicySet) *Engine {
	return &Engine{Policies: policies}
}

// Calculate evaluates one request. Responses with status needs_input or
// error are returned together with the classifying error; partial results
// are never produced.
func (e *Engine) Calculate(req *domain.CalculationRequest) (*domain.CalculationResponse, error) {
	if req == nil || req.Kind == "" {
		return needsInput("kind")
	}
	switch req.Kind {
	case domain.KindTermination:
		return e.calculateTermination(req.Termination)
	case domain.KindINSS:
		return e.calculateContribution(req.Withholding)
	case domain.KindIRRF:
		return e.calculateWithholding(req.Withholding, false)
	case domain.KindIRRFSimplified:
		return e.calculateWithholding(req.Withholding, true)
	case domain.KindNightShift:
		return e.calculateNightShift(req.NightShift)
	default:
		err := fmt.Errorf("calculation kind %q unknown", req.Kind)
		return errorResponse(err), err
	}
}

func needsInput(fields ...string) (*domain.CalculationResponse, error) {
	err := &domain.MissingInputError{Fields: fields}
	return &domain.CalculationResponse{
		Status:        domain.StatusNeedsInput,
		MissingFields: fields,
		Message:       err.Error(),
	}, err
}

func errorResponse(err error) *domain.CalculationResponse {
	return &domain.CalculationResponse{Status: domain.StatusError, Message: err.Error()}
}

// roundItems copies line items rounded to display precision. Internal
// arithmetic stays unrounded; two decimal places apply only here, at the
// response boundary.
func roundItems(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, it := range items {
		out[i] = domain.LineItem{Label: it.Label, Amount: it.Amount.Round(2)}
	}
	return out
}

func (e *Engine) calculateTermination(input *domain.TerminationInput) (*domain.CalculationResponse, error) {
	if input == nil {
		return needsInput("termination")
	}
	var missing []string
	if input.Facts.AdmissionDate.IsZero() {
		missing = append(missing, "termination.facts.admission_date")
	}
	if input.Facts.TerminationDate == nil {
		missing = append(missing, "termination.facts.termination_date")
	}
	if input.Facts.MonthlyBase.IsZero() {
		missing = append(missing, "termination.facts.monthly_base")
	}
	if input.Variant == "" {
		missing = append(missing, "termination.variant")
	}
	if input.NoticeMode == "" {
		missing = append(missing, "termination.notice_mode")
	}
	if len(missing) > 0 {
		return needsInput(missing...)
	}

	result, err := CalculateSettlement(*input, e.Policies.Termination)
	if err != nil {
		if me, ok := domain.IsMissingInput(err); ok {
			return needsInput(me.Fields...)
		}
		return errorResponse(err), err
	}
	return &domain.CalculationResponse{
		Status:    domain.StatusOK,
		LineItems: roundItems(result.LineItems),
		Total:     result.Total.Round(2),
	}, nil
}

func (e *Engine) calculateContribution(input *domain.WithholdingInput) (*domain.CalculationResponse, error) {
	if input == nil {
		return needsInput("withholding")
	}
	if input.Base.IsZero() {
		return needsInput("withholding.base")
	}
	eval, err := Evaluate(e.Policies.INSS, input.Base)
	if err != nil {
		return errorResponse(err), err
	}
	return bracketResponse("Social contribution", eval), nil
}

func (e *Engine) calculateWithholding(input *domain.WithholdingInput, simplified bool) (*domain.CalculationResponse, error) {
	if input == nil {
		return needsInput("withholding")
	}
	if input.Base.IsZero() {
		return needsInput("withholding.base")
	}
	var (
		eval BracketEvaluation
		err  error
	)
	if simplified {
		eval, err = EvaluateSimplified(e.Policies.IRRF, input.Base)
	} else {
		eval, err = EvaluateWithAllowances(e.Policies.IRRF, input.Base, input.Dependents, input.Alimony)
	}
	if err != nil {
		return errorResponse(err), err
	}
	resp := bracketResponse("Income withholding", eval)
	if simplified {
		resp.AssumptionsApplied = append(resp.AssumptionsApplied,
			fmt.Sprintf("applied simplified flat deduction of %s instead of dependent and alimony allowances",
				e.Policies.IRRF.SimplifiedDeduction.StringFixed(2)))
	}
	return resp, nil
}

func bracketResponse(label string, eval BracketEvaluation) *domain.CalculationResponse {
	return &domain.CalculationResponse{
		Status:    domain.StatusOK,
		LineItems: []domain.LineItem{{Label: label, Amount: eval.Amount.Round(2)}},
		Total:     eval.Amount.Round(2),
		EffectiveRatesUsed: map[string]decimal.Decimal{
			"effective_rate": eval.EffectiveRate,
			"marginal_rate":  eval.MarginalRate,
		},
	}
}

func (e *Engine) calculateNightShift(input *domain.NightShiftInput) (*domain.CalculationResponse, error) {
	if input == nil {
		return needsInput("night_shift")
	}
	var missing []string
	if input.Category == "" {
		missing = append(missing, "night_shift.category")
	}
	if input.MonthlyBase.IsZero() {
		missing = append(missing, "night_shift.monthly_base")
	}
	if len(missing) > 0 {
		return needsInput(missing...)
	}
	if input.MonthlyBase.IsNegative() {
		err := fmt.Errorf("night_shift.monthly_base %s: %w", input.MonthlyBase, domain.ErrNegativeValue)
		return errorResponse(err), err
	}
	if input.MonthlyHours.IsNegative() {
		err := fmt.Errorf("night_shift.monthly_hours %s: %w", input.MonthlyHours, domain.ErrNegativeValue)
		return errorResponse(err), err
	}
	policy, ok := e.Policies.NightWindows[input.Category]
	if !ok {
		err := fmt.Errorf("no night window policy for worker category %q", input.Category)
		return errorResponse(err), err
	}

	minutes, err := ResolveNightMinutes(input.ShiftStartMinute, input.ShiftEndMinute, policy, input.AllowExtension, input.BreakMinutes)
	if err != nil {
		return errorResponse(err), err
	}

	var assumptions []string
	hours := input.MonthlyHours
	if hours.IsZero() {
		hours = DefaultMonthlyHours
		assumptions = append(assumptions,
			fmt.Sprintf("used standard %s-hour month because none was supplied", DefaultMonthlyHours))
	}
	hourlyRate := input.MonthlyBase.Div(hours)
	reducedHours := ReducedNightHours(minutes, policy)
	rate := policy.RatePercent.Div(decimal.NewFromInt(100))
	premium := hourlyRate.Mul(reducedHours).Mul(rate)

	return &domain.CalculationResponse{
		Status: domain.StatusOK,
		LineItems: []domain.LineItem{
			{Label: "Night-shift differential", Amount: premium.Round(2)},
		},
		Total: premium.Round(2),
		EffectiveRatesUsed: map[string]decimal.Decimal{
			"night_differential_rate": rate,
		},
		AssumptionsApplied: assumptions,
	}, nil
}
