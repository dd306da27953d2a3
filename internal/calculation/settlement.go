package calculation

import (
	"fmt"
	"time"

	"github.com/luanwie/cltfacil/internal/domain"
	"github.com/shopspring/decimal"
)

// Line item labels used in settlement results.
const (
	LabelSalaryBalance      = "Salary balance (final month)"
	LabelThirteenthSalary   = "13th salary (proportional)"
	LabelVacation           = "Vacation (proportional)"
	LabelVacationThird      = "Vacation one-third"
	LabelNoticeIndemnity    = "Notice period indemnity"
	LabelUnworkedNoticeOwed = "Unworked notice owed by employee"
	LabelFundPenalty        = "Severance fund penalty"
	LabelDeclaredDeductions = "Declared deductions"
)

// variantRules captures how one termination variant treats the shared
// line items. Every variant of the closed set maps to exactly one of
// these; an unknown variant is an error, never a default.
type variantRules struct {
	includeProportional bool
	noticeFactor        decimal.Decimal
	employeeOwesNotice  bool
	fundPenaltyRate     decimal.Decimal
}

func rulesFor(variant domain.TerminationVariant, policy domain.TerminationPolicy) (variantRules, error) {
	switch variant {
	case domain.WithoutCause:
		return variantRules{
			includeProportional: true,
			noticeFactor:        decimal.NewFromInt(1),
			fundPenaltyRate:     policy.FundPenaltyFullRate,
		}, nil
	case domain.ByEmployeeRequest:
		return variantRules{
			includeProportional: true,
			employeeOwesNotice:  true,
		}, nil
	case domain.MutualAgreement:
		return variantRules{
			includeProportional: true,
			noticeFactor:        decimal.NewFromFloat(0.5),
			fundPenaltyRate:     policy.FundPenaltyReducedRate,
		}, nil
	case domain.FixedTermEnd:
		return variantRules{includeProportional: true}, nil
	case domain.ForCause:
		return variantRules{}, nil
	default:
		return variantRules{}, fmt.Errorf("variant %q: %w", variant, domain.ErrUnsupportedVariant)
	}
}

// NoticeDays returns the legal notice progression: the base days plus the
// per-year increment for each completed year of service, capped.
func NoticeDays(completedYears int, policy domain.TerminationPolicy) int {
	if completedYears < 0 {
		completedYears = 0
	}
	days := policy.NoticeBaseDays + policy.NoticeDaysPerYear*completedYears
	if days > policy.NoticeCapDays {
		days = policy.NoticeCapDays
	}
	return days
}

// CalculateSettlement resolves a termination request into an itemized
// settlement under the given policy. Each request resolves in one pass;
// the result is a pure function of its arguments.
func CalculateSettlement(input domain.TerminationInput, policy domain.TerminationPolicy) (*domain.SettlementResult, error) {
	facts := input.Facts
	if facts.TerminationDate == nil {
		return nil, &domain.MissingInputError{Fields: []string{"termination.facts.termination_date"}}
	}
	termination := *facts.TerminationDate
	if termination.Before(facts.AdmissionDate) {
		return nil, fmt.Errorf("termination %s before admission %s: %w",
			termination.Format("2006-01-02"), facts.AdmissionDate.Format("2006-01-02"), domain.ErrInvalidRange)
	}
	if facts.MonthlyBase.IsNegative() || facts.VariablePay.IsNegative() || facts.FundBalance.IsNegative() {
		return nil, fmt.Errorf("employment facts: %w", domain.ErrNegativeValue)
	}
	if input.Deductions.IsNegative() {
		return nil, fmt.Errorf("declared deductions %s: %w", input.Deductions, domain.ErrNegativeValue)
	}

	rules, err := rulesFor(input.Variant, policy)
	if err != nil {
		return nil, err
	}

	base := facts.RemunerationBase()
	result := &domain.SettlementResult{}
	add := func(label string, amount decimal.Decimal) {
		result.LineItems = append(result.LineItems, domain.LineItem{Label: label, Amount: amount})
		result.Total = result.Total.Add(amount)
	}

	// Salary balance: days worked in the final calendar month, at most a
	// full month's worth.
	finalMonthStart := time.Date(termination.Year(), termination.Month(), 1, 0, 0, 0, 0, time.UTC)
	if facts.AdmissionDate.After(finalMonthStart) {
		finalMonthStart = facts.AdmissionDate
	}
	finalDays, err := InclusiveDayCount(finalMonthStart, termination)
	if err != nil {
		return nil, err
	}
	result.FinalMonthDays = finalDays
	salaryDays := finalDays
	if salaryDays > 30 {
		salaryDays = 30
	}
	salaryBalance, err := ProportionalAmount(base, salaryDays, 30)
	if err != nil {
		return nil, err
	}
	add(LabelSalaryBalance, salaryBalance)

	if rules.includeProportional {
		// Year-end bonus accrues over the termination year.
		bonusStart := time.Date(termination.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		if facts.AdmissionDate.After(bonusStart) {
			bonusStart = facts.AdmissionDate
		}
		bonusMonths, err := CountFullMonths(bonusStart, termination, policy.FullMonthThresholdDays)
		if err != nil {
			return nil, err
		}
		result.BonusMonths = bonusMonths
		bonus, err := ProportionalAmount(base, bonusMonths, 12)
		if err != nil {
			return nil, err
		}
		add(LabelThirteenthSalary, bonus)

		// Vacation accrues over the current acquisition window.
		window, err := CurrentAcquisitionWindow(facts.AdmissionDate, termination)
		if err != nil {
			return nil, err
		}
		vacationMonths, err := CountFullMonths(window.Start, termination, policy.FullMonthThresholdDays)
		if err != nil {
			return nil, err
		}
		result.VacationMonths = vacationMonths
		vacation, err := ProportionalAmount(base, vacationMonths, 12)
		if err != nil {
			return nil, err
		}
		add(LabelVacation, vacation)
		add(LabelVacationThird, ConstitutionalThird(vacation))
	}

	years, err := CompletedServiceYears(facts.AdmissionDate, termination)
	if err != nil {
		return nil, err
	}
	result.NoticeDays = NoticeDays(years, policy)

	if rules.noticeFactor.IsPositive() && input.NoticeMode == domain.NoticeIndemnified {
		notice, err := ProportionalAmount(base, result.NoticeDays, 30)
		if err != nil {
			return nil, err
		}
		add(LabelNoticeIndemnity, notice.Mul(rules.noticeFactor))
	}
	if rules.employeeOwesNotice && input.NoticeMode != domain.NoticeWorked {
		// The employee owes only the base notice, with no service
		// extension and no partial-month proration.
		owed, err := ProportionalAmount(base, policy.NoticeBaseDays, 30)
		if err != nil {
			return nil, err
		}
		add(LabelUnworkedNoticeOwed, owed.Neg())
	}

	if rules.fundPenaltyRate.IsPositive() && facts.FundBalance.IsPositive() {
		add(LabelFundPenalty, facts.FundBalance.Mul(rules.fundPenaltyRate))
	}

	if input.Deductions.IsPositive() {
		add(LabelDeclaredDeductions, input.Deductions.Neg())
	}

	return result, nil
}
