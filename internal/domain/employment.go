package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmploymentFacts carries the employment history needed for a settlement.
// VariablePay and FundBalance are optional and default to zero.
type EmploymentFacts struct {
	AdmissionDate   time.Time       `yaml:"admission_date" json:"admission_date"`
	TerminationDate *time.Time      `yaml:"termination_date,omitempty" json:"termination_date,omitempty"`
	MonthlyBase     decimal.Decimal `yaml:"monthly_base" json:"monthly_base"`
	VariablePay     decimal.Decimal `yaml:"variable_pay" json:"variable_pay"`
	FundBalance     decimal.Decimal `yaml:"fund_balance" json:"fund_balance"`
}

// RemunerationBase is the monthly base plus average variable pay, the
// amount every proportional entitlement is computed from.
func (f EmploymentFacts) RemunerationBase() decimal.Decimal {
	return f.MonthlyBase.Add(f.VariablePay)
}

// TerminationVariant is the closed set of contract termination types.
type TerminationVariant string

const (
	WithoutCause      TerminationVariant = "without_cause"
	ByEmployeeRequest TerminationVariant = "employee_request"
	MutualAgreement   TerminationVariant = "mutual_agreement"
	FixedTermEnd      TerminationVariant = "fixed_term_end"
	ForCause          TerminationVariant = "for_cause"
)

// NoticeMode states how the termination notice period was handled.
type NoticeMode string

const (
	NoticeWorked      NoticeMode = "worked"
	NoticeIndemnified NoticeMode = "indemnified"
	NoticeNone        NoticeMode = "none"
)

// DateSpan is an ordered, inclusive pair of dates.
type DateSpan struct {
	Start time.Time
	End   time.Time
}

// NewDateSpan builds a span, returning ErrInvalidRange when end precedes
// start. Time-of-day components are ignored.
func NewDateSpan(start, end time.Time) (DateSpan, error) {
	if end.Before(start) {
		return DateSpan{}, ErrInvalidRange
	}
	return DateSpan{Start: start, End: end}, nil
}
