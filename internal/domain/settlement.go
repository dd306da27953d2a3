package domain

import (
	"github.com/shopspring/decimal"
)

// SettlementResult is the itemized outcome of a termination settlement.
// Built fresh per request, never mutated afterwards. Total is signed:
// deductions can exceed credits.
type SettlementResult struct {
	LineItems      []LineItem      `yaml:"line_items" json:"line_items"`
	Total          decimal.Decimal `yaml:"total" json:"total"`
	NoticeDays     int             `yaml:"notice_days" json:"notice_days"`
	BonusMonths    int             `yaml:"bonus_months" json:"bonus_months"`
	VacationMonths int             `yaml:"vacation_months" json:"vacation_months"`
	FinalMonthDays int             `yaml:"final_month_days" json:"final_month_days"`
}
