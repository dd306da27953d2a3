package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PolicySet contains all jurisdiction data for one calculation epoch.
// It is loaded from a policy YAML feed at process start, validated once,
// and treated as read-only afterwards. A table rollover is done by loading
// a fresh PolicySet and swapping the reference, never by editing bands in
// place. The algorithmic code owns none of these constants.
type PolicySet struct {
	Metadata     PolicyMetadata                       `yaml:"metadata" json:"metadata"`
	INSS         BracketTable                         `yaml:"inss" json:"inss"`
	IRRF         WithholdingPolicy                    `yaml:"irrf" json:"irrf"`
	NightWindows map[WorkerCategory]NightWindowPolicy `yaml:"night_windows" json:"night_windows"`
	Termination  TerminationPolicy                    `yaml:"termination" json:"termination"`
}

// PolicyMetadata identifies the policy epoch the tables belong to.
type PolicyMetadata struct {
	Version     string `yaml:"version" json:"version"`
	Year        int    `yaml:"year" json:"year"`
	Description string `yaml:"description" json:"description"`
}

// BracketTable is an ordered progressive schedule covering [0, inf).
// Band i applies to bases at or above its floor and below band i+1's floor.
type BracketTable struct {
	Version string        `yaml:"version" json:"version"`
	Bands   []BracketBand `yaml:"bands" json:"bands"`
}

// BracketBand is one marginal band. Deduction is the cumulative amount
// subtracted at this band's floor so that base*rate - deduction is
// continuous across the boundary. A capped schedule is expressed as a
// final zero-rate band with a negative deduction.
type BracketBand struct {
	Floor     decimal.Decimal `yaml:"floor" json:"floor"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
	Deduction decimal.Decimal `yaml:"deduction" json:"deduction"`
}

// continuityTolerance absorbs the cent rounding present in officially
// published deduction columns.
var continuityTolerance = decimal.New(1, -2)

// Validate checks ordering, coverage and boundary continuity. A failure
// here is a data-integrity problem in the policy feed, not a request
// error: no correct answer is derivable from a broken table.
func (t BracketTable) Validate() error {
	if len(t.Bands) == 0 {
		return fmt.Errorf("bracket table %s: no bands", t.Version)
	}
	if !t.Bands[0].Floor.IsZero() {
		return fmt.Errorf("bracket table %s: first band floor must be 0, got %s", t.Version, t.Bands[0].Floor)
	}
	for i, b := range t.Bands {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket table %s: band %d rate %s outside [0,1]", t.Version, i, b.Rate)
		}
		if i == 0 {
			if !b.Deduction.IsZero() {
				return fmt.Errorf("bracket table %s: first band deduction must be 0, got %s", t.Version, b.Deduction)
			}
			continue
		}
		prev := t.Bands[i-1]
		if !b.Floor.GreaterThan(prev.Floor) {
			return fmt.Errorf("bracket table %s: band %d floor %s not above previous floor %s", t.Version, i, b.Floor, prev.Floor)
		}
		// Continuity at the boundary: deduction[i] must equal
		// deduction[i-1] + floor[i]*(rate[i]-rate[i-1]).
		want := prev.Deduction.Add(b.Floor.Mul(b.Rate.Sub(prev.Rate)))
		if b.Deduction.Sub(want).Abs().GreaterThan(continuityTolerance) {
			return fmt.Errorf("bracket table %s: band %d deduction %s breaks continuity (expected %s)", t.Version, i, b.Deduction, want)
		}
	}
	return nil
}

// TopMarginalRate returns the highest marginal rate in the table.
func (t BracketTable) TopMarginalRate() decimal.Decimal {
	top := decimal.Zero
	for _, b := range t.Bands {
		if b.Rate.GreaterThan(top) {
			top = b.Rate
		}
	}
	return top
}

// WithholdingPolicy is the income-withholding schedule plus the flat
// allowances applied to the base before bracket evaluation.
type WithholdingPolicy struct {
	Table               BracketTable    `yaml:"table" json:"table"`
	DependentDeduction  decimal.Decimal `yaml:"dependent_deduction" json:"dependent_deduction"`
	SimplifiedDeduction decimal.Decimal `yaml:"simplified_deduction" json:"simplified_deduction"`
}

// WorkerCategory selects which night-window policy applies.
type WorkerCategory string

const (
	Urban            WorkerCategory = "urban"
	RuralAgriculture WorkerCategory = "rural_agriculture"
	RuralLivestock   WorkerCategory = "rural_livestock"
)

// NightWindowPolicy defines the nighttime interval for one worker
// category. EndMinute may be numerically below StartMinute, meaning the
// window wraps past midnight. ReducedMinuteDivisor converts resolved real
// minutes into legal night hours; categories without hour reduction use 60.
type NightWindowPolicy struct {
	StartMinute          int             `yaml:"start_minute" json:"start_minute"`
	EndMinute            int             `yaml:"end_minute" json:"end_minute"`
	ReducedMinuteDivisor decimal.Decimal `yaml:"reduced_minute_divisor" json:"reduced_minute_divisor"`
	RatePercent          decimal.Decimal `yaml:"rate_percent" json:"rate_percent"`
}

// Validate checks the window's raw minute values and divisor.
func (p NightWindowPolicy) Validate() error {
	if p.StartMinute < 0 || p.StartMinute >= 1440 || p.EndMinute < 0 || p.EndMinute >= 1440 {
		return fmt.Errorf("night window: minutes must be within [0,1440), got start=%d end=%d", p.StartMinute, p.EndMinute)
	}
	if p.StartMinute == p.EndMinute {
		return fmt.Errorf("night window: zero-length window")
	}
	if !p.ReducedMinuteDivisor.IsPositive() {
		return fmt.Errorf("night window: reduced minute divisor must be positive, got %s", p.ReducedMinuteDivisor)
	}
	if p.RatePercent.IsNegative() {
		return fmt.Errorf("night window: rate percent cannot be negative, got %s", p.RatePercent)
	}
	return nil
}

// TerminationPolicy carries the settlement parameters that vary by
// jurisdiction or epoch rather than by request.
type TerminationPolicy struct {
	NoticeBaseDays         int             `yaml:"notice_base_days" json:"notice_base_days"`
	NoticeDaysPerYear      int             `yaml:"notice_days_per_year" json:"notice_days_per_year"`
	NoticeCapDays          int             `yaml:"notice_cap_days" json:"notice_cap_days"`
	FundPenaltyFullRate    decimal.Decimal `yaml:"fund_penalty_full_rate" json:"fund_penalty_full_rate"`
	FundPenaltyReducedRate decimal.Decimal `yaml:"fund_penalty_reduced_rate" json:"fund_penalty_reduced_rate"`
	FullMonthThresholdDays int             `yaml:"full_month_threshold_days" json:"full_month_threshold_days"`
}

// Validate checks the termination parameters.
func (p TerminationPolicy) Validate() error {
	if p.NoticeBaseDays <= 0 {
		return fmt.Errorf("termination policy: notice base days must be positive, got %d", p.NoticeBaseDays)
	}
	if p.NoticeDaysPerYear < 0 {
		return fmt.Errorf("termination policy: notice days per year cannot be negative, got %d", p.NoticeDaysPerYear)
	}
	if p.NoticeCapDays < p.NoticeBaseDays {
		return fmt.Errorf("termination policy: notice cap %d below base %d", p.NoticeCapDays, p.NoticeBaseDays)
	}
	if p.FundPenaltyFullRate.IsNegative() || p.FundPenaltyReducedRate.IsNegative() {
		return fmt.Errorf("termination policy: fund penalty rates cannot be negative")
	}
	if p.FullMonthThresholdDays < 1 || p.FullMonthThresholdDays > 31 {
		return fmt.Errorf("termination policy: full month threshold must be within [1,31], got %d", p.FullMonthThresholdDays)
	}
	return nil
}
