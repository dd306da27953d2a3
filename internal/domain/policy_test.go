package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func continuousTable() BracketTable {
	return BracketTable{
		Version: "test",
		Bands: []BracketBand{
			{Floor: decimal.Zero, Rate: decimal.Zero, Deduction: decimal.Zero},
			{Floor: decimal.NewFromInt(2000), Rate: decimal.RequireFromString("0.10"), Deduction: decimal.NewFromInt(200)},
			{Floor: decimal.NewFromInt(4000), Rate: decimal.RequireFromString("0.20"), Deduction: decimal.NewFromInt(600)},
		},
	}
}

func TestBracketTableValidate(t *testing.T) {
	assert.NoError(t, continuousTable().Validate())
}

func TestBracketTableValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*BracketTable)
		wantErr string
	}{
		{
			name:    "empty table",
			mutate:  func(tb *BracketTable) { tb.Bands = nil },
			wantErr: "no bands",
		},
		{
			name:    "first floor nonzero",
			mutate:  func(tb *BracketTable) { tb.Bands[0].Floor = decimal.NewFromInt(1) },
			wantErr: "first band floor",
		},
		{
			name:    "first deduction nonzero",
			mutate:  func(tb *BracketTable) { tb.Bands[0].Deduction = decimal.NewFromInt(1) },
			wantErr: "first band deduction",
		},
		{
			name:    "rate above one",
			mutate:  func(tb *BracketTable) { tb.Bands[1].Rate = decimal.NewFromInt(2) },
			wantErr: "outside [0,1]",
		},
		{
			name:    "negative rate",
			mutate:  func(tb *BracketTable) { tb.Bands[2].Rate = decimal.RequireFromString("-0.1") },
			wantErr: "outside [0,1]",
		},
		{
			name:    "floors out of order",
			mutate:  func(tb *BracketTable) { tb.Bands[2].Floor = decimal.NewFromInt(1500) },
			wantErr: "not above previous floor",
		},
		{
			name:    "deduction breaks continuity",
			mutate:  func(tb *BracketTable) { tb.Bands[2].Deduction = decimal.NewFromInt(500) },
			wantErr: "breaks continuity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := continuousTable()
			tt.mutate(&table)
			err := table.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBracketTableValidateToleratesCentRounding(t *testing.T) {
	table := continuousTable()
	// Published deduction columns are rounded to the cent.
	table.Bands[2].Deduction = decimal.RequireFromString("600.01")
	assert.NoError(t, table.Validate())

	table.Bands[2].Deduction = decimal.RequireFromString("600.02")
	assert.Error(t, table.Validate())
}

func TestBracketTableValidateAllowsCappedSchedule(t *testing.T) {
	table := continuousTable()
	// Cap: constant amount above the ceiling, rate drops to zero.
	table.Bands = append(table.Bands, BracketBand{
		Floor:     decimal.NewFromInt(8000),
		Rate:      decimal.Zero,
		Deduction: decimal.NewFromInt(-1000),
	})
	assert.NoError(t, table.Validate())
}

func TestTopMarginalRate(t *testing.T) {
	assert.True(t, continuousTable().TopMarginalRate().Equal(decimal.RequireFromString("0.20")))
	assert.True(t, BracketTable{}.TopMarginalRate().IsZero())
}

func TestNightWindowPolicyValidate(t *testing.T) {
	valid := NightWindowPolicy{
		StartMinute:          1320,
		EndMinute:            300,
		ReducedMinuteDivisor: decimal.RequireFromString("52.5"),
		RatePercent:          decimal.NewFromInt(20),
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*NightWindowPolicy)
	}{
		{"start out of range", func(p *NightWindowPolicy) { p.StartMinute = 1440 }},
		{"negative end", func(p *NightWindowPolicy) { p.EndMinute = -1 }},
		{"zero length", func(p *NightWindowPolicy) { p.EndMinute = p.StartMinute }},
		{"zero divisor", func(p *NightWindowPolicy) { p.ReducedMinuteDivisor = decimal.Zero }},
		{"negative rate", func(p *NightWindowPolicy) { p.RatePercent = decimal.NewFromInt(-1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := valid
			tt.mutate(&window)
			assert.Error(t, window.Validate())
		})
	}
}

func TestTerminationPolicyValidate(t *testing.T) {
	valid := TerminationPolicy{
		NoticeBaseDays:         30,
		NoticeDaysPerYear:      3,
		NoticeCapDays:          90,
		FundPenaltyFullRate:    decimal.RequireFromString("0.40"),
		FundPenaltyReducedRate: decimal.RequireFromString("0.20"),
		FullMonthThresholdDays: 15,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*TerminationPolicy)
	}{
		{"zero base days", func(p *TerminationPolicy) { p.NoticeBaseDays = 0 }},
		{"negative per-year days", func(p *TerminationPolicy) { p.NoticeDaysPerYear = -1 }},
		{"cap below base", func(p *TerminationPolicy) { p.NoticeCapDays = 20 }},
		{"negative penalty rate", func(p *TerminationPolicy) { p.FundPenaltyFullRate = decimal.NewFromInt(-1) }},
		{"threshold out of range", func(p *TerminationPolicy) { p.FullMonthThresholdDays = 32 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := valid
			tt.mutate(&policy)
			assert.Error(t, policy.Validate())
		})
	}
}
