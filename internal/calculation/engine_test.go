package calculation

import (
	"testing"
	"time"

	"github.com/luanwie/cltfacil/internal/config"
	"github.com/luanwie/cltfacil/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func examplePolicies(t *testing.T) *domain.PolicySet {
	t.Helper()
	parser := config.NewInputParser()
	policies := parser.CreateExamplePolicySet()
	require.NoError(t, parser.ValidatePolicySet(policies))
	return policies
}

func TestEngineMissingKind(t *testing.T) {
	engine := NewEngine(examplePolicies(t))

	resp, err := engine.Calculate(&domain.CalculationRequest{})
	require.Error(t, err)
	assert.Equal(t, domain.StatusNeedsInput, resp.Status)
	assert.Equal(t, []string{"kind"}, resp.MissingFields)
}

func TestEngineUnknownKind(t *testing.T) {
	engine := NewEngine(examplePolicies(t))

	resp, err := engine.Calculate(&domain.CalculationRequest{Kind: domain.CalculationKind("overtime")})
	require.Error(t, err)
	assert.Equal(t, domain.StatusError, resp.Status)
}

func TestEngineTerminationMissingFieldsEnumerated(t *testing.T) {
	engine := NewEngine(examplePolicies(t))

	resp, err := engine.Calculate(&domain.CalculationRequest{
		Kind:        domain.KindTermination,
		Termination: &domain.TerminationInput{},
	})
	require.Error(t, err)

	me, ok := domain.IsMissingInput(err)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{
		"termination.facts.admission_date",
		"termination.facts.termination_date",
		"termination.facts.monthly_base",
		"termination.variant",
		"termination.notice_mode",
	}, me.Fields)
	assert.Equal(t, domain.StatusNeedsInput, resp.Status)
	assert.Empty(t, resp.LineItems)
}

func TestEngineTerminationRoundTrip(t *testing.T) {
	engine := NewEngine(examplePolicies(t))
	termination := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)

	resp, err := engine.Calculate(&domain.CalculationRequest{
		Kind: domain.KindTermination,
		Termination: &domain.TerminationInput{
			Facts: domain.EmploymentFacts{
				AdmissionDate:   time.Date(2023, time.January, 10, 0, 0, 0, 0, time.UTC),
				TerminationDate: &termination,
				MonthlyBase:     decimal.NewFromInt(3000),
				FundBalance:     decimal.NewFromInt(10000),
			},
			Variant:    domain.WithoutCause,
			NoticeMode: domain.NoticeIndemnified,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusOK, resp.Status)
	assert.Len(t, resp.LineItems, 6)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(11050)),
		"expected total 11050, got %s", resp.Total)
}

func TestEngineContribution(t *testing.T) {
	engine := NewEngine(examplePolicies(t))

	tests := []struct {
		name           string
		base           string
		expectedAmount string
	}{
		{name: "middle band", base: "3000", expectedAmount: "253.41"},
		{name: "above ceiling stays capped", base: "20000", expectedAmount: "951.63"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := engine.Calculate(&domain.CalculationRequest{
				Kind:        domain.KindINSS,
				Withholding: &domain.WithholdingInput{Base: decimal.RequireFromString(tt.base)},
			})
			require.NoError(t, err)

			assert.Equal(t, domain.StatusOK, resp.Status)
			assert.True(t, resp.Total.Equal(decimal.RequireFromString(tt.expectedAmount)),
				"expected %s, got %s", tt.expectedAmount, resp.Total)
			assert.Contains(t, resp.EffectiveRatesUsed, "effective_rate")
			assert.Contains(t, resp.EffectiveRatesUsed, "marginal_rate")
		})
	}
}

func TestEngineWithholding(t *testing.T) {
	engine := NewEngine(examplePolicies(t))

	resp, err := engine.Calculate(&domain.CalculationRequest{
		Kind:        domain.KindIRRF,
		Withholding: &domain.WithholdingInput{Base: decimal.NewFromInt(3000)},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("55.84")),
		"expected 55.84, got %s", resp.Total)

	// Two dependents drop the adjusted base into the 7.5% band.
	resp, err = engine.Calculate(&domain.CalculationRequest{
		Kind:        domain.KindIRRF,
		Withholding: &domain.WithholdingInput{Base: decimal.NewFromInt(3000), Dependents: 2},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("14.40")),
		"expected 14.40, got %s", resp.Total)
}

func TestEngineWithholdingSimplified(t *testing.T) {
	engine := NewEngine(examplePolicies(t))

	resp, err := engine.Calculate(&domain.CalculationRequest{
		Kind:        domain.KindIRRFSimplified,
		Withholding: &domain.WithholdingInput{Base: decimal.NewFromInt(3000)},
	})
	require.NoError(t, err)

	// 3000 - 607.20 lands below the exempt ceiling.
	assert.True(t, resp.Total.IsZero())
	require.Len(t, resp.AssumptionsApplied, 1)
	assert.Contains(t, resp.AssumptionsApplied[0], "simplified flat deduction")
}

func TestEngineWithholdingMissingBase(t *testing.T) {
	engine := NewEngine(examplePolicies(t))

	resp, err := engine.Calculate(&domain.CalculationRequest{
		Kind:        domain.KindINSS,
		Withholding: &domain.WithholdingInput{},
	})
	require.Error(t, err)
	assert.Equal(t, domain.StatusNeedsInput, resp.Status)
	assert.Equal(t, []string{"withholding.base"}, resp.MissingFields)
}

func TestEngineNightShift(t *testing.T) {
	engine := NewEngine(examplePolicies(t))

	resp, err := engine.Calculate(&domain.CalculationRequest{
		Kind: domain.KindNightShift,
		NightShift: &domain.NightShiftInput{
			ShiftStartMinute: 23 * 60,
			ShiftEndMinute:   6*60 + 30,
			Category:         domain.Urban,
			AllowExtension:   true,
			MonthlyBase:      decimal.NewFromInt(2200),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusOK, resp.Status)
	// 450 night minutes over the 52.5 divisor at 20% of a 10.00 hourly
	// rate.
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("17.14")),
		"expected 17.14, got %s", resp.Total)
	require.Len(t, resp.AssumptionsApplied, 1)
	assert.Contains(t, resp.AssumptionsApplied[0], "220")
}

func TestEngineNightShiftExplicitHours(t *testing.T) {
	engine := NewEngine(examplePolicies(t))

	resp, err := engine.Calculate(&domain.CalculationRequest{
		Kind: domain.KindNightShift,
		NightShift: &domain.NightShiftInput{
			ShiftStartMinute: 22 * 60,
			ShiftEndMinute:   5 * 60,
			Category:         domain.RuralAgriculture,
			MonthlyBase:      decimal.NewFromInt(1800),
			MonthlyHours:     decimal.NewFromInt(180),
		},
	})
	require.NoError(t, err)

	// 420 window minutes / 60 = 7 hours at 25% of a 10.00 hourly rate.
	assert.True(t, resp.Total.Equal(decimal.RequireFromString("17.5")),
		"expected 17.50, got %s", resp.Total)
	assert.Empty(t, resp.AssumptionsApplied)
}

func TestEngineNightShiftUnknownCategory(t *testing.T) {
	engine := NewEngine(examplePolicies(t))

	resp, err := engine.Calculate(&domain.CalculationRequest{
		Kind: domain.KindNightShift,
		NightShift: &domain.NightShiftInput{
			ShiftStartMinute: 22 * 60,
			ShiftEndMinute:   5 * 60,
			Category:         domain.WorkerCategory("offshore"),
			MonthlyBase:      decimal.NewFromInt(1800),
		},
	})
	require.Error(t, err)
	assert.Equal(t, domain.StatusError, resp.Status)
}

func TestEngineNightShiftMissingFields(t *testing.T) {
	engine := NewEngine(examplePolicies(t))

	resp, err := engine.Calculate(&domain.CalculationRequest{
		Kind:       domain.KindNightShift,
		NightShift: &domain.NightShiftInput{ShiftStartMinute: 22 * 60, ShiftEndMinute: 5 * 60},
	})
	require.Error(t, err)
	assert.Equal(t, domain.StatusNeedsInput, resp.Status)
	assert.ElementsMatch(t, []string{"night_shift.category", "night_shift.monthly_base"}, resp.MissingFields)
}

func TestEngineNilRequestSections(t *testing.T) {
	engine := NewEngine(examplePolicies(t))

	for _, tt := range []struct {
		kind  domain.CalculationKind
		field string
	}{
		{kind: domain.KindTermination, field: "termination"},
		{kind: domain.KindINSS, field: "withholding"},
		{kind: domain.KindIRRF, field: "withholding"},
		{kind: domain.KindIRRFSimplified, field: "withholding"},
		{kind: domain.KindNightShift, field: "night_shift"},
	} {
		resp, err := engine.Calculate(&domain.CalculationRequest{Kind: tt.kind})
		require.Error(t, err, "kind %s", tt.kind)
		assert.Equal(t, domain.StatusNeedsInput, resp.Status)
		assert.Equal(t, []string{tt.field}, resp.MissingFields)
	}
}
