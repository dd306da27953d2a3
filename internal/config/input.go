package config

import (
	"fmt"
	"os"
	"time"

	"github.com/luanwie/cltfacil/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of policy-set and request files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadPolicySet loads and validates a policy set from a YAML file. A
// validation failure here means the policy feed itself is broken and the
// process should not serve requests from it.
func (ip *InputParser) LoadPolicySet(filename string) (*domain.PolicySet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var policies domain.PolicySet
	if err := yaml.Unmarshal(data, &policies); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidatePolicySet(&policies); err != nil {
		return nil, fmt.Errorf("policy set validation failed: %w", err)
	}

	return &policies, nil
}

// LoadRequest loads a calculation request from a YAML file. Field-level
// completeness is the engine's job; this only parses.
func (ip *InputParser) LoadRequest(filename string) (*domain.CalculationRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var req domain.CalculationRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &req, nil
}

// ValidatePolicySet validates every table and window in the set.
func (ip *InputParser) ValidatePolicySet(policies *domain.PolicySet) error {
	if policies.Metadata.Year == 0 {
		return fmt.Errorf("metadata year is required")
	}
	if err := policies.INSS.Validate(); err != nil {
		return fmt.Errorf("contribution table: %w", err)
	}
	if err := policies.IRRF.Table.Validate(); err != nil {
		return fmt.Errorf("withholding table: %w", err)
	}
	if policies.IRRF.DependentDeduction.IsNegative() {
		return fmt.Errorf("withholding dependent deduction cannot be negative")
	}
	if policies.IRRF.SimplifiedDeduction.IsNegative() {
		return fmt.Errorf("withholding simplified deduction cannot be negative")
	}
	if len(policies.NightWindows) == 0 {
		return fmt.Errorf("at least one night window policy is required")
	}
	for category, window := range policies.NightWindows {
		if err := window.Validate(); err != nil {
			return fmt.Errorf("night window %s: %w", category, err)
		}
	}
	if err := policies.Termination.Validate(); err != nil {
		return err
	}
	return nil
}

// CreateExamplePolicySet returns a complete policy set for the 2025
// epoch, matching the published contribution and withholding schedules.
// Serves as the template the example command writes out.
func (ip *InputParser) CreateExamplePolicySet() *domain.PolicySet {
	return &domain.PolicySet{
		Metadata: domain.PolicyMetadata{
			Version:     "2025.1",
			Year:        2025,
			Description: "Policy tables for the 2025 epoch",
		},
		INSS: domain.BracketTable{
			Version: "inss-2025",
			Bands: []domain.BracketBand{
				{Floor: decimal.Zero, Rate: decimal.RequireFromString("0.075"), Deduction: decimal.Zero},
				{Floor: decimal.RequireFromString("1518.01"), Rate: decimal.RequireFromString("0.09"), Deduction: decimal.RequireFromString("22.77")},
				{Floor: decimal.RequireFromString("2793.89"), Rate: decimal.RequireFromString("0.12"), Deduction: decimal.RequireFromString("106.59")},
				{Floor: decimal.RequireFromString("4190.84"), Rate: decimal.RequireFromString("0.14"), Deduction: decimal.RequireFromString("190.40")},
				// Contribution ceiling: constant amount above the cap.
				{Floor: decimal.RequireFromString("8157.42"), Rate: decimal.Zero, Deduction: decimal.RequireFromString("-951.63")},
			},
		},
		IRRF: domain.WithholdingPolicy{
			Table: domain.BracketTable{
				Version: "irrf-2025",
				Bands: []domain.BracketBand{
					{Floor: decimal.Zero, Rate: decimal.Zero, Deduction: decimal.Zero},
					{Floor: decimal.RequireFromString("2428.81"), Rate: decimal.RequireFromString("0.075"), Deduction: decimal.RequireFromString("182.16")},
					{Floor: decimal.RequireFromString("2826.66"), Rate: decimal.RequireFromString("0.15"), Deduction: decimal.RequireFromString("394.16")},
					{Floor: decimal.RequireFromString("3751.06"), Rate: decimal.RequireFromString("0.225"), Deduction: decimal.RequireFromString("675.49")},
					{Floor: decimal.RequireFromString("4664.69"), Rate: decimal.RequireFromString("0.275"), Deduction: decimal.RequireFromString("908.73")},
				},
			},
			DependentDeduction:  decimal.RequireFromString("189.59"),
			SimplifiedDeduction: decimal.RequireFromString("607.20"),
		},
		NightWindows: map[domain.WorkerCategory]domain.NightWindowPolicy{
			domain.Urban: {
				StartMinute:          22 * 60,
				EndMinute:            5 * 60,
				ReducedMinuteDivisor: decimal.RequireFromString("52.5"),
				RatePercent:          decimal.NewFromInt(20),
			},
			domain.RuralAgriculture: {
				StartMinute:          21 * 60,
				EndMinute:            5 * 60,
				ReducedMinuteDivisor: decimal.NewFromInt(60),
				RatePercent:          decimal.NewFromInt(25),
			},
			domain.RuralLivestock: {
				StartMinute:          20 * 60,
				EndMinute:            4 * 60,
				ReducedMinuteDivisor: decimal.NewFromInt(60),
				RatePercent:          decimal.NewFromInt(25),
			},
		},
		Termination: domain.TerminationPolicy{
			NoticeBaseDays:         30,
			NoticeDaysPerYear:      3,
			NoticeCapDays:          90,
			FundPenaltyFullRate:    decimal.RequireFromString("0.40"),
			FundPenaltyReducedRate: decimal.RequireFromString("0.20"),
			FullMonthThresholdDays: 15,
		},
	}
}

// CreateExampleRequest returns a representative termination request.
func (ip *InputParser) CreateExampleRequest() *domain.CalculationRequest {
	termination := time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)
	return &domain.CalculationRequest{
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
	}
}
