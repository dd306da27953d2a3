package grossup

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// WithholdingMode selects which income-withholding schedule the solver
// applies when deriving the net from a candidate gross.
type WithholdingMode string

const (
	ModeStandard   WithholdingMode = "standard"
	ModeSimplified WithholdingMode = "simplified"
)

// Request asks for the monthly gross salary that, after the social
// contribution and income withholding, nets the target amount.
type Request struct {
	TargetNet  decimal.Decimal `json:"target_net"`
	Dependents int             `json:"dependents"`
	Alimony    decimal.Decimal `json:"alimony"`
	Mode       WithholdingMode `json:"mode"`

	MaxIterations int             `json:"max_iterations,omitempty"`
	Tolerance     decimal.Decimal `json:"tolerance,omitempty"`
}

// Result is the solved gross together with the deductions it implies.
type Result struct {
	Gross        decimal.Decimal `json:"gross"`
	Net          decimal.Decimal `json:"net"`
	Contribution decimal.Decimal `json:"contribution"`
	Withholding  decimal.Decimal `json:"withholding"`

	Iterations      int    `json:"iterations"`
	ConvergenceInfo string `json:"convergence_info"`
}

// SolverOptions configures iteration and convergence behavior.
type SolverOptions struct {
	MaxIterations int
	Tolerance     decimal.Decimal
}

// DefaultSolverOptions returns options tight enough to land within half
// a cent of the target.
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 100,
		Tolerance:     decimal.RequireFromString("0.005"),
	}
}

// GrossUpError wraps solver failures with the operation that produced them.
type GrossUpError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *GrossUpError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

func (e *GrossUpError) Unwrap() error {
	return e.Cause
}
