package grossup

import (
	"context"
	"fmt"

	"github.com/luanwie/cltfacil/internal/calculation"
	"github.com/luanwie/cltfacil/internal/domain"
	"github.com/shopspring/decimal"
)

// Solver finds the gross salary behind a target net by binary search.
// Net pay is nondecreasing in gross under any valid policy set (marginal
// rates stay below 1), which is what makes bisection sound here.
type Solver struct {
	Policies *domain.PolicySet
	Options  SolverOptions
}

// NewSolver creates a solver over a validated policy set.
func NewSolver(policies *domain.PolicySet, options SolverOptions) *Solver {
	return &Solver{Policies: policies, Options: options}
}

// NewDefaultSolver creates a solver with default options.
func NewDefaultSolver(policies *domain.PolicySet) *Solver {
	return NewSolver(policies, DefaultSolverOptions())
}

// Solve finds the gross whose derived net matches the request's target
// within tolerance.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if !req.TargetNet.IsPositive() {
		return nil, &GrossUpError{
			Operation: "solve",
			Message:   fmt.Sprintf("target net must be positive, got %s", req.TargetNet),
		}
	}
	if req.Dependents < 0 {
		return nil, &GrossUpError{
			Operation: "solve",
			Message:   fmt.Sprintf("dependents cannot be negative, got %d", req.Dependents),
		}
	}
	if req.Alimony.IsNegative() {
		return nil, &GrossUpError{
			Operation: "solve",
			Message:   fmt.Sprintf("alimony cannot be negative, got %s", req.Alimony),
		}
	}
	if req.Mode == "" {
		req.Mode = ModeStandard
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	// Net never exceeds gross, so the target itself is a lower bound.
	// Grow the upper bound until its net covers the target.
	lower := req.TargetNet
	upper := req.TargetNet.Mul(decimal.NewFromInt(2))
	for i := 0; i < 32; i++ {
		net, _, _, err := s.netFor(upper, req)
		if err != nil {
			return nil, err
		}
		if net.GreaterThanOrEqual(req.TargetNet) {
			break
		}
		upper = upper.Mul(decimal.NewFromInt(2))
	}

	iterations := 0
	for iterations < req.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		gross := lower.Add(upper).Div(decimal.NewFromInt(2))
		net, contribution, withholding, err := s.netFor(gross, req)
		if err != nil {
			return nil, err
		}

		diff := net.Sub(req.TargetNet)
		if diff.Abs().LessThanOrEqual(req.Tolerance) {
			return &Result{
				Gross:           gross.Round(2),
				Net:             net.Round(2),
				Contribution:    contribution.Round(2),
				Withholding:     withholding.Round(2),
				Iterations:      iterations,
				ConvergenceInfo: fmt.Sprintf("converged to target net within %s", req.Tolerance),
			}, nil
		}
		if diff.IsNegative() {
			lower = gross
		} else {
			upper = gross
		}
	}

	return nil, &GrossUpError{
		Operation: "solve",
		Message:   fmt.Sprintf("did not converge after %d iterations", req.MaxIterations),
	}
}

// netFor derives the net pay from a candidate gross: contribution comes
// off first, then withholding is evaluated on the remainder.
func (s *Solver) netFor(gross decimal.Decimal, req Request) (net, contribution, withholding decimal.Decimal, err error) {
	contribEval, err := calculation.Evaluate(s.Policies.INSS, gross)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, &GrossUpError{
			Operation: "contribution",
			Message:   "schedule evaluation failed",
			Cause:     err,
		}
	}
	contribution = contribEval.Amount

	taxBase := gross.Sub(contribution)
	var taxEval calculation.BracketEvaluation
	switch req.Mode {
	case ModeStandard:
		taxEval, err = calculation.EvaluateWithAllowances(s.Policies.IRRF, taxBase, req.Dependents, req.Alimony)
	case ModeSimplified:
		taxEval, err = calculation.EvaluateSimplified(s.Policies.IRRF, taxBase)
	default:
		return decimal.Zero, decimal.Zero, decimal.Zero, &GrossUpError{
			Operation: "withholding",
			Message:   fmt.Sprintf("unknown mode %q", req.Mode),
		}
	}
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, &GrossUpError{
			Operation: "withholding",
			Message:   "schedule evaluation failed",
			Cause:     err,
		}
	}
	withholding = taxEval.Amount

	return gross.Sub(contribution).Sub(withholding), contribution, withholding, nil
}
