package grossup

import (
	"context"
	"testing"

	"github.com/luanwie/cltfacil/internal/config"
	"github.com/luanwie/cltfacil/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSolver(t *testing.T) *Solver {
	t.Helper()
	parser := config.NewInputParser()
	policies := parser.CreateExamplePolicySet()
	require.NoError(t, parser.ValidatePolicySet(policies))
	return NewDefaultSolver(policies)
}

func assertClose(t *testing.T, want string, got decimal.Decimal, within string) {
	t.Helper()
	diff := got.Sub(decimal.RequireFromString(want)).Abs()
	assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString(within)),
		"got %s, want %s within %s", got, want, within)
}

func TestSolveRecoversKnownGross(t *testing.T) {
	// Net of a 3000 gross: contribution 253.41, then withholding
	// 0.075*2746.59 - 182.16 = 23.83425.
	result, err := testSolver(t).Solve(context.Background(), Request{
		TargetNet: decimal.RequireFromString("2722.75575"),
	})
	require.NoError(t, err)

	assertClose(t, "3000", result.Gross, "0.01")
	assertClose(t, "253.41", result.Contribution, "0.01")
	assertClose(t, "23.83", result.Withholding, "0.01")
	assert.Positive(t, result.Iterations)
	assert.Contains(t, result.ConvergenceInfo, "converged")
}

func TestSolveBelowWithholdingThreshold(t *testing.T) {
	// Only the 7.5% contribution band applies: net = 0.925 * gross.
	result, err := testSolver(t).Solve(context.Background(), Request{
		TargetNet: decimal.NewFromInt(1000),
	})
	require.NoError(t, err)

	assertClose(t, "1081.08", result.Gross, "0.01")
	assert.True(t, result.Withholding.IsZero(), "withholding = %s", result.Withholding)
}

func TestSolveWithDependents(t *testing.T) {
	// Two dependent allowances push the withholding base under the
	// exempt threshold, so only the contribution remains.
	result, err := testSolver(t).Solve(context.Background(), Request{
		TargetNet:  decimal.RequireFromString("2746.59"),
		Dependents: 2,
	})
	require.NoError(t, err)

	assertClose(t, "3000", result.Gross, "0.01")
	assert.True(t, result.Withholding.IsZero(), "withholding = %s", result.Withholding)
}

func TestSolveSimplifiedMode(t *testing.T) {
	result, err := testSolver(t).Solve(context.Background(), Request{
		TargetNet: decimal.RequireFromString("2746.59"),
		Mode:      ModeSimplified,
	})
	require.NoError(t, err)

	assertClose(t, "3000", result.Gross, "0.01")
	assert.True(t, result.Withholding.IsZero(), "withholding = %s", result.Withholding)
}

func TestSolveRejectsBadRequests(t *testing.T) {
	solver := testSolver(t)

	_, err := solver.Solve(context.Background(), Request{TargetNet: decimal.Zero})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target net must be positive")

	_, err = solver.Solve(context.Background(), Request{
		TargetNet:  decimal.NewFromInt(1000),
		Dependents: -1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dependents cannot be negative")

	_, err = solver.Solve(context.Background(), Request{
		TargetNet: decimal.NewFromInt(1000),
		Alimony:   decimal.NewFromInt(-10),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alimony cannot be negative")

	_, err = solver.Solve(context.Background(), Request{
		TargetNet: decimal.NewFromInt(1000),
		Mode:      WithholdingMode("progressive_flat"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestSolveHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testSolver(t).Solve(ctx, Request{TargetNet: decimal.NewFromInt(1000)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGrossUpErrorUnwrap(t *testing.T) {
	cause := domain.ErrNegativeValue
	err := &GrossUpError{Operation: "solve", Message: "broken", Cause: cause}
	assert.ErrorIs(t, err, domain.ErrNegativeValue)
	assert.Contains(t, err.Error(), "solve: broken")
}
