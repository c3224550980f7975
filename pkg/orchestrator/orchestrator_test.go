package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlsentry/sqlsentry/pkg/checkers"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

type stubChecker struct {
	name    string
	enabled bool
	panics  bool
	fn      func(sctx *types.SqlContext, result *types.ValidationResult)
}

func (s *stubChecker) Name() string  { return s.name }
func (s *stubChecker) Enabled() bool { return s.enabled }
func (s *stubChecker) Check(sctx *types.SqlContext, result *types.ValidationResult) {
	if s.panics {
		panic("boom")
	}
	if s.fn != nil {
		s.fn(sctx, result)
	}
}

func TestRunInvokesEnabledCheckersInOrder(t *testing.T) {
	var order []string
	cs := []checkers.Checker{
		&stubChecker{name: "a", enabled: true, fn: func(_ *types.SqlContext, _ *types.ValidationResult) { order = append(order, "a") }},
		&stubChecker{name: "b", enabled: false, fn: func(_ *types.SqlContext, _ *types.ValidationResult) { order = append(order, "b") }},
		&stubChecker{name: "c", enabled: true, fn: func(_ *types.SqlContext, _ *types.ValidationResult) { order = append(order, "c") }},
	}
	o := New(cs)
	o.Run(&types.SqlContext{}, types.NewValidationResult())

	require.Equal(t, []string{"a", "c"}, order)
}

func TestRunSurvivesAFaultingCheckerAndContinues(t *testing.T) {
	var ran []string
	cs := []checkers.Checker{
		&stubChecker{name: "first", enabled: true, fn: func(_ *types.SqlContext, _ *types.ValidationResult) { ran = append(ran, "first") }},
		&stubChecker{name: "faulty", enabled: true, panics: true},
		&stubChecker{name: "last", enabled: true, fn: func(_ *types.SqlContext, r *types.ValidationResult) {
			ran = append(ran, "last")
			r.AddViolation(types.ViolationInfo{RiskLevel: types.RiskLow, Source: "last"})
		}},
	}
	o := New(cs)
	result := types.NewValidationResult()

	require.NotPanics(t, func() { o.Run(&types.SqlContext{}, result) })
	require.Equal(t, []string{"first", "last"}, ran)
	require.Len(t, result.Violations, 1)
	require.Equal(t, "last", result.Violations[0].Source)
}

func TestRunWithNonErrorPanicValue(t *testing.T) {
	cs := []checkers.Checker{
		&stubChecker{name: "faulty", enabled: true, panics: true},
	}
	o := New(cs)
	require.NotPanics(t, func() { o.Run(&types.SqlContext{}, types.NewValidationResult()) })
}
