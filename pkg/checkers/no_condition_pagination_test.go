package checkers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlsentry/sqlsentry/pkg/sqlast"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

func limitSelect(table string, where sqlast.Expression) *sqlast.SelectStatement {
	offset, rowCount := int64(0), int64(10)
	return &sqlast.SelectStatement{
		Table: table,
		Where: where,
		Limit: &sqlast.LimitClause{Offset: &offset, RowCount: &rowCount},
	}
}

func TestNoConditionPaginationFiresWithoutWhere(t *testing.T) {
	c := NewNoConditionPaginationChecker(NoConditionPaginationConfig{Enabled: true}, nil)
	sctx := &types.SqlContext{Statement: limitSelect("users", nil)}
	result := types.NewValidationResult()
	c.Check(sctx, result)

	require.Len(t, result.Violations, 1)
	require.Equal(t, types.RiskCritical, result.Violations[0].RiskLevel)
	require.True(t, result.Signals.EarlyReturn)
}

func TestNoConditionPaginationFiresWithDummyWhere(t *testing.T) {
	c := NewNoConditionPaginationChecker(NoConditionPaginationConfig{Enabled: true}, nil)
	where := &sqlast.BinaryExpr{
		Op:    "=",
		Left:  &sqlast.Literal{Kind: sqlast.LiteralNumber, Value: "1"},
		Right: &sqlast.Literal{Kind: sqlast.LiteralNumber, Value: "1"},
	}
	sctx := &types.SqlContext{Statement: limitSelect("users", where)}
	result := types.NewValidationResult()
	c.Check(sctx, result)

	require.Len(t, result.Violations, 1)
	require.True(t, result.Signals.EarlyReturn)
}

func TestNoConditionPaginationPassesWithRealWhere(t *testing.T) {
	c := NewNoConditionPaginationChecker(NoConditionPaginationConfig{Enabled: true}, nil)
	where := &sqlast.BinaryExpr{
		Op:    "=",
		Left:  &sqlast.ColumnRef{Name: "id"},
		Right: &sqlast.Placeholder{},
	}
	sctx := &types.SqlContext{Statement: limitSelect("users", where)}
	result := types.NewValidationResult()
	c.Check(sctx, result)

	require.True(t, result.Passed())
	require.False(t, result.Signals.EarlyReturn)
}

func TestNoConditionPaginationSkipsWhenNotPhysical(t *testing.T) {
	c := NewNoConditionPaginationChecker(NoConditionPaginationConfig{Enabled: true}, nil)
	sctx := &types.SqlContext{Statement: &sqlast.SelectStatement{Table: "users"}}
	result := types.NewValidationResult()
	c.Check(sctx, result)

	require.True(t, result.Passed())
}
