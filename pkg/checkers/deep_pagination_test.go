package checkers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlsentry/sqlsentry/pkg/sqlast"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

func TestDeepPaginationFiresPastMaxOffset(t *testing.T) {
	c := NewDeepPaginationChecker(DeepPaginationConfig{Enabled: true, MaxOffset: 10000}, nil)
	offset, rowCount := int64(50000), int64(20)
	sctx := &types.SqlContext{
		Statement: &sqlast.SelectStatement{
			Table: "users",
			Limit: &sqlast.LimitClause{Offset: &offset, RowCount: &rowCount},
		},
	}
	result := types.NewValidationResult()
	c.Check(sctx, result)

	require.Len(t, result.Violations, 1)
	require.Equal(t, types.RiskMedium, result.Violations[0].RiskLevel)
}

func TestDeepPaginationPassesUnderMaxOffset(t *testing.T) {
	c := NewDeepPaginationChecker(DeepPaginationConfig{Enabled: true, MaxOffset: 10000}, nil)
	offset, rowCount := int64(100), int64(20)
	sctx := &types.SqlContext{
		Statement: &sqlast.SelectStatement{
			Table: "users",
			Limit: &sqlast.LimitClause{Offset: &offset, RowCount: &rowCount},
		},
	}
	result := types.NewValidationResult()
	c.Check(sctx, result)

	require.True(t, result.Passed())
}

func TestDeepPaginationSuppressedByEarlyReturn(t *testing.T) {
	c := NewDeepPaginationChecker(DeepPaginationConfig{Enabled: true, MaxOffset: 10000}, nil)
	offset, rowCount := int64(50000), int64(20)
	sctx := &types.SqlContext{
		Statement: &sqlast.SelectStatement{
			Table: "users",
			Limit: &sqlast.LimitClause{Offset: &offset, RowCount: &rowCount},
		},
	}
	result := types.NewValidationResult()
	result.Signals.EarlyReturn = true
	c.Check(sctx, result)

	require.True(t, result.Passed())
}

func TestDeepPaginationSkipsPlaceholderOffset(t *testing.T) {
	c := NewDeepPaginationChecker(DeepPaginationConfig{Enabled: true, MaxOffset: 10000}, nil)
	rowCount := int64(20)
	sctx := &types.SqlContext{
		Statement: &sqlast.SelectStatement{
			Table: "users",
			Limit: &sqlast.LimitClause{OffsetIsParam: true, RowCount: &rowCount},
		},
	}
	result := types.NewValidationResult()
	c.Check(sctx, result)

	require.True(t, result.Passed())
}
