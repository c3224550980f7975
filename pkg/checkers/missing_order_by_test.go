package checkers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlsentry/sqlsentry/pkg/sqlast"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

func TestMissingOrderByFiresWhenAbsent(t *testing.T) {
	c := NewMissingOrderByChecker(MissingOrderByConfig{Enabled: true}, nil)
	offset, rowCount := int64(0), int64(10)
	sctx := &types.SqlContext{
		Statement: &sqlast.SelectStatement{
			Table: "users",
			Limit: &sqlast.LimitClause{Offset: &offset, RowCount: &rowCount},
		},
	}
	result := types.NewValidationResult()
	c.Check(sctx, result)

	require.Len(t, result.Violations, 1)
	require.Equal(t, types.RiskLow, result.Violations[0].RiskLevel)
}

func TestMissingOrderByPassesWhenPresent(t *testing.T) {
	c := NewMissingOrderByChecker(MissingOrderByConfig{Enabled: true}, nil)
	offset, rowCount := int64(0), int64(10)
	sctx := &types.SqlContext{
		Statement: &sqlast.SelectStatement{
			Table:   "users",
			OrderBy: []string{"id"},
			Limit:   &sqlast.LimitClause{Offset: &offset, RowCount: &rowCount},
		},
	}
	result := types.NewValidationResult()
	c.Check(sctx, result)

	require.True(t, result.Passed())
}

func TestMissingOrderBySuppressedByEarlyReturn(t *testing.T) {
	c := NewMissingOrderByChecker(MissingOrderByConfig{Enabled: true}, nil)
	offset, rowCount := int64(0), int64(10)
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
