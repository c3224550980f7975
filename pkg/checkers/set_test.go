package checkers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlsentry/sqlsentry/pkg/sqlast"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

func runAll(cs []Checker, sctx *types.SqlContext) *types.ValidationResult {
	result := types.NewValidationResult()
	for _, c := range cs {
		if c.Enabled() {
			c.Check(sctx, result)
		}
	}
	return result
}

func sourcesOf(result *types.ValidationResult) []string {
	names := make([]string, len(result.Violations))
	for i, v := range result.Violations {
		names[i] = v.Source
	}
	return names
}

func TestDefaultCheckersFixedOrder(t *testing.T) {
	cs := NewDefaultCheckers(DefaultConfig(), nil)
	require.Len(t, cs, 10)
	want := []string{
		"NoWhereClause", "DummyCondition", "BlacklistField", "WhitelistField",
		"LogicalPagination", "NoConditionPagination", "DeepPagination",
		"LargePageSize", "MissingOrderBy", "NoPagination",
	}
	got := make([]string, len(cs))
	for i, c := range cs {
		got[i] = c.Name()
	}
	require.Equal(t, want, got)
}

func TestNoConditionPaginationSuppressesLaterPaginationCheckersInFixedOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DeepPagination.MaxOffset = 0
	cfg.LargePageSize.MaxPageSize = 0
	cs := NewDefaultCheckers(cfg, nil)

	offset, rowCount := int64(50), int64(500)
	sctx := &types.SqlContext{
		Type: types.CommandSelect,
		Statement: &sqlast.SelectStatement{
			Table: "orders",
			Limit: &sqlast.LimitClause{Offset: &offset, RowCount: &rowCount},
		},
	}

	result := runAll(cs, sctx)

	sources := sourcesOf(result)
	require.Contains(t, sources, "NoConditionPagination")
	require.NotContains(t, sources, "DeepPagination")
	require.NotContains(t, sources, "LargePageSize")
	require.NotContains(t, sources, "MissingOrderBy")
}

func TestUpdateWithoutWhereIsCritical(t *testing.T) {
	cs := NewDefaultCheckers(DefaultConfig(), nil)
	sctx := &types.SqlContext{
		Type:      types.CommandUpdate,
		Statement: &sqlast.UpdateStatement{Table: "users"},
	}
	result := runAll(cs, sctx)

	require.Equal(t, types.RiskCritical, result.RiskLevel())
	require.Contains(t, sourcesOf(result), "NoWhereClause")
}

func TestSelectWithDeepOffsetAndNoOrderByFiresBothIndependently(t *testing.T) {
	cs := NewDefaultCheckers(DefaultConfig(), nil)
	offset, rowCount := int64(50000), int64(10)
	where := &sqlast.BinaryExpr{Op: "=", Left: &sqlast.ColumnRef{Name: "id"}, Right: &sqlast.Placeholder{}}
	sctx := &types.SqlContext{
		Type: types.CommandSelect,
		Statement: &sqlast.SelectStatement{
			Table: "orders",
			Where: where,
			Limit: &sqlast.LimitClause{Offset: &offset, RowCount: &rowCount},
		},
	}
	result := runAll(cs, sctx)

	sources := sourcesOf(result)
	require.Contains(t, sources, "DeepPagination")
	require.Contains(t, sources, "MissingOrderBy")
}

func TestWellFormedPaginatedSelectPasses(t *testing.T) {
	cs := NewDefaultCheckers(DefaultConfig(), nil)
	offset, rowCount := int64(0), int64(20)
	where := &sqlast.BinaryExpr{Op: "=", Left: &sqlast.ColumnRef{Name: "tenant_id"}, Right: &sqlast.Placeholder{}}
	sctx := &types.SqlContext{
		Type: types.CommandSelect,
		Statement: &sqlast.SelectStatement{
			Table:   "orders",
			Where:   where,
			OrderBy: []string{"id"},
			Limit:   &sqlast.LimitClause{Offset: &offset, RowCount: &rowCount},
		},
	}
	result := runAll(cs, sctx)

	require.True(t, result.Passed())
}
