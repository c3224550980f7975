package checkers

import (
	"github.com/sqlsentry/sqlsentry/pkg/astutil"
	"github.com/sqlsentry/sqlsentry/pkg/pagination"
	"github.com/sqlsentry/sqlsentry/pkg/sqlast"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// NoConditionPaginationChecker flags a PHYSICAL pagination query
// (a LIMIT the database will honor) that has no WHERE at all, or only
// a dummy one (spec.md §4.5.6): a LIMIT on an unfiltered query still
// forces a full table scan to find the rows to discard.
//
// When it fires it sets result.Signals.EarlyReturn, which the three
// checkers after it in the fixed order (DeepPagination,
// LargePageSize, MissingOrderBy) check to suppress themselves — firing
// all four at once would bury the one finding that matters under
// lower-priority noise about the same LIMIT clause.
type NoConditionPaginationChecker struct {
	cfg     NoConditionPaginationConfig
	plugins []types.PluginDescriptor
}

// NewNoConditionPaginationChecker builds a NoConditionPaginationChecker.
func NewNoConditionPaginationChecker(cfg NoConditionPaginationConfig, plugins []types.PluginDescriptor) *NoConditionPaginationChecker {
	return &NoConditionPaginationChecker{cfg: cfg, plugins: plugins}
}

// Name returns the checker's source identifier.
func (c *NoConditionPaginationChecker) Name() string { return "NoConditionPagination" }

// Enabled reports whether this checker is active.
func (c *NoConditionPaginationChecker) Enabled() bool { return c.cfg.Enabled }

// Check appends a CRITICAL violation and sets EarlyReturn when sctx is
// PHYSICAL-paginated with no real WHERE condition.
func (c *NoConditionPaginationChecker) Check(sctx *types.SqlContext, result *types.ValidationResult) {
	if pagination.Detect(sctx, c.plugins) != types.PaginationPhysical {
		return
	}
	if sctx.Statement == nil {
		return
	}
	where := astutil.ExtractWhere(sctx.Statement)
	if where != nil && !isEffectivelyDummy(where) {
		return
	}
	result.AddViolation(types.ViolationInfo{
		RiskLevel:  types.RiskCritical,
		Message:    "a LIMIT clause is present but the query has no real WHERE condition, forcing a full scan before the limit is applied",
		Suggestion: "add a selective WHERE condition before relying on LIMIT for pagination",
		Source:     c.Name(),
	})
	result.Signals.EarlyReturn = true
}

func isEffectivelyDummy(where sqlast.Expression) bool {
	return containsDummyNode(where)
}
