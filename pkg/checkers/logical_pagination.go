package checkers

import (
	"fmt"

	"github.com/sqlsentry/sqlsentry/pkg/pagination"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// LogicalPaginationChecker flags the dangerous LOGICAL pagination case
// (spec.md §4.5.5): the caller expressed pagination intent but nothing
// rewrites the SQL, so the driver fetches the full result and the
// framework slices it in memory.
type LogicalPaginationChecker struct {
	cfg     LogicalPaginationConfig
	plugins []types.PluginDescriptor
}

// NewLogicalPaginationChecker builds a LogicalPaginationChecker.
func NewLogicalPaginationChecker(cfg LogicalPaginationConfig, plugins []types.PluginDescriptor) *LogicalPaginationChecker {
	return &LogicalPaginationChecker{cfg: cfg, plugins: plugins}
}

// Name returns the checker's source identifier.
func (c *LogicalPaginationChecker) Name() string { return "LogicalPagination" }

// Enabled reports whether this checker is active.
func (c *LogicalPaginationChecker) Enabled() bool { return c.cfg.Enabled }

// Check appends a CRITICAL violation when pagination.Detect classifies
// sctx as LOGICAL.
func (c *LogicalPaginationChecker) Check(sctx *types.SqlContext, result *types.ValidationResult) {
	if pagination.Detect(sctx, c.plugins) != types.PaginationLogical {
		return
	}
	result.AddViolation(types.ViolationInfo{
		RiskLevel:  types.RiskCritical,
		Message:    fmt.Sprintf("pagination parameters are present (%s) but no LIMIT clause or pagination plugin will rewrite the query; the full result set will be fetched and sliced in memory", describePageIntent(sctx)),
		Suggestion: "install a pagination plugin or rewrite the query to include a LIMIT clause",
		Source:     c.Name(),
	})
}

func describePageIntent(sctx *types.SqlContext) string {
	if sctx.RowBounds != nil && *sctx.RowBounds != types.DefaultInfiniteRowBounds {
		return fmt.Sprintf("offset=%d, limit=%d", sctx.RowBounds.Offset, sctx.RowBounds.Limit)
	}
	for _, param := range sctx.Parameters {
		if pager, ok := param.Value.(types.Pager); ok {
			return fmt.Sprintf("page=%d, pageSize=%d", pager.PageNumber(), pager.PageSize())
		}
	}
	return "row-bounds parameter"
}
