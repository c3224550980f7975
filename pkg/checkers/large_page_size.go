package checkers

import (
	"fmt"

	"github.com/sqlsentry/sqlsentry/pkg/pagination"
	"github.com/sqlsentry/sqlsentry/pkg/sqlast"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// LargePageSizeChecker flags a LIMIT row count large enough that a
// single page transfers an unreasonable amount of data (spec.md
// §4.5.8). Independent of DeepPaginationChecker: both may fire on the
// same statement.
type LargePageSizeChecker struct {
	cfg     LargePageSizeConfig
	plugins []types.PluginDescriptor
}

// NewLargePageSizeChecker builds a LargePageSizeChecker.
func NewLargePageSizeChecker(cfg LargePageSizeConfig, plugins []types.PluginDescriptor) *LargePageSizeChecker {
	return &LargePageSizeChecker{cfg: cfg, plugins: plugins}
}

// Name returns the checker's source identifier.
func (c *LargePageSizeChecker) Name() string { return "LargePageSize" }

// Enabled reports whether this checker is active.
func (c *LargePageSizeChecker) Enabled() bool { return c.cfg.Enabled }

// Check appends a MEDIUM violation when the literal LIMIT row count
// exceeds MaxPageSize. Placeholder row counts are skipped.
func (c *LargePageSizeChecker) Check(sctx *types.SqlContext, result *types.ValidationResult) {
	if result.Signals.EarlyReturn {
		return
	}
	if pagination.Detect(sctx, c.plugins) != types.PaginationPhysical {
		return
	}
	sel, ok := sctx.Statement.(*sqlast.SelectStatement)
	if !ok {
		return
	}
	rowCount, ok := pagination.LimitRowCount(sel.Limit)
	if !ok || rowCount <= c.cfg.MaxPageSize {
		return
	}
	result.AddViolation(types.ViolationInfo{
		RiskLevel:  types.RiskMedium,
		Message:    fmt.Sprintf("LIMIT row count %d exceeds the configured maximum of %d", rowCount, c.cfg.MaxPageSize),
		Suggestion: "reduce the page size or paginate in smaller batches",
		Source:     c.Name(),
	})
}
