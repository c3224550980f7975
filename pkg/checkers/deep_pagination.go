package checkers

import (
	"fmt"

	"github.com/sqlsentry/sqlsentry/pkg/pagination"
	"github.com/sqlsentry/sqlsentry/pkg/sqlast"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// DeepPaginationChecker flags a LIMIT offset deep enough that the
// database must still scan and discard that many rows before it can
// return a page (spec.md §4.5.7).
type DeepPaginationChecker struct {
	cfg     DeepPaginationConfig
	plugins []types.PluginDescriptor
}

// NewDeepPaginationChecker builds a DeepPaginationChecker.
func NewDeepPaginationChecker(cfg DeepPaginationConfig, plugins []types.PluginDescriptor) *DeepPaginationChecker {
	return &DeepPaginationChecker{cfg: cfg, plugins: plugins}
}

// Name returns the checker's source identifier.
func (c *DeepPaginationChecker) Name() string { return "DeepPagination" }

// Enabled reports whether this checker is active.
func (c *DeepPaginationChecker) Enabled() bool { return c.cfg.Enabled }

// Check appends a MEDIUM violation when the literal LIMIT offset
// exceeds MaxOffset. Placeholder offsets are skipped: the runtime
// value is unknown at validation time.
func (c *DeepPaginationChecker) Check(sctx *types.SqlContext, result *types.ValidationResult) {
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
	offset, ok := pagination.LimitOffset(sel.Limit)
	if !ok || offset <= c.cfg.MaxOffset {
		return
	}
	result.AddViolation(types.ViolationInfo{
		RiskLevel:  types.RiskMedium,
		Message:    fmt.Sprintf("LIMIT offset %d exceeds the configured maximum of %d", offset, c.cfg.MaxOffset),
		Suggestion: "use keyset (seek) pagination instead of a deep OFFSET",
		Source:     c.Name(),
	})
}
