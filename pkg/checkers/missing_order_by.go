package checkers

import (
	"github.com/sqlsentry/sqlsentry/pkg/pagination"
	"github.com/sqlsentry/sqlsentry/pkg/sqlast"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// MissingOrderByChecker flags a physically-paginated SELECT with no
// ORDER BY (spec.md §4.5.9): without a deterministic order, successive
// pages can skip or repeat rows as the underlying data changes. No
// judgment is made on the quality of the ORDER BY, only its presence.
type MissingOrderByChecker struct {
	cfg     MissingOrderByConfig
	plugins []types.PluginDescriptor
}

// NewMissingOrderByChecker builds a MissingOrderByChecker.
func NewMissingOrderByChecker(cfg MissingOrderByConfig, plugins []types.PluginDescriptor) *MissingOrderByChecker {
	return &MissingOrderByChecker{cfg: cfg, plugins: plugins}
}

// Name returns the checker's source identifier.
func (c *MissingOrderByChecker) Name() string { return "MissingOrderBy" }

// Enabled reports whether this checker is active.
func (c *MissingOrderByChecker) Enabled() bool { return c.cfg.Enabled }

// Check appends a LOW violation if sctx is PHYSICAL-paginated and has
// no ORDER BY.
func (c *MissingOrderByChecker) Check(sctx *types.SqlContext, result *types.ValidationResult) {
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
	if len(sel.OrderBy) > 0 {
		return
	}
	result.AddViolation(types.ViolationInfo{
		RiskLevel:  types.RiskLow,
		Message:    "paginated query has no ORDER BY, so row order across pages is not guaranteed",
		Suggestion: "add an ORDER BY over a stable, ideally unique, column set",
		Source:     c.Name(),
	})
}
