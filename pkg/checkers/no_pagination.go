package checkers

import (
	"fmt"

	"github.com/sqlsentry/sqlsentry/pkg/astutil"
	"github.com/sqlsentry/sqlsentry/pkg/pagination"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// NoPaginationChecker flags a SELECT with no pagination at all —
// neither a LIMIT nor a row-bounds/page parameter — against a table
// considered large-volume (spec.md §4.5.10). Severity is configurable
// per table; an unmatched table defaults to MEDIUM. A statementId
// whitelist exempts legitimate full-table queries such as batch jobs
// and admin reports.
type NoPaginationChecker struct {
	cfg     NoPaginationConfig
	plugins []types.PluginDescriptor
}

// NewNoPaginationChecker builds a NoPaginationChecker.
func NewNoPaginationChecker(cfg NoPaginationConfig, plugins []types.PluginDescriptor) *NoPaginationChecker {
	return &NoPaginationChecker{cfg: cfg, plugins: plugins}
}

// Name returns the checker's source identifier.
func (c *NoPaginationChecker) Name() string { return "NoPagination" }

// Enabled reports whether this checker is active.
func (c *NoPaginationChecker) Enabled() bool { return c.cfg.Enabled }

// Check appends a violation, at the table's configured severity, when
// sctx is an un-exempted SELECT with PaginationType NONE.
func (c *NoPaginationChecker) Check(sctx *types.SqlContext, result *types.ValidationResult) {
	if sctx.Type != types.CommandSelect {
		return
	}
	if pagination.Detect(sctx, c.plugins) != types.PaginationNone {
		return
	}
	if c.isExempt(sctx.StatementID) {
		return
	}

	table := astutil.ExtractTableName(sctx.Statement)
	severity, ok := c.cfg.TableSeverity[table]
	if !ok {
		severity = types.RiskMedium
	}
	result.AddViolation(types.ViolationInfo{
		RiskLevel:  severity,
		Message:    fmt.Sprintf("SELECT against table %q has no LIMIT and no pagination parameter", table),
		Suggestion: "add pagination, or add this statementId to the exemption whitelist if a full scan is intentional",
		Source:     c.Name(),
	})
}

func (c *NoPaginationChecker) isExempt(statementID string) bool {
	for _, id := range c.cfg.StatementIDWhitelist {
		if id == statementID {
			return true
		}
	}
	return false
}
