package checkers

import (
	"fmt"

	"github.com/sqlsentry/sqlsentry/pkg/astutil"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// NoWhereClauseChecker flags UPDATE/DELETE statements with no WHERE
// clause at all: the single most destructive class of bug (spec.md
// §4.5.1), since it rewrites or removes every row in the table.
type NoWhereClauseChecker struct {
	cfg NoWhereClauseConfig
}

// NewNoWhereClauseChecker builds a NoWhereClauseChecker.
func NewNoWhereClauseChecker(cfg NoWhereClauseConfig) *NoWhereClauseChecker {
	return &NoWhereClauseChecker{cfg: cfg}
}

// Name returns the checker's source identifier.
func (c *NoWhereClauseChecker) Name() string { return "NoWhereClause" }

// Enabled reports whether this checker is active.
func (c *NoWhereClauseChecker) Enabled() bool { return c.cfg.Enabled }

// Check appends a CRITICAL violation if sctx is an UPDATE or DELETE
// with no WHERE clause.
func (c *NoWhereClauseChecker) Check(sctx *types.SqlContext, result *types.ValidationResult) {
	if sctx.Type != types.CommandUpdate && sctx.Type != types.CommandDelete {
		return
	}
	if sctx.Statement == nil {
		return
	}
	if astutil.ExtractWhere(sctx.Statement) != nil {
		return
	}
	table := astutil.ExtractTableName(sctx.Statement)
	result.AddViolation(types.ViolationInfo{
		RiskLevel:  types.RiskCritical,
		Message:    fmt.Sprintf("%s on table %q has no WHERE clause and will affect every row", sctx.Type, table),
		Suggestion: "add a WHERE clause that scopes this statement to the intended rows",
		Source:     c.Name(),
	})
}
