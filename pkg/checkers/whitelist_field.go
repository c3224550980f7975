package checkers

import (
	"fmt"

	"github.com/sqlsentry/sqlsentry/pkg/astutil"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// WhitelistFieldChecker enforces that mutating/selecting statements
// against specific tables reference at least one mandatory field in
// their WHERE clause (spec.md §4.5.4), e.g. always scoping by tenant
// id on a multi-tenant table.
type WhitelistFieldChecker struct {
	cfg WhitelistFieldConfig
}

// NewWhitelistFieldChecker builds a WhitelistFieldChecker.
func NewWhitelistFieldChecker(cfg WhitelistFieldConfig) *WhitelistFieldChecker {
	return &WhitelistFieldChecker{cfg: cfg}
}

// Name returns the checker's source identifier.
func (c *WhitelistFieldChecker) Name() string { return "WhitelistField" }

// Enabled reports whether this checker is active.
func (c *WhitelistFieldChecker) Enabled() bool { return c.cfg.Enabled }

// Check appends a MEDIUM violation if the table has a configured
// required-field set and none of them appear in the WHERE clause.
func (c *WhitelistFieldChecker) Check(sctx *types.SqlContext, result *types.ValidationResult) {
	if sctx.Statement == nil {
		return
	}
	table := astutil.ExtractTableName(sctx.Statement)
	required, known := c.cfg.RequiredFields[table]
	if !known {
		if !c.cfg.EnforceForUnknownTables {
			return
		}
		required = c.cfg.GlobalRequiredFields
	}
	if len(required) == 0 {
		return
	}

	fields := astutil.ExtractFields(astutil.ExtractWhere(sctx.Statement))
	for _, req := range required {
		if _, ok := fields[req]; ok {
			return
		}
	}
	result.AddViolation(types.ViolationInfo{
		RiskLevel:  types.RiskMedium,
		Message:    fmt.Sprintf("statement against table %q does not reference any of its required fields %v", table, required),
		Suggestion: "add one of the required fields to the WHERE clause",
		Source:     c.Name(),
	})
}
