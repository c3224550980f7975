package checkers

import (
	"strings"

	"github.com/sqlsentry/sqlsentry/pkg/astutil"
	"github.com/sqlsentry/sqlsentry/pkg/sqlast"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// DummyConditionChecker flags WHERE clauses containing a tautology
// such as "1=1" (spec.md §4.5.2), combining a pattern match over the
// normalized SQL text with a structural AST check.
type DummyConditionChecker struct {
	cfg DummyConditionConfig
}

// NewDummyConditionChecker builds a DummyConditionChecker.
func NewDummyConditionChecker(cfg DummyConditionConfig) *DummyConditionChecker {
	return &DummyConditionChecker{cfg: cfg}
}

// Name returns the checker's source identifier.
func (c *DummyConditionChecker) Name() string { return "DummyCondition" }

// Enabled reports whether this checker is active.
func (c *DummyConditionChecker) Enabled() bool { return c.cfg.Enabled }

// Check appends a HIGH violation if sctx has a WHERE clause matching
// any configured dummy pattern, or containing a structurally dummy
// node reachable through AND/OR.
func (c *DummyConditionChecker) Check(sctx *types.SqlContext, result *types.ValidationResult) {
	if sctx.Statement == nil {
		return
	}
	where := astutil.ExtractWhere(sctx.Statement)
	if where == nil {
		return
	}

	if matchesDummyPattern(sctx.SQL, c.cfg.Patterns) || containsDummyNode(where) {
		result.AddViolation(types.ViolationInfo{
			RiskLevel:  types.RiskHigh,
			Message:    "WHERE clause contains a condition that is always true",
			Suggestion: "replace the tautological condition with a real filter",
			Source:     c.Name(),
		})
	}
}

func matchesDummyPattern(sql string, patterns []string) bool {
	normalized := normalizeText(sql)
	for _, pattern := range patterns {
		if strings.Contains(normalized, normalizeText(pattern)) {
			return true
		}
	}
	return false
}

// normalizeText lowercases sql and collapses runs of whitespace to a
// single space, matching spec.md §4.5.2's pattern-matching basis.
func normalizeText(sql string) string {
	fields := strings.Fields(strings.ToLower(sql))
	return strings.Join(fields, " ")
}

// containsDummyNode walks expr through AND/OR (and parens) looking for
// any structurally-dummy subexpression, per spec.md §4.5.2's
// "reachable through AND/OR" rule.
func containsDummyNode(expr sqlast.Expression) bool {
	if expr == nil {
		return false
	}
	if astutil.IsDummyCondition(expr) {
		return true
	}
	switch e := expr.(type) {
	case *sqlast.BinaryExpr:
		if e.Op == "AND" || e.Op == "OR" {
			return containsDummyNode(e.Left) || containsDummyNode(e.Right)
		}
	case *sqlast.Paren:
		return containsDummyNode(e.Expr)
	}
	return false
}
