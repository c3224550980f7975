package checkers

import (
	"strings"

	"github.com/sqlsentry/sqlsentry/pkg/astutil"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// BlacklistFieldChecker flags a WHERE clause that references only
// low-selectivity status/flag columns (spec.md §4.5.3): such a filter
// still matches a large fraction of the table.
type BlacklistFieldChecker struct {
	cfg BlacklistFieldConfig
}

// NewBlacklistFieldChecker builds a BlacklistFieldChecker.
func NewBlacklistFieldChecker(cfg BlacklistFieldConfig) *BlacklistFieldChecker {
	return &BlacklistFieldChecker{cfg: cfg}
}

// Name returns the checker's source identifier.
func (c *BlacklistFieldChecker) Name() string { return "BlacklistField" }

// Enabled reports whether this checker is active.
func (c *BlacklistFieldChecker) Enabled() bool { return c.cfg.Enabled }

// Check appends a HIGH violation if every field referenced in the
// WHERE clause is blacklisted.
func (c *BlacklistFieldChecker) Check(sctx *types.SqlContext, result *types.ValidationResult) {
	if sctx.Statement == nil {
		return
	}
	where := astutil.ExtractWhere(sctx.Statement)
	if where == nil {
		return
	}
	fields := astutil.ExtractFields(where)
	if len(fields) == 0 {
		return
	}
	for field := range fields {
		if !fieldMatchesAny(field, c.cfg.Fields) {
			return
		}
	}
	result.AddViolation(types.ViolationInfo{
		RiskLevel:  types.RiskHigh,
		Message:    "WHERE clause filters only on low-selectivity status/flag fields",
		Suggestion: "combine with a more selective condition such as a primary key or indexed business key",
		Source:     c.Name(),
	})
}

// fieldMatchesAny reports whether field (already lower-cased) matches
// any of patterns, where a pattern ending in "*" matches by prefix.
func fieldMatchesAny(field string, patterns []string) bool {
	for _, raw := range patterns {
		pattern := strings.ToLower(raw)
		if strings.HasSuffix(pattern, "*") {
			if strings.HasPrefix(field, strings.TrimSuffix(pattern, "*")) {
				return true
			}
			continue
		}
		if field == pattern {
			return true
		}
	}
	return false
}
