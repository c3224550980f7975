package checkers

import "github.com/sqlsentry/sqlsentry/pkg/types"

// NewDefaultCheckers builds the fixed, ordered checker list the
// orchestrator runs (spec.md §4.5's numbering, 4.5.1 through 4.5.10).
//
// The source keeps its rules in a map[string]Rule registry; this
// module deliberately uses an explicit ordered slice instead, because
// Go map iteration order is randomized and spec.md's testable
// invariants require the same fixed checker order on every call (both
// for the NoConditionPagination early-return handoff in §4.5.6–4.5.9,
// and for the "re-running twice yields identical violation order"
// property in §8).
func NewDefaultCheckers(cfg Config, plugins []types.PluginDescriptor) []Checker {
	return []Checker{
		NewNoWhereClauseChecker(cfg.NoWhereClause),
		NewDummyConditionChecker(cfg.DummyCondition),
		NewBlacklistFieldChecker(cfg.BlacklistField),
		NewWhitelistFieldChecker(cfg.WhitelistField),
		NewLogicalPaginationChecker(cfg.LogicalPagination, plugins),
		NewNoConditionPaginationChecker(cfg.NoConditionPagination, plugins),
		NewDeepPaginationChecker(cfg.DeepPagination, plugins),
		NewLargePageSizeChecker(cfg.LargePageSize, plugins),
		NewMissingOrderByChecker(cfg.MissingOrderBy, plugins),
		NewNoPaginationChecker(cfg.NoPagination, plugins),
	}
}
