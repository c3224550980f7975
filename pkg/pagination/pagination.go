// Package pagination implements the C4 pagination detector (spec.md
// §4.4): classifying a SqlContext as LOGICAL, PHYSICAL or NONE by
// combining AST inspection, parameter inspection and a supplied plugin
// registry.
package pagination

import (
	"strings"

	"github.com/sqlsentry/sqlsentry/pkg/sqlast"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// pageObject is the nominal capability recognized as a page parameter
// independent of types.Pager, matching spec.md §4.4 rule 2's
// "class name ends in Page" recognition for plain structs that don't
// implement the Pager interface.
type pageObject interface {
	IsPageObject() bool
}

// Detect classifies sctx per the ordered decision rule in spec.md
// §4.4. plugins is the set of interceptors/handlers registered at the
// ORM layer; a pagination plugin is recognized by a name ending in
// "Page" or "Pagination", optionally followed by "Interceptor", the same class-name-suffix convention the source uses to
// avoid a hard dependency on a concrete pagination library.
func Detect(sctx *types.SqlContext, plugins []types.PluginDescriptor) types.PaginationType {
	hasLimit := statementHasLimit(sctx.Statement)
	hasPageParam := hasPageParameter(sctx)
	hasPlugin := hasPaginationPlugin(plugins)

	switch {
	case hasPageParam && !hasLimit && !hasPlugin:
		return types.PaginationLogical
	case hasLimit || (hasPageParam && hasPlugin):
		return types.PaginationPhysical
	default:
		return types.PaginationNone
	}
}

func statementHasLimit(stmt sqlast.Statement) bool {
	sel, ok := stmt.(*sqlast.SelectStatement)
	if !ok {
		return false
	}
	return sel.Limit != nil
}

func hasPageParameter(sctx *types.SqlContext) bool {
	if sctx.RowBounds != nil && *sctx.RowBounds != types.DefaultInfiniteRowBounds {
		return true
	}
	for _, param := range sctx.Parameters {
		if isRecognizedPageValue(param.Value) {
			return true
		}
	}
	return false
}

func isRecognizedPageValue(value any) bool {
	if value == nil {
		return false
	}
	if _, ok := value.(types.Pager); ok {
		return true
	}
	if po, ok := value.(pageObject); ok {
		return po.IsPageObject()
	}
	return false
}

func hasPaginationPlugin(plugins []types.PluginDescriptor) bool {
	for _, p := range plugins {
		name := strings.TrimSuffix(p.Name, "Interceptor")
		if strings.HasSuffix(name, "Page") || strings.HasSuffix(name, "Pagination") {
			return true
		}
	}
	return false
}

// LimitOffset returns the literal offset encoded in a LIMIT clause, in
// either "LIMIT rowCount OFFSET offset" or comma form "LIMIT offset,
// rowCount". ok is false if the clause is absent or the offset is a
// bound parameter rather than a literal.
func LimitOffset(limit *sqlast.LimitClause) (offset int64, ok bool) {
	if limit == nil || limit.OffsetIsParam || limit.Offset == nil {
		return 0, false
	}
	return *limit.Offset, true
}

// LimitRowCount returns the literal row count encoded in a LIMIT
// clause. ok is false if the clause is absent or the row count is a
// bound parameter rather than a literal.
func LimitRowCount(limit *sqlast.LimitClause) (rowCount int64, ok bool) {
	if limit == nil || limit.RowCountIsParam || limit.RowCount == nil {
		return 0, false
	}
	return *limit.RowCount, true
}
