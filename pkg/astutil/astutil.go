// Package astutil implements the C2 AST utilities spec.md §4.2
// describes: pulling a WHERE clause and driving table out of a parsed
// statement, collecting the columns an expression references, and
// recognizing constant and "dummy" (always-true) conditions.
package astutil

import "github.com/sqlsentry/sqlsentry/pkg/sqlast"

// ExtractWhere returns the WHERE expression of stmt, or nil if stmt
// has none (including statement kinds, like INSERT, that never do).
func ExtractWhere(stmt sqlast.Statement) sqlast.Expression {
	switch s := stmt.(type) {
	case *sqlast.SelectStatement:
		return s.Where
	case *sqlast.UpdateStatement:
		return s.Where
	case *sqlast.DeleteStatement:
		return s.Where
	default:
		return nil
	}
}

// ExtractTableName returns the driving table of stmt, or "" if stmt
// is nil or of an unrecognized kind.
func ExtractTableName(stmt sqlast.Statement) string {
	switch s := stmt.(type) {
	case *sqlast.SelectStatement:
		return s.Table
	case *sqlast.UpdateStatement:
		return s.Table
	case *sqlast.DeleteStatement:
		return s.Table
	case *sqlast.InsertStatement:
		return s.Table
	default:
		return ""
	}
}

// ExtractFields walks expr and returns the set of lower-cased, table
// prefix-stripped column names it references, covering AND/OR/NOT,
// comparisons, IN, BETWEEN, IS NULL, function arguments and
// parenthesized groups.
func ExtractFields(expr sqlast.Expression) map[string]struct{} {
	fields := make(map[string]struct{})
	collectFields(expr, fields)
	return fields
}

func collectFields(expr sqlast.Expression, out map[string]struct{}) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *sqlast.ColumnRef:
		out[lower(e.Name)] = struct{}{}
	case *sqlast.BinaryExpr:
		collectFields(e.Left, out)
		collectFields(e.Right, out)
	case *sqlast.NotExpr:
		collectFields(e.Expr, out)
	case *sqlast.IsNullExpr:
		collectFields(e.Expr, out)
	case *sqlast.InExpr:
		collectFields(e.Expr, out)
		for _, item := range e.List {
			collectFields(item, out)
		}
	case *sqlast.BetweenExpr:
		collectFields(e.Expr, out)
		collectFields(e.Low, out)
		collectFields(e.High, out)
	case *sqlast.FuncCall:
		for _, arg := range e.Args {
			collectFields(arg, out)
		}
	case *sqlast.Paren:
		collectFields(e.Expr, out)
	}
}

// IsConstant reports whether expr is fully made of literals (and the
// parens/operators combining them), with no column reference or
// placeholder anywhere in it.
func IsConstant(expr sqlast.Expression) bool {
	switch e := expr.(type) {
	case nil:
		return true
	case *sqlast.Literal:
		return true
	case *sqlast.Placeholder:
		return false
	case *sqlast.ColumnRef:
		return false
	case *sqlast.BinaryExpr:
		return IsConstant(e.Left) && IsConstant(e.Right)
	case *sqlast.NotExpr:
		return IsConstant(e.Expr)
	case *sqlast.Paren:
		return IsConstant(e.Expr)
	case *sqlast.IsNullExpr:
		return IsConstant(e.Expr)
	case *sqlast.InExpr:
		if !IsConstant(e.Expr) {
			return false
		}
		for _, item := range e.List {
			if !IsConstant(item) {
				return false
			}
		}
		return true
	case *sqlast.BetweenExpr:
		return IsConstant(e.Expr) && IsConstant(e.Low) && IsConstant(e.High)
	case *sqlast.FuncCall:
		for _, arg := range e.Args {
			if !IsConstant(arg) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// IsDummyCondition recognizes the always-true shapes the DummyCondition
// checker flags on top of its literal-pattern matching: a boolean TRUE
// literal, an equality between two constants, or an equality between
// two references to the same column (e.g. "a.id = a.id").
func IsDummyCondition(expr sqlast.Expression) bool {
	switch e := unwrapParen(expr).(type) {
	case *sqlast.Literal:
		return e.Kind == sqlast.LiteralBool && lower(e.Value) == "true"
	case *sqlast.BinaryExpr:
		if e.Op != "=" {
			return false
		}
		left := unwrapParen(e.Left)
		right := unwrapParen(e.Right)
		if IsConstant(left) && IsConstant(right) {
			return true
		}
		if sameColumn(left, right) {
			return true
		}
		return false
	default:
		return false
	}
}

func sameColumn(a, b sqlast.Expression) bool {
	ca, ok := a.(*sqlast.ColumnRef)
	if !ok {
		return false
	}
	cb, ok := b.(*sqlast.ColumnRef)
	if !ok {
		return false
	}
	return lower(ca.Name) == lower(cb.Name) && lower(ca.Table) == lower(cb.Table)
}

func unwrapParen(expr sqlast.Expression) sqlast.Expression {
	for {
		p, ok := expr.(*sqlast.Paren)
		if !ok {
			return expr
		}
		expr = p.Expr
	}
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
