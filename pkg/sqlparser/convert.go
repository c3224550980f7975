package sqlparser

import (
	"strconv"
	"strings"

	"github.com/antlr4-go/antlr/v4"
	mysql "github.com/gedhean/mysql-parser"

	"github.com/sqlsentry/sqlsentry/pkg/sqlast"
)

// parseWithGrammar drives the generated MySQL grammar over sql and
// converts its parse tree into sqlast.Statement, the way
// walk_through_for_mysql.go converts ANTLR contexts into rule inputs
// in the upstream checker, but targeting this package's own AST
// instead of a DatabaseState.
func parseWithGrammar(sql string) (sqlast.Statement, error) {
	input := antlr.NewInputStream(sql)
	lexer := mysql.NewMySQLLexer(input)
	lexErr := newParseErrorListener(sql)
	lexer.RemoveErrorListeners()
	lexer.AddErrorListener(lexErr)

	stream := antlr.NewCommonTokenStream(lexer, antlr.TokenDefaultChannel)
	p := mysql.NewMySQLParser(stream)
	parseErr := newParseErrorListener(sql)
	p.RemoveErrorListeners()
	p.AddErrorListener(parseErr)
	p.BuildParseTrees = true

	tree := p.Script()

	if lexErr.Err != nil {
		return nil, lexErr.Err
	}
	if parseErr.Err != nil {
		return nil, parseErr.Err
	}

	script, ok := tree.(*mysql.ScriptContext)
	if !ok {
		return nil, &SyntaxError{Message: "empty statement"}
	}
	queries := script.AllQuery()
	if len(queries) == 0 {
		return nil, &SyntaxError{Message: "no statement found"}
	}
	simple := queries[0].SimpleStatement()
	if simple == nil {
		return nil, &SyntaxError{Message: "unsupported statement kind"}
	}

	switch {
	case simple.SelectStatement() != nil:
		return convertSelect(simple.SelectStatement())
	case simple.UpdateStatement() != nil:
		return convertUpdate(simple.UpdateStatement())
	case simple.DeleteStatement() != nil:
		return convertDelete(simple.DeleteStatement())
	case simple.InsertStatement() != nil:
		return convertInsert(simple.InsertStatement())
	default:
		return nil, &SyntaxError{Message: "unsupported statement kind"}
	}
}

func convertSelect(ctx mysql.ISelectStatementContext) (sqlast.Statement, error) {
	qs := findQuerySpecification(ctx)
	if qs == nil {
		return nil, &SyntaxError{Message: "unsupported select form"}
	}

	table, err := drivingTable(qs.FromClause())
	if err != nil {
		return nil, err
	}

	sel := &sqlast.SelectStatement{Table: table}
	if where := qs.WhereClause(); where != nil {
		sel.Where = convertWhereClause(where)
	}
	if lim := findLimitClause(ctx); lim != nil {
		sel.Limit = convertLimitClause(lim)
	}
	sel.OrderBy = extractOrderBy(findOrderClause(ctx))
	return sel, nil
}

func convertUpdate(ctx mysql.IUpdateStatementContext) (sqlast.Statement, error) {
	trl := ctx.TableReferenceList()
	if trl == nil {
		return nil, &SyntaxError{Message: "update without table"}
	}
	refs := trl.AllTableReference()
	if len(refs) == 0 {
		return nil, &SyntaxError{Message: "update without table"}
	}
	ref := firstTableRef(refs[0])
	if ref == nil {
		return nil, &SyntaxError{Message: "update without table"}
	}

	upd := &sqlast.UpdateStatement{Table: stripQualifier(ref.GetText())}
	if where := ctx.WhereClause(); where != nil {
		upd.Where = convertWhereClause(where)
	}
	return upd, nil
}

func convertDelete(ctx mysql.IDeleteStatementContext) (sqlast.Statement, error) {
	ref := ctx.TableRef()
	if ref == nil {
		return nil, &SyntaxError{Message: "delete without table"}
	}

	del := &sqlast.DeleteStatement{Table: stripQualifier(ref.GetText())}
	if where := ctx.WhereClause(); where != nil {
		del.Where = convertWhereClause(where)
	}
	return del, nil
}

func convertInsert(ctx mysql.IInsertStatementContext) (sqlast.Statement, error) {
	ref := ctx.TableRef()
	if ref == nil {
		return nil, &SyntaxError{Message: "insert without table"}
	}
	return &sqlast.InsertStatement{
		Table:   stripQualifier(ref.GetText()),
		Columns: extractInsertColumns(ctx),
	}, nil
}

// drivingTable mirrors table_disallow_dml.go's TableReferenceList ->
// TableReference -> TableFactor -> SingleTable -> TableRef walk, but
// only needs the first table a FROM clause names.
func drivingTable(from mysql.IFromClauseContext) (string, error) {
	if from == nil {
		return "", &SyntaxError{Message: "select without FROM"}
	}
	ref := firstTableRef(from)
	if ref == nil {
		return "", &SyntaxError{Message: "select without a table"}
	}
	return stripQualifier(ref.GetText()), nil
}

func firstTableRef(root antlr.Tree) mysql.ITableRefContext {
	var found mysql.ITableRefContext
	walkTree(root, func(t antlr.Tree) bool {
		if ref, ok := t.(mysql.ITableRefContext); ok {
			found = ref
			return true
		}
		return false
	})
	return found
}

func findQuerySpecification(root antlr.Tree) mysql.IQuerySpecificationContext {
	var found mysql.IQuerySpecificationContext
	walkTree(root, func(t antlr.Tree) bool {
		if qs, ok := t.(mysql.IQuerySpecificationContext); ok {
			found = qs
			return true
		}
		return false
	})
	return found
}

func findLimitClause(root antlr.Tree) mysql.ILimitClauseContext {
	var found mysql.ILimitClauseContext
	walkTree(root, func(t antlr.Tree) bool {
		if lc, ok := t.(mysql.ILimitClauseContext); ok {
			found = lc
			return true
		}
		return false
	})
	return found
}

func findOrderClause(root antlr.Tree) mysql.IOrderClauseContext {
	var found mysql.IOrderClauseContext
	walkTree(root, func(t antlr.Tree) bool {
		if oc, ok := t.(mysql.IOrderClauseContext); ok {
			found = oc
			return true
		}
		return false
	})
	return found
}

func extractInsertColumns(ctx mysql.IInsertStatementContext) []string {
	var terms []string
	walkTree(ctx, func(t antlr.Tree) bool {
		term, ok := t.(antlr.TerminalNode)
		if !ok {
			return false
		}
		text := term.GetText()
		terms = append(terms, text)
		return strings.EqualFold(text, "VALUES") || strings.EqualFold(text, "SELECT")
	})

	start := -1
	for i, tok := range terms {
		if tok == "(" {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var columns []string
	var current strings.Builder
	depth := 0
	for _, tok := range terms[start:] {
		switch tok {
		case "(":
			depth++
			continue
		case ")":
			depth--
			if depth == 0 {
				if current.Len() > 0 {
					columns = append(columns, stripQualifier(current.String()))
				}
				return columns
			}
		case ",":
			if depth == 1 {
				if current.Len() > 0 {
					columns = append(columns, stripQualifier(current.String()))
					current.Reset()
				}
				continue
			}
		}
		current.WriteString(tok)
	}
	return columns
}

func extractOrderBy(ctx mysql.IOrderClauseContext) []string {
	if ctx == nil {
		return nil
	}
	skip := map[string]bool{"ORDER": true, "BY": true, "ASC": true, "DESC": true, ",": true}
	var cols []string
	walkTree(ctx, func(t antlr.Tree) bool {
		term, ok := t.(antlr.TerminalNode)
		if !ok {
			return false
		}
		text := term.GetText()
		if skip[strings.ToUpper(text)] {
			return false
		}
		cols = append(cols, stripQualifier(text))
		return false
	})
	return cols
}

func convertLimitClause(ctx mysql.ILimitClauseContext) *sqlast.LimitClause {
	opts := ctx.LimitOptions()
	if opts == nil {
		return nil
	}
	all := opts.AllLimitOption()
	if len(all) == 0 {
		return nil
	}

	lim := &sqlast.LimitClause{}
	if len(all) == 1 {
		rc, isParam := limitOptionValue(all[0])
		zero := int64(0)
		lim.RowCount, lim.RowCountIsParam = &rc, isParam
		lim.Offset = &zero
		return lim
	}

	first, firstParam := limitOptionValue(all[0])
	second, secondParam := limitOptionValue(all[1])
	if hasTerminal(ctx, "OFFSET") {
		lim.RowCount, lim.RowCountIsParam = &first, firstParam
		lim.Offset, lim.OffsetIsParam = &second, secondParam
		return lim
	}
	lim.CommaForm = true
	lim.Offset, lim.OffsetIsParam = &first, firstParam
	lim.RowCount, lim.RowCountIsParam = &second, secondParam
	return lim
}

func limitOptionValue(opt mysql.ILimitOptionContext) (int64, bool) {
	text := opt.GetText()
	if text == "?" {
		return 0, true
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, false
}

// convertWhereClause and convertExpr translate the expression subtree
// of a WHERE clause into sqlast.Expression. The structural nodes that
// carry operators (ExprOr, PredicateExprLike, PrimaryExprCompare,
// ExprList, and their close relatives for AND/IN/BETWEEN/IS NULL) are
// matched on their generated context type, the same way the checkers
// in pkg/rules/mysql type-switch on them; everything underneath that
// (the boolPri/predicate/bitExpr/simpleExpr passthrough chain down to
// a literal, column reference or placeholder) is read generically off
// the parse tree's children rather than guessing every intermediate
// accessor name.
func convertWhereClause(where mysql.IWhereClauseContext) sqlast.Expression {
	expr := firstNonTerminalChild(where)
	if expr == nil {
		return nil
	}
	return convertExpr(expr)
}

func convertExpr(tree antlr.Tree) sqlast.Expression {
	if tree == nil {
		return nil
	}
	switch ctx := tree.(type) {
	case *mysql.ExprOrContext:
		return convertLogicalChain(ctx, "OR")
	case *mysql.ExprAndContext:
		return convertLogicalChain(ctx, "AND")
	case *mysql.ExprNotContext:
		return &sqlast.NotExpr{Expr: convertExpr(firstNonTerminalChild(ctx))}
	case *mysql.PrimaryExprCompareContext:
		return convertCompare(ctx)
	case *mysql.PrimaryExprIsNullContext:
		return convertIsNull(ctx)
	case *mysql.PredicateExprInContext:
		return convertIn(ctx)
	case *mysql.PredicateExprBetweenContext:
		return convertBetween(ctx)
	case *mysql.PredicateExprLikeContext:
		return convertLike(ctx)
	case antlr.ParserRuleContext:
		return convertPassthrough(ctx)
	default:
		return nil
	}
}

func convertLogicalChain(ctx antlr.Tree, op string) sqlast.Expression {
	operands := nonTerminalChildren(ctx)
	if len(operands) == 0 {
		return nil
	}
	if len(operands) == 1 {
		return convertExpr(operands[0])
	}
	result := convertExpr(operands[0])
	for _, operand := range operands[1:] {
		result = &sqlast.BinaryExpr{Op: op, Left: result, Right: convertExpr(operand)}
	}
	return result
}

func convertCompare(ctx *mysql.PrimaryExprCompareContext) sqlast.Expression {
	operands := nonCompOpChildren(ctx)
	var left, right sqlast.Expression
	if len(operands) > 0 {
		left = convertExpr(operands[0])
	}
	if len(operands) > 1 {
		right = convertExpr(operands[1])
	}
	return &sqlast.BinaryExpr{Op: compOpText(ctx.CompOp()), Left: left, Right: right}
}

func nonCompOpChildren(ctx antlr.Tree) []antlr.Tree {
	var out []antlr.Tree
	for i := 0; i < ctx.GetChildCount(); i++ {
		child := ctx.GetChild(i)
		if _, ok := child.(antlr.TerminalNode); ok {
			continue
		}
		if _, ok := child.(mysql.ICompOpContext); ok {
			continue
		}
		out = append(out, child)
	}
	return out
}

func compOpText(op mysql.ICompOpContext) string {
	if op == nil {
		return "="
	}
	switch text := op.GetText(); text {
	case "<>":
		return "!="
	default:
		return text
	}
}

func convertIsNull(ctx *mysql.PrimaryExprIsNullContext) sqlast.Expression {
	return &sqlast.IsNullExpr{
		Expr: convertExpr(firstNonTerminalChild(ctx)),
		Not:  hasTerminal(ctx, "NOT"),
	}
}

func convertIn(ctx *mysql.PredicateExprInContext) sqlast.Expression {
	not := hasTerminal(ctx, "NOT")
	var value antlr.Tree
	var list []sqlast.Expression
	for i := 0; i < ctx.GetChildCount(); i++ {
		child := ctx.GetChild(i)
		if _, ok := child.(antlr.TerminalNode); ok {
			continue
		}
		if exprList, ok := child.(*mysql.ExprListContext); ok {
			for _, e := range exprList.AllExpr() {
				list = append(list, convertExpr(e))
			}
			continue
		}
		if value == nil {
			value = child
		}
	}
	return &sqlast.InExpr{Expr: convertExpr(value), List: list, Not: not}
}

func convertBetween(ctx *mysql.PredicateExprBetweenContext) sqlast.Expression {
	not := hasTerminal(ctx, "NOT")
	operands := nonTerminalChildren(ctx)
	between := &sqlast.BetweenExpr{Not: not}
	if len(operands) > 0 {
		between.Expr = convertExpr(operands[0])
	}
	if len(operands) > 1 {
		between.Low = convertExpr(operands[1])
	}
	if len(operands) > 2 {
		between.High = convertExpr(operands[2])
	}
	return between
}

func convertLike(ctx *mysql.PredicateExprLikeContext) sqlast.Expression {
	not := hasTerminal(ctx, "NOT")
	operands := ctx.AllSimpleExpr()
	var left, right sqlast.Expression
	if len(operands) > 0 {
		left = convertExpr(operands[0])
	}
	if len(operands) > 1 {
		right = convertExpr(operands[1])
	}
	var expr sqlast.Expression = &sqlast.BinaryExpr{Op: "LIKE", Left: left, Right: right}
	if not {
		expr = &sqlast.NotExpr{Expr: expr}
	}
	return expr
}

// convertPassthrough handles every grammar rule between the operators
// matched above and an actual leaf value: single-child wrapper rules
// (expr -> boolPri -> predicate -> bitExpr -> simpleExpr when there is
// no operator at that level), parenthesized sub-expressions, function
// calls, and literals/column references/placeholders.
func convertPassthrough(ctx antlr.ParserRuleContext) sqlast.Expression {
	children := nonTerminalChildren(ctx)
	if len(children) == 1 && !isParenthesized(ctx) {
		return convertExpr(children[0])
	}
	if isParenthesized(ctx) {
		if fn, ok := asFuncCall(ctx); ok {
			return fn
		}
		if len(children) == 1 {
			return &sqlast.Paren{Expr: convertExpr(children[0])}
		}
	}
	return classifyLiteral(ctx.GetText())
}

func asFuncCall(ctx antlr.Tree) (*sqlast.FuncCall, bool) {
	n := ctx.GetChildCount()
	for i := 0; i < n-1; i++ {
		nameTerm, ok := ctx.GetChild(i).(antlr.TerminalNode)
		if !ok {
			continue
		}
		name := nameTerm.GetText()
		if name == "(" || name == ")" {
			continue
		}
		next, ok := ctx.GetChild(i + 1).(antlr.TerminalNode)
		if !ok || next.GetText() != "(" {
			continue
		}
		args := nonTerminalChildren(ctx)
		converted := make([]sqlast.Expression, 0, len(args))
		for _, arg := range args {
			converted = append(converted, convertExpr(arg))
		}
		return &sqlast.FuncCall{Name: strings.ToUpper(name), Args: converted}, true
	}
	return nil, false
}

func classifyLiteral(text string) sqlast.Expression {
	switch {
	case text == "?":
		return &sqlast.Placeholder{}
	case strings.HasPrefix(text, ":") && len(text) > 1:
		return &sqlast.Placeholder{Name: text[1:]}
	case strings.EqualFold(text, "NULL"):
		return &sqlast.Literal{Kind: sqlast.LiteralNull}
	case strings.EqualFold(text, "TRUE") || strings.EqualFold(text, "FALSE"):
		return &sqlast.Literal{Kind: sqlast.LiteralBool, Value: strings.ToUpper(text)}
	case len(text) >= 2 && text[0] == '\'' && text[len(text)-1] == '\'':
		return &sqlast.Literal{Kind: sqlast.LiteralString, Value: text[1 : len(text)-1]}
	case len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"':
		return &sqlast.Literal{Kind: sqlast.LiteralString, Value: text[1 : len(text)-1]}
	case isNumericLiteral(text):
		return &sqlast.Literal{Kind: sqlast.LiteralNumber, Value: text}
	default:
		return columnRefFromText(text)
	}
}

func isNumericLiteral(text string) bool {
	if text == "" {
		return false
	}
	_, err := strconv.ParseFloat(text, 64)
	return err == nil
}

func columnRefFromText(text string) *sqlast.ColumnRef {
	text = strings.ReplaceAll(text, "`", "")
	if i := strings.LastIndex(text, "."); i >= 0 {
		return &sqlast.ColumnRef{Table: text[:i], Name: text[i+1:]}
	}
	return &sqlast.ColumnRef{Name: text}
}

func isParenthesized(ctx antlr.Tree) bool {
	n := ctx.GetChildCount()
	if n < 2 {
		return false
	}
	first, ok1 := ctx.GetChild(0).(antlr.TerminalNode)
	last, ok2 := ctx.GetChild(n - 1).(antlr.TerminalNode)
	return ok1 && ok2 && first.GetText() == "(" && last.GetText() == ")"
}

func nonTerminalChildren(ctx antlr.Tree) []antlr.Tree {
	var out []antlr.Tree
	for i := 0; i < ctx.GetChildCount(); i++ {
		if _, ok := ctx.GetChild(i).(antlr.TerminalNode); ok {
			continue
		}
		out = append(out, ctx.GetChild(i))
	}
	return out
}

func firstNonTerminalChild(ctx antlr.Tree) antlr.Tree {
	for i := 0; i < ctx.GetChildCount(); i++ {
		if _, ok := ctx.GetChild(i).(antlr.TerminalNode); ok {
			continue
		}
		return ctx.GetChild(i)
	}
	return nil
}

func hasTerminal(ctx antlr.Tree, text string) bool {
	for i := 0; i < ctx.GetChildCount(); i++ {
		if term, ok := ctx.GetChild(i).(antlr.TerminalNode); ok && strings.EqualFold(term.GetText(), text) {
			return true
		}
	}
	return false
}

// walkTree performs a depth-first search over an ANTLR parse tree,
// stopping as soon as visit reports a match. It stands in for the
// exact accessor chains a hand-maintained grammar-specific walker
// (like walk_through_for_mysql.go) would use, for the handful of node
// kinds whose nesting this package does not need to name precisely.
func walkTree(root antlr.Tree, visit func(antlr.Tree) bool) bool {
	if root == nil {
		return false
	}
	if visit(root) {
		return true
	}
	for i := 0; i < root.GetChildCount(); i++ {
		if walkTree(root.GetChild(i), visit) {
			return true
		}
	}
	return false
}

func stripQualifier(raw string) string {
	raw = strings.ReplaceAll(raw, "`", "")
	if i := strings.LastIndex(raw, "."); i >= 0 {
		raw = raw[i+1:]
	}
	return raw
}
