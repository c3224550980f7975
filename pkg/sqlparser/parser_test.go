package sqlparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlsentry/sqlsentry/pkg/sqlast"
)

func parseOK(t *testing.T, sql string) sqlast.Statement {
	t.Helper()
	stmt, err := NewFacade(FailFast).Parse(sql)
	require.NoError(t, err)
	require.NotNil(t, stmt)
	return stmt
}

func TestParseSelectBasic(t *testing.T) {
	sel, ok := parseOK(t, `SELECT id, name FROM users WHERE id = ?`).(*sqlast.SelectStatement)
	require.True(t, ok)
	require.Equal(t, "users", sel.Table)
	require.NotNil(t, sel.Where)
	require.Nil(t, sel.Limit)
}

func TestParseSelectLimitOffsetForm(t *testing.T) {
	sel := parseOK(t, `SELECT * FROM users LIMIT 10 OFFSET 100000`).(*sqlast.SelectStatement)
	require.NotNil(t, sel.Limit)
	require.False(t, sel.Limit.CommaForm)
	require.EqualValues(t, 10, *sel.Limit.RowCount)
	require.EqualValues(t, 100000, *sel.Limit.Offset)
}

func TestParseSelectLimitCommaForm(t *testing.T) {
	sel := parseOK(t, `SELECT * FROM users LIMIT 100, 10`).(*sqlast.SelectStatement)
	require.NotNil(t, sel.Limit)
	require.True(t, sel.Limit.CommaForm)
	require.EqualValues(t, 100, *sel.Limit.Offset)
	require.EqualValues(t, 10, *sel.Limit.RowCount)
}

func TestParseSelectLimitNoOffset(t *testing.T) {
	sel := parseOK(t, `SELECT * FROM users LIMIT 10000`).(*sqlast.SelectStatement)
	require.NotNil(t, sel.Limit)
	require.EqualValues(t, 10000, *sel.Limit.RowCount)
	require.EqualValues(t, 0, *sel.Limit.Offset)
}

func TestParseSelectOrderBy(t *testing.T) {
	sel := parseOK(t, `SELECT * FROM users WHERE id = ? ORDER BY created_at DESC LIMIT 10`).(*sqlast.SelectStatement)
	require.Equal(t, []string{"created_at"}, sel.OrderBy)
}

func TestParseUpdateNoWhere(t *testing.T) {
	upd := parseOK(t, `UPDATE users SET status='inactive'`).(*sqlast.UpdateStatement)
	require.Equal(t, "users", upd.Table)
	require.Nil(t, upd.Where)
}

func TestParseUpdateWithWhere(t *testing.T) {
	upd := parseOK(t, `UPDATE users SET status='inactive' WHERE id = ?`).(*sqlast.UpdateStatement)
	require.NotNil(t, upd.Where)
}

func TestParseDelete(t *testing.T) {
	del := parseOK(t, `DELETE FROM users`).(*sqlast.DeleteStatement)
	require.Equal(t, "users", del.Table)
	require.Nil(t, del.Where)
}

func TestParseDeleteWithWhere(t *testing.T) {
	del := parseOK(t, `DELETE FROM users WHERE id = ?`).(*sqlast.DeleteStatement)
	require.NotNil(t, del.Where)
}

func TestParseInsert(t *testing.T) {
	ins := parseOK(t, `INSERT INTO users (id, name) VALUES (?, ?)`).(*sqlast.InsertStatement)
	require.Equal(t, "users", ins.Table)
	require.Equal(t, []string{"id", "name"}, ins.Columns)
}

func TestParseWhereDummyCondition(t *testing.T) {
	sel := parseOK(t, `SELECT * FROM users WHERE 1=1`).(*sqlast.SelectStatement)
	bin, ok := sel.Where.(*sqlast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, "=", bin.Op)
}

func TestParseWhereAndOr(t *testing.T) {
	sel := parseOK(t, `SELECT * FROM orders WHERE 1=1 AND deleted=0`).(*sqlast.SelectStatement)
	bin, ok := sel.Where.(*sqlast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, "AND", bin.Op)
}

func TestParseWhereInAndBetween(t *testing.T) {
	sel := parseOK(t, `SELECT * FROM users WHERE id IN (1, 2, 3) AND age BETWEEN 18 AND 65`).(*sqlast.SelectStatement)
	bin := sel.Where.(*sqlast.BinaryExpr)
	require.Equal(t, "AND", bin.Op)
	in, ok := bin.Left.(*sqlast.InExpr)
	require.True(t, ok)
	require.Len(t, in.List, 3)
	_, ok = bin.Right.(*sqlast.BetweenExpr)
	require.True(t, ok)
}

func TestParseWhereIsNull(t *testing.T) {
	sel := parseOK(t, `SELECT * FROM users WHERE deleted_at IS NOT NULL`).(*sqlast.SelectStatement)
	isNull, ok := sel.Where.(*sqlast.IsNullExpr)
	require.True(t, ok)
	require.True(t, isNull.Not)
}

func TestParseWhereLike(t *testing.T) {
	sel := parseOK(t, `SELECT * FROM users WHERE name LIKE '%admin%'`).(*sqlast.SelectStatement)
	bin, ok := sel.Where.(*sqlast.BinaryExpr)
	require.True(t, ok)
	require.Equal(t, "LIKE", bin.Op)
}

func TestParseMalformedFailFast(t *testing.T) {
	facade := NewFacade(FailFast)
	_, err := facade.Parse(`SELECT * FROM`)
	require.Error(t, err)
	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
}

func TestParseMalformedLenient(t *testing.T) {
	facade := NewFacade(Lenient)
	stmt, err := facade.Parse(`SELECT * FROM`)
	require.NoError(t, err)
	require.Nil(t, stmt)
}

func TestParseWellFormedViaFacade(t *testing.T) {
	facade := NewFacade(FailFast)
	stmt, err := facade.Parse(`SELECT * FROM users WHERE id = ?`)
	require.NoError(t, err)
	require.NotNil(t, stmt)
}
