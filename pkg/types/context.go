package types

import "github.com/sqlsentry/sqlsentry/pkg/sqlast"

// CommandType is the kind of SQL command carried by a SqlContext.
type CommandType string

// Supported command kinds. UNKNOWN covers anything the interceptor
// could not classify by keyword prefix.
const (
	CommandSelect  CommandType = "SELECT"
	CommandInsert  CommandType = "INSERT"
	CommandUpdate  CommandType = "UPDATE"
	CommandDelete  CommandType = "DELETE"
	CommandUnknown CommandType = "UNKNOWN"
)

// ExecutionLayer is the origin of a statement: the ORM layer (MyBatis
// or an equivalent mapper framework) or a raw JDBC-style driver call.
// It controls which checkers apply and the statementId format.
type ExecutionLayer string

const (
	LayerMyBatis ExecutionLayer = "MYBATIS"
	LayerJDBC    ExecutionLayer = "JDBC"
)

// Parameter is one bound value passed alongside a statement. Name is
// empty for ordered (positional) parameters.
type Parameter struct {
	Name  string
	Value any
}

// Pager is the nominal capability a bound parameter can implement to
// be recognized as a pagination request object, independent of the
// concrete pagination library in use (spec.md §4.4, rule 2).
type Pager interface {
	PageNumber() int
	PageSize() int
}

// DefaultInfiniteRowBounds is the sentinel RowBounds treated as
// "no pagination requested" even though the field is present.
var DefaultInfiniteRowBounds = RowBounds{Offset: 0, Limit: -1}

// RowBounds is the row-bounds object an ORM layer surfaces for
// in-memory pagination, independent of whatever the driver-level
// LIMIT/OFFSET ends up being.
type RowBounds struct {
	Offset int
	Limit  int // -1 means "no limit" (infinite)
}

// IsInfinite reports whether these row bounds represent "no
// pagination requested" rather than an actual page window.
func (b RowBounds) IsInfinite() bool {
	return b.Limit < 0
}

// PluginDescriptor is an opaque registered interceptor/handler,
// identified only by name so the pagination detector never takes a
// hard dependency on a concrete pagination library (spec.md §9, design
// note on plugin detection by class-name-suffix match).
type PluginDescriptor struct {
	Name string
}

// SqlContext is the normalized input to validation: everything an
// interceptor adapter knows about one SQL call site.
type SqlContext struct {
	// SQL is the raw statement text. Required, non-empty.
	SQL string

	// Type is the command kind, inferred by the adapter via
	// case-insensitive prefix match on the first keyword.
	Type CommandType

	// ExecutionLayer is the statement's origin.
	ExecutionLayer ExecutionLayer

	// StatementID stably identifies the logical call site. See
	// package statementid for the two canonical formats.
	StatementID string

	// Statement is the pre-parsed AST, if the caller already has one.
	// When nil, the validator parses SQL once and attaches the result
	// here for the duration of the call (parse-once invariant).
	Statement sqlast.Statement

	// Parameters are the bound values, ordered or named.
	Parameters []Parameter

	// RowBounds is the ORM-surfaced row window, if any.
	RowBounds *RowBounds

	// Datasource is the logical datasource name, if known.
	Datasource string
}
