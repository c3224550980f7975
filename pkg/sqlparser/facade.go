package sqlparser

import (
	"github.com/sqlsentry/sqlsentry/pkg/logger"
	"github.com/sqlsentry/sqlsentry/pkg/sqlast"
)

// Mode controls how the facade reacts to a malformed statement.
type Mode int

const (
	// FailFast returns the SyntaxError to the caller.
	FailFast Mode = iota
	// Lenient logs the failure and returns a nil statement with a nil
	// error; the validator then returns a SAFE result for the statement
	// without running any checker.
	Lenient
)

// Facade is the C1 parser entry point: it drives the generated MySQL
// grammar and converts its parse tree into sqlast.Statement, turning a
// mode-dependent SyntaxError into either an error return or a logged
// warning so the rest of the engine never touches ANTLR directly.
type Facade struct {
	mode Mode
}

// NewFacade builds a Facade in the given mode.
func NewFacade(mode Mode) *Facade {
	return &Facade{mode: mode}
}

// Parse parses sql into a Statement. In FailFast mode a malformed
// statement yields a non-nil *SyntaxError. In Lenient mode it yields
// (nil, nil) and logs a warning instead.
func (f *Facade) Parse(sql string) (sqlast.Statement, error) {
	stmt, err := parseWithGrammar(sql)
	if err == nil {
		return stmt, nil
	}

	se, ok := err.(*SyntaxError)
	if !ok {
		return nil, err
	}
	if f.mode == FailFast {
		return nil, se
	}
	logger.Default().Warn("lenient parse failure, continuing without AST", "error", se, "sql", sql)
	return nil, nil
}
