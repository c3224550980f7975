package sqlparser

import "fmt"

// SyntaxError is the typed parse failure spec.md §4.1 calls
// SqlParseException. In fail-fast mode it is returned to the caller;
// in lenient mode the facade swallows it and returns a nil statement.
type SyntaxError struct {
	Line, Column int
	Message      string
	RawMessage   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("sql parse error at line %d:%d: %s", e.Line, e.Column, e.Message)
}
