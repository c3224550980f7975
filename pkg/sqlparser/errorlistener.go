package sqlparser

import (
	"fmt"

	"github.com/antlr4-go/antlr/v4"
)

// parseErrorListener replaces ANTLR's console error reporting with one
// that captures the first syntax error it sees instead of printing it.
type parseErrorListener struct {
	*antlr.DefaultErrorListener
	Statement string
	Err       *SyntaxError
}

func newParseErrorListener(statement string) *parseErrorListener {
	return &parseErrorListener{Statement: statement}
}

func (l *parseErrorListener) SyntaxError(
	_ antlr.Recognizer,
	offendingSymbol any,
	line, column int,
	message string,
	_ antlr.RecognitionException,
) {
	if l.Err != nil {
		return
	}

	related := ""
	if token, ok := offendingSymbol.(*antlr.CommonToken); ok {
		stream := token.GetInputStream()
		start := token.GetStart() - 40
		if start < 0 {
			start = 0
		}
		stop := token.GetStop()
		if stop >= stream.Size() {
			stop = stream.Size() - 1
		}
		if stop >= start {
			related = fmt.Sprintf(" near %q", stream.GetTextFromInterval(antlr.NewInterval(start, stop)))
		}
	}

	l.Err = &SyntaxError{
		Line:       line,
		Column:     column,
		RawMessage: message,
		Message:    fmt.Sprintf("%s%s", message, related),
	}
}

func (*parseErrorListener) ReportAmbiguity(
	recognizer antlr.Parser,
	dfa *antlr.DFA,
	startIndex, stopIndex int,
	exact bool,
	ambigAlts *antlr.BitSet,
	configs *antlr.ATNConfigSet,
) {
	antlr.ConsoleErrorListenerINSTANCE.ReportAmbiguity(recognizer, dfa, startIndex, stopIndex, exact, ambigAlts, configs)
}

func (*parseErrorListener) ReportAttemptingFullContext(
	recognizer antlr.Parser,
	dfa *antlr.DFA,
	startIndex, stopIndex int,
	conflictingAlts *antlr.BitSet,
	configs *antlr.ATNConfigSet,
) {
	antlr.ConsoleErrorListenerINSTANCE.ReportAttemptingFullContext(recognizer, dfa, startIndex, stopIndex, conflictingAlts, configs)
}

func (*parseErrorListener) ReportContextSensitivity(
	recognizer antlr.Parser,
	dfa *antlr.DFA,
	startIndex, stopIndex, prediction int,
	configs *antlr.ATNConfigSet,
) {
	antlr.ConsoleErrorListenerINSTANCE.ReportContextSensitivity(recognizer, dfa, startIndex, stopIndex, prediction, configs)
}
