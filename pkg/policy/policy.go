// Package policy implements the violation policy strategies of
// spec.md §6: BLOCK, WARN and LOG govern how an interceptor reacts to
// a non-SAFE ValidationResult.
package policy

import (
	"strings"

	"github.com/sqlsentry/sqlsentry/pkg/logger"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// Strategy is how a caller reacts to a non-SAFE ValidationResult.
type Strategy int

const (
	// Block returns a BlockError on any non-SAFE result.
	Block Strategy = iota
	// Warn logs every violation at error level but allows execution.
	Warn
	// Log logs every violation at warn level but allows execution.
	Log
)

// ShouldBlock reports whether this strategy ever blocks execution.
// Only Block does; spec.md §6 calls this BLOCK.shouldBlock().
func (s Strategy) ShouldBlock() bool {
	return s == Block
}

// BlockError is the typed exception a BLOCK strategy raises: its
// message lists every violation with its risk level and suggestion,
// so the developer sees exactly what to fix (spec.md §7, user-visible
// failure).
type BlockError struct {
	Result *types.ValidationResult
}

func (e *BlockError) Error() string {
	var sb strings.Builder
	sb.WriteString("sql rejected by safety policy (risk=")
	sb.WriteString(e.Result.RiskLevel().String())
	sb.WriteString("):")
	for _, v := range e.Result.Violations {
		sb.WriteString("\n  [")
		sb.WriteString(v.RiskLevel.String())
		sb.WriteString("] ")
		sb.WriteString(v.Message)
		if v.Suggestion != "" {
			sb.WriteString(" — suggestion: ")
			sb.WriteString(v.Suggestion)
		}
	}
	return sb.String()
}

// Apply enforces strategy against result. For a non-SAFE result it
// always logs every violation (at error level under Block and Warn, at
// warn level under Log); under Block it additionally returns a
// *BlockError. A SAFE result is neither logged nor blocked.
func Apply(strategy Strategy, result *types.ValidationResult) error {
	if result.Passed() {
		return nil
	}

	logViolation := logger.Default().Error
	if strategy == Log {
		logViolation = logger.Default().Warn
	}
	for _, v := range result.Violations {
		logViolation("sql safety violation",
			"risk", v.RiskLevel.String(),
			"message", v.Message,
			"suggestion", v.Suggestion,
			"source", v.Source)
	}

	if strategy == Block {
		return &BlockError{Result: result}
	}
	return nil
}
