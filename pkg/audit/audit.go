// Package audit implements the audit-event schema and writer contract
// of spec.md §6: every validated statement emits one Event regardless
// of policy strategy.
package audit

import (
	"time"

	"github.com/sqlsentry/sqlsentry/pkg/logger"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// Event is the audit record an interceptor adapter emits after every
// validate call, matching spec.md §6's audit-event schema exactly.
type Event struct {
	Timestamp       time.Time
	SQL             string
	SQLType         types.CommandType
	StatementID     string
	Datasource      string
	ExecutionTimeMs *int64
	RowsAffected    *int32
	ErrorMessage    string
	// Violations is omitted (left nil) when the statement passed.
	Violations *types.ValidationResult
}

// Writer persists or forwards an Event. A Writer must not let a write
// failure propagate back through the validator (spec.md §7, "audit
// write failure").
type Writer interface {
	Write(e Event)
}

// SlogWriter is the reference Writer: it logs each event through
// pkg/logger rather than taking on a database or network dependency
// itself, leaving real persistence to a host-supplied Writer.
type SlogWriter struct{}

// NewSlogWriter builds a SlogWriter.
func NewSlogWriter() *SlogWriter { return &SlogWriter{} }

// Write logs e at info level if it passed, or warn level listing the
// risk and violation count otherwise.
func (w *SlogWriter) Write(e Event) {
	args := []any{
		"statementId", e.StatementID,
		"sqlType", string(e.SQLType),
		"datasource", e.Datasource,
	}
	if e.ExecutionTimeMs != nil {
		args = append(args, "executionTimeMs", *e.ExecutionTimeMs)
	}
	if e.RowsAffected != nil {
		args = append(args, "rowsAffected", *e.RowsAffected)
	}
	if e.ErrorMessage != "" {
		args = append(args, "error", e.ErrorMessage)
	}
	if e.Violations == nil || e.Violations.Passed() {
		logger.Default().Info("sql audit", args...)
		return
	}
	args = append(args, "risk", e.Violations.RiskLevel().String(), "violationCount", len(e.Violations.Violations))
	logger.Default().Warn("sql audit", args...)
}
