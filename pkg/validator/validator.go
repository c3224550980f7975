// Package validator implements C7 (spec.md §4.7): the top-level
// validate(context) facade sequencing parse-once and orchestration.
package validator

import (
	"github.com/sqlsentry/sqlsentry/pkg/orchestrator"
	"github.com/sqlsentry/sqlsentry/pkg/sqlparser"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// Validator wires the parser facade (C1) to the orchestrator (C6).
// Once constructed, both are treated as immutable, so a single
// Validator may be shared across goroutines (spec.md §4.7's
// thread-safety contract).
type Validator struct {
	parser       *sqlparser.Facade
	orchestrator *orchestrator.Orchestrator
}

// New builds a Validator from a parser facade and an orchestrator.
func New(parser *sqlparser.Facade, orch *orchestrator.Orchestrator) *Validator {
	return &Validator{parser: parser, orchestrator: orch}
}

// Validate runs the full pipeline: parse-if-needed, attach the AST,
// then orchestrate every checker. It does not consult or populate the
// dedup cache; see CachedValidator for that.
func (v *Validator) Validate(sctx *types.SqlContext) (*types.ValidationResult, error) {
	if sctx.Statement == nil {
		stmt, err := v.parser.Parse(sctx.SQL)
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			// Lenient mode swallowed a grammar error: spec.md §4.7 step
			// 2 and the §8 invariant both require a SAFE pass with no
			// checker invoked, not a best-effort run against a missing
			// AST.
			return types.NewValidationResult(), nil
		}
		sctx.Statement = stmt
	}

	result := types.NewValidationResult()
	v.orchestrator.Run(sctx, result)
	return result, nil
}
