// Package checkers implements the ten rule checkers of C5 (spec.md
// §4.5): independent, side-effect-only inspections that each append
// zero or more violations to a shared ValidationResult.
package checkers

import "github.com/sqlsentry/sqlsentry/pkg/types"

// Checker is the shared contract every rule implements. Check must
// never return a domain violation as an error: findings are appended
// to result. A Checker may panic on a genuine programmer error (a nil
// dependency, an invariant violation); the orchestrator recovers it so
// one faulty checker never disables the rest of the pipeline.
type Checker interface {
	Name() string
	Enabled() bool
	Check(sctx *types.SqlContext, result *types.ValidationResult)
}
