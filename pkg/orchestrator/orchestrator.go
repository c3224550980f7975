// Package orchestrator implements C6 (spec.md §4.6): it runs every
// enabled checker, in a fixed order, against one SqlContext, never
// short-circuiting and never letting a single faulted checker take
// down the rest of the pipeline.
package orchestrator

import (
	"fmt"

	"github.com/sqlsentry/sqlsentry/pkg/checkers"
	"github.com/sqlsentry/sqlsentry/pkg/logger"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// Orchestrator holds the fixed, ordered checker list for one
// validator instance.
type Orchestrator struct {
	checkers []checkers.Checker
}

// New builds an Orchestrator over the given checker list. Callers
// typically pass the result of checkers.NewDefaultCheckers.
func New(cs []checkers.Checker) *Orchestrator {
	return &Orchestrator{checkers: cs}
}

// Run invokes every enabled checker against sctx/result in order. A
// checker that panics is logged and skipped; the remaining checkers
// still run, matching the source's "a single buggy rule must never
// disable the entire validator" contract.
func (o *Orchestrator) Run(sctx *types.SqlContext, result *types.ValidationResult) {
	for _, c := range o.checkers {
		if !c.Enabled() {
			continue
		}
		runChecker(c, sctx, result)
	}
}

func runChecker(c checkers.Checker, sctx *types.SqlContext, result *types.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Default().Error("checker faulted, skipping",
				"checker", c.Name(),
				logger.Err(toError(r)))
		}
	}()
	c.Check(sctx, result)
}

func toError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
