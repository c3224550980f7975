// Package engine provides a high-level API for validating SQL
// statements against the configured safety rules.
//
// This package wires together the parser facade, the ten rule
// checkers, the orchestrator and the dedup cache behind the single
// operation spec.md §6 exposes to callers: validate(SqlContext).
//
// # Quick Start
//
//	e := engine.New(config.DefaultConfig("default"))
//	cache := dedup.NewCache(0, 0) // one per worker goroutine
//	result, err := e.Validate(sctx, cache)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("risk=%s violations=%d\n", result.RiskLevel(), len(result.Violations))
//
// # Using Custom Configuration
//
//	e := engine.New(config.DefaultConfig("default"))
//	if err := e.WithConfig("custom-rules.yaml"); err != nil {
//	    log.Fatal(err)
//	}
package engine

import (
	"github.com/pkg/errors"

	"github.com/sqlsentry/sqlsentry/pkg/checkers"
	"github.com/sqlsentry/sqlsentry/pkg/config"
	"github.com/sqlsentry/sqlsentry/pkg/dedup"
	"github.com/sqlsentry/sqlsentry/pkg/orchestrator"
	"github.com/sqlsentry/sqlsentry/pkg/sqlparser"
	"github.com/sqlsentry/sqlsentry/pkg/types"
	"github.com/sqlsentry/sqlsentry/pkg/validator"
)

// Engine is the assembled validation pipeline. Engine is safe for
// concurrent use by multiple goroutines, provided each goroutine
// supplies its own *dedup.Cache to Validate (see pkg/dedup's package
// doc on goroutine confinement).
type Engine struct {
	cfg  *config.Config
	v    *validator.CachedValidator
	mode sqlparser.Mode
}

// New builds an Engine from cfg, parsing in fail-fast mode by default.
func New(cfg *config.Config, opts ...Option) *Engine {
	options := &engineOptions{mode: sqlparser.FailFast}
	for _, opt := range opts {
		opt(options)
	}
	return &Engine{cfg: cfg, v: buildValidator(cfg, options.mode), mode: options.mode}
}

func buildValidator(cfg *config.Config, mode sqlparser.Mode) *validator.CachedValidator {
	facade := sqlparser.NewFacade(mode)
	plugins := cfg.ToPluginDescriptors()
	cs := checkers.NewDefaultCheckers(cfg.ToCheckersConfig(), plugins)
	orch := orchestrator.New(cs)
	return validator.NewCachedValidator(validator.New(facade, orch))
}

// WithConfig loads configuration from a YAML or JSON file and rebuilds
// the pipeline. This replaces the current configuration.
func (e *Engine) WithConfig(filename string) error {
	cfg, err := config.LoadFromFile(filename)
	if err != nil {
		return errors.Wrapf(err, "load config from %s", filename)
	}
	e.WithConfigObject(cfg)
	return nil
}

// WithConfigObject sets a custom configuration object directly and
// rebuilds the pipeline. Returns the Engine for method chaining.
func (e *Engine) WithConfigObject(cfg *config.Config) *Engine {
	e.cfg = cfg
	e.v = buildValidator(cfg, e.mode)
	return e
}

// Validate runs the full C7 sequence against sctx: dedup lookup,
// parse-once, orchestrate, cache store. cache must not be shared
// across goroutines.
func (e *Engine) Validate(sctx *types.SqlContext, cache *dedup.Cache) (*types.ValidationResult, error) {
	return e.v.Validate(sctx, cache)
}

// NewCache builds a dedup cache sized per the Engine's configuration,
// for a caller to hold for the lifetime of one worker goroutine.
func (e *Engine) NewCache() *dedup.Cache {
	return dedup.NewCache(e.cfg.Dedup.Capacity, e.cfg.DedupTTL())
}
