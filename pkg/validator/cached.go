package validator

import (
	"github.com/sqlsentry/sqlsentry/pkg/dedup"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// CachedValidator wraps a Validator with the C3 dedup filter (spec.md
// §4.7 step 1/6). Per the package doc on pkg/dedup, the *dedup.Cache
// passed in is owned by a single goroutine: construct one per worker
// goroutine and never share it, the same way the source's
// ThreadLocal-backed cache is confined to one thread.
type CachedValidator struct {
	v *Validator
}

// NewCachedValidator builds a CachedValidator over v.
func NewCachedValidator(v *Validator) *CachedValidator {
	return &CachedValidator{v: v}
}

// Validate consults cache before doing any work (so a hit pays zero
// parse cost, per spec.md §4.3), and on a miss runs the full pipeline
// and stores a defensive clone of the result before returning.
func (cv *CachedValidator) Validate(sctx *types.SqlContext, cache *dedup.Cache) (*types.ValidationResult, error) {
	key := dedup.Key(sctx.StatementID, sctx.SQL)
	if cached, ok := cache.Lookup(key); ok {
		result := cached.(*types.ValidationResult)
		return result.Clone(), nil
	}

	result, err := cv.v.Validate(sctx)
	if err != nil {
		return nil, err
	}
	cache.Store(key, result.Clone())
	return result, nil
}
