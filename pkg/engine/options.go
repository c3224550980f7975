package engine

import "github.com/sqlsentry/sqlsentry/pkg/sqlparser"

// Option is a functional option for customizing Engine construction.
type Option func(*engineOptions)

type engineOptions struct {
	mode sqlparser.Mode
}

// WithLenientParsing switches the parser facade to lenient mode: a
// grammar error is logged and treated as a SAFE pass instead of being
// returned as an error (spec.md §4.1/§4.7).
func WithLenientParsing() Option {
	return func(o *engineOptions) {
		o.mode = sqlparser.Lenient
	}
}
