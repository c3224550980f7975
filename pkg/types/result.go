package types

// ViolationInfo is one finding appended by a rule checker.
type ViolationInfo struct {
	RiskLevel  RiskLevel
	Message    string
	Suggestion string
	// Source identifies which checker produced the violation, for
	// audit logs and the property tests in spec.md §8.
	Source string
}

// Signals carries cross-checker state for a single validation call.
// The source implementation used an ambient map[string]any "details"
// bag for this; this module gives it a typed home instead (spec.md §9,
// design note on the details map), since EarlyReturn is its only real
// use.
type Signals struct {
	// EarlyReturn is set by NoConditionPaginationChecker (spec.md
	// §4.5.6) to suppress DeepPaginationChecker,
	// LargePageSizeChecker and MissingOrderByChecker on the same
	// call.
	EarlyReturn bool
}

// ValidationResult is the mutable accumulator threaded through every
// checker invocation for one validate call.
type ValidationResult struct {
	Violations []ViolationInfo
	Signals    Signals
}

// NewValidationResult returns a fresh, empty result.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{}
}

// AddViolation appends a finding and is the only way checkers mutate
// the result. It never returns an error: domain violations are never
// Go errors (spec.md §7).
func (r *ValidationResult) AddViolation(v ViolationInfo) {
	r.Violations = append(r.Violations, v)
}

// Passed reports whether no violations were recorded.
func (r *ValidationResult) Passed() bool {
	return len(r.Violations) == 0
}

// RiskLevel is the maximum severity over all recorded violations, or
// RiskSafe if there are none.
func (r *ValidationResult) RiskLevel() RiskLevel {
	level := RiskSafe
	for _, v := range r.Violations {
		level = MaxRisk(level, v.RiskLevel)
	}
	return level
}

// Clone returns a deep-enough copy suitable for caching: callers that
// later hold onto the cached result must not observe mutation by a
// subsequent validate call (and vice versa).
func (r *ValidationResult) Clone() *ValidationResult {
	out := &ValidationResult{
		Signals:    r.Signals,
		Violations: make([]ViolationInfo, len(r.Violations)),
	}
	copy(out.Violations, r.Violations)
	return out
}
