package checkers

import "github.com/sqlsentry/sqlsentry/pkg/types"

// NoWhereClauseConfig configures NoWhereClauseChecker.
type NoWhereClauseConfig struct {
	Enabled bool
}

// DummyConditionConfig configures DummyConditionChecker.
type DummyConditionConfig struct {
	Enabled  bool
	Patterns []string
}

// BlacklistFieldConfig configures BlacklistFieldChecker. Fields may
// contain a trailing "*" wildcard, e.g. "create_*".
type BlacklistFieldConfig struct {
	Enabled bool
	Fields  []string
}

// WhitelistFieldConfig configures WhitelistFieldChecker.
type WhitelistFieldConfig struct {
	Enabled                 bool
	RequiredFields          map[string][]string
	EnforceForUnknownTables bool
	GlobalRequiredFields    []string
}

// LogicalPaginationConfig configures LogicalPaginationChecker.
type LogicalPaginationConfig struct {
	Enabled bool
}

// NoConditionPaginationConfig configures NoConditionPaginationChecker.
type NoConditionPaginationConfig struct {
	Enabled bool
}

// DeepPaginationConfig configures DeepPaginationChecker.
type DeepPaginationConfig struct {
	Enabled   bool
	MaxOffset int64
}

// LargePageSizeConfig configures LargePageSizeChecker.
type LargePageSizeConfig struct {
	Enabled     bool
	MaxPageSize int64
}

// MissingOrderByConfig configures MissingOrderByChecker.
type MissingOrderByConfig struct {
	Enabled bool
}

// NoPaginationConfig configures NoPaginationChecker.
type NoPaginationConfig struct {
	Enabled              bool
	TableSeverity        map[string]types.RiskLevel
	StatementIDWhitelist []string
}

// Config aggregates every checker's configuration, loaded as a unit by
// pkg/config from YAML.
type Config struct {
	NoWhereClause         NoWhereClauseConfig
	DummyCondition        DummyConditionConfig
	BlacklistField        BlacklistFieldConfig
	WhitelistField        WhitelistFieldConfig
	LogicalPagination     LogicalPaginationConfig
	NoConditionPagination NoConditionPaginationConfig
	DeepPagination        DeepPaginationConfig
	LargePageSize         LargePageSizeConfig
	MissingOrderBy        MissingOrderByConfig
	NoPagination          NoPaginationConfig
}

// DefaultConfig returns the configuration matching the defaults named
// throughout spec.md §4.5.
func DefaultConfig() Config {
	return Config{
		NoWhereClause: NoWhereClauseConfig{Enabled: true},
		DummyCondition: DummyConditionConfig{
			Enabled:  true,
			Patterns: []string{"1=1", "'1'='1'", "'a'='a'", "true"},
		},
		BlacklistField: BlacklistFieldConfig{
			Enabled: true,
			Fields:  []string{"deleted", "del_flag", "status", "is_deleted", "enabled", "type", "create_*"},
		},
		WhitelistField: WhitelistFieldConfig{
			Enabled:                 true,
			RequiredFields:          map[string][]string{},
			EnforceForUnknownTables: false,
		},
		LogicalPagination:     LogicalPaginationConfig{Enabled: true},
		NoConditionPagination: NoConditionPaginationConfig{Enabled: true},
		DeepPagination:        DeepPaginationConfig{Enabled: true, MaxOffset: 10000},
		LargePageSize:         LargePageSizeConfig{Enabled: true, MaxPageSize: 1000},
		MissingOrderBy:        MissingOrderByConfig{Enabled: true},
		NoPagination: NoPaginationConfig{
			Enabled:       true,
			TableSeverity: map[string]types.RiskLevel{},
		},
	}
}
