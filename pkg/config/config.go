// Package config is the YAML-driven configuration surface spec.md §6
// describes: a boolean enabled flag plus rule-specific parameters per
// checker, with the dedup cache and pagination plugin registry beside
// them. The core (pkg/checkers, pkg/dedup) accepts already-deserialized
// configuration objects; this package owns turning a file on disk into
// those objects, the same split the source draws between its
// pkg/config loader and pkg/advisor's Context.
package config

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sqlsentry/sqlsentry/pkg/checkers"
	"github.com/sqlsentry/sqlsentry/pkg/logger"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

// Config is the root configuration document.
type Config struct {
	ID       string         `yaml:"id" json:"id"`
	Dedup    DedupConfig    `yaml:"dedup" json:"dedup"`
	Plugins  []string       `yaml:"plugins" json:"plugins"`
	Checkers CheckersConfig `yaml:"checkers" json:"checkers"`
}

// DedupConfig configures the C3 dedup cache.
type DedupConfig struct {
	Capacity  int   `yaml:"capacity" json:"capacity"`
	TTLMillis int64 `yaml:"ttlMillis" json:"ttlMillis"`
}

// RuleConfig is the shared shape for checkers with nothing beyond an
// enabled flag.
type RuleConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

// DummyConditionRuleConfig configures DummyConditionChecker.
type DummyConditionRuleConfig struct {
	Enabled  bool     `yaml:"enabled" json:"enabled"`
	Patterns []string `yaml:"patterns" json:"patterns"`
}

// BlacklistFieldRuleConfig configures BlacklistFieldChecker.
type BlacklistFieldRuleConfig struct {
	Enabled bool     `yaml:"enabled" json:"enabled"`
	Fields  []string `yaml:"fields" json:"fields"`
}

// WhitelistFieldRuleConfig configures WhitelistFieldChecker.
type WhitelistFieldRuleConfig struct {
	Enabled                 bool                `yaml:"enabled" json:"enabled"`
	RequiredFields          map[string][]string `yaml:"requiredFields" json:"requiredFields"`
	EnforceForUnknownTables bool                `yaml:"enforceForUnknownTables" json:"enforceForUnknownTables"`
	GlobalRequiredFields    []string            `yaml:"globalRequiredFields" json:"globalRequiredFields"`
}

// DeepPaginationRuleConfig configures DeepPaginationChecker.
type DeepPaginationRuleConfig struct {
	Enabled   bool  `yaml:"enabled" json:"enabled"`
	MaxOffset int64 `yaml:"maxOffset" json:"maxOffset"`
}

// LargePageSizeRuleConfig configures LargePageSizeChecker.
type LargePageSizeRuleConfig struct {
	Enabled     bool  `yaml:"enabled" json:"enabled"`
	MaxPageSize int64 `yaml:"maxPageSize" json:"maxPageSize"`
}

// NoPaginationRuleConfig configures NoPaginationChecker.
type NoPaginationRuleConfig struct {
	Enabled              bool              `yaml:"enabled" json:"enabled"`
	TableSeverity        map[string]string `yaml:"tableSeverity" json:"tableSeverity"`
	StatementIDWhitelist []string          `yaml:"statementIdWhitelist" json:"statementIdWhitelist"`
}

// CheckersConfig holds one nested record per checker, spec.md §6's
// configuration surface.
type CheckersConfig struct {
	NoWhereClause         RuleConfig               `yaml:"noWhereClause" json:"noWhereClause"`
	DummyCondition        DummyConditionRuleConfig `yaml:"dummyCondition" json:"dummyCondition"`
	BlacklistField        BlacklistFieldRuleConfig `yaml:"blacklistField" json:"blacklistField"`
	WhitelistField        WhitelistFieldRuleConfig `yaml:"whitelistField" json:"whitelistField"`
	LogicalPagination     RuleConfig               `yaml:"logicalPagination" json:"logicalPagination"`
	NoConditionPagination RuleConfig               `yaml:"noConditionPagination" json:"noConditionPagination"`
	DeepPagination        DeepPaginationRuleConfig `yaml:"deepPagination" json:"deepPagination"`
	LargePageSize         LargePageSizeRuleConfig  `yaml:"largePageSize" json:"largePageSize"`
	MissingOrderBy        RuleConfig               `yaml:"missingOrderBy" json:"missingOrderBy"`
	NoPagination          NoPaginationRuleConfig   `yaml:"noPagination" json:"noPagination"`
}

// DefaultConfig returns the configuration matching checkers.DefaultConfig,
// with dedup sized per spec.md §4.3's defaults and no plugins registered.
func DefaultConfig(id string) *Config {
	d := checkers.DefaultConfig()
	return &Config{
		ID: id,
		Dedup: DedupConfig{
			Capacity:  1000,
			TTLMillis: 100,
		},
		Checkers: CheckersConfig{
			NoWhereClause:         RuleConfig{Enabled: d.NoWhereClause.Enabled},
			DummyCondition:        DummyConditionRuleConfig{Enabled: d.DummyCondition.Enabled, Patterns: d.DummyCondition.Patterns},
			BlacklistField:        BlacklistFieldRuleConfig{Enabled: d.BlacklistField.Enabled, Fields: d.BlacklistField.Fields},
			WhitelistField:        WhitelistFieldRuleConfig{Enabled: d.WhitelistField.Enabled, RequiredFields: d.WhitelistField.RequiredFields},
			LogicalPagination:     RuleConfig{Enabled: d.LogicalPagination.Enabled},
			NoConditionPagination: RuleConfig{Enabled: d.NoConditionPagination.Enabled},
			DeepPagination:        DeepPaginationRuleConfig{Enabled: d.DeepPagination.Enabled, MaxOffset: d.DeepPagination.MaxOffset},
			LargePageSize:         LargePageSizeRuleConfig{Enabled: d.LargePageSize.Enabled, MaxPageSize: d.LargePageSize.MaxPageSize},
			MissingOrderBy:        RuleConfig{Enabled: d.MissingOrderBy.Enabled},
			NoPagination:          NoPaginationRuleConfig{Enabled: d.NoPagination.Enabled, TableSeverity: map[string]string{}},
		},
	}
}

// LoadFromFile reads filename and parses it as YAML, falling back to
// JSON, the same two-format tolerance the source's loader applies.
func LoadFromFile(filename string) (*Config, error) {
	logger.Default().Debug("loading config from file", "filename", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	cfg := DefaultConfig("default")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		logger.Default().Debug("yaml unmarshal failed, trying json", logger.Err(err))
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return nil, errors.Wrap(jsonErr, "parse config as yaml or json")
		}
	}
	return cfg, nil
}

// ToCheckersConfig converts the YAML-shaped configuration into the
// checkers.Config the core package consumes.
func (c *Config) ToCheckersConfig() checkers.Config {
	severity := make(map[string]types.RiskLevel, len(c.Checkers.NoPagination.TableSeverity))
	for table, level := range c.Checkers.NoPagination.TableSeverity {
		severity[table] = parseRiskLevel(level)
	}

	return checkers.Config{
		NoWhereClause: checkers.NoWhereClauseConfig{Enabled: c.Checkers.NoWhereClause.Enabled},
		DummyCondition: checkers.DummyConditionConfig{
			Enabled:  c.Checkers.DummyCondition.Enabled,
			Patterns: c.Checkers.DummyCondition.Patterns,
		},
		BlacklistField: checkers.BlacklistFieldConfig{
			Enabled: c.Checkers.BlacklistField.Enabled,
			Fields:  c.Checkers.BlacklistField.Fields,
		},
		WhitelistField: checkers.WhitelistFieldConfig{
			Enabled:                 c.Checkers.WhitelistField.Enabled,
			RequiredFields:          c.Checkers.WhitelistField.RequiredFields,
			EnforceForUnknownTables: c.Checkers.WhitelistField.EnforceForUnknownTables,
			GlobalRequiredFields:    c.Checkers.WhitelistField.GlobalRequiredFields,
		},
		LogicalPagination:     checkers.LogicalPaginationConfig{Enabled: c.Checkers.LogicalPagination.Enabled},
		NoConditionPagination: checkers.NoConditionPaginationConfig{Enabled: c.Checkers.NoConditionPagination.Enabled},
		DeepPagination: checkers.DeepPaginationConfig{
			Enabled:   c.Checkers.DeepPagination.Enabled,
			MaxOffset: c.Checkers.DeepPagination.MaxOffset,
		},
		LargePageSize: checkers.LargePageSizeConfig{
			Enabled:     c.Checkers.LargePageSize.Enabled,
			MaxPageSize: c.Checkers.LargePageSize.MaxPageSize,
		},
		MissingOrderBy: checkers.MissingOrderByConfig{Enabled: c.Checkers.MissingOrderBy.Enabled},
		NoPagination: checkers.NoPaginationConfig{
			Enabled:              c.Checkers.NoPagination.Enabled,
			TableSeverity:        severity,
			StatementIDWhitelist: c.Checkers.NoPagination.StatementIDWhitelist,
		},
	}
}

// ToPluginDescriptors converts the configured plugin name list into
// the PluginDescriptor slice pkg/pagination expects.
func (c *Config) ToPluginDescriptors() []types.PluginDescriptor {
	out := make([]types.PluginDescriptor, 0, len(c.Plugins))
	for _, name := range c.Plugins {
		out = append(out, types.PluginDescriptor{Name: name})
	}
	return out
}

// DedupTTL returns the configured dedup TTL as a time.Duration.
func (c *Config) DedupTTL() time.Duration {
	return time.Duration(c.Dedup.TTLMillis) * time.Millisecond
}

func parseRiskLevel(s string) types.RiskLevel {
	switch strings.ToUpper(s) {
	case "LOW":
		return types.RiskLow
	case "MEDIUM":
		return types.RiskMedium
	case "HIGH":
		return types.RiskHigh
	case "CRITICAL":
		return types.RiskCritical
	default:
		return types.RiskMedium
	}
}
