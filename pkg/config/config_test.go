package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlsentry/sqlsentry/pkg/types"
)

func TestDefaultConfigMatchesCheckersDefaults(t *testing.T) {
	cfg := DefaultConfig("default")
	require.Equal(t, "default", cfg.ID)
	require.True(t, cfg.Checkers.NoWhereClause.Enabled)
	require.EqualValues(t, 10000, cfg.Checkers.DeepPagination.MaxOffset)
	require.EqualValues(t, 1000, cfg.Checkers.LargePageSize.MaxPageSize)
	require.Contains(t, cfg.Checkers.BlacklistField.Fields, "deleted")
}

func TestLoadFromFileParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	yamlBody := `
id: custom
dedup:
  capacity: 500
  ttlMillis: 250
plugins:
  - com.example.MyPagePlugin
checkers:
  noWhereClause:
    enabled: true
  dummyCondition:
    enabled: true
    patterns: ["1=1"]
  blacklistField:
    enabled: false
    fields: []
  whitelistField:
    enabled: true
    requiredFields:
      orders: ["tenant_id"]
    enforceForUnknownTables: false
    globalRequiredFields: []
  logicalPagination:
    enabled: true
  noConditionPagination:
    enabled: true
  deepPagination:
    enabled: true
    maxOffset: 5000
  largePageSize:
    enabled: true
    maxPageSize: 200
  missingOrderBy:
    enabled: true
  noPagination:
    enabled: true
    tableSeverity:
      events: HIGH
    statementIdWhitelist: []
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "custom", cfg.ID)
	require.EqualValues(t, 500, cfg.Dedup.Capacity)
	require.EqualValues(t, 5000, cfg.Checkers.DeepPagination.MaxOffset)
	require.False(t, cfg.Checkers.BlacklistField.Enabled)
	require.Equal(t, []string{"com.example.MyPagePlugin"}, cfg.Plugins)
}

func TestLoadFromFileParsesJSONDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.json")
	jsonBody := `{"id":"json-config","checkers":{"largePageSize":{"enabled":true,"maxPageSize":50}}}`
	require.NoError(t, os.WriteFile(path, []byte(jsonBody), 0o600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "json-config", cfg.ID)
	require.EqualValues(t, 50, cfg.Checkers.LargePageSize.MaxPageSize)
}

func TestLoadFromFileMissingReturnsError(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path/rules.yaml")
	require.Error(t, err)
}

func TestToCheckersConfigConvertsTableSeverity(t *testing.T) {
	cfg := DefaultConfig("default")
	cfg.Checkers.NoPagination.TableSeverity = map[string]string{"events": "HIGH", "weird": "unknown-level"}

	checkersCfg := cfg.ToCheckersConfig()
	require.Equal(t, types.RiskHigh, checkersCfg.NoPagination.TableSeverity["events"])
	require.Equal(t, types.RiskMedium, checkersCfg.NoPagination.TableSeverity["weird"])
}

func TestToPluginDescriptors(t *testing.T) {
	cfg := DefaultConfig("default")
	cfg.Plugins = []string{"com.example.PageHandler"}

	descriptors := cfg.ToPluginDescriptors()
	require.Len(t, descriptors, 1)
	require.Equal(t, "com.example.PageHandler", descriptors[0].Name)
}

func TestDedupTTLConvertsMillisToDuration(t *testing.T) {
	cfg := DefaultConfig("default")
	cfg.Dedup.TTLMillis = 250
	require.Equal(t, int64(250), cfg.DedupTTL().Milliseconds())
}
