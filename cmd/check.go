package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sqlsentry/sqlsentry/pkg/config"
	"github.com/sqlsentry/sqlsentry/pkg/engine"
	"github.com/sqlsentry/sqlsentry/pkg/logger"
	"github.com/sqlsentry/sqlsentry/pkg/policy"
	"github.com/sqlsentry/sqlsentry/pkg/statementid"
	"github.com/sqlsentry/sqlsentry/pkg/types"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <sql-file>",
	Short: "Validate the SQL statements in a file against the safety rules",
	Long: `Check reads a file of semicolon-separated SQL statements and runs each one
through the safety validator, reporting every violation found.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringP("output", "o", "text", "output format (text, json)")
	checkCmd.Flags().StringP("strategy", "s", "block", "violation policy (block, warn, log)")
	checkCmd.Flags().String("datasource", "cli", "logical datasource name recorded on each statement")
	checkCmd.Flags().Bool("lenient", false, "tolerate unparseable statements instead of failing")

	_ = viper.BindPFlag("output", checkCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("strategy", checkCmd.Flags().Lookup("strategy"))
	_ = viper.BindPFlag("datasource", checkCmd.Flags().Lookup("datasource"))
	_ = viper.BindPFlag("lenient", checkCmd.Flags().Lookup("lenient"))
}

func runCheck(cmd *cobra.Command, args []string) error {
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") {
		logLevel = slog.LevelDebug
	}
	log := logger.NewWithLevel(logLevel)

	sqlFile := args[0]
	content, err := os.ReadFile(sqlFile)
	if err != nil {
		return errors.Wrapf(err, "read sql file %s", sqlFile)
	}

	cfg, err := loadConfiguration()
	if err != nil {
		return err
	}

	var opts []engine.Option
	if viper.GetBool("lenient") {
		opts = append(opts, engine.WithLenientParsing())
	}
	e := engine.New(cfg, opts...)
	cache := e.NewCache()

	strategy, err := parseStrategy(viper.GetString("strategy"))
	if err != nil {
		return err
	}

	datasource := viper.GetString("datasource")
	blocked := false

	for i, stmt := range splitStatements(string(content)) {
		sctx := &types.SqlContext{
			SQL:            stmt,
			Type:           classifyCommand(stmt),
			ExecutionLayer: types.LayerJDBC,
			StatementID:    statementid.JDBC("cli", datasource, stmt),
			Datasource:     datasource,
		}

		result, err := e.Validate(sctx, cache)
		if err != nil {
			log.Error("failed to validate statement", "index", i, logger.Err(err))
			continue
		}

		if polErr := policy.Apply(strategy, result); polErr != nil {
			blocked = true
			fmt.Fprintln(os.Stderr, polErr.Error())
		}

		if err := printResult(viper.GetString("output"), i, stmt, result); err != nil {
			return err
		}
	}

	if blocked {
		os.Exit(1)
	}
	return nil
}

func loadConfiguration() (*config.Config, error) {
	rulesFile := viper.GetString("config")
	if rulesFile == "" {
		return config.DefaultConfig("default"), nil
	}
	return config.LoadFromFile(rulesFile)
}

func parseStrategy(s string) (policy.Strategy, error) {
	switch strings.ToLower(s) {
	case "block":
		return policy.Block, nil
	case "warn":
		return policy.Warn, nil
	case "log":
		return policy.Log, nil
	default:
		return policy.Block, errors.Errorf("unknown strategy %q", s)
	}
}

// splitStatements splits content on top-level semicolons, discarding
// blank statements. It does not understand string literals containing
// semicolons; callers writing fixtures should avoid them.
func splitStatements(content string) []string {
	var stmts []string
	for _, raw := range strings.Split(content, ";") {
		trimmed := strings.TrimSpace(raw)
		if trimmed != "" {
			stmts = append(stmts, trimmed)
		}
	}
	return stmts
}

// classifyCommand infers a CommandType by case-insensitive prefix
// match on the first keyword, the classification spec.md §6 assigns
// to the interceptor adapter rather than the core.
func classifyCommand(sql string) types.CommandType {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return types.CommandUnknown
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT":
		return types.CommandSelect
	case "INSERT":
		return types.CommandInsert
	case "UPDATE":
		return types.CommandUpdate
	case "DELETE":
		return types.CommandDelete
	default:
		return types.CommandUnknown
	}
}

func printResult(format string, index int, sql string, result *types.ValidationResult) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(struct {
			Index      int                   `json:"index"`
			SQL        string                `json:"sql"`
			Risk       string                `json:"risk"`
			Passed     bool                  `json:"passed"`
			Violations []types.ViolationInfo `json:"violations"`
		}{index, sql, result.RiskLevel().String(), result.Passed(), result.Violations}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	default:
		status := "PASS"
		if !result.Passed() {
			status = "FAIL"
		}
		fmt.Printf("[%d] %s risk=%s sql=%q\n", index, status, result.RiskLevel(), sql)
		for _, v := range result.Violations {
			fmt.Printf("    - [%s] %s (%s)\n", v.RiskLevel, v.Message, v.Source)
		}
	}
	return nil
}
