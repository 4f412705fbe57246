// Package cmd implements the mathcheck command line.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathcheck/internal/config"
	"github.com/abhisek/mathcheck/internal/mathcheck"
	"github.com/abhisek/mathcheck/internal/verdictlog"
)

var rootCmd = &cobra.Command{
	Use:   "mathcheck",
	Short: "Check math answers for equivalence",
	Long: "mathcheck decides whether a typed math answer is equivalent to the expected one: " +
		"equivalent fractions, decimals within tolerance, powers written with superscripts " +
		"and simple arithmetic are all accepted.",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// exitError ends the process with a status code without printing anything.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	var ee *exitError
	if err != nil && !errors.As(err, &ee) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("db", "", "Path to the verdict log database (overrides MATHCHECK_DB env var)")
	rootCmd.PersistentFlags().Float64("tolerance", 0, "Numeric tolerance (overrides config and MATHCHECK_TOLERANCE)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tryCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads --config and the environment, then applies flag
// overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("tolerance") {
		cfg.Checker.Tolerance, _ = cmd.Flags().GetFloat64("tolerance")
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

// newChecker builds a Checker from the resolved configuration.
func newChecker(cmd *cobra.Command) (*mathcheck.Checker, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return mathcheck.New(cfg.Checker), nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATHCHECK_DB env var or the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, verdictlog.EnsureDir(p)
	}
	if cfg.Store.Path != "" {
		return cfg.Store.Path, verdictlog.EnsureDir(cfg.Store.Path)
	}
	return verdictlog.DefaultDBPath()
}

// openStore opens the verdict log database.
func openStore(cmd *cobra.Command) (*verdictlog.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := verdictlog.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
