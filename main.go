package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var (
	configPath  string
	queriesPath string
	noColor     bool
	listOnly    bool
)

var rootCmd = &cobra.Command{
	Use:          "dbverify [config.toml]",
	Short:        "Verify a seeded survey database against its expected schema, data and queries",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runVerify,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to verification TOML config file")
	rootCmd.Flags().StringVar(&queriesPath, "queries", "", "path to the queries file (overrides queries_file)")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.Flags().BoolVar(&listOnly, "list", false, "print the check battery and exit without connecting")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runVerify(cmd *cobra.Command, args []string) error {
	checks := buildBattery(surveyFixture)
	if listOnly {
		for i, c := range checks {
			fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, c.Name)
		}
		return nil
	}

	// Resolve config path: positional arg takes precedence over --config flag
	cfgPath := configPath
	if len(args) > 0 {
		cfgPath = args[0]
	}
	if cfgPath == "" {
		return fmt.Errorf("config file required: dbverify <config.toml> or dbverify --config <config.toml>")
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}
	if queriesPath != "" {
		// Flag paths are relative to the working directory, not the config file
		abs, err := filepath.Abs(queriesPath)
		if err != nil {
			return fmt.Errorf("resolve queries path: %w", err)
		}
		cfg.QueriesFile = abs
	}

	start := time.Now()
	results, err := verify(cmd.Context(), cfg, checks)
	if err != nil {
		return err
	}

	newReporter(cmd.OutOrStdout(), noColor).report(results)
	log.Printf("verification completed in %s", time.Since(start).Round(time.Millisecond))

	if failed := countFailed(results); failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(results))
	}
	return nil
}

// verify opens the single connection, runs the hooks and the battery, and
// closes the connection. An error means no check was run.
func verify(ctx context.Context, cfg *VerifyConfig, checks []Check) ([]Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	dialect, err := newDialect(cfg.Database.Type)
	if err != nil {
		return nil, err
	}
	dialect.SetCharset(cfg.Database.Charset)

	dbName, err := dialect.ExtractDBName(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	log.Printf("connecting to %s database '%s'...", dialect.Name(), dbName)
	db, err := dialect.OpenDB(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping %s: %w", dialect.Name(), err)
	}

	if err := execHookFiles(ctx, db, cfg, cfg.Hooks.BeforeChecks, "before_checks"); err != nil {
		return nil, err
	}

	s := &Session{
		DB:          db,
		Dialect:     dialect,
		DBName:      dbName,
		QueriesPath: cfg.resolvePath(cfg.QueriesFile),
	}
	log.Printf("running %d checks...", len(checks))
	return runChecks(ctx, s, checks), nil
}
