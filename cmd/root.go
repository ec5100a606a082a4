package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/testaudit/internal/contract"
	"github.com/huangsam/testaudit/internal/logging"
	"github.com/huangsam/testaudit/internal/store"
	"github.com/huangsam/testaudit/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// storeManager is the global run tracking manager instance.
var storeManager contract.StoreManager

// defaultPaths are the artifact locations of the usual two-project layout,
// relative to the working directory.
var defaultPaths = map[string]string{
	"manual-coverage":           "manual-unitest-report-jacoco.xml",
	"ai-coverage":               "ai-generated-unittest-report-jacoco.xml",
	"manual-mutation":           "manual-unittest-pit-report.xml",
	"ai-mutation":               "ai-generated-unittest-pit-report.xml",
	"manual-violations":         "manual-unittest-pmd-report.xml",
	"ai-violations":             "ai-generated-unittest-pmd-report.xml",
	"manual-build-log":          "manual-unittest_build-log.txt",
	"ai-build-log":              "ai-generated-unittest_build-log.txt",
	"manual-standards-coverage": "manual-unittest/target/site/jacoco/jacoco.xml",
	"ai-standards-coverage":     "ai-generation-unittest/target/site/jacoco/jacoco.xml",
	"manual-test-dir":           "manual-unittest/src/test/java/functions",
	"ai-test-dir":               "ai-generation-unittest/src/test/java/functions",
	"standards-file":            contract.DefaultStandardsFile,
	"coverage-csv":              "coverage_comparison.csv",
	"mutation-csv":              "mutation_coverage_comparison.csv",
	"violations-csv":            "pmd_rule_violation_comparison.csv",
	"manual-compliance-csv":     "manual_compliance_results.csv",
	"ai-compliance-csv":         "ai_compliance_results.csv",
	"compliance-csv":            "compliance_comparison.csv",
	"chart-dir":                 contract.DefaultChartDir,
}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "testaudit",
	Short:              "Compare a manual and an AI-generated unit test suite.",
	Long:               `Testaudit reads coverage, mutation, lint and build artifacts of two test suites and shows where one beats the other.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setConfigLocation points viper at --config or the default .testaudit.yaml locations.
func setConfigLocation() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".testaudit") // Name of config file (without extension)
	viper.SetConfigType("yaml")       // We'll use YAML format
	viper.AddConfigPath(".")          // Look in the current directory
	viper.AddConfigPath("$HOME")      // Look in the home directory
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigLocation()

	// Set environment variable prefix
	viper.SetEnvPrefix("TESTAUDIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	for key, path := range defaultPaths {
		viper.SetDefault(key, path)
	}
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("runs-backend", "")
	viper.SetDefault("runs-db-connect", "")
	viper.SetDefault("color", "yes")
	viper.SetDefault("charts", "yes")
	viper.SetDefault("build-log-marker", contract.DefaultBuildLogMarker)
	viper.SetDefault("build-log-occurrence", contract.DefaultBuildLogOccurrence)
	viper.SetDefault("test-extensions", strings.Join(contract.DefaultTestExtensions, ","))
	viper.SetDefault("file-suffix", contract.DefaultFileSuffix)
}

// readConfigFile merges the config file into viper. A missing file is fine.
func readConfigFile() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := readConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Debug logging goes to stderr through zap
	if err := logging.InitLogger(cfg.Debug); err != nil {
		return err
	}
	logging.Logger.Debugw("Resolved configuration", "output", cfg.Output, "runs_backend", cfg.RunsBackend, "standards", cfg.StandardsFile)

	// 5. Initialize run tracking with validated config
	if err := store.InitStores(cfg.RunsBackend, cfg.RunsDBConnect); err != nil {
		return fmt.Errorf("failed to initialize run tracking: %w", err)
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to the runs commands.
func loadConfigFile() error {
	setConfigLocation()
	return readConfigFile()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetStoreManager sets the global run tracking manager.
func SetStoreManager(mgr contract.StoreManager) {
	storeManager = mgr
}
