// Package cmd defines the command-line interface for testaudit.
package cmd

import (
	"github.com/huangsam/testaudit/internal/contract"
	"github.com/huangsam/testaudit/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(coverageCmd)
	rootCmd.AddCommand(mutationCmd)
	rootCmd.AddCommand(violationsCmd)
	rootCmd.AddCommand(standardsCmd)
	rootCmd.AddCommand(allCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(runsCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	flags := rootCmd.PersistentFlags()

	// Output and ambient flags
	flags.String("output", string(schema.TextOut), "Output format: text or csv or json")
	flags.String("output-file", "", "Optional path to write output to")
	flags.Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns (1 or 2)")
	flags.Int("width", 0, "Terminal width override (0 = auto-detect)")
	flags.String("color", "yes", "Enable colored differences in output (yes/no/true/false/1/0)")
	flags.String("charts", "yes", "Render PNG charts next to the CSV files (yes/no/true/false/1/0)")
	flags.Bool("debug", false, "Enable debug logging on stderr")
	flags.String("runs-backend", "", "Run tracking backend: sqlite or mysql or postgresql or none")
	flags.String("runs-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	flags.String("config", "", "Path to config file")

	// Suite artifacts
	flags.String("manual-coverage", defaultPaths["manual-coverage"], "JaCoCo XML report of the manual suite")
	flags.String("ai-coverage", defaultPaths["ai-coverage"], "JaCoCo XML report of the AI-generated suite")
	flags.String("manual-mutation", defaultPaths["manual-mutation"], "PIT XML report of the manual suite")
	flags.String("ai-mutation", defaultPaths["ai-mutation"], "PIT XML report of the AI-generated suite")
	flags.String("manual-violations", defaultPaths["manual-violations"], "PMD XML report of the manual suite")
	flags.String("ai-violations", defaultPaths["ai-violations"], "PMD XML report of the AI-generated suite")
	flags.String("manual-build-log", defaultPaths["manual-build-log"], "Build log of the manual suite")
	flags.String("ai-build-log", defaultPaths["ai-build-log"], "Build log of the AI-generated suite")
	flags.String("manual-standards-coverage", defaultPaths["manual-standards-coverage"], "JaCoCo XML report used by the standards check for the manual suite")
	flags.String("ai-standards-coverage", defaultPaths["ai-standards-coverage"], "JaCoCo XML report used by the standards check for the AI-generated suite")
	flags.String("manual-test-dir", defaultPaths["manual-test-dir"], "Test source directory of the manual suite")
	flags.String("ai-test-dir", defaultPaths["ai-test-dir"], "Test source directory of the AI-generated suite")

	// Persisted outputs
	flags.String("standards-file", defaultPaths["standards-file"], "Standards configuration (JSON or YAML)")
	flags.String("coverage-csv", defaultPaths["coverage-csv"], "Where to save the coverage comparison")
	flags.String("mutation-csv", defaultPaths["mutation-csv"], "Where to save the mutation comparison")
	flags.String("violations-csv", defaultPaths["violations-csv"], "Where to save the rule violation comparison")
	flags.String("manual-compliance-csv", defaultPaths["manual-compliance-csv"], "Where to save per-file compliance of the manual suite")
	flags.String("ai-compliance-csv", defaultPaths["ai-compliance-csv"], "Where to save per-file compliance of the AI-generated suite")
	flags.String("compliance-csv", defaultPaths["compliance-csv"], "Where to save the compliance comparison")
	flags.String("chart-dir", defaultPaths["chart-dir"], "Directory for rendered PNG charts")

	// Standards evaluation
	flags.String("build-log-marker", contract.DefaultBuildLogMarker, "Line marker preceding the build duration")
	flags.Int("build-log-occurrence", contract.DefaultBuildLogOccurrence, "Which marker line holds the test phase duration")
	flags.String("test-extensions", ".java", "Comma-separated list of test source extensions")
	flags.String("exclude", "", "Comma-separated list of gitignore style patterns to skip while scanning tests")
	flags.String("file-suffix", contract.DefaultFileSuffix, "File name suffix required by the fileNameConvention standard")

	// Bind all persistent flags of rootCmd to Viper
	if err := viper.BindPFlags(flags); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
