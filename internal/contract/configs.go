package contract

import (
	"fmt"
	"strings"

	"github.com/huangsam/testaudit/internal/artifact"
	"github.com/huangsam/testaudit/schema"
)

// Default values for configuration.
const (
	DefaultPrecision          = 2
	DefaultBuildLogMarker     = artifact.DefaultBuildLogMarker
	DefaultBuildLogOccurrence = artifact.DefaultBuildLogOccurrence
	DefaultFileSuffix         = "Test.java"
	DefaultStandardsFile      = "standards.json"
	DefaultChartDir           = "."
)

// DefaultTestExtensions are the file extensions scanned by the standards report.
var DefaultTestExtensions = artifact.DefaultTestExtensions

// SuitePaths holds every input artifact of one test suite.
type SuitePaths struct {
	Coverage          string // JaCoCo report for the coverage report
	Mutation          string // PIT report
	Violations        string // PMD report
	BuildLog          string // Build output with the total time line
	StandardsCoverage string // JaCoCo report fed into the standards evaluation
	TestDir           string // Directory holding the test sources
}

// OutputPaths holds the persisted comparison files.
type OutputPaths struct {
	CoverageCSV         string
	MutationCSV         string
	ViolationsCSV       string
	ManualComplianceCSV string
	AIComplianceCSV     string
	ComplianceCSV       string
	ChartDir            string
}

// Config holds the runtime configuration for all reports.
// This struct remains the "final, validated" config.
type Config struct {
	Manual SuitePaths
	AI     SuitePaths

	StandardsFile string
	Outputs       OutputPaths

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	BuildLogMarker     string
	BuildLogOccurrence int // Which marker line holds the test phase duration
	TestExtensions     []string
	Excludes           []string // Gitignore style patterns skipped while scanning tests
	FileSuffix         string

	RunsBackend   schema.DatabaseBackend
	RunsDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored differences in table output
	UseCharts bool // Render PNG charts next to the CSV files
	Debug     bool // Enable debug logging
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Manual suite inputs ---
	ManualCoverage          string `mapstructure:"manual-coverage"`
	ManualMutation          string `mapstructure:"manual-mutation"`
	ManualViolations        string `mapstructure:"manual-violations"`
	ManualBuildLog          string `mapstructure:"manual-build-log"`
	ManualStandardsCoverage string `mapstructure:"manual-standards-coverage"`
	ManualTestDir           string `mapstructure:"manual-test-dir"`

	// --- AI suite inputs ---
	AICoverage          string `mapstructure:"ai-coverage"`
	AIMutation          string `mapstructure:"ai-mutation"`
	AIViolations        string `mapstructure:"ai-violations"`
	AIBuildLog          string `mapstructure:"ai-build-log"`
	AIStandardsCoverage string `mapstructure:"ai-standards-coverage"`
	AITestDir           string `mapstructure:"ai-test-dir"`

	// --- Persisted outputs ---
	StandardsFile       string `mapstructure:"standards-file"`
	CoverageCSV         string `mapstructure:"coverage-csv"`
	MutationCSV         string `mapstructure:"mutation-csv"`
	ViolationsCSV       string `mapstructure:"violations-csv"`
	ManualComplianceCSV string `mapstructure:"manual-compliance-csv"`
	AIComplianceCSV     string `mapstructure:"ai-compliance-csv"`
	ComplianceCSV       string `mapstructure:"compliance-csv"`
	ChartDir            string `mapstructure:"chart-dir"`

	// --- Fields from rootCmd.PersistentFlags() ---
	Output        string `mapstructure:"output"`
	OutputFile    string `mapstructure:"output-file"`
	Precision     int    `mapstructure:"precision"`
	Width         int    `mapstructure:"width"`
	Color         string `mapstructure:"color"`
	Charts        string `mapstructure:"charts"`
	Debug         bool   `mapstructure:"debug"`
	RunsBackend   string `mapstructure:"runs-backend"`
	RunsDBConnect string `mapstructure:"runs-db-connect"`

	// --- Fields from standardsCmd.Flags() ---
	BuildLogMarker     string `mapstructure:"build-log-marker"`
	BuildLogOccurrence int    `mapstructure:"build-log-occurrence"`
	TestExtensions     string `mapstructure:"test-extensions"`
	Exclude            string `mapstructure:"exclude"`
	FileSuffix         string `mapstructure:"file-suffix"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.TestExtensions != nil {
		clone.TestExtensions = make([]string, len(c.TestExtensions))
		copy(clone.TestExtensions, c.TestExtensions)
	}
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	return &clone
}

// Suite returns the input paths of the given suite.
func (c *Config) Suite(s schema.Suite) SuitePaths {
	if s == schema.AISuite {
		return c.AI
	}
	return c.Manual
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	processSuitePaths(cfg, input)
	if err := processStandardsInputs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("runs-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("runs-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the run tracking backend. An empty backend disables tracking.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.RunsBackend = schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(input.RunsBackend)))
	if cfg.RunsBackend == "" {
		cfg.RunsDBConnect = ""
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.RunsBackend]; !ok {
		return fmt.Errorf("invalid runs backend '%s'. must be sqlite, mysql, postgresql, none", input.RunsBackend)
	}
	cfg.RunsDBConnect = input.RunsDBConnect
	return ValidateDatabaseConnectionString(cfg.RunsBackend, cfg.RunsDBConnect)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Debug = input.Debug

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// Parse charts flag
	charts, err := ParseBoolString(input.Charts)
	if err != nil {
		return fmt.Errorf("invalid --charts value: %w", err)
	}
	cfg.UseCharts = charts

	// --- 1. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	// --- 2. Width Validation ---
	if cfg.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", cfg.Width)
	}

	return nil
}

// processSuitePaths copies the input and output locations of both suites.
func processSuitePaths(cfg *Config, input *ConfigRawInput) {
	cfg.Manual = SuitePaths{
		Coverage:          strings.TrimSpace(input.ManualCoverage),
		Mutation:          strings.TrimSpace(input.ManualMutation),
		Violations:        strings.TrimSpace(input.ManualViolations),
		BuildLog:          strings.TrimSpace(input.ManualBuildLog),
		StandardsCoverage: strings.TrimSpace(input.ManualStandardsCoverage),
		TestDir:           strings.TrimSpace(input.ManualTestDir),
	}
	cfg.AI = SuitePaths{
		Coverage:          strings.TrimSpace(input.AICoverage),
		Mutation:          strings.TrimSpace(input.AIMutation),
		Violations:        strings.TrimSpace(input.AIViolations),
		BuildLog:          strings.TrimSpace(input.AIBuildLog),
		StandardsCoverage: strings.TrimSpace(input.AIStandardsCoverage),
		TestDir:           strings.TrimSpace(input.AITestDir),
	}

	cfg.Outputs = OutputPaths{
		CoverageCSV:         strings.TrimSpace(input.CoverageCSV),
		MutationCSV:         strings.TrimSpace(input.MutationCSV),
		ViolationsCSV:       strings.TrimSpace(input.ViolationsCSV),
		ManualComplianceCSV: strings.TrimSpace(input.ManualComplianceCSV),
		AIComplianceCSV:     strings.TrimSpace(input.AIComplianceCSV),
		ComplianceCSV:       strings.TrimSpace(input.ComplianceCSV),
		ChartDir:            strings.TrimSpace(input.ChartDir),
	}
	if cfg.Outputs.ChartDir == "" {
		cfg.Outputs.ChartDir = DefaultChartDir
	}
}

// processStandardsInputs handles the standards file, the build log heuristic and test discovery.
func processStandardsInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.StandardsFile = strings.TrimSpace(input.StandardsFile)
	if cfg.StandardsFile == "" {
		cfg.StandardsFile = DefaultStandardsFile
	}

	// --- 1. Build log heuristic ---
	cfg.BuildLogMarker = input.BuildLogMarker
	if strings.TrimSpace(cfg.BuildLogMarker) == "" {
		cfg.BuildLogMarker = DefaultBuildLogMarker
	}
	if input.BuildLogOccurrence < 1 {
		return fmt.Errorf("build-log-occurrence must be at least 1 (received %d)", input.BuildLogOccurrence)
	}
	cfg.BuildLogOccurrence = input.BuildLogOccurrence

	// --- 2. Test file discovery ---
	cfg.TestExtensions = nil
	for _, ext := range splitList(input.TestExtensions) {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("test extension %q must start with '.'", ext)
		}
		cfg.TestExtensions = append(cfg.TestExtensions, ext)
	}
	if len(cfg.TestExtensions) == 0 {
		cfg.TestExtensions = append([]string(nil), DefaultTestExtensions...)
	}
	cfg.Excludes = splitList(input.Exclude)

	cfg.FileSuffix = strings.TrimSpace(input.FileSuffix)
	if cfg.FileSuffix == "" {
		cfg.FileSuffix = DefaultFileSuffix
	}
	return nil
}

// splitList splits a comma separated value and drops blank entries.
func splitList(s string) []string {
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
