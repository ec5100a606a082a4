package contract

import (
	"testing"

	"github.com/huangsam/testaudit/internal/artifact"
	"github.com/huangsam/testaudit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns raw input that passes validation.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		ManualCoverage:     "manual-unitest-report-jacoco.xml",
		AICoverage:         "ai-generated-unittest-report-jacoco.xml",
		ManualTestDir:      " manual-unittest/src/test/java/functions ",
		StandardsFile:      "standards.json",
		CoverageCSV:        "coverage_comparison.csv",
		Output:             "TEXT",
		Precision:          2,
		Color:              "yes",
		Charts:             "no",
		BuildLogOccurrence: 2,
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
		check       func(*testing.T, *Config)
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.TextOut, cfg.Output)
				assert.True(t, cfg.UseColors)
				assert.False(t, cfg.UseCharts)
				assert.Equal(t, "manual-unittest/src/test/java/functions", cfg.Manual.TestDir)
				assert.Equal(t, "ai-generated-unittest-report-jacoco.xml", cfg.AI.Coverage)
				assert.Equal(t, DefaultBuildLogMarker, cfg.BuildLogMarker)
				assert.Equal(t, DefaultTestExtensions, cfg.TestExtensions)
				assert.Equal(t, DefaultFileSuffix, cfg.FileSuffix)
				assert.Equal(t, DefaultChartDir, cfg.Outputs.ChartDir)
				assert.Empty(t, cfg.RunsBackend)
			},
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "precision too high",
			mutate:      func(in *ConfigRawInput) { in.Precision = 3 },
			expectError: true,
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "sometimes" },
			expectError: true,
		},
		{
			name:        "invalid charts",
			mutate:      func(in *ConfigRawInput) { in.Charts = "" },
			expectError: true,
		},
		{
			name:        "negative width",
			mutate:      func(in *ConfigRawInput) { in.Width = -1 },
			expectError: true,
		},
		{
			name:        "occurrence below one",
			mutate:      func(in *ConfigRawInput) { in.BuildLogOccurrence = 0 },
			expectError: true,
		},
		{
			name:        "extension without dot",
			mutate:      func(in *ConfigRawInput) { in.TestExtensions = "java" },
			expectError: true,
		},
		{
			name: "custom discovery settings",
			mutate: func(in *ConfigRawInput) {
				in.TestExtensions = ".java, .kt"
				in.Exclude = "generated/, ,*IT.java"
				in.FileSuffix = "Spec.kt"
				in.BuildLogOccurrence = 1
				in.BuildLogMarker = "BUILD SUCCESSFUL in"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{".java", ".kt"}, cfg.TestExtensions)
				assert.Equal(t, []string{"generated/", "*IT.java"}, cfg.Excludes)
				assert.Equal(t, "Spec.kt", cfg.FileSuffix)
				assert.Equal(t, 1, cfg.BuildLogOccurrence)
				assert.Equal(t, "BUILD SUCCESSFUL in", cfg.BuildLogMarker)
			},
		},
		{
			name:   "sqlite runs backend",
			mutate: func(in *ConfigRawInput) { in.RunsBackend = "SQLite" },
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.SQLiteBackend, cfg.RunsBackend)
			},
		},
		{
			name:        "unknown runs backend",
			mutate:      func(in *ConfigRawInput) { in.RunsBackend = "mongo" },
			expectError: true,
		},
		{
			name:        "mysql without connection",
			mutate:      func(in *ConfigRawInput) { in.RunsBackend = "mysql" },
			expectError: true,
		},
		{
			name: "postgres with connection",
			mutate: func(in *ConfigRawInput) {
				in.RunsBackend = "postgresql"
				in.RunsDBConnect = "host=localhost user=test dbname=testaudit"
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, schema.PostgreSQLBackend, cfg.RunsBackend)
				assert.Equal(t, "host=localhost user=test dbname=testaudit", cfg.RunsDBConnect)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}

			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		conn    string
		wantErr bool
	}{
		{"sqlite accepts anything", schema.SQLiteBackend, "", false},
		{"none accepts anything", schema.NoneBackend, "whatever", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/testaudit", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/testaudit", true},
		{"mysql missing database", schema.MySQLBackend, "user:pass@tcp(localhost:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=testaudit", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=testaudit", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.conn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	original := &Config{
		Manual:         SuitePaths{Coverage: "manual.xml"},
		TestExtensions: []string{".java"},
		Excludes:       []string{"generated/"},
	}
	clone := original.Clone()
	clone.TestExtensions[0] = ".kt"
	clone.Excludes = append(clone.Excludes, "other/")
	clone.Manual.Coverage = "changed.xml"

	assert.Equal(t, ".java", original.TestExtensions[0])
	assert.Equal(t, []string{"generated/"}, original.Excludes)
	assert.Equal(t, "manual.xml", original.Manual.Coverage)
}

func TestConfigSuite(t *testing.T) {
	cfg := &Config{Manual: SuitePaths{Mutation: "m.xml"}, AI: SuitePaths{Mutation: "a.xml"}}
	assert.Equal(t, "m.xml", cfg.Suite(schema.ManualSuite).Mutation)
	assert.Equal(t, "a.xml", cfg.Suite(schema.AISuite).Mutation)
}

func TestBuildLogDefaultsMatchParser(t *testing.T) {
	assert.Equal(t, artifact.DefaultBuildLogMarker, DefaultBuildLogMarker)
	assert.Equal(t, artifact.DefaultBuildLogOccurrence, DefaultBuildLogOccurrence)
	assert.Equal(t, artifact.DefaultTestExtensions, DefaultTestExtensions)

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))
	assert.Equal(t, DefaultTestExtensions, cfg.TestExtensions)

	// The validated config owns its extension list
	cfg.TestExtensions[0] = ".kt"
	assert.Equal(t, ".java", artifact.DefaultTestExtensions[0])
}
