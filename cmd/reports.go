package cmd

import (
	"github.com/huangsam/testaudit/core"
	"github.com/huangsam/testaudit/internal/contract"
	"github.com/spf13/cobra"
)

// runReport adapts a report executor to a cobra Run function.
func runReport(what string, execute core.ExecutorFunc) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, _ []string) {
		if err := execute(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run "+what, err)
		}
	}
}

// coverageCmd compares JaCoCo coverage.
var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Compare JaCoCo code coverage of both suites.",
	Long: `Parse the JaCoCo XML reports of the manual and AI-generated suites and compare
coverage per class and counter type (INSTRUCTION, BRANCH, LINE, METHOD).

Prints a summary per suite, saves the comparison CSV and renders one bar chart per suite.

Examples:
  # Compare using the default report locations
  testaudit coverage

  # Point at explicit reports and emit JSON
  testaudit coverage --manual-coverage m/jacoco.xml --ai-coverage a/jacoco.xml --output json`,
	PreRunE: sharedSetupWrapper,
	Run:     runReport("coverage report", core.ExecuteCoverageReport),
}

// mutationCmd compares PIT mutation results.
var mutationCmd = &cobra.Command{
	Use:   "mutation",
	Short: "Compare PIT mutation testing results of both suites.",
	Long: `Parse the PIT mutation XML reports and compare total, killed, survived and
uncovered mutations together with the mutation score and test strength.

Examples:
  testaudit mutation
  testaudit mutation --charts no --output csv --output-file mutation.csv`,
	PreRunE: sharedSetupWrapper,
	Run:     runReport("mutation report", core.ExecuteMutationReport),
}

// violationsCmd compares PMD rule violations.
var violationsCmd = &cobra.Command{
	Use:   "violations",
	Short: "Compare PMD rule violations of both suites.",
	Long: `Parse the PMD XML reports (namespaced or plain) and count violations of the
test quality rule set for each suite. Rules are sorted by how many more
violations the AI-generated suite has.

Examples:
  testaudit violations
  testaudit violations --ai-violations target/pmd.xml`,
	PreRunE: sharedSetupWrapper,
	Run:     runReport("violations report", core.ExecuteViolationReport),
}

// standardsCmd scores test files against the configured standards.
var standardsCmd = &cobra.Command{
	Use:   "standards",
	Short: "Score every test file against the test quality standards.",
	Long: `Scan the test sources of both suites and score each file against the standards
listed in the standards file. Build time and coverage feed into the file scores.

Saves per-file results for each suite plus a comparison of the mean scores.

Examples:
  testaudit standards --standards-file standards.json
  testaudit standards --build-log-occurrence 1 --exclude "**/generated/**"`,
	PreRunE: sharedSetupWrapper,
	Run:     runReport("standards report", core.ExecuteStandardsReport),
}

// allCmd runs every report in sequence.
var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run the coverage, mutation, violations and standards reports.",
	Long: `Run every report in sequence with the same configuration. The first failing
report stops the run.

With --output-file, each report is written to its own file with the report
kind before the extension (report.json becomes report.coverage.json, ...).

Examples:
  testaudit all
  testaudit all --runs-backend sqlite
  testaudit all --output json --output-file report.json`,
	PreRunE: sharedSetupWrapper,
	Run:     runReport("reports", core.ExecuteAll),
}
