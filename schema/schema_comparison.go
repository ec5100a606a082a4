package schema

// ComparisonRow is the report-agnostic shape of one comparison line.
// It is what gets tracked in the run store and exported to Parquet.
type ComparisonRow struct {
	Key        string  `json:"key"`
	Manual     float64 `json:"manual"`
	AI         float64 `json:"ai"`
	Difference float64 `json:"difference"` // AI - Manual
}

// CoverageComparisonRow joins one (class, type) counter across both suites.
type CoverageComparisonRow struct {
	Class          string      `json:"class"`
	Type           CounterType `json:"type"`
	MissedManual   int         `json:"missed_manual"`
	CoveredManual  int         `json:"covered_manual"`
	MissedAI       int         `json:"missed_ai"`
	CoveredAI      int         `json:"covered_ai"`
	CoverageManual float64     `json:"coverage_manual"` // Percentage, 2 decimals
	CoverageAI     float64     `json:"coverage_ai"`     // Percentage, 2 decimals
	Difference     float64     `json:"difference"`
}

// Mutation comparison metric labels in display order.
const (
	TotalMutationsMetric      = "Total Mutations"
	KilledMutationsMetric     = "Killed Mutations"
	SurvivedMutationsMetric   = "Survived Mutations"
	NoCoverageMutationsMetric = "Mutations with No Coverage"
	MutationScoreMetric       = "Mutation Score (%)"
	TestStrengthMetric        = "Test Strength (%)"
)

// LowerIsBetterMetrics lists the mutation metrics where an increase is a regression.
var LowerIsBetterMetrics = map[string]bool{
	SurvivedMutationsMetric:   true,
	NoCoverageMutationsMetric: true,
}

// MutationComparisonRow compares one mutation metric across both suites.
type MutationComparisonRow struct {
	Metric     string  `json:"metric"`
	Manual     float64 `json:"manual"`
	AI         float64 `json:"ai"`
	Difference float64 `json:"difference"`
}

// ViolationComparisonRow compares the violation count of one rule across both suites.
type ViolationComparisonRow struct {
	Rule        string `json:"rule"`
	Description string `json:"description"`
	RuleRef     string `json:"rule_ref"`
	Manual      int    `json:"manual_count"`
	AI          int    `json:"ai_count"`
	Difference  int    `json:"difference"`
}

// ComplianceComparisonRow compares the mean compliance of one standard across both suites.
type ComplianceComparisonRow struct {
	Standard   StandardID `json:"standard"`
	Manual     float64    `json:"manual"` // Percentage, 2 decimals
	AI         float64    `json:"ai"`     // Percentage, 2 decimals
	Difference float64    `json:"difference"`
}

// CoverageSummaryRow holds the summed counters of one counter type.
type CoverageSummaryRow struct {
	Type     CounterType `json:"type"`
	Missed   int         `json:"missed"`
	Covered  int         `json:"covered"`
	Coverage float64     `json:"coverage"` // Percentage, 2 decimals
}

// MutationSummary holds the mutation counts and derived scores of one suite.
type MutationSummary struct {
	Total         int     `json:"total_mutations"`
	Killed        int     `json:"killed_mutations"`
	Survived      int     `json:"survived_mutations"`
	NoCoverage    int     `json:"no_coverage_mutations"`
	MutationScore float64 `json:"mutation_score"` // Percentage, 2 decimals
	TestStrength  float64 `json:"test_strength"`  // Percentage, 2 decimals
}

// RuleCount is the number of violations of one rule in one suite.
type RuleCount struct {
	Rule        string `json:"rule"`
	Description string `json:"description"`
	RuleRef     string `json:"rule_ref"`
	Count       int    `json:"count"`
}

// CoverageReportResult is the full outcome of the coverage pipeline.
type CoverageReportResult struct {
	Manual     []CoverageSummaryRow    `json:"manual"`
	AI         []CoverageSummaryRow    `json:"ai"`
	Comparison []CoverageComparisonRow `json:"comparison"`
}

// Rows converts the comparison into report-agnostic rows.
func (r CoverageReportResult) Rows() []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(r.Comparison))
	for _, c := range r.Comparison {
		rows = append(rows, ComparisonRow{
			Key:        c.Class + "#" + string(c.Type),
			Manual:     c.CoverageManual,
			AI:         c.CoverageAI,
			Difference: c.Difference,
		})
	}
	return rows
}

// MutationReportResult is the full outcome of the mutation pipeline.
type MutationReportResult struct {
	Manual     MutationSummary         `json:"manual"`
	AI         MutationSummary         `json:"ai"`
	Comparison []MutationComparisonRow `json:"comparison"`
}

// Rows converts the comparison into report-agnostic rows.
func (r MutationReportResult) Rows() []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(r.Comparison))
	for _, c := range r.Comparison {
		rows = append(rows, ComparisonRow{Key: c.Metric, Manual: c.Manual, AI: c.AI, Difference: c.Difference})
	}
	return rows
}

// ViolationReportResult is the full outcome of the rule violation pipeline.
type ViolationReportResult struct {
	Manual     []RuleCount              `json:"manual"`
	AI         []RuleCount              `json:"ai"`
	Comparison []ViolationComparisonRow `json:"comparison"`
}

// Rows converts the comparison into report-agnostic rows.
func (r ViolationReportResult) Rows() []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(r.Comparison))
	for _, c := range r.Comparison {
		rows = append(rows, ComparisonRow{
			Key:        c.Rule,
			Manual:     float64(c.Manual),
			AI:         float64(c.AI),
			Difference: float64(c.Difference),
		})
	}
	return rows
}

// ComplianceReportResult is the full outcome of the standards pipeline.
type ComplianceReportResult struct {
	Standards       []Standard                `json:"standards"`
	Manual          []ComplianceRecord        `json:"manual"`
	AI              []ComplianceRecord        `json:"ai"`
	ManualSummary   ComplianceSummary         `json:"manual_summary"`
	AISummary       ComplianceSummary         `json:"ai_summary"`
	ManualBuildTime BuildTimeResult           `json:"manual_build_time"`
	AIBuildTime     BuildTimeResult           `json:"ai_build_time"`
	ManualCoverage  CoverageMetrics           `json:"manual_coverage"`
	AICoverage      CoverageMetrics           `json:"ai_coverage"`
	Comparison      []ComplianceComparisonRow `json:"comparison"`
}

// Rows converts the comparison into report-agnostic rows.
func (r ComplianceReportResult) Rows() []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(r.Comparison))
	for _, c := range r.Comparison {
		rows = append(rows, ComparisonRow{Key: string(c.Standard), Manual: c.Manual, AI: c.AI, Difference: c.Difference})
	}
	return rows
}
