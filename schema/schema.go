// Package schema has configs, models and global variables for all parts of testaudit.
package schema

// CoverageRecord is one counter of one class from a JaCoCo coverage report.
type CoverageRecord struct {
	Class   string      `json:"class"`   // Fully qualified class name
	Type    CounterType `json:"type"`    // What the counter measures
	Missed  int         `json:"missed"`  // Number of missed items
	Covered int         `json:"covered"` // Number of covered items
}

// Ratio returns covered/(covered+missed), or 0 when nothing was counted.
func (r CoverageRecord) Ratio() float64 {
	return SafeRatio(r.Covered, r.Covered+r.Missed)
}

// MutationRecord is one mutant from a PIT mutation report.
type MutationRecord struct {
	Class       string         `json:"class"`
	Method      string         `json:"method"`
	Line        int            `json:"line_number"` // -1 when the report has no line number
	Mutator     string         `json:"mutator"`
	Status      MutationStatus `json:"status"`
	Detected    bool           `json:"detected"`
	KillingTest string         `json:"killing_test,omitempty"`
	Description string         `json:"description,omitempty"`
}

// Killed reports whether a test killed the mutant.
func (r MutationRecord) Killed() bool { return r.Status == KilledStatus }

// NoCoverage reports whether no test reached the mutant.
func (r MutationRecord) NoCoverage() bool { return r.Status == NoCoverageStatus }

// ViolationRecord is one PMD violation that matched a rule of the rule set.
type ViolationRecord struct {
	File        string `json:"file"`
	Rule        string `json:"rule"`
	RuleSet     string `json:"ruleset"`
	Priority    string `json:"priority"`
	BeginLine   string `json:"begin_line"`
	EndLine     string `json:"end_line"`
	Message     string `json:"violation_description"`
	Description string `json:"description"` // Catalogue description of the rule
	RuleRef     string `json:"rule_ref"`    // Catalogue reference of the rule
}

// CoverageMetrics holds the coverage ratios fed into the standards evaluation.
type CoverageMetrics struct {
	Statement float64 `json:"statementCoverage"` // INSTRUCTION
	Function  float64 `json:"functionCoverage"`  // METHOD
	Branch    float64 `json:"branchCoverage"`    // BRANCH
	Path      float64 `json:"pathCoverage"`      // LINE
}

// Values returns the metrics in a stable order.
func (m CoverageMetrics) Values() []float64 {
	return []float64{m.Statement, m.Function, m.Branch, m.Path}
}

// Mean returns the arithmetic mean of all coverage metrics.
func (m CoverageMetrics) Mean() float64 {
	vals := m.Values()
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
