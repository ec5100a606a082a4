package core

import (
	"regexp"
	"sort"
	"strings"

	"github.com/huangsam/testaudit/internal/logging"
	"github.com/huangsam/testaudit/schema"
)

// Standard identifiers with a registered scoring rule.
const (
	NamingConventions     schema.StandardID = "namingConventions"
	ArrangeActAssert      schema.StandardID = "arrangeActAssert"
	OneAssertionPerTest   schema.StandardID = "oneAssertionPerTest"
	TestDataIsolation     schema.StandardID = "testDataIsolation"
	MockExternalServices  schema.StandardID = "mockExternalServices"
	CoverageStandard      schema.StandardID = "coverage"
	ExceptionHandling     schema.StandardID = "exceptionHandling"
	Documentation         schema.StandardID = "documentation"
	Assertions            schema.StandardID = "assertions"
	EdgeCaseCoverage      schema.StandardID = "edgeCaseCoverage"
	LoopConditionCoverage schema.StandardID = "loopConditionCoverage"
	FileNameConvention    schema.StandardID = "fileNameConvention"
	MainMethodCoverage    schema.StandardID = "mainMethodCoverage"
	ExceptionCoverage     schema.StandardID = "exceptionCoverage"
	TestsShouldBeFast     schema.StandardID = "testsShouldBeFast"
)

// EvalInput is everything a scoring rule may look at for one test file.
type EvalInput struct {
	Path           string
	Content        string
	Coverage       schema.CoverageMetrics // Suite level coverage ratios
	BuildTimeScore float64                // Suite level build time score
	FileSuffix     string                 // Expected test file name suffix
}

// ScoreFunc scores one test file against one standard. Scores lie in [0,1].
type ScoreFunc func(in EvalInput) float64

var (
	namingPattern        = regexp.MustCompile(`should[A-Z][a-z]+[A-Z][a-z]+`)
	arrangeActAssertExpr = regexp.MustCompile(`(?s)// Arrange.*// Act.*// Assert`)
	testMethodPattern    = regexp.MustCompile(`@Test\s+public\s+void\s+\w+\s*\([^)]*\)\s*\{[^}]*\}`)
	assertCallPattern    = regexp.MustCompile(`assert\w+\(`)
	mockWordPattern      = regexp.MustCompile(`\bmock\b|\bwhen\b`)
	assertMessagePattern = regexp.MustCompile(`assert\w+\(([^,]+),\s*"([^"]+)"\s*\)`)
	mainDocPattern       = regexp.MustCompile(`(?s)/\*\*.*main method.*\*/`)
	publicMainPattern    = regexp.MustCompile(`public.*main`)
)

var edgeCaseKeywords = []string{"empty", "single", "null", "zero", "boundary"}

// StandardRules is the registry of scoring rules keyed by standard id.
var StandardRules = map[schema.StandardID]ScoreFunc{
	NamingConventions: func(in EvalInput) float64 {
		return boolScore(namingPattern.MatchString(in.Content))
	},
	ArrangeActAssert: func(in EvalInput) float64 {
		return boolScore(arrangeActAssertExpr.MatchString(in.Content))
	},
	OneAssertionPerTest: scoreOneAssertionPerTest,
	TestDataIsolation: func(in EvalInput) float64 {
		return boolScore(strings.Contains(in.Content, "@BeforeEach") && strings.Contains(in.Content, "@AfterEach"))
	},
	MockExternalServices: func(in EvalInput) float64 {
		return boolScore(strings.Contains(in.Content, "Mockito") || mockWordPattern.MatchString(in.Content))
	},
	CoverageStandard: func(in EvalInput) float64 {
		return in.Coverage.Mean()
	},
	ExceptionHandling: func(in EvalInput) float64 {
		return boolScore(strings.Contains(in.Content, "@Test(expected") || strings.Contains(in.Content, "assertThrows"))
	},
	Documentation: func(in EvalInput) float64 {
		return boolScore(strings.Contains(in.Content, "/*"))
	},
	Assertions: func(in EvalInput) float64 {
		return boolScore(assertMessagePattern.MatchString(in.Content))
	},
	EdgeCaseCoverage: func(in EvalInput) float64 {
		lower := strings.ToLower(in.Content)
		for _, kw := range edgeCaseKeywords {
			if strings.Contains(lower, kw) {
				return 1
			}
		}
		return 0
	},
	LoopConditionCoverage: func(in EvalInput) float64 {
		return boolScore(strings.Contains(in.Content, "for") || strings.Contains(in.Content, "while"))
	},
	FileNameConvention: func(in EvalInput) float64 {
		suffix := in.FileSuffix
		if suffix == "" {
			suffix = "Test.java"
		}
		return boolScore(strings.HasSuffix(in.Path, suffix))
	},
	MainMethodCoverage: func(in EvalInput) float64 {
		lower := strings.ToLower(in.Content)
		switch {
		case strings.Contains(lower, "main") && strings.Contains(lower, "jacoco"):
			return 1
		case mainDocPattern.MatchString(in.Content):
			return 1
		case publicMainPattern.MatchString(in.Content):
			return 1
		}
		return 0
	},
	ExceptionCoverage: func(in EvalInput) float64 {
		return boolScore(strings.Contains(in.Content, "assertThrows"))
	},
	TestsShouldBeFast: func(in EvalInput) float64 {
		return in.BuildTimeScore
	},
}

// scoreOneAssertionPerTest passes when at least one test method holds exactly one assertion.
func scoreOneAssertionPerTest(in EvalInput) float64 {
	for _, method := range testMethodPattern.FindAllString(in.Content, -1) {
		n := len(assertCallPattern.FindAllStringIndex(method, -1))
		header, _, _ := strings.Cut(method, "\n")
		logging.Logger.Debugw("Counted assertions", "file", in.Path, "method", strings.TrimSpace(header), "assertions", n)
		if n == 1 {
			return 1
		}
	}
	return 0
}

func boolScore(ok bool) float64 {
	if ok {
		return 1
	}
	return 0
}

// RegisteredStandards returns the ids of all registered rules in sorted order.
func RegisteredStandards() []schema.StandardID {
	ids := make([]schema.StandardID, 0, len(StandardRules))
	for id := range StandardRules {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ScoreStandard applies the rule registered for id. Unknown ids score 0.
func ScoreStandard(id schema.StandardID, in EvalInput) float64 {
	rule, ok := StandardRules[id]
	if !ok {
		return 0
	}
	return rule(in)
}

// EvaluateFile scores one test file against every configured standard.
// TotalScore is the mean of the standard scores, or 0 without standards.
func EvaluateFile(in EvalInput, standards []schema.Standard) schema.ComplianceRecord {
	record := schema.ComplianceRecord{
		File:     in.Path,
		Scores:   make(map[schema.StandardID]float64, len(standards)),
		Coverage: in.Coverage,
	}
	for _, s := range standards {
		record.Scores[s.ID] = ScoreStandard(s.ID, in)
	}
	if len(record.Scores) > 0 {
		sum := 0.0
		for _, v := range record.Scores {
			sum += v
		}
		record.TotalScore = sum / float64(len(record.Scores))
	}
	logging.Logger.Debugw("Evaluated test file", "file", in.Path, "scores", record.Scores, "total", record.TotalScore)
	return record
}

// SummarizeCompliance averages every standard across the files of one suite as a percentage.
func SummarizeCompliance(records []schema.ComplianceRecord, standards []schema.Standard) schema.ComplianceSummary {
	summary := schema.ComplianceSummary{
		Files:  len(records),
		Scores: make(map[schema.StandardID]float64, len(standards)),
	}
	for _, s := range standards {
		summary.Scores[s.ID] = 0
	}
	if len(records) == 0 {
		return summary
	}

	n := float64(len(records))
	for id := range summary.Scores {
		sum := 0.0
		for _, r := range records {
			sum += r.Scores[id]
		}
		summary.Scores[id] = schema.Percent(sum / n)
	}
	total := 0.0
	for _, r := range records {
		total += r.TotalScore
	}
	summary.TotalScore = schema.Percent(total / n)
	return summary
}
