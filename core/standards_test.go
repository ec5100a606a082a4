package core

import (
	"testing"

	"github.com/huangsam/testaudit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTestFile = `package functions;

import static org.junit.jupiter.api.Assertions.*;

/** Tests for the calculator. */
public class CalculatorTest {
    @Test
    public void shouldReturnSumWhenPositive() {
        // Arrange
        Calculator c = new Calculator();
        // Act
        int sum = c.add(2, 2);
        // Assert
        assertEquals(4, sum);
    }
}
`

func TestStandardRules(t *testing.T) {
	tests := []struct {
		id    schema.StandardID
		name  string
		in    EvalInput
		score float64
	}{
		{NamingConventions, "behaviour style name", EvalInput{Content: "void shouldReturnSumWhenPositive()"}, 1},
		{NamingConventions, "plain test name", EvalInput{Content: "void testAdd()"}, 0},
		{ArrangeActAssert, "all three markers", EvalInput{Content: "// Arrange\nx();\n// Act\ny();\n// Assert\nz();"}, 1},
		{ArrangeActAssert, "act marker missing", EvalInput{Content: "// Arrange\nx();\n// Assert\nz();"}, 0},
		{OneAssertionPerTest, "single assertion", EvalInput{Content: "@Test\npublic void a() {\n  assertEquals(1, x);\n}"}, 1},
		{OneAssertionPerTest, "two assertions", EvalInput{Content: "@Test\npublic void a() {\n  assertEquals(1, x);\n  assertTrue(y);\n}"}, 0},
		{OneAssertionPerTest, "one of several methods", EvalInput{Content: "@Test public void a() { assertTrue(x); assertTrue(y); }\n@Test public void b() { assertFalse(z); }"}, 1},
		{TestDataIsolation, "setup and teardown", EvalInput{Content: "@BeforeEach void up() {}\n@AfterEach void down() {}"}, 1},
		{TestDataIsolation, "setup only", EvalInput{Content: "@BeforeEach void up() {}"}, 0},
		{MockExternalServices, "mockito", EvalInput{Content: "Mockito.mock(Service.class)"}, 1},
		{MockExternalServices, "when keyword", EvalInput{Content: "when(service.call()).thenReturn(1);"}, 1},
		{MockExternalServices, "no whole word", EvalInput{Content: "whenever mocked"}, 0},
		{CoverageStandard, "mean of coverage ratios", EvalInput{Coverage: schema.CoverageMetrics{Statement: 1, Function: 0.5, Branch: 0.5, Path: 0}}, 0.5},
		{ExceptionHandling, "assertThrows", EvalInput{Content: "assertThrows(X.class, () -> f());"}, 1},
		{ExceptionHandling, "expected attribute", EvalInput{Content: "@Test(expected = X.class)"}, 1},
		{ExceptionHandling, "none", EvalInput{Content: "assertEquals(1, 1);"}, 0},
		{Documentation, "block comment", EvalInput{Content: "/** Docs */"}, 1},
		{Documentation, "line comment only", EvalInput{Content: "// note"}, 0},
		{Assertions, "assertion with message", EvalInput{Content: `assertTrue(ok, "must be ok")`}, 1},
		{Assertions, "assertion without message", EvalInput{Content: "assertEquals(4, add(2, 2))"}, 0},
		{EdgeCaseCoverage, "keyword in any case", EvalInput{Content: "void shouldHandleEmptyList()"}, 1},
		{EdgeCaseCoverage, "no keyword", EvalInput{Content: "void shouldAdd()"}, 0},
		{LoopConditionCoverage, "for loop", EvalInput{Content: "for (int i = 0; i < 3; i++) {}"}, 1},
		{LoopConditionCoverage, "no loop", EvalInput{Content: "int x = 1;"}, 0},
		{FileNameConvention, "default suffix", EvalInput{Path: "src/CalculatorTest.java"}, 1},
		{FileNameConvention, "wrong suffix", EvalInput{Path: "src/CalculatorSpec.java"}, 0},
		{FileNameConvention, "custom suffix", EvalInput{Path: "src/CalculatorSpec.java", FileSuffix: "Spec.java"}, 1},
		{MainMethodCoverage, "public main", EvalInput{Content: "public static void main(String[] args)"}, 1},
		{MainMethodCoverage, "documented main method", EvalInput{Content: "/** covers the main method */"}, 1},
		{MainMethodCoverage, "jacoco note", EvalInput{Content: "// Main is excluded by JaCoCo"}, 1},
		{MainMethodCoverage, "none", EvalInput{Content: "void shouldAdd()"}, 0},
		{ExceptionCoverage, "assertThrows", EvalInput{Content: "assertThrows(X.class, f)"}, 1},
		{ExceptionCoverage, "expected attribute does not count", EvalInput{Content: "@Test(expected = X.class)"}, 0},
		{TestsShouldBeFast, "build time score", EvalInput{BuildTimeScore: 0.85}, 0.85},
	}

	covered := map[schema.StandardID]bool{}
	for _, tt := range tests {
		covered[tt.id] = true
		t.Run(string(tt.id)+"/"+tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.score, ScoreStandard(tt.id, tt.in), 1e-9)
		})
	}
	for _, id := range RegisteredStandards() {
		assert.True(t, covered[id], "standard %s has no test case", id)
	}
}

func TestScoreStandardUnknown(t *testing.T) {
	assert.Zero(t, ScoreStandard("noSuchStandard", EvalInput{Content: sampleTestFile}))
}

func TestRegisteredStandards(t *testing.T) {
	ids := RegisteredStandards()
	assert.Len(t, ids, 15)
	assert.IsNonDecreasing(t, ids)
}

func TestEvaluateFile(t *testing.T) {
	standards := []schema.Standard{
		{ID: NamingConventions},
		{ID: ArrangeActAssert},
		{ID: OneAssertionPerTest},
		{ID: TestsShouldBeFast},
		{ID: "customStandard"},
	}
	in := EvalInput{
		Path:           "functions/CalculatorTest.java",
		Content:        sampleTestFile,
		Coverage:       schema.CoverageMetrics{Statement: 1},
		BuildTimeScore: 0.5,
	}

	record := EvaluateFile(in, standards)
	assert.Equal(t, in.Path, record.File)
	assert.Equal(t, in.Coverage, record.Coverage)
	assert.Equal(t, map[schema.StandardID]float64{
		NamingConventions:   1,
		ArrangeActAssert:    1,
		OneAssertionPerTest: 1,
		TestsShouldBeFast:   0.5,
		"customStandard":    0,
	}, record.Scores)
	assert.InDelta(t, 3.5/5, record.TotalScore, 1e-9)

	t.Run("no standards", func(t *testing.T) {
		record := EvaluateFile(in, nil)
		assert.Empty(t, record.Scores)
		assert.Zero(t, record.TotalScore)
	})
}

func TestSummarizeCompliance(t *testing.T) {
	standards := []schema.Standard{{ID: Documentation}, {ID: Assertions}}

	t.Run("mean percentages", func(t *testing.T) {
		records := []schema.ComplianceRecord{
			{Scores: map[schema.StandardID]float64{Documentation: 1, Assertions: 0}, TotalScore: 0.5},
			{Scores: map[schema.StandardID]float64{Documentation: 1, Assertions: 1}, TotalScore: 1},
			{Scores: map[schema.StandardID]float64{Documentation: 0, Assertions: 0}, TotalScore: 0},
		}
		summary := SummarizeCompliance(records, standards)
		assert.Equal(t, 3, summary.Files)
		assert.Equal(t, 66.67, summary.Scores[Documentation])
		assert.Equal(t, 33.33, summary.Scores[Assertions])
		assert.Equal(t, 50.0, summary.TotalScore)
	})

	t.Run("no records", func(t *testing.T) {
		summary := SummarizeCompliance(nil, standards)
		require.Len(t, summary.Scores, 2)
		assert.Zero(t, summary.Scores[Documentation])
		assert.Zero(t, summary.TotalScore)
		assert.Zero(t, summary.Files)
	})
}
