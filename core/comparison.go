package core

import (
	"sort"

	"github.com/huangsam/testaudit/schema"
)

type coverageKey struct {
	class       string
	counterType schema.CounterType
}

// CompareCoverage inner joins both suites on (class, type) in manual record order.
// A key that repeats on both sides produces one row per pairing.
func CompareCoverage(manual, ai []schema.CoverageRecord) []schema.CoverageComparisonRow {
	aiByKey := make(map[coverageKey][]schema.CoverageRecord, len(ai))
	for _, r := range ai {
		k := coverageKey{r.Class, r.Type}
		aiByKey[k] = append(aiByKey[k], r)
	}

	var rows []schema.CoverageComparisonRow
	for _, m := range manual {
		for _, a := range aiByKey[coverageKey{m.Class, m.Type}] {
			manualPct := schema.Percent(m.Ratio())
			aiPct := schema.Percent(a.Ratio())
			rows = append(rows, schema.CoverageComparisonRow{
				Class:          m.Class,
				Type:           m.Type,
				MissedManual:   m.Missed,
				CoveredManual:  m.Covered,
				MissedAI:       a.Missed,
				CoveredAI:      a.Covered,
				CoverageManual: manualPct,
				CoverageAI:     aiPct,
				Difference:     schema.Round2(aiPct - manualPct),
			})
		}
	}
	return rows
}

// CompareMutations lays both mutation summaries side by side, one row per metric.
func CompareMutations(manual, ai schema.MutationSummary) []schema.MutationComparisonRow {
	metrics := []struct {
		name       string
		manual, ai float64
	}{
		{schema.TotalMutationsMetric, float64(manual.Total), float64(ai.Total)},
		{schema.KilledMutationsMetric, float64(manual.Killed), float64(ai.Killed)},
		{schema.SurvivedMutationsMetric, float64(manual.Survived), float64(ai.Survived)},
		{schema.NoCoverageMutationsMetric, float64(manual.NoCoverage), float64(ai.NoCoverage)},
		{schema.MutationScoreMetric, manual.MutationScore, ai.MutationScore},
		{schema.TestStrengthMetric, manual.TestStrength, ai.TestStrength},
	}

	rows := make([]schema.MutationComparisonRow, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, schema.MutationComparisonRow{
			Metric:     m.name,
			Manual:     m.manual,
			AI:         m.ai,
			Difference: schema.Round2(m.ai - m.manual),
		})
	}
	return rows
}

// CompareViolations counts every rule for both suites and sorts by difference, highest first.
// Every rule appears exactly once, even when neither suite violates it.
func CompareViolations(manual, ai []schema.ViolationRecord, rules schema.RuleSet) []schema.ViolationComparisonRow {
	manualCounts := CountViolations(manual, rules)
	aiCounts := CountViolations(ai, rules)

	rows := make([]schema.ViolationComparisonRow, len(rules))
	for i, rule := range rules {
		rows[i] = schema.ViolationComparisonRow{
			Rule:        rule.Name,
			Description: rule.Description,
			RuleRef:     rule.RuleRef,
			Manual:      manualCounts[i].Count,
			AI:          aiCounts[i].Count,
			Difference:  aiCounts[i].Count - manualCounts[i].Count,
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Difference > rows[j].Difference })
	return rows
}

// CompareCompliance compares the mean compliance per standard in configuration order,
// followed by the mean total score.
func CompareCompliance(manual, ai schema.ComplianceSummary, standards []schema.Standard) []schema.ComplianceComparisonRow {
	seen := make(map[schema.StandardID]bool, len(standards))
	rows := make([]schema.ComplianceComparisonRow, 0, len(standards)+1)
	for _, s := range standards {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		rows = append(rows, complianceRow(s.ID, manual.Scores[s.ID], ai.Scores[s.ID]))
	}
	rows = append(rows, complianceRow(schema.TotalScoreKey, manual.TotalScore, ai.TotalScore))
	return rows
}

func complianceRow(id schema.StandardID, manual, ai float64) schema.ComplianceComparisonRow {
	return schema.ComplianceComparisonRow{
		Standard:   id,
		Manual:     manual,
		AI:         ai,
		Difference: schema.Round2(ai - manual),
	}
}
