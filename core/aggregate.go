package core

import (
	"sort"

	"github.com/huangsam/testaudit/schema"
)

// SummarizeCoverage sums the missed and covered counts per counter type.
// Rows are sorted by counter type name.
func SummarizeCoverage(records []schema.CoverageRecord) []schema.CoverageSummaryRow {
	byType := make(map[schema.CounterType]*schema.CoverageSummaryRow)
	for _, r := range records {
		row, ok := byType[r.Type]
		if !ok {
			row = &schema.CoverageSummaryRow{Type: r.Type}
			byType[r.Type] = row
		}
		row.Missed += r.Missed
		row.Covered += r.Covered
	}

	rows := make([]schema.CoverageSummaryRow, 0, len(byType))
	for _, row := range byType {
		row.Coverage = schema.Percent(schema.SafeRatio(row.Covered, row.Covered+row.Missed))
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Type < rows[j].Type })
	return rows
}

// CoverageMetricsFrom derives the report level coverage ratios used by the standards evaluation.
func CoverageMetricsFrom(records []schema.CoverageRecord) schema.CoverageMetrics {
	var missed, covered [4]int
	for _, r := range records {
		var i int
		switch r.Type {
		case schema.InstructionCounter:
			i = 0
		case schema.MethodCounter:
			i = 1
		case schema.BranchCounter:
			i = 2
		case schema.LineCounter:
			i = 3
		default:
			continue
		}
		missed[i] += r.Missed
		covered[i] += r.Covered
	}
	ratio := func(i int) float64 { return schema.SafeRatio(covered[i], covered[i]+missed[i]) }
	return schema.CoverageMetrics{
		Statement: ratio(0),
		Function:  ratio(1),
		Branch:    ratio(2),
		Path:      ratio(3),
	}
}

// SummarizeMutations counts mutants by status and derives the mutation score and test strength.
func SummarizeMutations(records []schema.MutationRecord) schema.MutationSummary {
	s := schema.MutationSummary{Total: len(records)}
	for _, r := range records {
		switch r.Status {
		case schema.KilledStatus:
			s.Killed++
		case schema.SurvivedStatus:
			s.Survived++
		case schema.NoCoverageStatus:
			s.NoCoverage++
		}
	}
	s.MutationScore = schema.Percent(schema.SafeRatio(s.Killed, s.Total))
	s.TestStrength = schema.Percent(schema.SafeRatio(s.Killed+s.NoCoverage, s.Total))
	return s
}

// CountViolations returns one count per rule in rule set order. Rules without violations count 0.
func CountViolations(records []schema.ViolationRecord, rules schema.RuleSet) []schema.RuleCount {
	counts := make(map[string]int, len(rules))
	for _, r := range records {
		counts[r.Rule]++
	}
	out := make([]schema.RuleCount, 0, len(rules))
	for _, rule := range rules {
		out = append(out, schema.RuleCount{
			Rule:        rule.Name,
			Description: rule.Description,
			RuleRef:     rule.RuleRef,
			Count:       counts[rule.Name],
		})
	}
	return out
}

// SortRuleCounts orders rule counts by count, highest first. Ties keep their order.
func SortRuleCounts(counts []schema.RuleCount) []schema.RuleCount {
	sorted := append([]schema.RuleCount(nil), counts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Count > sorted[j].Count })
	return sorted
}
