// Package chart renders report charts as PNG images.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/testaudit/schema"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when every value of a chart is zero or there is nothing to plot.
var ErrNoData = errors.New("all values are zero")

// Series colors shared by every chart.
var (
	manualColor = drawing.ColorFromHex("1f77b4")
	aiColor     = drawing.ColorFromHex("ff7f0e")
	barColor    = drawing.ColorFromHex("87ceeb")
)

const (
	chartWidth  = 1000
	chartHeight = 500
)

// RenderToFile renders a chart and writes it to path. Nothing is written when rendering fails.
func RenderToFile(path string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cannot write chart %s: %w", path, err)
	}
	return nil
}

// CoverageBar renders the coverage percentage per counter type of one suite.
func CoverageBar(w io.Writer, title string, rows []schema.CoverageSummaryRow) error {
	if len(rows) == 0 {
		return ErrNoData
	}
	bars := make([]gochart.Value, 0, len(rows))
	for _, r := range rows {
		bars = append(bars, gochart.Value{
			Label: fmt.Sprintf("%s (%.2f%%)", r.Type, r.Coverage),
			Value: r.Coverage,
			Style: gochart.Style{FillColor: barColor, StrokeColor: barColor},
		})
	}
	graph := gochart.BarChart{
		Title:      "Code Coverage Report for " + title,
		Background: gochart.Style{Padding: gochart.Box{Top: 40}},
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   80,
		YAxis: gochart.YAxis{
			Name:  "Coverage Percentage (%)",
			Range: &gochart.ContinuousRange{Min: 0, Max: 100},
		},
		Bars: bars,
	}
	return graph.Render(gochart.PNG, w)
}

// MutationPie renders the killed, survived and uncovered mutants of one suite.
func MutationPie(w io.Writer, title string, s schema.MutationSummary) error {
	values := []gochart.Value{
		{Label: "Killed", Value: float64(s.Killed)},
		{Label: "Survived", Value: float64(s.Survived)},
		{Label: "No Coverage", Value: float64(s.NoCoverage)},
	}
	if allZero(values) {
		return ErrNoData
	}
	// Zero slices cannot be drawn
	nonZero := values[:0]
	for _, v := range values {
		if v.Value > 0 {
			nonZero = append(nonZero, v)
		}
	}
	graph := gochart.PieChart{
		Title:  "Mutation Testing Results for " + title,
		Width:  chartHeight,
		Height: chartHeight,
		Values: nonZero,
	}
	return graph.Render(gochart.PNG, w)
}

// ViolationLines renders the violation count per rule for both suites.
func ViolationLines(w io.Writer, rows []schema.ViolationComparisonRow) error {
	labels := make([]string, 0, len(rows))
	manual := make([]float64, 0, len(rows))
	ai := make([]float64, 0, len(rows))
	for _, r := range rows {
		labels = append(labels, r.Rule)
		manual = append(manual, float64(r.Manual))
		ai = append(ai, float64(r.AI))
	}
	return comparisonLines(w, lineSpec{
		title:  "PMD Rule Violations Comparison",
		xName:  "Rule",
		yName:  "Violation Count",
		labels: labels,
		manual: manual,
		ai:     ai,
	})
}

// ComplianceLines renders the mean compliance per standard for both suites.
func ComplianceLines(w io.Writer, rows []schema.ComplianceComparisonRow) error {
	labels := make([]string, 0, len(rows))
	manual := make([]float64, 0, len(rows))
	ai := make([]float64, 0, len(rows))
	for _, r := range rows {
		labels = append(labels, string(r.Standard))
		manual = append(manual, r.Manual)
		ai = append(ai, r.AI)
	}
	return comparisonLines(w, lineSpec{
		title:  "Compliance Comparison of AI-generated and Manually Written Tests",
		xName:  "Standards",
		yName:  "Compliance Score (%)",
		labels: labels,
		manual: manual,
		ai:     ai,
		yMax:   100,
	})
}

type lineSpec struct {
	title, xName, yName string
	labels              []string
	manual, ai          []float64
	yMax                float64 // 0 derives the maximum from the data
}

// comparisonLines draws one line per suite over categorical x positions.
func comparisonLines(w io.Writer, spec lineSpec) error {
	if len(spec.labels) == 0 || (allZeroFloats(spec.manual) && allZeroFloats(spec.ai)) {
		return ErrNoData
	}

	xs := make([]float64, len(spec.labels))
	ticks := make([]gochart.Tick, len(spec.labels))
	for i, l := range spec.labels {
		xs[i] = float64(i)
		ticks[i] = gochart.Tick{Value: float64(i), Label: l}
	}
	xMax := float64(len(xs) - 1)
	if xMax == 0 {
		xMax = 1
	}
	yMax := spec.yMax
	if yMax == 0 {
		yMax = max(maxFloat(spec.manual), maxFloat(spec.ai)) + 1
	}

	graph := gochart.Chart{
		Title:      spec.title,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: gochart.XAxis{
			Name:      spec.xName,
			Range:     &gochart.ContinuousRange{Min: 0, Max: xMax},
			Ticks:     ticks,
			TickStyle: gochart.Style{TextRotationDegrees: 45},
		},
		YAxis: gochart.YAxis{
			Name:  spec.yName,
			Range: &gochart.ContinuousRange{Min: 0, Max: yMax},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "AI-generated Tests",
				XValues: xs,
				YValues: spec.ai,
				Style:   gochart.Style{StrokeColor: aiColor, DotColor: aiColor, DotWidth: 4},
			},
			gochart.ContinuousSeries{
				Name:    "Manually Written Tests",
				XValues: xs,
				YValues: spec.manual,
				Style:   gochart.Style{StrokeColor: manualColor, DotColor: manualColor, DotWidth: 4},
			},
		},
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	return graph.Render(gochart.PNG, w)
}

func allZero(values []gochart.Value) bool {
	for _, v := range values {
		if v.Value != 0 {
			return false
		}
	}
	return true
}

func allZeroFloats(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}
	return true
}

func maxFloat(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		m = max(m, v)
	}
	return m
}
