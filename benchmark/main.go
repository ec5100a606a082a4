// Package main measures how long each testaudit report takes on real project layouts.
// Every report runs several times without run tracking and several times with
// SQLite run tracking, so the tracking overhead shows up next to the raw cost.
//
// Prerequisites:
// - testaudit binary installed and available in PATH
// - One directory per project under the base directory, each holding the
//   artifacts of both suites with the default file names
//
// Usage: go run benchmark/main.go [project-base-dir]
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the timings of one report on one project.
type BenchmarkResult struct {
	Project     string
	Report      string
	UntrackedMs string
	TrackedMs   string
	Failures    int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	ProjectBase string
	Timeout     time.Duration
	Runs        int
	Reports     []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [project-base-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		ProjectBase: os.Args[1],
		Timeout:     2 * time.Minute,
		Runs:        5,
		Reports:     []string{"coverage", "mutation", "violations", "standards", "all"},
	}

	projects, err := discoverProjects(config)
	if err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config, projects)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// discoverProjects checks for the binary and returns every project directory under the base.
func discoverProjects(config BenchmarkConfig) ([]string, error) {
	if _, err := exec.LookPath("testaudit"); err != nil {
		return nil, errors.New("testaudit binary not found in PATH")
	}

	entries, err := os.ReadDir(config.ProjectBase)
	if err != nil {
		return nil, fmt.Errorf("cannot read project base %s: %w", config.ProjectBase, err)
	}
	var projects []string
	for _, e := range entries {
		if e.IsDir() {
			projects = append(projects, e.Name())
		}
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("no project directories found in %s", config.ProjectBase)
	}
	return projects, nil
}

// runBenchmarks times every report on every project.
func runBenchmarks(config BenchmarkConfig, projects []string) []BenchmarkResult {
	fmt.Printf("Starting benchmark: %d projects, %d reports, %d runs each, %v timeout\n",
		len(projects), len(config.Reports), config.Runs, config.Timeout)

	var results []BenchmarkResult
	for _, project := range projects {
		dir := filepath.Join(config.ProjectBase, project)
		dbPath := filepath.Join(os.TempDir(), fmt.Sprintf("testaudit_bench_%s.db", project))

		for _, report := range config.Reports {
			fmt.Printf("Running %s on %s\n", report, project)
			untracked, failedA := timeReport(config, dir, report, "none", "")
			tracked, failedB := timeReport(config, dir, report, "sqlite", dbPath)

			result := BenchmarkResult{
				Project:     project,
				Report:      report,
				UntrackedMs: formatAverage(untracked),
				TrackedMs:   formatAverage(tracked),
				Failures:    failedA + failedB,
			}
			fmt.Printf("  Untracked: %s, Tracked: %s, Failures: %d\n", result.UntrackedMs, result.TrackedMs, result.Failures)
			results = append(results, result)
		}
		_ = os.Remove(dbPath)
	}
	return results
}

// timeReport runs one report config.Runs times and returns the successful durations.
func timeReport(config BenchmarkConfig, dir, report, backend, connStr string) (times []time.Duration, failures int) {
	args := []string{report, "--charts", "no", "--color", "no", "--runs-backend", backend}
	if connStr != "" {
		args = append(args, "--runs-db-connect", connStr)
	}

	for range config.Runs {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		cmd := exec.CommandContext(ctx, "testaudit", args...)
		cmd.Dir = dir

		start := time.Now()
		err := cmd.Run()
		elapsed := time.Since(start)
		cancel()

		if err != nil {
			failures++
			continue
		}
		times = append(times, elapsed)
	}
	return times, failures
}

func formatAverage(times []time.Duration) string {
	if len(times) == 0 {
		return "FAILED"
	}
	var sum time.Duration
	for _, t := range times {
		sum += t
	}
	return fmt.Sprintf("%.1f", float64(sum.Microseconds())/float64(len(times))/1000)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("testaudit_benchmark_%s.csv", timestamp))

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"project", "report", "untracked_avg_ms", "tracked_avg_ms", "failures"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range results {
		if err := writer.Write([]string{r.Project, r.Report, r.UntrackedMs, r.TrackedMs, fmt.Sprint(r.Failures)}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the results grouped by report.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	seen := make(map[string]bool)
	for _, r := range results {
		if seen[r.Report] {
			continue
		}
		seen[r.Report] = true
		fmt.Printf("%s:\n", r.Report)
		for _, other := range results {
			if other.Report == r.Report {
				fmt.Printf("  %-20s: Untracked: %sms, Tracked: %sms\n", other.Project, other.UntrackedMs, other.TrackedMs)
			}
		}
	}
}
