// Package main provides a performance benchmarking tool for the mdrealign CLI.
// It generates synthetic statewide result files at several dataset sizes,
// measures execution times per pipeline command, treating the first successful
// run as cold and averaging the rest as warm, and generates CSV output for
// performance analysis and documentation.
//
// Prerequisites:
// - mdrealign binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Scratch directory for generated datasets and artifacts
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Dataset  string
	Command  string
	ColdTime string
	WarmTime string
}

// DatasetSpec describes one synthetic dataset.
type DatasetSpec struct {
	Name       string
	Years      int
	Candidates int // candidates per contest per county
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir  string
	Timeout  time.Duration
	Runs     int
	Datasets []DatasetSpec
}

// contests and counties used for synthetic data. Only the filtered
// statewide contests matter for aggregate timings.
var (
	contests = []string{"President", "Governor", "U.S. Senator", "Attorney General", "Comptroller"}
	counties = []string{
		"Allegany", "Anne Arundel", "Baltimore City", "Baltimore County", "Calvert",
		"Caroline", "Carroll", "Cecil", "Charles", "Dorchester", "Frederick",
		"Garrett", "Harford", "Howard", "Kent", "Montgomery", "Prince George's",
		"Queen Anne's", "Saint Mary's", "Somerset", "Talbot", "Washington",
		"Wicomico", "Worcester",
	}
)

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: 5 * time.Minute,
		Runs:    4,
		Datasets: []DatasetSpec{
			{Name: "small", Years: 2, Candidates: 2},
			{Name: "medium", Years: 10, Candidates: 4},
			{Name: "large", Years: 30, Candidates: 8},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the mdrealign binary and work dir exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("mdrealign"); err != nil {
		return fmt.Errorf("mdrealign binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// generateDataset writes one raw source file per election year.
func generateDataset(config BenchmarkConfig, spec DatasetSpec) (string, error) {
	dir := filepath.Join(config.WorkDir, spec.Name, "raw")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	for i := 0; i < spec.Years; i++ {
		year := 2024 - 2*i
		path := filepath.Join(dir, fmt.Sprintf("%d_general_results.csv", year))
		if err := writeYearFile(path, year, spec.Candidates); err != nil {
			return "", err
		}
	}
	return dir, nil
}

// writeYearFile writes one synthetic state-board export.
func writeYearFile(path string, year, candidates int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Office Name", "County Name", "Candidate Name", "Party", "Total Votes"}); err != nil {
		return err
	}
	parties := []string{"Democratic", "Republican", "Libertarian", "Green", "Independent", "Other"}
	for _, contest := range contests {
		for ci, county := range counties {
			for c := 0; c < candidates; c++ {
				party := parties[c%len(parties)]
				name := fmt.Sprintf("Candidate %c %d", 'A'+rune(c), year)
				votes := fmt.Sprintf("%d", 1000+137*ci+53*c)
				if err := w.Write([]string{contest, county, name, party, votes}); err != nil {
					return err
				}
			}
		}
	}
	return w.Error()
}

// runBenchmarks executes all benchmark tests across configured dataset sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d datasets, %v timeout, %d runs each\n",
		len(config.Datasets), config.Timeout, config.Runs)

	for _, spec := range config.Datasets {
		fmt.Printf("Benchmarking %s (%d years, %d candidates per contest)\n",
			spec.Name, spec.Years, spec.Candidates)

		rawDir, err := generateDataset(config, spec)
		if err != nil {
			fmt.Printf("  Failed to generate dataset: %v\n", err)
			continue
		}

		baseDir := filepath.Dir(rawDir)
		convertDir := filepath.Join(baseDir, "openelections")
		artifact := filepath.Join(baseDir, "results.json")

		commands := []struct {
			name string
			args []string
		}{
			{"convert", []string{"convert", "--convert-dir", convertDir, rawDir}},
			{"aggregate", []string{"aggregate", "--artifact", artifact, convertDir}},
			{"build", []string{"build", "--artifact", artifact, rawDir}},
		}
		for _, command := range commands {
			results = append(results, runBenchmarkSuite(config, spec.Name, baseDir, command.name, command.args))
		}
	}

	return results
}

// runBenchmarkSuite runs one pipeline command several times and splits
// the timings into a cold run and a warm average.
func runBenchmarkSuite(config BenchmarkConfig, dataset, workDir, command string, args []string) BenchmarkResult {
	fmt.Printf("  Running %s (%d runs)\n", command, config.Runs)

	cold, times := runBenchmark(config, workDir, args)

	coldStr := "TIMEOUT"
	if cold > 0 {
		coldStr = fmt.Sprintf("%.3fs", cold)
	}

	warmStr := "TIMEOUT"
	if len(times) > 0 {
		var sum float64
		for _, t := range times {
			sum += t
		}
		warmStr = fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldStr, warmStr)

	return BenchmarkResult{
		Dataset:  dataset,
		Command:  command,
		ColdTime: coldStr,
		WarmTime: warmStr,
	}
}

// runBenchmark executes an mdrealign command multiple times and returns
// the cold time plus the warm times.
func runBenchmark(config BenchmarkConfig, workDir string, args []string) (coldTime float64, warmTimes []float64) {
	// Run tracking would dominate small timings, so it stays off.
	fullArgs := append([]string{}, args...)
	fullArgs = append(fullArgs, "--runstore-backend", "none")

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("mdrealign", fullArgs...)
		cmd.Dir = workDir

		done := make(chan bool)
		var cmdErr error

		go func() {
			cmdErr = cmd.Run()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/mdrealign_benchmark_%s.csv", timestamp)

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

	// Write header
	if err := writer.Write([]string{"dataset", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Dataset, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "convert", "Convert:")
	printCommandSummary(results, "aggregate", "Aggregate:")
	printCommandSummary(results, "build", "Build:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: Cold: %s, Warm: %s\n", result.Dataset, result.ColdTime, result.WarmTime)
		}
	}
}
