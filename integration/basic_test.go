//go:build basic

package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand runs the mdrealign binary in dir with run tracking disabled
// and returns the combined output.
func runCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command(getBinary(), args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "MDREALIGN_RUNSTORE_BACKEND=none")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "command %v failed:\n%s", args, string(output))
	return string(output)
}

// TestBuildEndToEnd runs the single-command pipeline over a raw source
// directory and checks the emitted artifact.
func TestBuildEndToEnd(t *testing.T) {
	workDir := t.TempDir()
	sourceDir := filepath.Join(workDir, "raw")
	require.NoError(t, os.Mkdir(sourceDir, 0o755))
	_, err := writeSourceFixture(sourceDir, 2022)
	require.NoError(t, err)

	artifact := filepath.Join(workDir, "results.json")
	output := runCommand(t, workDir, "build", "--artifact", artifact, sourceDir)
	assert.Contains(t, output, "Wrote "+artifact)

	data, err := os.ReadFile(artifact)
	require.NoError(t, err)

	var dataset map[string]any
	require.NoError(t, json.Unmarshal(data, &dataset))
	assert.Contains(t, dataset, "results_by_year")
	assert.Contains(t, string(data), "Howard County")
	assert.Contains(t, string(data), "Allegany County")
	assert.NotContains(t, string(data), "County Council", "unfiltered contests stay out of the artifact")
	assert.NotContains(t, string(data), "Pat Kim", "running mates are stripped from candidate labels")
}

// TestConvertThenAggregate runs the two-stage pipeline and checks that
// the normalized intermediate files feed the aggregate step.
func TestConvertThenAggregate(t *testing.T) {
	workDir := t.TempDir()
	sourceDir := filepath.Join(workDir, "raw")
	require.NoError(t, os.Mkdir(sourceDir, 0o755))
	_, err := writeSourceFixture(sourceDir, 2022)
	require.NoError(t, err)

	convertDir := filepath.Join(workDir, "openelections")
	runCommand(t, workDir, "convert", "--convert-dir", convertDir, sourceDir)
	assert.FileExists(t, filepath.Join(convertDir, "2022__md__general__county.csv"))

	artifact := filepath.Join(workDir, "results.json")
	runCommand(t, workDir, "aggregate", "--artifact", artifact, convertDir)
	assert.FileExists(t, artifact)

	// Two invocations over the same input produce byte-identical artifacts.
	second := filepath.Join(workDir, "results2.json")
	runCommand(t, workDir, "aggregate", "--artifact", second, convertDir)
	first, err := os.ReadFile(artifact)
	require.NoError(t, err)
	again, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, again))
}

// TestResultsExport renders the artifact in every export format.
func TestResultsExport(t *testing.T) {
	workDir := t.TempDir()
	sourceDir := filepath.Join(workDir, "raw")
	require.NoError(t, os.Mkdir(sourceDir, 0o755))
	_, err := writeSourceFixture(sourceDir, 2022)
	require.NoError(t, err)

	artifact := filepath.Join(workDir, "results.json")
	runCommand(t, workDir, "build", "--artifact", artifact, sourceDir)

	csvOut := runCommand(t, workDir, "results", "--output", "csv", artifact)
	assert.Contains(t, csvOut, "year,contest,contest_type,county")
	assert.Contains(t, csvOut, "Howard County")

	tableOut := runCommand(t, workDir, "results", "--output", "text", "--color", "no", artifact)
	assert.Contains(t, tableOut, "Showing 2 county results")

	filtered := runCommand(t, workDir, "results", "--output", "csv", "--contest", "Governor", "--year", "2022", artifact)
	assert.Contains(t, filtered, "Governor")

	parquetFile := filepath.Join(workDir, "results.parquet")
	runCommand(t, workDir, "results", "--output", "parquet", "--output-file", parquetFile, artifact)
	assert.FileExists(t, parquetFile)
}

// TestVersionCommand sanity checks the version output.
func TestVersionCommand(t *testing.T) {
	output := runCommand(t, t.TempDir(), "version")
	assert.Contains(t, output, "mdrealign CLI")
}
