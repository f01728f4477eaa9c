//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedBinaryPath holds the path to a shared mdrealign binary built once for all tests.
	sharedBinaryPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getBinary returns the path to the mdrealign binary, building it once if needed.
func getBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "mdrealign-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binaryPath := filepath.Join(tempDir, "mdrealign")
		buildCmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/mdrealign")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build mdrealign: %v", err))
		}

		sharedBinaryPath = binaryPath
	})

	return sharedBinaryPath
}

// writeSourceFixture writes a small raw state-board export into dir and
// returns the file path. The file name carries the election year.
func writeSourceFixture(dir string, year int) (string, error) {
	content := "Office Name,County Name,Candidate Name,Party,Total Votes\n" +
		"Governor,Howard,Jane Doe / Pat Kim,Democratic,300\n" +
		"Governor,Howard,Sam Lee,Republican,100\n" +
		"Governor,Allegany,Jane Doe / Pat Kim,Democratic,80\n" +
		"Governor,Allegany,Sam Lee,Republican,220\n" +
		"County Council,Howard,Someone Local,Democratic,50\n"
	path := filepath.Join(dir, fmt.Sprintf("%d_general_results.csv", year))
	return path, os.WriteFile(path, []byte(content), 0o644)
}
