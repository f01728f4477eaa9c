package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Tenjin25/MDRealignment/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainLabel(t *testing.T) {
	rating := schema.Rating{Category: "Safe", Party: "Republican", Label: "Safe Republican (10.00-19.99%)"}
	assert.Equal(t, "Safe Republican (10.00-19.99%)", GetPlainLabel(rating))
}

func TestGetColorLabelContainsText(t *testing.T) {
	// Color codes are stripped when not writing to a terminal, but the
	// underlying text is always preserved.
	tests := []schema.Rating{
		{Category: "Safe", Party: "Democratic", Label: "Safe Democratic (10.00-19.99%)"},
		{Category: "Lean", Party: "Republican", Label: "Lean Republican (1.00-5.49%)"},
		{Category: "Tossup", Party: "Tossup", Code: "TOSSUP", Label: "Tossup (<0.50%)"},
		schema.UncontestedRating(),
	}
	for _, rating := range tests {
		assert.Contains(t, GetColorLabel(rating), rating.Label)
	}
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Same(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.csv")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.FileExists(t, path)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifact.json")

	require.NoError(t, WriteFileAtomic(path, []byte("first\n")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(data))

	// Overwrite leaves no temporary files behind.
	require.NoError(t, WriteFileAtomic(path, []byte("second\n")))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "artifact.json", entries[0].Name())
}

func TestWriteFileAtomicBadDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "missing", "artifact.json"), []byte("x"))
	assert.Error(t, err)
}
