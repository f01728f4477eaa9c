package sourcefmt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinFormats(t *testing.T) {
	registry := NewRegistry()
	assert.Equal(t, []string{"mdsbe", "openelections"}, registry.IDs())

	openelections, ok := registry.Lookup("openelections")
	require.True(t, ok)
	assert.Equal(t, "year", openelections.Year)
	assert.Equal(t, "votes", openelections.Votes)

	mdsbe, ok := registry.Lookup("mdsbe")
	require.True(t, ok)
	assert.Empty(t, mdsbe.Year, "state board exports carry the year in the file name")
	assert.Equal(t, "Total Votes", mdsbe.Votes)
}

func TestLookupCaseInsensitive(t *testing.T) {
	registry := NewRegistry()
	_, ok := registry.Lookup("  MDSBE ")
	assert.True(t, ok)
	_, ok = registry.Lookup("nope")
	assert.False(t, ok)
}

func TestRegister(t *testing.T) {
	registry := NewRegistry()
	mapping := Mapping{Office: "Race", County: "Jurisdiction", Candidate: "Name", Party: "Party", Votes: "Votes"}

	require.NoError(t, registry.Register("Custom-Fmt", mapping))
	got, ok := registry.Lookup("custom-fmt")
	require.True(t, ok)
	assert.Equal(t, mapping, got)

	assert.Error(t, registry.Register("", mapping))
	assert.Error(t, registry.Register("bad", Mapping{Office: "Race"}), "missing required columns")
}

func TestMappingValidate(t *testing.T) {
	valid := Mapping{Office: "o", County: "c", Candidate: "n", Votes: "v"}
	assert.NoError(t, valid.Validate())

	missing := valid
	missing.Votes = " "
	err := missing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "votes")
}

func TestMergeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formats.yaml")
	content := `precinct-export:
  year: "Election Year"
  office: "Office"
  county: "County"
  candidate: "Candidate"
  party: "Party"
  votes: "Votes"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	registry := NewRegistry()
	require.NoError(t, registry.MergeFile(path))

	mapping, ok := registry.Lookup("precinct-export")
	require.True(t, ok)
	assert.Equal(t, "Election Year", mapping.Year)
	assert.Contains(t, registry.IDs(), "precinct-export")
}

func TestMergeFileErrors(t *testing.T) {
	registry := NewRegistry()
	assert.Error(t, registry.MergeFile(filepath.Join(t.TempDir(), "missing.yaml")))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("not: [valid: mapping"), 0o644))
	assert.Error(t, registry.MergeFile(bad))

	incomplete := filepath.Join(t.TempDir(), "incomplete.yaml")
	require.NoError(t, os.WriteFile(incomplete, []byte("partial:\n  office: \"Office\"\n"), 0o644))
	assert.Error(t, registry.MergeFile(incomplete))
}
