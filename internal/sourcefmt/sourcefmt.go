// Package sourcefmt maps source-specific CSV headers onto the canonical
// record schema. New source formats are added by registering a mapping,
// either in code or through a YAML registry file, never by editing the
// normalizer itself.
package sourcefmt

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mapping names the source column that backs each canonical field.
// An empty Year column means the year is derived from the file name.
type Mapping struct {
	Year      string `yaml:"year"`
	Office    string `yaml:"office"`
	County    string `yaml:"county"`
	Candidate string `yaml:"candidate"`
	Party     string `yaml:"party"`
	Votes     string `yaml:"votes"`
}

// Validate reports the first missing required column mapping.
func (m Mapping) Validate() error {
	required := []struct{ field, value string }{
		{"office", m.Office},
		{"county", m.County},
		{"candidate", m.Candidate},
		{"votes", m.Votes},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("mapping is missing the %s column", r.field)
		}
	}
	return nil
}

// Registry holds the known source formats keyed by id.
type Registry struct {
	formats map[string]Mapping
}

// NewRegistry returns a registry seeded with the built-in formats:
//   - "openelections": the normalized intermediate schema itself
//   - "mdsbe": Maryland State Board of Elections county result exports
func NewRegistry() *Registry {
	return &Registry{formats: map[string]Mapping{
		"openelections": {
			Year:      "year",
			Office:    "office",
			County:    "county",
			Candidate: "candidate",
			Party:     "party",
			Votes:     "votes",
		},
		"mdsbe": {
			Office:    "Office Name",
			County:    "County Name",
			Candidate: "Candidate Name",
			Party:     "Party",
			Votes:     "Total Votes",
		},
	}}
}

// Register adds or replaces a format mapping.
func (r *Registry) Register(id string, m Mapping) error {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return fmt.Errorf("format id cannot be empty")
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("format %q: %w", id, err)
	}
	r.formats[id] = m
	return nil
}

// Lookup returns the mapping for a format id.
func (r *Registry) Lookup(id string) (Mapping, bool) {
	m, ok := r.formats[strings.TrimSpace(strings.ToLower(id))]
	return m, ok
}

// IDs returns all registered format ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.formats))
	for id := range r.formats {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MergeFile loads additional format mappings from a YAML file of the form
//
//	my-format:
//	  office: "Office"
//	  county: "Jurisdiction"
//	  candidate: "Name"
//	  party: "Party"
//	  votes: "Votes"
//
// and registers each one, replacing built-ins on id collision.
func (r *Registry) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read format registry %s: %w", path, err)
	}

	var parsed map[string]Mapping
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("cannot parse format registry %s: %w", path, err)
	}

	for id, m := range parsed {
		if err := r.Register(id, m); err != nil {
			return fmt.Errorf("format registry %s: %w", path, err)
		}
	}
	return nil
}
