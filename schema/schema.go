// Package schema defines the domain types shared across the pipeline.
package schema

// ElectionRecord is one normalized row: a single candidate's vote total
// for one contest in one county. Records are immutable once parsed and
// are discarded after aggregation; only the aggregated dataset persists.
type ElectionRecord struct {
	Year      int    // Election year, derived from the source file when absent
	Contest   string // Normalized contest name (e.g. "Governor")
	County    string // County or county-equivalent name
	Candidate string // Candidate label as it appears in the source
	Party     string // Party label as it appears in the source
	Votes     int    // Non-negative vote count; missing cells parse as 0
}

// ResultKey identifies one CountyResult. Grouping is exact-match on all
// three fields, with county names case-normalized upstream.
type ResultKey struct {
	Year    int
	Contest string
	County  string
}

// CountyResult aggregates every ElectionRecord sharing (year, contest,
// county). Candidate keys are canonical labels; variants that canonicalize
// to the same label are merged by summation, so no two keys are equal
// after canonicalization. Sum of CandidateVotes always equals Turnout.
type CountyResult struct {
	Year        int         `json:"year"`
	Contest     string      `json:"contest"`
	ContestType ContestType `json:"contest_type"`
	OfficeRank  int         `json:"office_rank"`
	County      string      `json:"county"`

	CandidateVotes map[string]int    `json:"candidate_votes"`
	CandidateParty map[string]string `json:"candidate_parties"`
	PartyTotals    map[string]int    `json:"all_parties"`
	Turnout        int               `json:"total_votes"`

	DemCandidate  string  `json:"dem_candidate"`
	RepCandidate  string  `json:"rep_candidate"`
	DemVotes      int     `json:"dem_votes"`
	RepVotes      int     `json:"rep_votes"`
	DemPct        float64 `json:"dem_pct"`
	RepPct        float64 `json:"rep_pct"`
	OtherVotes    int     `json:"other_votes"`
	TwoPartyTotal int     `json:"two_party_total"`
	Winner        string  `json:"winner"`

	// MarginVotes and MarginPct compare the top two candidates by vote
	// count. MarginPct is nil for uncontested contests.
	MarginVotes int      `json:"margin"`
	MarginPct   *float64 `json:"margin_pct"`

	Rating Rating `json:"competitiveness"`
}

// Rating is the competitiveness classification attached to a CountyResult.
// It is a pure function of the rounded margin, the leading party, and the
// configured scale.
type Rating struct {
	Category string `json:"category"`
	Party    string `json:"party"`
	Code     string `json:"code"`
	Color    string `json:"color"`
	Label    string `json:"label"`
}

// Jurisdiction describes the geographic scope of the dataset.
type Jurisdiction struct {
	State          string `json:"state"`
	StateFIPS      string `json:"state_fips"`
	GeographyLevel string `json:"geography_level"`
}

// DatasetSummary carries roll-up counts for the generated dataset.
type DatasetSummary struct {
	TotalYears         int      `json:"total_years"`
	TotalContests      int      `json:"total_contests"`
	TotalCountyResults int      `json:"total_county_results"`
	YearsCovered       []string `json:"years_covered"`
}

// AggregatedDataset is the persisted output artifact, keyed year ->
// contest -> county. The map UI indexes into it by these same keys, so
// the structure is a stable contract. Serialization is deterministic:
// encoding/json emits map keys in sorted order and all percentages are
// rounded to two decimals before marshaling.
type AggregatedDataset struct {
	Focus          string                                          `json:"focus"`
	Jurisdiction   Jurisdiction                                    `json:"jurisdiction"`
	Categorization CategorizationSystem                            `json:"categorization_system"`
	Summary        DatasetSummary                                  `json:"summary"`
	ResultsByYear  map[string]map[string]map[string]*CountyResult `json:"results_by_year"`
}

// CategorizationSystem documents the competitiveness legend embedded in
// the artifact so the map UI can render it without a second source of truth.
type CategorizationSystem struct {
	CompetitivenessScale map[string][]LegendEntry `json:"competitiveness_scale"`
	OfficeTypes          []string                 `json:"office_types"`
}

// LegendEntry is one row of the published legend.
type LegendEntry struct {
	Category string `json:"category"`
	Range    string `json:"range"`
	Color    string `json:"color"`
}
