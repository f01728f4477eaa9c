package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// ContestType classifies a contest by the level of office.
	ContestType string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// All output modes supported.
const (
	JSONOut    OutputMode = "json" // default
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text"
	ParquetOut OutputMode = "parquet"
)

// All contest types supported.
const (
	FederalContest  ContestType = "Federal"
	StateContest    ContestType = "State"
	JudicialContest ContestType = "Judicial"
	OtherContest    ContestType = "Other"
)

// All run-store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Winner values for a county result.
const (
	WinnerDem = "DEM"
	WinnerRep = "REP"
	WinnerTie = "TIE"
)

// Party codes with dedicated handling.
const (
	PartyDem   = "DEM"
	PartyRep   = "REP"
	PartyOther = "OTH"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	JSONOut:    {},
	CSVOut:     {},
	TextOut:    {},
	ParquetOut: {},
}

// ValidRunStoreBackends lists all valid run-store backends.
var ValidRunStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ContestMeta describes a statewide contest tracked by the pipeline.
type ContestMeta struct {
	Type ContestType
	Rank int
}

// DefaultContestFilter lists the statewide contests that produce clean
// county-level geographic patterns. Rows for other offices are filtered,
// not treated as errors. Office rank orders contests in UI dropdowns.
func DefaultContestFilter() map[string]ContestMeta {
	return map[string]ContestMeta{
		"President":        {Type: FederalContest, Rank: 1},
		"Governor":         {Type: StateContest, Rank: 2},
		"U.S. Senator":     {Type: FederalContest, Rank: 3},
		"Attorney General": {Type: StateContest, Rank: 4},
		"Comptroller":      {Type: StateContest, Rank: 5},
	}
}

// DefaultPartyMap maps lowercase source party labels to canonical codes.
// Unknown non-empty labels are upper-cased as-is; empty labels map to OTH.
func DefaultPartyMap() map[string]string {
	return map[string]string{
		"democratic":   "DEM",
		"republican":   "REP",
		"libertarian":  "LIB",
		"independent":  "IND",
		"reform":       "REF",
		"green":        "GRN",
		"alliance":     "ALL",
		"taxpayers":    "TAX",
		"natural-law":  "NAT",
		"other":        "OTH",
		"both parties": "BTH",
	}
}

// NormalizedHeader is the fixed column schema of the intermediate CSV
// artifact, one row per (year, contest, county, candidate, party) tuple.
// Column names follow the OpenElections convention ("office" for the
// contest) so the aggregate stage reads convert output through the
// built-in "openelections" format mapping without translation.
var NormalizedHeader = []string{"year", "office", "county", "candidate", "party", "votes"}
