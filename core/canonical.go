package core

import (
	"strings"

	"github.com/Tenjin25/MDRealignment/schema"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// partyMap is read-only after init.
var partyMap = schema.DefaultPartyMap()

// RemoveRunningMate strips a delimiter-separated running mate from a
// candidate label, keeping the primary candidate. Recognized separators
// are "/", "&" and the word "and"; the cut happens at the earliest
// occurrence of any of them, so the result contains no separator and the
// function is idempotent. Labels with no recognized separator pass
// through unchanged rather than being guessed at.
func RemoveRunningMate(name string) string {
	candidate := strings.TrimSpace(name)
	if candidate == "" {
		return candidate
	}
	cut := strings.IndexAny(candidate, "/&")
	if i := strings.Index(strings.ToLower(candidate), " and "); i >= 0 && (cut < 0 || i < cut) {
		cut = i
	}
	if cut >= 0 {
		return strings.TrimSpace(candidate[:cut])
	}
	return candidate
}

// NormalizeParty maps a source party label to its canonical code.
// Unknown non-empty labels are upper-cased as-is; empty labels are OTH.
func NormalizeParty(party string) string {
	p := strings.ToLower(strings.TrimSpace(party))
	if code, ok := partyMap[p]; ok {
		return code
	}
	if p == "" {
		return schema.PartyOther
	}
	return strings.ToUpper(p)
}

// NormalizeContest trims the office name and collapses district-suffixed
// Comptroller variants to the bare contest name.
func NormalizeContest(office string) string {
	office = strings.TrimSpace(office)
	if strings.HasPrefix(office, "Comptroller") {
		return "Comptroller"
	}
	return office
}

// NormalizeCounty case-normalizes a county name and defaults the
// " County" suffix when neither "County" nor "City" is present. Source
// files spell Baltimore City explicitly, so a bare "Baltimore" resolves
// to the county. Backticks appearing for apostrophes in older exports
// are repaired first.
func NormalizeCounty(county string) string {
	raw := strings.Join(strings.Fields(strings.ReplaceAll(county, "`", "'")), " ")
	if raw == "" {
		return raw
	}

	titled := cases.Title(language.AmericanEnglish).String(strings.ToLower(raw))
	lower := strings.ToLower(titled)
	switch {
	case strings.HasSuffix(lower, " county") || strings.HasSuffix(lower, " city"):
		return titled
	case lower == "baltimore":
		return "Baltimore County"
	default:
		return titled + " County"
	}
}

// CanonicalizeRecord returns the record with every label in canonical
// form. Aggregation relies on this having run: grouping keys and
// candidate merging are both defined over canonical labels.
func CanonicalizeRecord(rec schema.ElectionRecord) schema.ElectionRecord {
	rec.Contest = NormalizeContest(rec.Contest)
	rec.County = NormalizeCounty(rec.County)
	rec.Party = NormalizeParty(rec.Party)

	rec.Candidate = RemoveRunningMate(rec.Candidate)
	if rec.Candidate == "" {
		rec.Candidate = "Unknown"
	}
	return rec
}

// CanonicalizeRecords maps CanonicalizeRecord over a full record sequence.
func CanonicalizeRecords(records []schema.ElectionRecord) []schema.ElectionRecord {
	out := make([]schema.ElectionRecord, len(records))
	for i, rec := range records {
		out[i] = CanonicalizeRecord(rec)
	}
	return out
}
