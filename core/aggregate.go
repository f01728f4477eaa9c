package core

import (
	"sort"
	"strings"

	"github.com/Tenjin25/MDRealignment/schema"
	"github.com/agnivade/levenshtein"
)

// nearDuplicateDistance is the maximum edit distance at which two
// canonical candidate labels in the same contest-county are flagged as a
// likely unmerged variant.
const nearDuplicateDistance = 2

// AggregateRecords groups canonicalized records by (year, contest,
// county) and sums votes per candidate and party. The result is
// order-independent: shuffling the input yields an identical mapping.
// Contests outside the filter are counted as filtered; counties with no
// records for a contest are simply absent, never zero-filled.
func AggregateRecords(records []schema.ElectionRecord, filter map[string]schema.ContestMeta, report *schema.RunReport) map[schema.ResultKey]*schema.CountyResult {
	results := make(map[schema.ResultKey]*schema.CountyResult)

	for _, rec := range records {
		meta, ok := filter[rec.Contest]
		if !ok {
			report.Filtered++
			continue
		}

		key := schema.ResultKey{Year: rec.Year, Contest: rec.Contest, County: rec.County}
		result, ok := results[key]
		if !ok {
			result = &schema.CountyResult{
				Year:           rec.Year,
				Contest:        rec.Contest,
				ContestType:    meta.Type,
				OfficeRank:     meta.Rank,
				County:         rec.County,
				CandidateVotes: make(map[string]int),
				CandidateParty: make(map[string]string),
				PartyTotals:    make(map[string]int),
			}
			results[key] = result
		}

		result.CandidateVotes[rec.Candidate] += rec.Votes
		result.PartyTotals[rec.Party] += rec.Votes
		result.Turnout += rec.Votes

		// First party seen wins for attribution; split-row candidates in
		// real exports never change party within one contest-county.
		if _, seen := result.CandidateParty[rec.Candidate]; !seen {
			result.CandidateParty[rec.Candidate] = rec.Party
		}
	}

	flagNearDuplicates(results, report)
	return results
}

// flagNearDuplicates warns about candidate labels in one contest-county
// that are within a small edit distance of each other. These usually mean
// a source variant survived canonicalization and votes were not merged.
func flagNearDuplicates(results map[schema.ResultKey]*schema.CountyResult, report *schema.RunReport) {
	keys := make([]schema.ResultKey, 0, len(results))
	for key := range results {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year < keys[j].Year
		}
		if keys[i].Contest != keys[j].Contest {
			return keys[i].Contest < keys[j].Contest
		}
		return keys[i].County < keys[j].County
	})

	for _, key := range keys {
		names := sortedCandidates(results[key].CandidateVotes)
		for i := 0; i < len(names); i++ {
			for j := i + 1; j < len(names); j++ {
				a, b := strings.ToLower(names[i]), strings.ToLower(names[j])
				if levenshtein.ComputeDistance(a, b) <= nearDuplicateDistance {
					report.Warn("%d %s in %s: candidates %q and %q may be unmerged variants",
						key.Year, key.Contest, key.County, names[i], names[j])
				}
			}
		}
	}
}

// sortedCandidates returns candidate names ordered by descending votes,
// ties broken by name so downstream ordering is deterministic.
func sortedCandidates(votes map[string]int) []string {
	names := make([]string, 0, len(votes))
	for name := range votes {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if votes[names[i]] != votes[names[j]] {
			return votes[names[i]] > votes[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
