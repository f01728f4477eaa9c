package core

import (
	"math"

	"github.com/Tenjin25/MDRealignment/schema"
)

// round2 fixes percentages to two decimals before binning and
// serialization so output bytes are stable across runs.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ClassifyResult derives the margin of victory and competitiveness
// rating for one aggregated county contest. The margin compares the top
// two candidates by vote count against total turnout. Contests with a
// single candidate get the dedicated Uncontested bin and no margin.
// Zero turnout is InsufficientData: the caller omits the result.
func ClassifyResult(result *schema.CountyResult, scale schema.Scale) error {
	if result.Turnout == 0 {
		return &InsufficientDataError{Year: result.Year, Contest: result.Contest, County: result.County}
	}

	fillPartySummary(result)

	names := sortedCandidates(result.CandidateVotes)
	if len(names) < 2 {
		result.MarginVotes = 0
		result.MarginPct = nil
		result.Rating = schema.UncontestedRating()
		return nil
	}

	top, second := names[0], names[1]
	result.MarginVotes = result.CandidateVotes[top] - result.CandidateVotes[second]
	marginPct := round2(float64(result.MarginVotes) / float64(result.Turnout) * 100)
	result.MarginPct = &marginPct

	leadParty := result.CandidateParty[top]
	if result.MarginVotes == 0 {
		leadParty = schema.WinnerTie
	}
	result.Rating = scale.Rate(marginPct, leadParty)
	return nil
}

// fillPartySummary computes the two-party breakdown carried in the
// artifact for the map UI: major-party candidates, vote shares, and the
// DEM/REP/TIE winner flag.
func fillPartySummary(result *schema.CountyResult) {
	result.DemVotes = result.PartyTotals[schema.PartyDem]
	result.RepVotes = result.PartyTotals[schema.PartyRep]
	result.TwoPartyTotal = result.DemVotes + result.RepVotes
	result.OtherVotes = result.Turnout - result.TwoPartyTotal

	result.DemPct = round2(float64(result.DemVotes) / float64(result.Turnout) * 100)
	result.RepPct = round2(float64(result.RepVotes) / float64(result.Turnout) * 100)

	result.DemCandidate = topCandidateForParty(result, schema.PartyDem)
	result.RepCandidate = topCandidateForParty(result, schema.PartyRep)

	switch {
	case result.DemVotes > result.RepVotes:
		result.Winner = schema.WinnerDem
	case result.RepVotes > result.DemVotes:
		result.Winner = schema.WinnerRep
	default:
		result.Winner = schema.WinnerTie
	}
}

// topCandidateForParty returns the best-performing candidate attributed
// to the given party, or empty when the party fielded nobody.
func topCandidateForParty(result *schema.CountyResult, party string) string {
	best := ""
	bestVotes := -1
	for _, name := range sortedCandidates(result.CandidateVotes) {
		if result.CandidateParty[name] != party {
			continue
		}
		if result.CandidateVotes[name] > bestVotes {
			best = name
			bestVotes = result.CandidateVotes[name]
		}
	}
	return best
}
