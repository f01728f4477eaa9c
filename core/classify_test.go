package core

import (
	"testing"

	"github.com/Tenjin25/MDRealignment/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countyResult(votes map[string]int, parties map[string]string) *schema.CountyResult {
	result := &schema.CountyResult{
		Year:           2022,
		Contest:        "Governor",
		County:         "Queen Anne's County",
		CandidateVotes: votes,
		CandidateParty: parties,
		PartyTotals:    make(map[string]int),
	}
	for name, v := range votes {
		result.PartyTotals[parties[name]] += v
		result.Turnout += v
	}
	return result
}

// fourBandScale is a compact scale used to pin down boundary behavior.
func fourBandScale() schema.Scale {
	return schema.Scale{
		Bands: []schema.Band{
			{Category: "Safe", Min: 20, DemColor: "#08306b", RepColor: "#67000d"},
			{Category: "Likely", Min: 10, DemColor: "#3182bd", RepColor: "#cb181d"},
			{Category: "Lean", Min: 5, DemColor: "#9ecae1", RepColor: "#fb6a4a"},
		},
		TossupCategory: "Toss-up",
		TossupColor:    "#f7f7f7",
	}
}

func TestClassifyResultMargin(t *testing.T) {
	result := countyResult(
		map[string]int{"Jane Doe": 100, "Sam Lee": 160},
		map[string]string{"Jane Doe": "DEM", "Sam Lee": "REP"},
	)
	require.NoError(t, ClassifyResult(result, fourBandScale()))

	assert.Equal(t, 60, result.MarginVotes)
	require.NotNil(t, result.MarginPct)
	assert.InDelta(t, 23.08, *result.MarginPct, 0.0001) // 60/260 rounded to 2dp
	assert.Equal(t, "Safe", result.Rating.Category)
	assert.Equal(t, "R_SAFE", result.Rating.Code)
	assert.Equal(t, "Republican", result.Rating.Party)
	assert.Equal(t, schema.WinnerRep, result.Winner)
	assert.Equal(t, "Sam Lee", result.RepCandidate)
	assert.Equal(t, "Jane Doe", result.DemCandidate)
}

func TestClassifyResultThirdPartyLead(t *testing.T) {
	result := countyResult(
		map[string]int{"Lee Carter": 150, "Jane Doe": 60, "Sam Lee": 40},
		map[string]string{"Lee Carter": "LIB", "Jane Doe": "DEM", "Sam Lee": "REP"},
	)
	require.NoError(t, ClassifyResult(result, schema.DefaultScale()))

	require.NotNil(t, result.MarginPct)
	assert.InDelta(t, 36.0, *result.MarginPct, 0.0001) // (150-60)/250
	assert.Equal(t, "LIB_DOMINANT", result.Rating.Code)
	assert.Equal(t, "LIB", result.Rating.Party)
	assert.Equal(t, "#969696", result.Rating.Color)
	// The two-party winner flag still compares DEM against REP
	assert.Equal(t, schema.WinnerDem, result.Winner)
}

func TestClassifyResultDefaultScale(t *testing.T) {
	// The same margin lands in Stronghold on the published legend.
	result := countyResult(
		map[string]int{"Jane Doe": 100, "Sam Lee": 160},
		map[string]string{"Jane Doe": "DEM", "Sam Lee": "REP"},
	)
	require.NoError(t, ClassifyResult(result, schema.DefaultScale()))
	assert.Equal(t, "Stronghold", result.Rating.Category)
	assert.Equal(t, "R_STRONGHOLD", result.Rating.Code)
}

func TestClassifyResultInclusiveLowerBound(t *testing.T) {
	// 60 vs 40 of 100: margin exactly 20.00 falls into Safe, not Likely
	result := countyResult(
		map[string]int{"A": 60, "B": 40},
		map[string]string{"A": "DEM", "B": "REP"},
	)
	require.NoError(t, ClassifyResult(result, fourBandScale()))
	require.NotNil(t, result.MarginPct)
	assert.Equal(t, 20.0, *result.MarginPct)
	assert.Equal(t, "Safe", result.Rating.Category)
	assert.Equal(t, "D_SAFE", result.Rating.Code)
}

func TestClassifyResultTossupBelowLastBand(t *testing.T) {
	// 51 vs 49: margin 2.00 is below the Lean minimum of 5
	result := countyResult(
		map[string]int{"A": 51, "B": 49},
		map[string]string{"A": "DEM", "B": "REP"},
	)
	require.NoError(t, ClassifyResult(result, fourBandScale()))
	assert.Equal(t, "Toss-up", result.Rating.Category)
	assert.Equal(t, "TOSSUP", result.Rating.Code)
}

func TestClassifyResultExactTie(t *testing.T) {
	result := countyResult(
		map[string]int{"A": 50, "B": 50},
		map[string]string{"A": "DEM", "B": "REP"},
	)
	require.NoError(t, ClassifyResult(result, fourBandScale()))
	assert.Equal(t, 0, result.MarginVotes)
	assert.Equal(t, schema.WinnerTie, result.Winner)
	assert.Equal(t, "Toss-up", result.Rating.Category)
}

func TestClassifyResultUncontested(t *testing.T) {
	result := countyResult(
		map[string]int{"Solo Candidate": 500},
		map[string]string{"Solo Candidate": "DEM"},
	)
	require.NoError(t, ClassifyResult(result, fourBandScale()))
	assert.Nil(t, result.MarginPct, "uncontested contests carry no margin")
	assert.Equal(t, schema.UncontestedCategory, result.Rating.Category)
	assert.Equal(t, schema.UncontestedCode, result.Rating.Code)
}

func TestClassifyResultZeroTurnout(t *testing.T) {
	result := countyResult(map[string]int{}, map[string]string{})
	err := ClassifyResult(result, fourBandScale())
	var insufficientErr *InsufficientDataError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, "Queen Anne's County", insufficientErr.County)
}

func TestClassifyResultMonotonicity(t *testing.T) {
	// Widening margins never map to a more competitive category.
	scale := fourBandScale()
	order := map[string]int{"Toss-up": 0, "Lean": 1, "Likely": 2, "Safe": 3}

	prev := -1
	for demVotes := 51; demVotes <= 99; demVotes++ {
		result := countyResult(
			map[string]int{"A": demVotes, "B": 100 - demVotes},
			map[string]string{"A": "DEM", "B": "REP"},
		)
		require.NoError(t, ClassifyResult(result, scale))
		rank, ok := order[result.Rating.Category]
		require.True(t, ok, "unexpected category %q", result.Rating.Category)
		assert.GreaterOrEqual(t, rank, prev, "category regressed at %d votes", demVotes)
		prev = rank
	}
}

func TestFillPartySummaryOtherVotes(t *testing.T) {
	result := countyResult(
		map[string]int{"A": 60, "B": 30, "C": 10},
		map[string]string{"A": "DEM", "B": "REP", "C": "LIB"},
	)
	require.NoError(t, ClassifyResult(result, fourBandScale()))
	assert.Equal(t, 60, result.DemVotes)
	assert.Equal(t, 30, result.RepVotes)
	assert.Equal(t, 90, result.TwoPartyTotal)
	assert.Equal(t, 10, result.OtherVotes)
	assert.Equal(t, 60.0, result.DemPct)
	assert.Equal(t, 30.0, result.RepPct)
	assert.Equal(t, schema.WinnerDem, result.Winner)
}
