package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScaleOrdering(t *testing.T) {
	assert.NoError(t, DefaultScale().CheckOrdering())
}

func TestCheckOrderingRejectsAscending(t *testing.T) {
	scale := Scale{
		Bands: []Band{
			{Category: "Lean", Min: 5},
			{Category: "Safe", Min: 20},
		},
		TossupCategory: "Tossup",
	}
	err := scale.CheckOrdering()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strictly descending")
}

func TestCheckOrderingRejectsEqualMins(t *testing.T) {
	scale := Scale{
		Bands: []Band{
			{Category: "Safe", Min: 10},
			{Category: "Likely", Min: 10},
		},
		TossupCategory: "Tossup",
	}
	assert.Error(t, scale.CheckOrdering())
}

func TestRateBands(t *testing.T) {
	scale := DefaultScale()

	tests := []struct {
		name      string
		marginPct float64
		leadParty string
		category  string
		code      string
	}{
		{"landslide dem", 45.0, PartyDem, "Annihilation", "D_ANNIHILATION"},
		{"exactly at band min", 40.0, PartyRep, "Annihilation", "R_ANNIHILATION"},
		{"just under band min", 39.99, PartyRep, "Dominant", "R_DOMINANT"},
		{"stronghold", 23.08, PartyRep, "Stronghold", "R_STRONGHOLD"},
		{"safe", 10.0, PartyDem, "Safe", "D_SAFE"},
		{"likely boundary", 5.5, PartyDem, "Likely", "D_LIKELY"},
		{"lean", 1.0, PartyRep, "Lean", "R_LEAN"},
		{"tilt", 0.5, PartyDem, "Tilt", "D_TILT"},
		{"below last band", 0.49, PartyDem, "Tossup", "TOSSUP"},
		{"zero margin", 0, PartyRep, "Tossup", "TOSSUP"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rating := scale.Rate(tc.marginPct, tc.leadParty)
			assert.Equal(t, tc.category, rating.Category)
			assert.Equal(t, tc.code, rating.Code)
		})
	}
}

func TestRateTieIsAlwaysTossup(t *testing.T) {
	rating := DefaultScale().Rate(50.0, WinnerTie)
	assert.Equal(t, "Tossup", rating.Category)
	assert.Equal(t, "TOSSUP", rating.Code)
	assert.Equal(t, "#f7f7f7", rating.Color)
}

func TestRatePicksDirectionalColor(t *testing.T) {
	scale := DefaultScale()
	assert.Equal(t, "#3182bd", scale.Rate(25, PartyDem).Color)
	assert.Equal(t, "#cb181d", scale.Rate(25, PartyRep).Color)
}

func TestRateThirdPartyLead(t *testing.T) {
	rating := DefaultScale().Rate(23.08, "LIB")
	assert.Equal(t, "Stronghold", rating.Category)
	assert.Equal(t, "LIB_STRONGHOLD", rating.Code)
	assert.Equal(t, "LIB", rating.Party)
	assert.Equal(t, "#969696", rating.Color, "third-party leads stay off the directional ramps")
}

func TestRateLabels(t *testing.T) {
	scale := DefaultScale()
	assert.Equal(t, "Annihilation Democratic (>=40.00%)", scale.Rate(45, PartyDem).Label)
	assert.Equal(t, "Stronghold Republican (20.00-29.99%)", scale.Rate(23.08, PartyRep).Label)
	assert.Equal(t, "Tossup (<0.50%)", scale.Rate(0.1, PartyDem).Label)
}

func TestUncontestedRating(t *testing.T) {
	rating := UncontestedRating()
	assert.Equal(t, UncontestedCategory, rating.Category)
	assert.Equal(t, UncontestedCode, rating.Code)
	assert.Equal(t, "#cccccc", rating.Color)
}

func TestLegend(t *testing.T) {
	legend := DefaultScale().Legend()
	require.Len(t, legend, 3)

	rep := legend["Republican"]
	require.Len(t, rep, 7)
	assert.Equal(t, "R+40.00%+", rep[0].Range)
	assert.Equal(t, "R+30.00-39.99%", rep[1].Range)
	assert.Equal(t, "R+0.50-0.99%", rep[6].Range)

	dem := legend["Democratic"]
	require.Len(t, dem, 7)
	assert.Equal(t, "D+0.50-0.99%", dem[0].Range, "democratic entries run narrowest-first")
	assert.Equal(t, "D+40.00%+", dem[6].Range)

	tossup := legend["Tossup"]
	require.Len(t, tossup, 1)
	assert.Equal(t, "<0.50%", tossup[0].Range)
	assert.Equal(t, "#f7f7f7", tossup[0].Color)
}

func TestUpperSnake(t *testing.T) {
	assert.Equal(t, "SAFE", upperSnake("Safe"))
	assert.Equal(t, "TOSS_UP", upperSnake("Toss-up"))
	assert.Equal(t, "VERY_SAFE", upperSnake("Very Safe"))
}
