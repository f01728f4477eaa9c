package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Tenjin25/MDRealignment/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() map[schema.ResultKey]*schema.CountyResult {
	build := func(year int, contest, county string, rank int, votes map[string]int, parties map[string]string) *schema.CountyResult {
		result := &schema.CountyResult{
			Year:           year,
			Contest:        contest,
			ContestType:    schema.StateContest,
			OfficeRank:     rank,
			County:         county,
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

	results := make(map[schema.ResultKey]*schema.CountyResult)
	results[schema.ResultKey{Year: 2022, Contest: "Governor", County: "Howard County"}] = build(
		2022, "Governor", "Howard County", 2,
		map[string]int{"Wes Moore": 300, "Dan Cox": 100},
		map[string]string{"Wes Moore": "DEM", "Dan Cox": "REP"},
	)
	results[schema.ResultKey{Year: 2022, Contest: "Governor", County: "Allegany County"}] = build(
		2022, "Governor", "Allegany County", 2,
		map[string]int{"Wes Moore": 80, "Dan Cox": 220},
		map[string]string{"Wes Moore": "DEM", "Dan Cox": "REP"},
	)
	president := build(
		2020, "President", "Howard County", 1,
		map[string]int{"Joe Biden": 400, "Donald Trump": 150},
		map[string]string{"Joe Biden": "DEM", "Donald Trump": "REP"},
	)
	president.ContestType = schema.FederalContest
	results[schema.ResultKey{Year: 2020, Contest: "President", County: "Howard County"}] = president
	return results
}

func TestBuildDatasetStructure(t *testing.T) {
	report := schema.NewRunReport()
	dataset := BuildDataset(sampleResults(), schema.DefaultScale(), report)

	assert.Equal(t, "Maryland", dataset.Jurisdiction.State)
	assert.Equal(t, "24", dataset.Jurisdiction.StateFIPS)
	assert.Equal(t, 2, dataset.Summary.TotalYears)
	assert.Equal(t, 2, dataset.Summary.TotalContests)
	assert.Equal(t, 3, dataset.Summary.TotalCountyResults)
	assert.Equal(t, []string{"2020", "2022"}, dataset.Summary.YearsCovered)

	howard := dataset.ResultsByYear["2022"]["Governor"]["Howard County"]
	require.NotNil(t, howard)
	assert.Equal(t, schema.WinnerDem, howard.Winner)
	assert.NotEmpty(t, howard.Rating.Category)

	legend, ok := dataset.Categorization.CompetitivenessScale["Democratic"]
	require.True(t, ok)
	assert.NotEmpty(t, legend)
}

func TestBuildDatasetOmitsZeroTurnout(t *testing.T) {
	results := sampleResults()
	results[schema.ResultKey{Year: 2022, Contest: "Governor", County: "Ghost County"}] = &schema.CountyResult{
		Year:           2022,
		Contest:        "Governor",
		County:         "Ghost County",
		CandidateVotes: map[string]int{},
		CandidateParty: map[string]string{},
		PartyTotals:    map[string]int{},
	}

	report := schema.NewRunReport()
	dataset := BuildDataset(results, schema.DefaultScale(), report)

	assert.Equal(t, 3, dataset.Summary.TotalCountyResults)
	assert.NotContains(t, dataset.ResultsByYear["2022"]["Governor"], "Ghost County")
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "Ghost County")
}

func TestMarshalDatasetDeterministic(t *testing.T) {
	report := schema.NewRunReport()
	dataset := BuildDataset(sampleResults(), schema.DefaultScale(), report)

	first, err := MarshalDataset(dataset)
	require.NoError(t, err)
	second, err := MarshalDataset(dataset)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, byte('\n'), first[len(first)-1])
}

func TestWriteArtifact(t *testing.T) {
	report := schema.NewRunReport()
	dataset := BuildDataset(sampleResults(), schema.DefaultScale(), report)

	path := filepath.Join(t.TempDir(), "artifact.json")
	require.NoError(t, WriteArtifact(path, dataset))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	expected, err := MarshalDataset(dataset)
	require.NoError(t, err)
	assert.Equal(t, expected, data)
}

func TestFlattenDatasetOrdering(t *testing.T) {
	report := schema.NewRunReport()
	dataset := BuildDataset(sampleResults(), schema.DefaultScale(), report)

	flat := FlattenDataset(dataset)
	require.Len(t, flat, 3)

	// Years ascend; within a year, contests order by office rank, then
	// counties alphabetically.
	assert.Equal(t, 2020, flat[0].Year)
	assert.Equal(t, "President", flat[0].Contest)
	assert.Equal(t, "Allegany County", flat[1].County)
	assert.Equal(t, "Howard County", flat[2].County)
}
