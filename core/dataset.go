package core

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/Tenjin25/MDRealignment/internal/contract"
	"github.com/Tenjin25/MDRealignment/schema"
)

// datasetFocus is the fixed description embedded in the artifact.
const datasetFocus = "Maryland county-level political realignment patterns"

// BuildDataset classifies every aggregated result and assembles the
// output dataset keyed year -> contest -> county. Results with zero
// turnout are omitted with a warning rather than failing the run. The
// envelope carries no wall-clock fields so identical inputs always
// produce identical artifacts.
func BuildDataset(results map[schema.ResultKey]*schema.CountyResult, scale schema.Scale, report *schema.RunReport) *schema.AggregatedDataset {
	byYear := make(map[string]map[string]map[string]*schema.CountyResult)
	yearsSeen := make(map[string]struct{})
	contestsSeen := make(map[string]struct{})
	totalResults := 0

	for key, result := range results {
		if err := ClassifyResult(result, scale); err != nil {
			report.Warn("omitted from output: %v", err)
			continue
		}

		year := strconv.Itoa(key.Year)
		if byYear[year] == nil {
			byYear[year] = make(map[string]map[string]*schema.CountyResult)
		}
		if byYear[year][key.Contest] == nil {
			byYear[year][key.Contest] = make(map[string]*schema.CountyResult)
		}
		byYear[year][key.Contest][key.County] = result

		yearsSeen[year] = struct{}{}
		contestsSeen[key.Contest] = struct{}{}
		totalResults++
	}

	years := make([]string, 0, len(yearsSeen))
	for year := range yearsSeen {
		years = append(years, year)
	}
	sort.Strings(years)

	return &schema.AggregatedDataset{
		Focus: datasetFocus,
		Jurisdiction: schema.Jurisdiction{
			State:          "Maryland",
			StateFIPS:      "24",
			GeographyLevel: "County and county-equivalent",
		},
		Categorization: schema.CategorizationSystem{
			CompetitivenessScale: scale.Legend(),
			OfficeTypes: []string{
				string(schema.FederalContest),
				string(schema.StateContest),
				string(schema.JudicialContest),
				string(schema.OtherContest),
			},
		},
		Summary: schema.DatasetSummary{
			TotalYears:         len(yearsSeen),
			TotalContests:      len(contestsSeen),
			TotalCountyResults: totalResults,
			YearsCovered:       years,
		},
		ResultsByYear: byYear,
	}
}

// MarshalDataset serializes the dataset deterministically: struct fields
// in declaration order, map keys sorted by encoding/json, two-space
// indentation, trailing newline. Running it twice on the same dataset
// yields byte-identical output.
func MarshalDataset(dataset *schema.AggregatedDataset) ([]byte, error) {
	data, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("cannot marshal dataset: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteArtifact marshals the dataset and writes it atomically: the file
// appears at path only after a fully successful write.
func WriteArtifact(path string, dataset *schema.AggregatedDataset) error {
	data, err := MarshalDataset(dataset)
	if err != nil {
		return err
	}
	return contract.WriteFileAtomic(path, data)
}

// FlattenDataset returns every county result ordered by year, office
// rank, contest, and county. Export writers depend on this ordering
// being deterministic.
func FlattenDataset(dataset *schema.AggregatedDataset) []*schema.CountyResult {
	var flat []*schema.CountyResult

	years := make([]string, 0, len(dataset.ResultsByYear))
	for year := range dataset.ResultsByYear {
		years = append(years, year)
	}
	sort.Strings(years)

	for _, year := range years {
		contests := make([]string, 0, len(dataset.ResultsByYear[year]))
		for contest := range dataset.ResultsByYear[year] {
			contests = append(contests, contest)
		}
		sortContestsByRank(contests, dataset.ResultsByYear[year])

		for _, contest := range contests {
			counties := make([]string, 0, len(dataset.ResultsByYear[year][contest]))
			for county := range dataset.ResultsByYear[year][contest] {
				counties = append(counties, county)
			}
			sort.Strings(counties)

			for _, county := range counties {
				flat = append(flat, dataset.ResultsByYear[year][contest][county])
			}
		}
	}
	return flat
}

// sortContestsByRank orders contest names by office rank, then name.
func sortContestsByRank(contests []string, byContest map[string]map[string]*schema.CountyResult) {
	rank := func(contest string) int {
		for _, result := range byContest[contest] {
			return result.OfficeRank
		}
		return 0
	}
	sort.Slice(contests, func(i, j int) bool {
		if rank(contests[i]) != rank(contests[j]) {
			return rank(contests[i]) < rank(contests[j])
		}
		return contests[i] < contests[j]
	})
}
