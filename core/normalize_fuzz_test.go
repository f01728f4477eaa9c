package core

import (
	"testing"
)

// FuzzParseVotes fuzzes the parseVotes function with random vote cells.
func FuzzParseVotes(f *testing.F) {
	seeds := []string{
		"100",
		"2,001",
		"1,234,567",
		"0",
		"",
		"-5",
		"12.5",
		"N/A",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, raw string) {
		votes, err := parseVotes(raw)
		if err == nil && votes < 0 {
			t.Errorf("accepted negative count %d from %q", votes, raw)
		}
	})
}

// FuzzYearFromFileName fuzzes the YearFromFileName function.
func FuzzYearFromFileName(f *testing.F) {
	seeds := []string{
		"2022_general_results.csv",
		"/data/raw/2020__md__general__county.csv",
		"results.csv",
		"0999_old.csv",
		"",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, name string) {
		year, ok := YearFromFileName(name)
		if ok && (year < 1776 || year > 9999) {
			t.Errorf("accepted out-of-range year %d from %q", year, name)
		}
	})
}
