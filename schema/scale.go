package schema

import "fmt"

// Band is one competitiveness band. Bands are evaluated top-down against
// the rounded margin percentage; the lower bound is inclusive, so a
// margin exactly at Min falls into that band.
type Band struct {
	Category string  `mapstructure:"category" yaml:"category" validate:"required"`
	Min      float64 `mapstructure:"min" yaml:"min" validate:"gte=0,lte=100"`
	DemColor string  `mapstructure:"dem_color" yaml:"dem_color" validate:"omitempty,hexcolor"`
	RepColor string  `mapstructure:"rep_color" yaml:"rep_color" validate:"omitempty,hexcolor"`
}

// Scale is the ordered competitiveness band table, widest margin first.
// Margins below the last band's Min are classified as the tossup category.
// Cutpoints and labels are configuration constants matching the map
// legend, never derived from data.
type Scale struct {
	Bands          []Band `mapstructure:"bands" yaml:"bands" validate:"required,min=1,dive"`
	TossupCategory string `mapstructure:"tossup_category" yaml:"tossup_category" validate:"required"`
	TossupColor    string `mapstructure:"tossup_color" yaml:"tossup_color" validate:"omitempty,hexcolor"`
}

// Rating category and color constants outside the band table.
const (
	UncontestedCategory = "Uncontested"
	UncontestedCode     = "UNCONTESTED"
	uncontestedColor    = "#cccccc"
	tossupCode          = "TOSSUP"
	// Bands carry colors only for the two major-party directions; a
	// third-party lead falls outside the legend ramps and gets this gray.
	otherPartyColor = "#969696"
)

// DefaultScale returns the published map legend: seven party-directional
// bands plus a neutral tossup below 0.50 points.
func DefaultScale() Scale {
	return Scale{
		Bands: []Band{
			{Category: "Annihilation", Min: 40, DemColor: "#08306b", RepColor: "#67000d"},
			{Category: "Dominant", Min: 30, DemColor: "#08519c", RepColor: "#a50f15"},
			{Category: "Stronghold", Min: 20, DemColor: "#3182bd", RepColor: "#cb181d"},
			{Category: "Safe", Min: 10, DemColor: "#6baed6", RepColor: "#ef3b2c"},
			{Category: "Likely", Min: 5.5, DemColor: "#9ecae1", RepColor: "#fb6a4a"},
			{Category: "Lean", Min: 1, DemColor: "#c6dbef", RepColor: "#fcae91"},
			{Category: "Tilt", Min: 0.5, DemColor: "#e1f5fe", RepColor: "#fee8c8"},
		},
		TossupCategory: "Tossup",
		TossupColor:    "#f7f7f7",
	}
}

// CheckOrdering reports an error unless band minimums strictly descend.
// Structural validation of individual fields is handled separately by the
// config layer.
func (s Scale) CheckOrdering() error {
	for i := 1; i < len(s.Bands); i++ {
		if s.Bands[i].Min >= s.Bands[i-1].Min {
			return fmt.Errorf("scale bands must have strictly descending minimums: %q (%.2f) follows %q (%.2f)",
				s.Bands[i].Category, s.Bands[i].Min, s.Bands[i-1].Category, s.Bands[i-1].Min)
		}
	}
	return nil
}

// Rate maps a rounded margin percentage and the leading party code to a
// Rating. It is deterministic with no hidden state. A tie (or any margin
// below the last band) is always the neutral tossup regardless of party.
func (s Scale) Rate(marginPct float64, leadParty string) Rating {
	if leadParty == WinnerTie || len(s.Bands) == 0 || marginPct < s.Bands[len(s.Bands)-1].Min {
		return Rating{
			Category: s.TossupCategory,
			Party:    s.TossupCategory,
			Code:     tossupCode,
			Color:    s.TossupColor,
			Label:    fmt.Sprintf("%s (<%.2f%%)", s.TossupCategory, s.tossupMax()),
		}
	}

	party := partyName(leadParty)
	// The margin is taken over the top two candidates, so a third party
	// can lead; its code prefixes the band code and the color stays off
	// both directional ramps.
	prefix := leadParty
	switch leadParty {
	case PartyDem:
		prefix = "D"
	case PartyRep:
		prefix = "R"
	}

	for i, band := range s.Bands {
		if marginPct >= band.Min {
			var color string
			switch leadParty {
			case PartyDem:
				color = band.DemColor
			case PartyRep:
				color = band.RepColor
			default:
				color = otherPartyColor
			}
			return Rating{
				Category: band.Category,
				Party:    party,
				Code:     fmt.Sprintf("%s_%s", prefix, upperSnake(band.Category)),
				Color:    color,
				Label:    fmt.Sprintf("%s %s %s", band.Category, party, s.rangeLabel(i)),
			}
		}
	}

	// Unreachable given the tossup guard above, but keep the zero band
	// behavior defined for malformed scales.
	return Rating{Category: s.TossupCategory, Party: s.TossupCategory, Code: tossupCode, Color: s.TossupColor}
}

// UncontestedRating returns the dedicated terminal bin for contests with a
// single candidate, where a margin is undefined rather than computed.
func UncontestedRating() Rating {
	return Rating{
		Category: UncontestedCategory,
		Party:    UncontestedCategory,
		Code:     UncontestedCode,
		Color:    uncontestedColor,
		Label:    UncontestedCategory,
	}
}

// Legend renders the full scale as legend entries per direction, matching
// the structure committed in the output artifact.
func (s Scale) Legend() map[string][]LegendEntry {
	demEntries := make([]LegendEntry, 0, len(s.Bands))
	repEntries := make([]LegendEntry, 0, len(s.Bands))

	for i, band := range s.Bands {
		repEntries = append(repEntries, LegendEntry{
			Category: band.Category,
			Range:    "R+" + s.plainRange(i),
			Color:    band.RepColor,
		})
	}
	// Democratic entries are listed narrowest-first so the combined legend
	// reads as one continuous color ramp.
	for i := len(s.Bands) - 1; i >= 0; i-- {
		demEntries = append(demEntries, LegendEntry{
			Category: s.Bands[i].Category,
			Range:    "D+" + s.plainRange(i),
			Color:    s.Bands[i].DemColor,
		})
	}

	return map[string][]LegendEntry{
		"Republican": repEntries,
		s.TossupCategory: {
			{Category: s.TossupCategory, Range: fmt.Sprintf("<%.2f%%", s.tossupMax()), Color: s.TossupColor},
		},
		"Democratic": demEntries,
	}
}

// tossupMax is the exclusive upper margin of the tossup bin.
func (s Scale) tossupMax() float64 {
	if len(s.Bands) == 0 {
		return 0
	}
	return s.Bands[len(s.Bands)-1].Min
}

// rangeLabel formats the parenthesized margin range for band i.
func (s Scale) rangeLabel(i int) string {
	if i == 0 {
		return fmt.Sprintf("(>=%.2f%%)", s.Bands[i].Min)
	}
	return fmt.Sprintf("(%.2f-%.2f%%)", s.Bands[i].Min, s.Bands[i-1].Min-0.01)
}

// plainRange formats the legend range for band i without parentheses.
func (s Scale) plainRange(i int) string {
	if i == 0 {
		return fmt.Sprintf("%.2f%%+", s.Bands[i].Min)
	}
	return fmt.Sprintf("%.2f-%.2f%%", s.Bands[i].Min, s.Bands[i-1].Min-0.01)
}

// partyName expands major party codes for display; other codes pass through.
func partyName(code string) string {
	switch code {
	case PartyDem:
		return "Democratic"
	case PartyRep:
		return "Republican"
	default:
		return code
	}
}

// upperSnake converts a category name to its code form.
func upperSnake(category string) string {
	out := make([]rune, 0, len(category))
	for _, r := range category {
		switch {
		case r == ' ' || r == '-':
			out = append(out, '_')
		case r >= 'a' && r <= 'z':
			out = append(out, r-('a'-'A'))
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
