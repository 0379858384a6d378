// Package trend models the narrated weather trend commentary and the
// parsing of analyzer replies into its sections.
package trend

import "strings"

// Analysis is the three-part commentary produced by the analyzer:
// what the weather is like right now, how it affects people in town,
// and whether the day counts as sunny for the City of the Sun.
type Analysis struct {
	Analysis  string `json:"analysis"`
	Influence string `json:"influence"`
	SunnyDay  string `json:"sunny_day"`
}

// Section defaults used when a reply carries fewer usable lines than
// expected.
const (
	defaultAnalysis  = "Няма наличен анализ на времето"
	defaultInfluence = "Няма информация за влиянието върху хората"
	defaultSunnyDay  = "Няма информация за слънчевия ден"
)

// FallbackAnalysis is returned whenever the analyzer call fails outright.
// A failed analysis is a degraded success, so this is canned presenter
// text, not an error.
func FallbackAnalysis() Analysis {
	return Analysis{
		Analysis:  "В момента времето в Обзор е променливо. Моля, проверете актуалната прогноза.",
		Influence: "Препоръчваме да следите метеорологичните условия за промени.",
		SunnyDay:  "Информацията за слънчевия ден не е налична в момента.",
	}
}

// ParseAnalysis splits a free-form analyzer reply into the three sections.
// Lines are matched by keyword first (време / влия / слънчев), then filled
// positionally from the remaining lines, then defaulted.
func ParseAnalysis(reply string) Analysis {
	var lines []string
	for _, raw := range strings.Split(reply, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		line = stripEnumeration(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	var a Analysis
	for _, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case a.Analysis == "" && strings.Contains(lower, "време"):
			a.Analysis = line
		case a.Influence == "" && strings.Contains(lower, "влия"):
			a.Influence = line
		case a.SunnyDay == "" && strings.Contains(lower, "слънчев"):
			a.SunnyDay = line
		}
	}

	if a.Analysis == "" {
		if len(lines) > 0 {
			a.Analysis = lines[0]
		} else {
			a.Analysis = defaultAnalysis
		}
	}
	if a.Influence == "" {
		if len(lines) > 1 {
			a.Influence = lines[1]
		} else {
			a.Influence = defaultInfluence
		}
	}
	if a.SunnyDay == "" {
		if len(lines) > 2 {
			a.SunnyDay = lines[2]
		} else {
			a.SunnyDay = defaultSunnyDay
		}
	}
	return a
}

// stripEnumeration removes leading "1." / "2." / "3." list markers the
// analyzer tends to emit.
func stripEnumeration(line string) string {
	for _, marker := range []string{"1.", "2.", "3."} {
		line = strings.ReplaceAll(line, marker, "")
	}
	return strings.TrimSpace(line)
}
