package export

import (
	"regexp"
	"strconv"
	"strings"

	"pollbuilder/internal/model"
)

// ReplaceVariables substitutes race placeholders in text, case-insensitively.
// Candidate placeholders are numbered from 1; [CANDIDATE] and [CANDIDATE_NAME]
// take the first candidate.
func ReplaceVariables(text string, cfg model.RaceConfig) string {
	out := replaceTag(text, "RACE_NAME", cfg.RaceName)
	out = replaceTag(out, "DISTRICT", cfg.District)
	out = replaceTag(out, "ELECTION_DATE", cfg.ElectionDate)
	out = replaceTag(out, "DATE", cfg.ElectionDate)
	out = replaceTag(out, "PARTY", cfg.Party)

	for i, name := range cfg.Candidates {
		n := strconv.Itoa(i + 1)
		out = replaceTag(out, "CANDIDATE_"+n, name)
		out = replaceTag(out, "CANDIDATE"+n, name)
	}
	if len(cfg.Candidates) > 0 {
		out = replaceTag(out, "CANDIDATE_NAME", cfg.Candidates[0])
		out = replaceTag(out, "CANDIDATE", cfg.Candidates[0])
	}
	return out
}

func replaceTag(text, tag, value string) string {
	re := regexp.MustCompile(`(?i)\[` + regexp.QuoteMeta(tag) + `\]`)
	return re.ReplaceAllLiteralString(text, value)
}

// Subtitle joins the non-empty district, election date and party with " | ".
func Subtitle(cfg model.RaceConfig) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{cfg.District, cfg.ElectionDate, cfg.Party} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " | ")
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename names the exported file after the race, e.g. "GA_SD_18_Poll_Instrument.md".
func Filename(raceName, ext string) string {
	base := "Poll_Instrument"
	if raceName != "" {
		base = whitespaceRun.ReplaceAllString(raceName, "_") + "_" + base
	}
	return base + "." + ext
}
