package extract

import (
	"strings"
	"unicode/utf8"
)

// minLength is the shortest raw content or cleaned text kept, in runes.
const minLength = 10

var (
	markerPattern = compile(`(?i)(?:^|\n)\s*(?:Q?\d+[.:]\s*|SCREEN[.:]\s*|DEMOGRAPHICS?[.:]\s*)`)
	optionPattern = compile(`(?i)^(?:Yes|No|Undecided|Not sure|Favorable|Unfavorable|Very|Somewhat|Strongly|More likely|Less likely)`)
	markerTail    = compile(`[.:]\s*$`)
)

// Block is one marker and the raw text that follows it up to the next marker.
type Block struct {
	Marker  string
	Content string
}

// Segment splits extracted document text into marker blocks in document order.
// Text before the first marker is ignored.
func Segment(text string) []Block {
	locs := markerPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return nil
	}

	markers := make([]string, len(locs))
	parts := make([]string, 0, len(locs)+1)
	prev := 0
	for i, loc := range locs {
		markers[i] = text[loc[0]:loc[1]]
		parts = append(parts, text[prev:loc[0]])
		prev = loc[1]
	}
	parts = append(parts, text[prev:])

	// Pairs are taken by position; a surplus on either side is dropped.
	blocks := make([]Block, 0, len(markers))
	for i := 0; i < len(markers) && i < len(parts)-1; i++ {
		blocks = append(blocks, Block{
			Marker:  trim(markers[i]),
			Content: parts[i+1],
		})
	}
	return blocks
}

// QuestionText returns the prompt portion of a block, stopping at the first
// line that looks like a response option.
func QuestionText(content string) string {
	var lines []string
	for _, line := range strings.Split(trim(content), "\n") {
		line = trim(line)
		if line == "" {
			continue
		}
		if optionPattern.MatchString(line) {
			break
		}
		lines = append(lines, line)
	}
	return trim(strings.Join(lines, " "))
}

// CleanMarker drops the trailing separator from a marker, "Q1:" becomes "Q1".
func CleanMarker(marker string) string {
	return markerTail.ReplaceAllString(trim(marker), "")
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func truncate(s string, n int) string {
	if runeLen(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
