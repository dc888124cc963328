// Package extract turns raw document text into classified library questions.
package extract

import (
	"errors"
	"regexp"
	"strconv"

	"pollbuilder/internal/model"
)

// fullTextLimit is the number of runes of raw block content kept on a question.
const fullTextLimit = 500

// ErrNoQuestions is returned when a document yields no usable question blocks.
var ErrNoQuestions = errors.New("No questions found in document")

var (
	nonAlnum  = regexp.MustCompile(`[^a-zA-Z0-9]`)
	extension = regexp.MustCompile(`\.[^.]+$`)
)

// Questions segments text, trims every block to its prompt, classifies it and
// returns the resulting questions tagged with source.
func Questions(text, source string) ([]model.Question, error) {
	blocks := Segment(text)
	out := make([]model.Question, 0, len(blocks))
	seen := make(map[string]struct{}, len(blocks))

	for _, b := range blocks {
		content := trim(b.Content)
		if runeLen(content) < minLength {
			continue
		}
		qt := QuestionText(content)
		if runeLen(qt) < minLength {
			continue
		}

		id := uniqueID(QuestionID(source, b.Marker), seen)
		seen[id] = struct{}{}

		out = append(out, model.Question{
			ID:       id,
			Text:     qt,
			FullText: truncate(content, fullTextLimit),
			Category: Classify(qt),
			Source:   source,
			Marker:   CleanMarker(b.Marker),
		})
	}

	if len(out) == 0 {
		return nil, ErrNoQuestions
	}
	return out, nil
}

// QuestionID builds the library id of a block: source, underscore, alphanumeric marker.
func QuestionID(source, marker string) string {
	return source + "_" + nonAlnum.ReplaceAllString(marker, "")
}

// SourceName strips the last extension from a document's file name.
func SourceName(filename string) string {
	return extension.ReplaceAllString(filename, "")
}

// uniqueID suffixes id with -2, -3, ... until it is absent from taken.
func uniqueID(id string, taken map[string]struct{}) string {
	if _, dup := taken[id]; !dup {
		return id
	}
	for n := 2; ; n++ {
		candidate := id + "-" + strconv.Itoa(n)
		if _, dup := taken[candidate]; !dup {
			return candidate
		}
	}
}
