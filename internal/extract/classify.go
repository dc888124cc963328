package extract

import (
	"strings"

	"pollbuilder/internal/model"
)

// Classify assigns a category to cleaned question text.
// Unmatched text is model.CategoryOther.
func Classify(text string) model.Category {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, p := range r.Patterns {
			if p.MatchString(lower) {
				return r.Category
			}
		}
	}
	return model.CategoryOther
}
