package model

import "time"

// Category is the closed set of classification tags a question can carry.
type Category string

const (
	CategoryScreener     Category = "screener"
	CategoryFavorability Category = "favorability"
	CategoryJobApproval  Category = "job_approval"
	CategoryTopOfBallot  Category = "top_of_ballot"
	CategoryPersuasion   Category = "persuasion"
	CategoryPolicy       Category = "policy"
	CategoryIssue        Category = "issue"
	CategoryDemographics Category = "demographics"
	CategoryOther        Category = "other"
)

var categories = []Category{
	CategoryScreener,
	CategoryFavorability,
	CategoryJobApproval,
	CategoryTopOfBallot,
	CategoryPersuasion,
	CategoryPolicy,
	CategoryIssue,
	CategoryDemographics,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryScreener:     "Screener",
	CategoryFavorability: "Favorability",
	CategoryJobApproval:  "Job Approval",
	CategoryTopOfBallot:  "Top of Ballot",
	CategoryPersuasion:   "Persuasion",
	CategoryPolicy:       "Policy",
	CategoryIssue:        "Issue",
	CategoryDemographics: "Demographics",
	CategoryOther:        "Other",
}

// Categories returns every category in its canonical order, ending with CategoryOther.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryLabels returns the display label of every category keyed by tag.
func CategoryLabels() map[string]string {
	out := make(map[string]string, len(categoryLabels))
	for c, l := range categoryLabels {
		out[string(c)] = l
	}
	return out
}

// Valid reports whether c is one of the known tags.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the human readable name of the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return categoryLabels[CategoryOther]
}

// Normalize maps unknown tags to CategoryOther.
func (c Category) Normalize() Category {
	if c.Valid() {
		return c
	}
	return CategoryOther
}

// Question is a single classified survey question in the library.
type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	FullText string   `json:"full_text"`
	Category Category `json:"category"`
	Source   string   `json:"source"`
	Marker   string   `json:"marker"`
}

// LibraryStats holds aggregate counts over the library.
type LibraryStats struct {
	TotalQuestions int            `json:"total_questions"`
	ByCategory     map[string]int `json:"by_category"`
}

// SourceCount is the number of questions contributed by one source document.
type SourceCount struct {
	Name          string `json:"name"`
	QuestionCount int    `json:"question_count"`
}

// Library is the persisted question collection.
// Stats are derived from Questions on every write and are never authoritative.
type Library struct {
	Questions   []Question   `json:"questions"`
	Stats       LibraryStats `json:"stats"`
	LastUpdated time.Time    `json:"lastUpdated"`
}
