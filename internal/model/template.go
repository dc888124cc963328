package model

// Party values accepted in a race configuration.
const (
	PartyGOP     = "GOP"
	PartyDEM     = "DEM"
	PartyGeneral = "General"
)

// RaceConfig carries the values substituted into template variables.
type RaceConfig struct {
	RaceName     string   `json:"race_name"`
	District     string   `json:"district"`
	ElectionDate string   `json:"election_date"`
	Candidates   []string `json:"candidates"`
	Party        string   `json:"party"`
}

// TemplateItem selects a library question for a template at a given position.
// CustomText, when set, replaces the library wording.
type TemplateItem struct {
	QuestionID string `json:"question_id"`
	CustomText string `json:"custom_text,omitempty"`
	Order      int    `json:"order"`
}

// TemplateQuestion is a resolved template entry ready for rendering.
type TemplateQuestion struct {
	Question
	DisplayText string `json:"display_text"`
	Number      int    `json:"number"`
}
