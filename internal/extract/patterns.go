package extract

import (
	"regexp"

	"pollbuilder/internal/model"
)

// Rule is one category together with the patterns that select it.
type Rule struct {
	Category model.Category
	Patterns []*regexp.Regexp
}

func ci(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = compile("(?i)" + e)
	}
	return out
}

// rules is evaluated top to bottom; the first category with a matching pattern wins.
var rules = []Rule{
	{model.CategoryScreener, ci(
		`do you plan to vote`,
		`will you vote`,
		`are you registered`,
		`screen:`,
		`likely.*voter`,
	)},
	{model.CategoryFavorability, ci(
		`what is your opinion of`,
		`favorable.*unfavorable`,
		`do you have a favorable or unfavorable`,
	)},
	{model.CategoryJobApproval, ci(
		`do you approve or disapprove of the job`,
		`job.*doing`,
		`approve.*disapprove.*job`,
	)},
	{model.CategoryTopOfBallot, ci(
		`if the (?:election|primary|caucus) were held today`,
		`for whom would you vote`,
		`who would you (?:vote for|support)`,
		`which candidate`,
	)},
	{model.CategoryPersuasion, ci(
		`more likely or less likely`,
		`after hearing this`,
		`would you be more likely`,
		`does this make you`,
	)},
	{model.CategoryPolicy, ci(
		`do you support or oppose`,
		`do you agree or disagree`,
		`support.*oppose`,
	)},
	{model.CategoryIssue, ci(
		`which of the following best describes`,
		`what do you think about`,
		`how important is`,
		`most important issue`,
	)},
	{model.CategoryDemographics, ci(
		`(?:^|\s)(?:party|gender|age|ideology|race|income|education|geography)`,
		`are you a (?:woman|man|male|female)`,
		`which age range`,
		`do you consider yourself.*conservative`,
	)},
}

// Rules returns the pattern table in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
