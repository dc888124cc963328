package extract

import "pollbuilder/internal/model"

// ReplaceSource drops every question of source from existing and appends fresh.
// Fresh ids that clash with questions kept from other sources are suffixed.
func ReplaceSource(existing []model.Question, source string, fresh []model.Question) []model.Question {
	out := make([]model.Question, 0, len(existing)+len(fresh))
	taken := make(map[string]struct{}, len(existing)+len(fresh))
	for _, q := range existing {
		if q.Source == source {
			continue
		}
		taken[q.ID] = struct{}{}
		out = append(out, q)
	}
	for _, q := range fresh {
		q.ID = uniqueID(q.ID, taken)
		taken[q.ID] = struct{}{}
		out = append(out, q)
	}
	return out
}

// RemoveSource returns existing without the questions of source.
func RemoveSource(existing []model.Question, source string) []model.Question {
	return ReplaceSource(existing, source, nil)
}

// ComputeStats counts questions in total and per category.
func ComputeStats(questions []model.Question) model.LibraryStats {
	by := make(map[string]int)
	for _, q := range questions {
		by[string(q.Category.Normalize())]++
	}
	return model.LibraryStats{TotalQuestions: len(questions), ByCategory: by}
}

// Sources lists every source with its question count, in first-seen order.
func Sources(questions []model.Question) []model.SourceCount {
	idx := make(map[string]int)
	var out []model.SourceCount
	for _, q := range questions {
		i, ok := idx[q.Source]
		if !ok {
			i = len(out)
			idx[q.Source] = i
			out = append(out, model.SourceCount{Name: q.Source})
		}
		out[i].QuestionCount++
	}
	return out
}
