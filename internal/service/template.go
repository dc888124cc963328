package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	"pollbuilder/internal/export"
	"pollbuilder/internal/model"
)

var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrInvalidParty    = errors.New("party must be GOP, DEM or General")
	ErrEmptyTemplate   = errors.New("template has no questions")
)

// TemplateRequest selects library questions and the race they are asked about.
type TemplateRequest struct {
	Items  []model.TemplateItem `json:"items"`
	Config model.RaceConfig     `json:"config"`
	Format string               `json:"format"`
}

// ExportResult is a rendered instrument file.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// TemplateService assembles poll instruments from library questions.
type TemplateService interface {
	Export(ctx context.Context, req TemplateRequest) (*ExportResult, error)
}

type templateService struct {
	library LibraryService
}

// NewTemplateService constructs a TemplateService reading questions from library.
func NewTemplateService(library LibraryService) TemplateService {
	return &templateService{library: library}
}

func (s *templateService) Export(ctx context.Context, req TemplateRequest) (*ExportResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyTemplate
	}
	cfg := req.Config
	switch cfg.Party {
	case "":
		cfg.Party = model.PartyGOP
	case model.PartyGOP, model.PartyDEM, model.PartyGeneral:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidParty, cfg.Party)
	}

	renderer, err := export.ForFormat(req.Format)
	if err != nil {
		return nil, err
	}

	lib, err := s.library.Get(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Question, len(lib.Questions))
	for _, q := range lib.Questions {
		byID[q.ID] = q
	}

	items := append([]model.TemplateItem(nil), req.Items...)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Order < items[j].Order })

	questions := make([]model.TemplateQuestion, 0, len(items))
	for i, it := range items {
		q, ok := byID[it.QuestionID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, it.QuestionID)
		}
		text := q.Text
		if it.CustomText != "" {
			text = it.CustomText
		}
		questions = append(questions, model.TemplateQuestion{
			Question:    q,
			DisplayText: export.ReplaceVariables(text, cfg),
			Number:      i + 1,
		})
	}

	var buf bytes.Buffer
	in := export.Instrument{
		Title:     cfg.RaceName,
		Subtitle:  export.Subtitle(cfg),
		Questions: questions,
	}
	if err := renderer.Render(&buf, in); err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	return &ExportResult{
		Filename:    export.Filename(cfg.RaceName, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}
