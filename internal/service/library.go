package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"pollbuilder/internal/extract"
	"pollbuilder/internal/model"
	"pollbuilder/internal/repository"
)

// QuestionFilter narrows a library search. Empty fields match everything.
type QuestionFilter struct {
	Categories []model.Category
	Query      string
}

// LibraryService reads and updates the merged question library.
type LibraryService interface {
	// Get returns the whole library with fresh stats.
	Get(ctx context.Context) (*model.Library, error)

	// Search returns the questions matching every non-empty filter field, in library order.
	Search(ctx context.Context, f QuestionFilter) ([]model.Question, error)

	// Sources lists every source document name with its question count.
	Sources(ctx context.Context) ([]model.SourceCount, error)

	// ReplaceSource swaps every question of source for questions and returns the saved library.
	ReplaceSource(ctx context.Context, source string, questions []model.Question) (*model.Library, error)

	// RemoveSource drops every question of source and returns the saved library.
	RemoveSource(ctx context.Context, source string) (*model.Library, error)
}

// LibraryOptions tune a LibraryService. SeedPath points at a library JSON file
// served until the first write.
type LibraryOptions struct {
	MaxRetries int
	SeedPath   string
	Logger     zerolog.Logger
}

type libraryService struct {
	repo       repository.LibraryRepository
	maxRetries int
	seedPath   string
	log        zerolog.Logger
	now        func() time.Time

	seedOnce sync.Once
	seed     []model.Question
}

// NewLibraryService constructs a LibraryService over repo.
func NewLibraryService(repo repository.LibraryRepository, opts LibraryOptions) LibraryService {
	return &libraryService{
		repo:       repo,
		maxRetries: max(opts.MaxRetries, 0),
		seedPath:   opts.SeedPath,
		log:        opts.Logger,
		now:        time.Now,
	}
}

func (s *libraryService) Get(ctx context.Context) (*model.Library, error) {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	lib := snap.Data
	if snap.Version == 0 {
		lib = model.Library{Questions: s.seedQuestions()}
	}
	if lib.Questions == nil {
		lib.Questions = []model.Question{}
	}
	lib.Stats = extract.ComputeStats(lib.Questions)
	return &lib, nil
}

func (s *libraryService) Search(ctx context.Context, f QuestionFilter) ([]model.Question, error) {
	lib, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]model.Question, 0, len(lib.Questions))
	for _, q := range lib.Questions {
		if len(f.Categories) > 0 && !slices.Contains(f.Categories, q.Category.Normalize()) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(q.Text), query) &&
			!strings.Contains(strings.ToLower(q.Source), query) {
			continue
		}
		out = append(out, q)
	}
	return out, nil
}

func (s *libraryService) Sources(ctx context.Context) ([]model.SourceCount, error) {
	lib, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	return extract.Sources(lib.Questions), nil
}

func (s *libraryService) ReplaceSource(ctx context.Context, source string, questions []model.Question) (*model.Library, error) {
	return s.update(ctx, func(existing []model.Question) []model.Question {
		return extract.ReplaceSource(existing, source, questions)
	})
}

func (s *libraryService) RemoveSource(ctx context.Context, source string) (*model.Library, error) {
	return s.update(ctx, func(existing []model.Question) []model.Question {
		return extract.RemoveSource(existing, source)
	})
}

func (s *libraryService) update(ctx context.Context, fn func([]model.Question) []model.Question) (*model.Library, error) {
	lib, err := mutate(ctx, s.repo, s.maxRetries, func(cur *repository.Snapshot[model.Library]) (model.Library, error) {
		base := cur.Data.Questions
		if cur.Version == 0 {
			base = s.seedQuestions()
		}
		next := fn(slices.Clone(base))
		return model.Library{
			Questions:   next,
			Stats:       extract.ComputeStats(next),
			LastUpdated: s.now().UTC(),
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("update library: %w", err)
	}
	return &lib, nil
}

// seedQuestions reads the seed file once. A missing or broken seed yields an empty library.
func (s *libraryService) seedQuestions() []model.Question {
	s.seedOnce.Do(func() {
		if s.seedPath == "" {
			return
		}
		b, err := os.ReadFile(s.seedPath)
		if err != nil {
			s.log.Warn().Err(err).Str("path", s.seedPath).Msg("library_seed_unreadable")
			return
		}
		var lib model.Library
		if err := json.Unmarshal(b, &lib); err != nil {
			s.log.Warn().Err(err).Str("path", s.seedPath).Msg("library_seed_invalid")
			return
		}
		s.seed = lib.Questions
	})
	return slices.Clone(s.seed)
}
