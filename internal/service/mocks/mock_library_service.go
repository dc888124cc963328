package mocks

import (
	"context"

	"pollbuilder/internal/model"
	"pollbuilder/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockLibraryService struct {
	mock.Mock
}

func (m *MockLibraryService) Get(ctx context.Context) (*model.Library, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Library), args.Error(1)
}

func (m *MockLibraryService) Search(ctx context.Context, f service.QuestionFilter) ([]model.Question, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Question), args.Error(1)
}

func (m *MockLibraryService) Sources(ctx context.Context) ([]model.SourceCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SourceCount), args.Error(1)
}

func (m *MockLibraryService) ReplaceSource(ctx context.Context, source string, questions []model.Question) (*model.Library, error) {
	args := m.Called(ctx, source, questions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Library), args.Error(1)
}

func (m *MockLibraryService) RemoveSource(ctx context.Context, source string) (*model.Library, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Library), args.Error(1)
}
