package mocks

import (
	"context"

	"pollbuilder/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, data []byte, ft model.FileType) (string, error) {
	args := m.Called(ctx, data, ft)
	return args.String(0), args.Error(1)
}
