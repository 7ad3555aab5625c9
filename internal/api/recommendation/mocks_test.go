package recommendation

import (
	"context"

	"github.com/stretchr/testify/mock"

	generativeAI "github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/generative_ai"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string, opts generativeAI.GenerateOptions) ([]string, error) {
	args := m.Called(ctx, prompt, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockMediaSearcher struct {
	mock.Mock
}

func (m *MockMediaSearcher) SearchFiles(ctx context.Context, term string) ([]string, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMediaSearcher) FileURL(ctx context.Context, title string) (string, error) {
	args := m.Called(ctx, title)
	return args.String(0), args.Error(1)
}

type MockImageSource struct {
	mock.Mock
}

func (m *MockImageSource) Resolve(ctx context.Context, name string) string {
	args := m.Called(ctx, name)
	return args.String(0)
}
