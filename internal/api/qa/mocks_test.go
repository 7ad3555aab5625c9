package qa

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/recommendation"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateAnswer(ctx context.Context, req types.QATransactionRequest) (*types.QuestionnaireAnswer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.QuestionnaireAnswer), args.Error(1)
}

func (m *MockRepository) SaveResults(ctx context.Context, places []types.RecommendedPlace) ([]types.RecommendedPlace, error) {
	args := m.Called(ctx, places)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecommendedPlace), args.Error(1)
}

func (m *MockRepository) ListTransactions(ctx context.Context) ([]types.QATransactionView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.QATransactionView), args.Error(1)
}

func (m *MockRepository) ListResults(ctx context.Context, accountID int64) ([]types.RecommendedPlace, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecommendedPlace), args.Error(1)
}

type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) Recommend(ctx context.Context, choices recommendation.Choices) ([]types.RecommendedPlace, error) {
	args := m.Called(ctx, choices)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecommendedPlace), args.Error(1)
}

type MockService struct {
	mock.Mock
}

func (m *MockService) Submit(ctx context.Context, req types.QATransactionRequest) (*types.QATransactionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.QATransactionResult), args.Error(1)
}

func (m *MockService) ListTransactions(ctx context.Context) ([]types.QATransactionView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.QATransactionView), args.Error(1)
}

func (m *MockService) ListResults(ctx context.Context, accountID int64) ([]types.RecommendedPlace, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.RecommendedPlace), args.Error(1)
}
