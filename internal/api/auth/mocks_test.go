package auth

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateAccount(ctx context.Context, email, hashedPassword string) (*types.Account, error) {
	args := m.Called(ctx, email, hashedPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Account), args.Error(1)
}

func (m *MockRepository) GetAccountByEmail(ctx context.Context, email string) (*types.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Account), args.Error(1)
}
