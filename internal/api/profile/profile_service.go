package profile

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	GetProfile(ctx context.Context, accountID int64) (*types.Account, error)
	UpdateProfile(ctx context.Context, accountID int64, req types.UpdateProfileRequest) (*types.Account, error)
	SetLocation(ctx context.Context, accountID int64, req types.LocationRequest) (*types.ProfileLocation, bool, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewServiceImpl(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, repo: repo}
}

func (s *ServiceImpl) GetProfile(ctx context.Context, accountID int64) (*types.Account, error) {
	ctx, span := otel.Tracer("ProfileService").Start(ctx, "GetProfile", trace.WithAttributes(
		attribute.Int64("account.id", accountID),
	))
	defer span.End()

	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		span.SetStatus(codes.Error, "get profile failed")
		return nil, fmt.Errorf("error fetching profile: %w", err)
	}
	return account, nil
}

func (s *ServiceImpl) UpdateProfile(ctx context.Context, accountID int64, req types.UpdateProfileRequest) (*types.Account, error) {
	ctx, span := otel.Tracer("ProfileService").Start(ctx, "UpdateProfile", trace.WithAttributes(
		attribute.Int64("account.id", accountID),
	))
	defer span.End()

	if err := api.ValidateStruct(&req); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}

	account, err := s.repo.UpdateAccount(ctx, accountID, req)
	if err != nil {
		span.SetStatus(codes.Error, "update profile failed")
		return nil, fmt.Errorf("error updating profile: %w", err)
	}
	return account, nil
}

func (s *ServiceImpl) SetLocation(ctx context.Context, accountID int64, req types.LocationRequest) (*types.ProfileLocation, bool, error) {
	ctx, span := otel.Tracer("ProfileService").Start(ctx, "SetLocation", trace.WithAttributes(
		attribute.Int64("account.id", accountID),
	))
	defer span.End()

	if err := api.ValidateStruct(&req); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		return nil, false, err
	}

	loc, inserted, err := s.repo.UpsertLocation(ctx, accountID, *req.Latitude, *req.Longitude)
	if err != nil {
		span.SetStatus(codes.Error, "set location failed")
		return nil, false, fmt.Errorf("error storing location: %w", err)
	}
	s.logger.InfoContext(ctx, "Profile location stored", slog.Int64("account_id", accountID), slog.Bool("inserted", inserted))
	return loc, inserted, nil
}
