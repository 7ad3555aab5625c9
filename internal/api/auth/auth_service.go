package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	"github.com/FACorreiaa/go-travel-qa-suggestions/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-qa-suggestions/config"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

// errInvalidCredentials is returned for both unknown emails and wrong
// passwords so callers cannot tell them apart.
var errInvalidCredentials = fmt.Errorf("%w: invalid email or password", types.ErrAuth)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	SignUp(ctx context.Context, req types.SignUpRequest) (*types.Account, error)
	SignIn(ctx context.Context, req types.SignInRequest) (string, error)
}

type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
	jwtCfg config.JWTConfig
	now    func() time.Time
}

func NewServiceImpl(repo Repository, jwtCfg config.JWTConfig, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, repo: repo, jwtCfg: jwtCfg, now: time.Now}
}

func (s *ServiceImpl) SignUp(ctx context.Context, req types.SignUpRequest) (*types.Account, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "SignUp")
	defer span.End()

	l := s.logger.With(slog.String("method", "SignUp"))

	if err := api.ValidateStruct(&req); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		span.SetStatus(codes.Error, "password mismatch")
		return nil, fmt.Errorf("%w: passwords do not match", types.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		l.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	account, err := s.repo.CreateAccount(ctx, req.Email, string(hashed))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create account failed")
		return nil, fmt.Errorf("error creating account: %w", err)
	}

	metrics.Get().SignupsTotal.Add(ctx, 1)
	l.InfoContext(ctx, "Account created", slog.Int64("account_id", account.ID))
	span.SetStatus(codes.Ok, "account created")
	return account, nil
}

func (s *ServiceImpl) SignIn(ctx context.Context, req types.SignInRequest) (string, error) {
	ctx, span := otel.Tracer("AuthService").Start(ctx, "SignIn")
	defer span.End()

	l := s.logger.With(slog.String("method", "SignIn"))

	if err := api.ValidateStruct(&req); err != nil {
		span.SetStatus(codes.Error, "invalid request")
		return "", err
	}

	account, err := s.repo.GetAccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			l.WarnContext(ctx, "Sign in for unknown email")
			span.SetStatus(codes.Error, "invalid credentials")
			return "", errInvalidCredentials
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "lookup failed")
		return "", fmt.Errorf("error fetching account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		l.WarnContext(ctx, "Sign in with wrong password", slog.Int64("account_id", account.ID))
		span.SetStatus(codes.Error, "invalid credentials")
		return "", errInvalidCredentials
	}

	token, err := s.issueToken(account)
	if err != nil {
		l.ErrorContext(ctx, "Failed to sign token", slog.Any("error", err))
		span.RecordError(err)
		return "", fmt.Errorf("error signing token: %w", err)
	}

	span.SetStatus(codes.Ok, "token issued")
	return token, nil
}

func (s *ServiceImpl) issueToken(account *types.Account) (string, error) {
	now := s.now()
	claims := &types.Claims{
		AccountID:      account.ID,
		AccountEmail:   account.Email,
		AccountName:    account.Name,
		AccountPicture: account.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(account.ID, 10),
			Issuer:    s.jwtCfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtCfg.AccessTokenTTL)),
		},
	}
	if s.jwtCfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{s.jwtCfg.Audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtCfg.SecretKey))
}
