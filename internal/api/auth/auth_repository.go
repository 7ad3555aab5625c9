package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/go-travel-qa-suggestions/app/db"
	"github.com/FACorreiaa/go-travel-qa-suggestions/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

const uniqueViolation = "23505"

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	CreateAccount(ctx context.Context, email, hashedPassword string) (*types.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*types.Account, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool database.DBTX
}

func NewRepositoryImpl(pgpool database.DBTX, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{logger: logger, pgpool: pgpool}
}

// CreateAccount stores a new account. A taken email returns ErrConflict.
func (r *RepositoryImpl) CreateAccount(ctx context.Context, email, hashedPassword string) (*types.Account, error) {
	ctx, span := otel.Tracer("AuthRepository").Start(ctx, "CreateAccount", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "register_account"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "CreateAccount"))
	start := time.Now()

	account := &types.Account{Email: email}
	err := r.pgpool.QueryRow(ctx, `
        INSERT INTO register_account (account_email, account_password)
        VALUES ($1, $2)
        RETURNING account_id, account_name, account_picture, created_at`,
		email, hashedPassword,
	).Scan(&account.ID, &account.Name, &account.Picture, &account.CreatedAt)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			l.WarnContext(ctx, "Email already registered")
			span.SetStatus(codes.Error, "duplicate email")
			return nil, fmt.Errorf("%w: email already registered", types.ErrConflict)
		}
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		l.ErrorContext(ctx, "Failed to insert account", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		return nil, fmt.Errorf("%w: insert account: %w", types.ErrPersistence, err)
	}

	span.SetAttributes(attribute.Int64("account.id", account.ID))
	span.SetStatus(codes.Ok, "account created")
	return account, nil
}

func (r *RepositoryImpl) GetAccountByEmail(ctx context.Context, email string) (*types.Account, error) {
	ctx, span := otel.Tracer("AuthRepository").Start(ctx, "GetAccountByEmail", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "register_account"),
	))
	defer span.End()

	start := time.Now()

	var account types.Account
	err := r.pgpool.QueryRow(ctx, `
        SELECT account_id, account_email, account_password, account_name, account_picture, created_at
        FROM register_account
        WHERE account_email = $1`,
		email,
	).Scan(&account.ID, &account.Email, &account.Password, &account.Name, &account.Picture, &account.CreatedAt)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, types.ErrNotFound
		}
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		r.logger.ErrorContext(ctx, "Failed to fetch account", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, fmt.Errorf("%w: select account: %w", types.ErrPersistence, err)
	}

	span.SetStatus(codes.Ok, "account found")
	return &account, nil
}
