package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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

const foreignKeyViolation = "23503"

var _ Repository = (*RepositoryImpl)(nil)

type Repository interface {
	GetAccount(ctx context.Context, accountID int64) (*types.Account, error)
	UpdateAccount(ctx context.Context, accountID int64, params types.UpdateProfileRequest) (*types.Account, error)
	// UpsertLocation reports whether a new row was inserted.
	UpsertLocation(ctx context.Context, accountID int64, lat, lon float64) (*types.ProfileLocation, bool, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool database.DBTX
}

func NewRepositoryImpl(pgpool database.DBTX, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{logger: logger, pgpool: pgpool}
}

const selectAccountSQL = `
        SELECT account_id, account_email, account_name, account_picture, created_at
        FROM register_account
        WHERE account_id = $1`

func (r *RepositoryImpl) GetAccount(ctx context.Context, accountID int64) (*types.Account, error) {
	ctx, span := otel.Tracer("ProfileRepository").Start(ctx, "GetAccount", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "register_account"),
		attribute.Int64("account.id", accountID),
	))
	defer span.End()

	start := time.Now()
	var a types.Account
	err := r.pgpool.QueryRow(ctx, selectAccountSQL, accountID).
		Scan(&a.ID, &a.Email, &a.Name, &a.Picture, &a.CreatedAt)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		return nil, r.classify(ctx, span, "select account", err)
	}

	span.SetStatus(codes.Ok, "account found")
	return &a, nil
}

func (r *RepositoryImpl) UpdateAccount(ctx context.Context, accountID int64, params types.UpdateProfileRequest) (*types.Account, error) {
	ctx, span := otel.Tracer("ProfileRepository").Start(ctx, "UpdateAccount", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "register_account"),
		attribute.String("db.operation", "UPDATE"),
		attribute.Int64("account.id", accountID),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "UpdateAccount"), slog.Int64("account_id", accountID))

	var setClauses []string
	var args []interface{}
	argID := 1
	if params.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("account_name = $%d", argID))
		args = append(args, *params.Name)
		argID++
	}
	if params.Picture != nil {
		setClauses = append(setClauses, fmt.Sprintf("account_picture = $%d", argID))
		args = append(args, *params.Picture)
		argID++
	}

	if len(setClauses) == 0 {
		l.DebugContext(ctx, "No profile fields to update")
		return r.GetAccount(ctx, accountID)
	}

	args = append(args, accountID)
	query := fmt.Sprintf(`UPDATE register_account SET %s WHERE account_id = $%d
        RETURNING account_id, account_email, account_name, account_picture, created_at`,
		strings.Join(setClauses, ", "), argID)

	start := time.Now()
	var a types.Account
	err := r.pgpool.QueryRow(ctx, query, args...).Scan(&a.ID, &a.Email, &a.Name, &a.Picture, &a.CreatedAt)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		return nil, r.classify(ctx, span, "update account", err)
	}

	l.InfoContext(ctx, "Profile updated")
	span.SetStatus(codes.Ok, "profile updated")
	return &a, nil
}

func (r *RepositoryImpl) UpsertLocation(ctx context.Context, accountID int64, lat, lon float64) (*types.ProfileLocation, bool, error) {
	ctx, span := otel.Tracer("ProfileRepository").Start(ctx, "UpsertLocation", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "profile_location"),
		attribute.Int64("account.id", accountID),
	))
	defer span.End()

	start := time.Now()
	loc := types.ProfileLocation{AccountID: accountID}
	var inserted bool
	// xmax is 0 only for a freshly inserted tuple
	err := r.pgpool.QueryRow(ctx, `
        INSERT INTO profile_location (account_id, latitude, longitude)
        VALUES ($1, $2, $3)
        ON CONFLICT (account_id) DO UPDATE
            SET latitude = EXCLUDED.latitude, longitude = EXCLUDED.longitude, updated_at = NOW()
        RETURNING latitude, longitude, updated_at, (xmax = 0)`,
		accountID, lat, lon,
	).Scan(&loc.Latitude, &loc.Longitude, &loc.UpdatedAt, &inserted)
	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		return nil, false, r.classify(ctx, span, "upsert location", err)
	}

	span.SetAttributes(attribute.Bool("location.inserted", inserted))
	span.SetStatus(codes.Ok, "location stored")
	return &loc, inserted, nil
}

func (r *RepositoryImpl) classify(ctx context.Context, span trace.Span, op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		span.SetStatus(codes.Error, "not found")
		return fmt.Errorf("%w: account", types.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		span.SetStatus(codes.Error, "unknown account")
		return fmt.Errorf("%w: unknown account", types.ErrValidation)
	}
	metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
	r.logger.ErrorContext(ctx, "Database operation failed", slog.String("op", op), slog.Any("error", err))
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
	return fmt.Errorf("%w: %s: %w", types.ErrPersistence, op, err)
}
