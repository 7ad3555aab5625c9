package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	database "github.com/FACorreiaa/go-travel-qa-suggestions/app/db"
	"github.com/FACorreiaa/go-travel-qa-suggestions/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository reads the seeded questionnaire option tables.
type Repository interface {
	Pictures(ctx context.Context) ([]types.Picture, error)
	Activities(ctx context.Context) ([]types.Activity, error)
	TravelTypes(ctx context.Context) ([]types.TravelType, error)
	DistanceBands(ctx context.Context) ([]types.DistanceBand, error)
	ValueTiers(ctx context.Context) ([]types.ValueTier, error)
	EmotionalStates(ctx context.Context) ([]types.EmotionalState, error)
	ProvincesByRegion(ctx context.Context, regionID int64) ([]types.Province, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool database.DBTX
}

func NewRepositoryImpl(pgpool database.DBTX, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{logger: logger, pgpool: pgpool}
}

// list runs query and scans every row with scan.
func list[T any](ctx context.Context, r *RepositoryImpl, table, query string, scan func(pgx.Rows, *T) error, args ...interface{}) ([]T, error) {
	ctx, span := otel.Tracer("LookupRepository").Start(ctx, "List", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", table),
	))
	defer span.End()

	start := time.Now()
	defer func() { metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds()) }()

	fail := func(op string, err error) error {
		metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
		r.logger.ErrorContext(ctx, "Lookup query failed", slog.String("table", table), slog.String("op", op), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, op+" failed")
		return fmt.Errorf("%w: %s %s: %w", types.ErrPersistence, op, table, err)
	}

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		return nil, fail("query", err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var item T
		if err := scan(rows, &item); err != nil {
			return nil, fail("scan", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fail("iterate", err)
	}

	span.SetAttributes(attribute.Int("rows", len(out)))
	span.SetStatus(codes.Ok, "listed")
	return out, nil
}

func (r *RepositoryImpl) Pictures(ctx context.Context) ([]types.Picture, error) {
	return list(ctx, r, "qa_picture",
		`SELECT picture_id, theme, picture_url FROM qa_picture ORDER BY picture_id`,
		func(rows pgx.Rows, p *types.Picture) error { return rows.Scan(&p.PictureID, &p.Theme, &p.PictureURL) })
}

func (r *RepositoryImpl) Activities(ctx context.Context) ([]types.Activity, error) {
	return list(ctx, r, "qa_activity",
		`SELECT activity_id, activity_name FROM qa_activity ORDER BY activity_id`,
		func(rows pgx.Rows, a *types.Activity) error { return rows.Scan(&a.ActivityID, &a.ActivityName) })
}

func (r *RepositoryImpl) TravelTypes(ctx context.Context) ([]types.TravelType, error) {
	return list(ctx, r, "qa_traveling",
		`SELECT trip_id, trip_name FROM qa_traveling ORDER BY trip_id`,
		func(rows pgx.Rows, t *types.TravelType) error { return rows.Scan(&t.TripID, &t.TripName) })
}

func (r *RepositoryImpl) DistanceBands(ctx context.Context) ([]types.DistanceBand, error) {
	return list(ctx, r, "qa_distance",
		`SELECT distance_id, distance_name FROM qa_distance ORDER BY distance_id`,
		func(rows pgx.Rows, d *types.DistanceBand) error { return rows.Scan(&d.DistanceID, &d.DistanceName) })
}

func (r *RepositoryImpl) ValueTiers(ctx context.Context) ([]types.ValueTier, error) {
	return list(ctx, r, "qa_value",
		`SELECT value_id, value_name FROM qa_value ORDER BY value_id`,
		func(rows pgx.Rows, v *types.ValueTier) error { return rows.Scan(&v.ValueID, &v.ValueName) })
}

func (r *RepositoryImpl) EmotionalStates(ctx context.Context) ([]types.EmotionalState, error) {
	return list(ctx, r, "qa_emotional",
		`SELECT emotional_id, emotional_name FROM qa_emotional ORDER BY emotional_id`,
		func(rows pgx.Rows, e *types.EmotionalState) error { return rows.Scan(&e.EmotionalID, &e.EmotionalName) })
}

func (r *RepositoryImpl) ProvincesByRegion(ctx context.Context, regionID int64) ([]types.Province, error) {
	return list(ctx, r, "province",
		`SELECT province_id, province_name, region_id FROM province WHERE region_id = $1 ORDER BY province_id`,
		func(rows pgx.Rows, p *types.Province) error { return rows.Scan(&p.ProvinceID, &p.ProvinceName, &p.RegionID) },
		regionID)
}
