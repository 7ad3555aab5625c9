package qa

import (
	"context"
	"fmt"
	"log/slog"
	"time"

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

type Repository interface {
	// CreateAnswer inserts the answer and stamps its own id into account_id
	// in one transaction.
	CreateAnswer(ctx context.Context, req types.QATransactionRequest) (*types.QuestionnaireAnswer, error)
	// SaveResults writes places in a second transaction. A failing row is
	// skipped; the rows that were written are returned.
	SaveResults(ctx context.Context, places []types.RecommendedPlace) ([]types.RecommendedPlace, error)
	ListTransactions(ctx context.Context) ([]types.QATransactionView, error)
	// ListResults returns every result row when accountID is 0.
	ListResults(ctx context.Context, accountID int64) ([]types.RecommendedPlace, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool database.DBTX
}

func NewRepositoryImpl(pgpool database.DBTX, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{logger: logger, pgpool: pgpool}
}

const (
	insertAnswerSQL = `
        INSERT INTO qa_transaction
            (latitude, longitude, trip_id, distance_id, value_id, location_interest_id, activity_id, emotional_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING transaction_id, created_at`

	stampAccountSQL = `UPDATE qa_transaction SET account_id = $1 WHERE transaction_id = $1`

	insertResultSQL = `
        INSERT INTO qa_results
            (result_id, account_id, event_name, event_description, open_day, time_schedule, location, image_url, distance)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	listTransactionsSQL = `
        SELECT t.transaction_id, t.account_id, t.latitude, t.longitude,
               COALESCE(tr.trip_name, ''), COALESCE(d.distance_name, ''), COALESCE(v.value_name, ''),
               COALESCE(p.theme, ''),
               ARRAY(SELECT a.activity_name FROM qa_activity a
                     WHERE a.activity_id = ANY(t.activity_id) ORDER BY a.activity_id),
               COALESCE(e.emotional_name, ''), t.created_at
        FROM qa_transaction t
        LEFT JOIN qa_traveling tr ON tr.trip_id = t.trip_id
        LEFT JOIN qa_distance d ON d.distance_id = t.distance_id
        LEFT JOIN qa_value v ON v.value_id = t.value_id
        LEFT JOIN qa_picture p ON p.picture_id = t.location_interest_id
        LEFT JOIN qa_emotional e ON e.emotional_id = t.emotional_id
        ORDER BY t.transaction_id`

	listResultsSQL = `
        SELECT result_id, account_id, event_name, event_description, open_day, time_schedule, location, image_url, distance
        FROM qa_results
        WHERE $1::bigint = 0 OR account_id = $1
        ORDER BY account_id, result_id`
)

func (r *RepositoryImpl) CreateAnswer(ctx context.Context, req types.QATransactionRequest) (*types.QuestionnaireAnswer, error) {
	ctx, span := otel.Tracer("QARepository").Start(ctx, "CreateAnswer", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "qa_transaction"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "CreateAnswer"))
	start := time.Now()

	answer := &types.QuestionnaireAnswer{
		Latitude:           *req.Latitude,
		Longitude:          *req.Longitude,
		TripID:             req.TripID,
		DistanceID:         req.DistanceID,
		ValueID:            req.ValueID,
		LocationInterestID: req.LocationInterestID,
		ActivityID:         req.ActivityID,
		EmotionalID:        req.EmotionalID,
	}

	tx, err := r.pgpool.Begin(ctx)
	if err != nil {
		return nil, r.fail(ctx, span, l, start, "begin transaction", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, insertAnswerSQL,
		answer.Latitude, answer.Longitude, answer.TripID, answer.DistanceID, answer.ValueID,
		answer.LocationInterestID, answer.ActivityID, answer.EmotionalID,
	).Scan(&answer.ID, &answer.CreatedAt)
	if err != nil {
		return nil, r.fail(ctx, span, l, start, "insert answer", err)
	}

	if _, err = tx.Exec(ctx, stampAccountSQL, answer.ID); err != nil {
		return nil, r.fail(ctx, span, l, start, "stamp account id", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, r.fail(ctx, span, l, start, "commit answer", err)
	}
	answer.AccountID = answer.ID

	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	l.InfoContext(ctx, "Questionnaire answer stored", slog.Int64("account_id", answer.AccountID))
	span.SetAttributes(attribute.Int64("qa.account_id", answer.AccountID))
	span.SetStatus(codes.Ok, "answer stored")
	return answer, nil
}

func (r *RepositoryImpl) SaveResults(ctx context.Context, places []types.RecommendedPlace) ([]types.RecommendedPlace, error) {
	ctx, span := otel.Tracer("QARepository").Start(ctx, "SaveResults", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "qa_results"),
		attribute.Int("rows.requested", len(places)),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "SaveResults"))
	start := time.Now()

	tx, err := r.pgpool.Begin(ctx)
	if err != nil {
		return nil, r.fail(ctx, span, l, start, "begin transaction", err)
	}
	defer tx.Rollback(ctx)

	saved := make([]types.RecommendedPlace, 0, len(places))
	for _, p := range places {
		// a savepoint per row keeps one bad row from aborting the rest
		sp, err := tx.Begin(ctx)
		if err != nil {
			return nil, r.fail(ctx, span, l, start, "begin savepoint", err)
		}
		_, err = sp.Exec(ctx, insertResultSQL,
			p.ResultID, p.AccountID, p.EventName, p.EventDescription,
			p.OpenDay, p.TimeSchedule, p.Location, p.ImageURL, p.Distance,
		)
		if err != nil {
			metrics.Get().DbQueryErrorsTotal.Add(ctx, 1)
			l.WarnContext(ctx, "Skipping result row", slog.Int("result_id", p.ResultID), slog.Any("error", err))
			if rbErr := sp.Rollback(ctx); rbErr != nil {
				return nil, r.fail(ctx, span, l, start, "rollback savepoint", rbErr)
			}
			continue
		}
		if err = sp.Commit(ctx); err != nil {
			return nil, r.fail(ctx, span, l, start, "release savepoint", err)
		}
		saved = append(saved, p)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, r.fail(ctx, span, l, start, "commit results", err)
	}

	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	metrics.Get().RecommendationsTotal.Add(ctx, int64(len(saved)))
	l.InfoContext(ctx, "Results stored", slog.Int("saved", len(saved)), slog.Int("requested", len(places)))
	span.SetAttributes(attribute.Int("rows.saved", len(saved)))
	span.SetStatus(codes.Ok, "results stored")
	return saved, nil
}

func (r *RepositoryImpl) ListTransactions(ctx context.Context) ([]types.QATransactionView, error) {
	ctx, span := otel.Tracer("QARepository").Start(ctx, "ListTransactions", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "qa_transaction"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "ListTransactions"))
	start := time.Now()

	rows, err := r.pgpool.Query(ctx, listTransactionsSQL)
	if err != nil {
		return nil, r.fail(ctx, span, l, start, "query transactions", err)
	}
	defer rows.Close()

	views := []types.QATransactionView{}
	for rows.Next() {
		var v types.QATransactionView
		if err := rows.Scan(
			&v.TransactionID, &v.AccountID, &v.Latitude, &v.Longitude,
			&v.TripName, &v.DistanceName, &v.ValueName, &v.LocationInterest,
			&v.ActivityNames, &v.EmotionalName, &v.CreatedAt,
		); err != nil {
			return nil, r.fail(ctx, span, l, start, "scan transaction", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail(ctx, span, l, start, "iterate transactions", err)
	}

	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	span.SetStatus(codes.Ok, "transactions listed")
	return views, nil
}

func (r *RepositoryImpl) ListResults(ctx context.Context, accountID int64) ([]types.RecommendedPlace, error) {
	ctx, span := otel.Tracer("QARepository").Start(ctx, "ListResults", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "qa_results"),
		attribute.Int64("qa.account_id", accountID),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "ListResults"), slog.Int64("account_id", accountID))
	start := time.Now()

	rows, err := r.pgpool.Query(ctx, listResultsSQL, accountID)
	if err != nil {
		return nil, r.fail(ctx, span, l, start, "query results", err)
	}
	defer rows.Close()

	results := []types.RecommendedPlace{}
	for rows.Next() {
		var p types.RecommendedPlace
		if err := rows.Scan(
			&p.ResultID, &p.AccountID, &p.EventName, &p.EventDescription,
			&p.OpenDay, &p.TimeSchedule, &p.Location, &p.ImageURL, &p.Distance,
		); err != nil {
			return nil, r.fail(ctx, span, l, start, "scan result", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, r.fail(ctx, span, l, start, "iterate results", err)
	}

	metrics.Get().DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	span.SetStatus(codes.Ok, "results listed")
	return results, nil
}

func (r *RepositoryImpl) fail(ctx context.Context, span trace.Span, l *slog.Logger, start time.Time, op string, err error) error {
	m := metrics.Get()
	m.DbQueryErrorsTotal.Add(ctx, 1)
	m.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds())
	l.ErrorContext(ctx, "Database operation failed", slog.String("op", op), slog.Any("error", err))
	span.RecordError(err)
	span.SetStatus(codes.Error, op+" failed")
	return fmt.Errorf("%w: %s: %w", types.ErrPersistence, op, err)
}
