package qa

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-qa-suggestions/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/recommendation"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

// Stage is a step of a questionnaire submission.
type Stage string

const (
	StageValidating    Stage = "validating"
	StageWritingAnswer Stage = "writing_answer"
	StageCommitted     Stage = "committed"
	StageGenerating    Stage = "generating"
	StagePersisting    Stage = "persisting"
	StageDone          Stage = "done"
	StageFailed        Stage = "failed"
)

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// Submit validates and stores an answer, then generates and stores its
	// recommendations. Only validation and the answer write can fail the
	// call; later failures are logged and leave Recommendations empty.
	Submit(ctx context.Context, req types.QATransactionRequest) (*types.QATransactionResult, error)
	ListTransactions(ctx context.Context) ([]types.QATransactionView, error)
	ListResults(ctx context.Context, accountID int64) ([]types.RecommendedPlace, error)
}

type ServiceImpl struct {
	logger      *slog.Logger
	repo        Repository
	recommender recommendation.Recommender
}

func NewServiceImpl(repo Repository, recommender recommendation.Recommender, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, repo: repo, recommender: recommender}
}

// submission tracks the current stage for logs and the trace.
type submission struct {
	ctx   context.Context
	span  trace.Span
	l     *slog.Logger
	stage Stage
}

func (s *submission) advance(next Stage) {
	s.l.DebugContext(s.ctx, "Submission stage", slog.String("from", string(s.stage)), slog.String("to", string(next)))
	s.span.AddEvent(string(next))
	s.stage = next
}

func (s *submission) fail(err error) {
	s.l.ErrorContext(s.ctx, "Submission failed", slog.String("stage", string(s.stage)), slog.Any("error", err))
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, "failed while "+string(s.stage))
	s.stage = StageFailed
	metrics.Get().QASubmissionsTotal.Add(s.ctx, 1, metric.WithAttributes(attribute.String("outcome", "failed")))
}

func (s *ServiceImpl) Submit(ctx context.Context, req types.QATransactionRequest) (*types.QATransactionResult, error) {
	ctx, span := otel.Tracer("QAService").Start(ctx, "Submit")
	defer span.End()

	sub := &submission{ctx: ctx, span: span, l: s.logger.With(slog.String("method", "Submit"))}
	sub.advance(StageValidating)

	if err := api.ValidateStruct(&req); err != nil {
		sub.fail(err)
		return nil, err
	}

	sub.advance(StageWritingAnswer)
	answer, err := s.repo.CreateAnswer(ctx, req)
	if err != nil {
		sub.fail(err)
		return nil, fmt.Errorf("error storing questionnaire answer: %w", err)
	}
	sub.advance(StageCommitted)
	sub.l = sub.l.With(slog.Int64("account_id", answer.AccountID))
	span.SetAttributes(attribute.Int64("qa.account_id", answer.AccountID))

	result := &types.QATransactionResult{
		AccountID:          answer.AccountID,
		Latitude:           answer.Latitude,
		Longitude:          answer.Longitude,
		TripID:             answer.TripID,
		DistanceID:         answer.DistanceID,
		ValueID:            answer.ValueID,
		LocationInterestID: answer.LocationInterestID,
		ActivityID:         answer.ActivityID,
		EmotionalID:        answer.EmotionalID,
		Recommendations:    []types.RecommendedPlace{},
	}

	sub.advance(StageGenerating)
	places, err := s.recommender.Recommend(ctx, recommendation.TranslateAnswer(*answer))
	if err != nil {
		// the answer stays committed
		sub.l.ErrorContext(ctx, "Recommendation generation failed", slog.Any("error", err))
		span.RecordError(err)
		return s.done(sub, result, "no_recommendations"), nil
	}
	for i := range places {
		places[i].AccountID = answer.AccountID
	}

	sub.advance(StagePersisting)
	saved, err := s.repo.SaveResults(ctx, places)
	if err != nil {
		sub.l.ErrorContext(ctx, "Storing recommendations failed", slog.Any("error", err))
		span.RecordError(err)
		return s.done(sub, result, "no_recommendations"), nil
	}
	result.Recommendations = saved

	return s.done(sub, result, "ok"), nil
}

func (s *ServiceImpl) done(sub *submission, result *types.QATransactionResult, outcome string) *types.QATransactionResult {
	sub.advance(StageDone)
	metrics.Get().QASubmissionsTotal.Add(sub.ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	sub.l.InfoContext(sub.ctx, "Questionnaire processed", slog.Int("recommendations", len(result.Recommendations)))
	sub.span.SetStatus(codes.Ok, "submission processed")
	return result
}

func (s *ServiceImpl) ListTransactions(ctx context.Context) ([]types.QATransactionView, error) {
	ctx, span := otel.Tracer("QAService").Start(ctx, "ListTransactions")
	defer span.End()

	views, err := s.repo.ListTransactions(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list transactions failed")
		return nil, fmt.Errorf("error listing questionnaire answers: %w", err)
	}
	return views, nil
}

func (s *ServiceImpl) ListResults(ctx context.Context, accountID int64) ([]types.RecommendedPlace, error) {
	ctx, span := otel.Tracer("QAService").Start(ctx, "ListResults", trace.WithAttributes(
		attribute.Int64("qa.account_id", accountID),
	))
	defer span.End()

	results, err := s.repo.ListResults(ctx, accountID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list results failed")
		return nil, fmt.Errorf("error listing results: %w", err)
	}
	return results, nil
}
