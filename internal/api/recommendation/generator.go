package recommendation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-qa-suggestions/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

// maxDedupAttempts bounds the extra lookups made when an image URL is
// already used in the batch.
const maxDedupAttempts = 3

var _ Recommender = (*Generator)(nil)

type Recommender interface {
	Recommend(ctx context.Context, choices Choices) ([]types.RecommendedPlace, error)
}

type Generator struct {
	llm    generativeAI.TextGenerator
	images ImageSource
	opts   generativeAI.GenerateOptions
	logger *slog.Logger
}

func NewGenerator(llm generativeAI.TextGenerator, images ImageSource, opts generativeAI.GenerateOptions, logger *slog.Logger) *Generator {
	return &Generator{llm: llm, images: images, opts: opts, logger: logger}
}

// Recommend makes one generation call for the answer and returns up to
// MaxPlaces places numbered from 1, each with an image URL unique within the
// batch where possible. AccountID is left for the caller to stamp.
func (g *Generator) Recommend(ctx context.Context, choices Choices) ([]types.RecommendedPlace, error) {
	ctx, span := otel.Tracer("RecommendationGenerator").Start(ctx, "Recommend", trace.WithAttributes(
		attribute.String("choices.trip", choices.Trip),
		attribute.String("choices.location_interest", choices.LocationInterest),
	))
	defer span.End()

	l := g.logger.With(slog.String("method", "Recommend"))
	m := metrics.Get()

	start := time.Now()
	texts, err := g.llm.Generate(ctx, buildRecommendationPrompt(choices), g.opts)
	m.GenerationDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		m.GenerationErrorsTotal.Add(ctx, 1)
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation call failed")
		return nil, fmt.Errorf("%w: %w", types.ErrGeneration, err)
	}
	if len(texts) == 0 {
		m.GenerationErrorsTotal.Add(ctx, 1)
		span.SetStatus(codes.Error, "no choices returned")
		return nil, fmt.Errorf("%w: model returned no choices", types.ErrGeneration)
	}

	parsed := ParsePlaces(texts[0])
	l.DebugContext(ctx, "Parsed generated places", slog.Int("count", len(parsed)))

	used := make(map[string]struct{}, len(parsed))
	places := make([]types.RecommendedPlace, 0, len(parsed))
	for i, p := range parsed {
		places = append(places, types.RecommendedPlace{
			ResultID:         i + 1,
			EventName:        p.Name,
			EventDescription: p.Description,
			OpenDay:          p.OpenDay,
			TimeSchedule:     p.TimeSchedule,
			Location:         p.Location,
			ImageURL:         g.uniqueImage(ctx, p.Name, used),
			Distance:         p.Distance,
		})
	}

	span.SetAttributes(attribute.Int("places.count", len(places)))
	span.SetStatus(codes.Ok, "recommendations generated")
	return places, nil
}

// uniqueImage resolves an image for name that is not yet in used, retrying
// with "name N" a bounded number of times before accepting a repeat.
func (g *Generator) uniqueImage(ctx context.Context, name string, used map[string]struct{}) string {
	imageURL := g.images.Resolve(ctx, name)
	for attempt := 1; attempt <= maxDedupAttempts; attempt++ {
		if _, taken := used[imageURL]; !taken {
			break
		}
		imageURL = g.images.Resolve(ctx, fmt.Sprintf("%s %d", name, attempt))
	}
	used[imageURL] = struct{}{}
	return imageURL
}
