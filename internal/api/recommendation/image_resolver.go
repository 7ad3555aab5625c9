package recommendation

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-qa-suggestions/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/generative_ai"
)

// ImageSource returns an image URL for a place name. It never fails; a
// placeholder stands in when nothing matches.
type ImageSource interface {
	Resolve(ctx context.Context, name string) string
}

var _ ImageSource = (*ImageResolver)(nil)

type ImageResolver struct {
	llm            generativeAI.TextGenerator
	media          MediaSearcher
	placeholderURL string
	qualifiers     []string
	targetLanguage string
	logger         *slog.Logger
}

func NewImageResolver(llm generativeAI.TextGenerator, media MediaSearcher, placeholderURL, targetLanguage string, qualifiers []string, logger *slog.Logger) *ImageResolver {
	if targetLanguage == "" {
		targetLanguage = "English"
	}
	return &ImageResolver{
		llm:            llm,
		media:          media,
		placeholderURL: placeholderURL,
		qualifiers:     qualifiers,
		targetLanguage: targetLanguage,
		logger:         logger,
	}
}

// Resolve translates name, tries each search term variant in order and
// returns the URL of the first file whose name loosely matches.
func (r *ImageResolver) Resolve(ctx context.Context, name string) string {
	ctx, span := otel.Tracer("ImageResolver").Start(ctx, "Resolve", trace.WithAttributes(
		attribute.String("place.name", name),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Resolve"), slog.String("place", name))
	metrics.Get().ImageResolveAttemptsTotal.Add(ctx, 1)

	translated := r.translateName(ctx, name)
	needle := strings.ToLower(translated)

	for _, term := range r.searchTerms(translated) {
		titles, err := r.media.SearchFiles(ctx, term)
		if err != nil {
			l.WarnContext(ctx, "Media search failed", slog.String("term", term), slog.Any("error", err))
			continue
		}
		for _, title := range titles {
			if !looselyMatches(fileStem(title), needle) {
				continue
			}
			imageURL, err := r.media.FileURL(ctx, title)
			if err != nil {
				l.WarnContext(ctx, "Failed to fetch image url", slog.String("title", title), slog.Any("error", err))
				break
			}
			span.SetAttributes(attribute.String("image.title", title))
			return imageURL
		}
	}

	l.DebugContext(ctx, "No matching image, using placeholder", slog.String("translated", translated))
	metrics.Get().ImagePlaceholdersTotal.Add(ctx, 1)
	return r.placeholderURL
}

// translateName asks the model for the catalog language name, falling back to
// the original on any failure.
func (r *ImageResolver) translateName(ctx context.Context, name string) string {
	choices, err := r.llm.Generate(ctx, buildTranslateNamePrompt(r.targetLanguage, name), generativeAI.GenerateOptions{
		MaxOutputTokens: 64,
	})
	if err != nil || len(choices) == 0 {
		if err != nil {
			r.logger.WarnContext(ctx, "Place name translation failed", slog.String("place", name), slog.Any("error", err))
		}
		return name
	}

	first, _, _ := strings.Cut(strings.TrimSpace(choices[0]), "\n")
	first = strings.Trim(strings.TrimSpace(first), `"'`)
	if first == "" {
		return name
	}
	return first
}

func (r *ImageResolver) searchTerms(name string) []string {
	terms := make([]string, 0, len(r.qualifiers)+1)
	for _, q := range r.qualifiers {
		terms = append(terms, name+" "+q)
	}
	return append(terms, name)
}

// fileStem turns "File:Wat_Arun.jpg" into "wat arun".
func fileStem(title string) string {
	title = strings.TrimPrefix(title, "File:")
	title = strings.TrimSuffix(title, path.Ext(title))
	return strings.ToLower(strings.ReplaceAll(title, "_", " "))
}

func looselyMatches(stem, needle string) bool {
	if stem == "" || needle == "" {
		return false
	}
	return strings.Contains(stem, needle) || strings.Contains(needle, stem)
}
