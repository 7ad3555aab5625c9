package recommendation

import (
	"context"
	"log/slog"
	"testing"

	generativeAI "github.com/FACorreiaa/go-travel-qa-suggestions/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

type cannedGenerator struct{ text string }

func (g cannedGenerator) Generate(context.Context, string, generativeAI.GenerateOptions) ([]string, error) {
	return []string{g.text}, nil
}

type countingImages struct{ n int }

func (c *countingImages) Resolve(_ context.Context, name string) string {
	c.n++
	return "https://img/" + name
}

func BenchmarkParsePlaces(b *testing.B) {
	text := sections(8)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ParsePlaces(text)
	}
}

func BenchmarkTranslateAnswer(b *testing.B) {
	answer := types.QuestionnaireAnswer{
		TripID: 1, DistanceID: 2, ValueID: 3, LocationInterestID: 4,
		ActivityID: []int{1, 2, 3, 5, 8}, EmotionalID: 2,
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		TranslateAnswer(answer)
	}
}

func BenchmarkRecommend(b *testing.B) {
	g := NewGenerator(cannedGenerator{text: sections(5)}, &countingImages{}, generativeAI.GenerateOptions{}, slog.New(slog.DiscardHandler))
	choices := TranslateAnswer(types.QuestionnaireAnswer{TripID: 1, ActivityID: []int{1}})
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := g.Recommend(ctx, choices); err != nil {
			b.Fatal(err)
		}
	}
}
