package generativeAI

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/FACorreiaa/go-travel-qa-suggestions/app/resilience"
	"github.com/FACorreiaa/go-travel-qa-suggestions/config"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

// TextGenerator sends one prompt to a language model and returns the text of
// every choice it produced, possibly none.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) ([]string, error)
}

type GenerateOptions struct {
	MaxOutputTokens int32
	Temperature     float32
}

var _ TextGenerator = (*BreakerGenerator)(nil)

// BreakerGenerator guards a TextGenerator with a circuit breaker.
// A zero timeout leaves the caller's deadline alone.
type BreakerGenerator struct {
	next    TextGenerator
	cb      *gobreaker.CircuitBreaker[[]string]
	timeout time.Duration
}

func WithCircuitBreaker(next TextGenerator, cb *gobreaker.CircuitBreaker[[]string], timeout time.Duration) *BreakerGenerator {
	return &BreakerGenerator{next: next, cb: cb, timeout: timeout}
}

func (b *BreakerGenerator) Generate(ctx context.Context, prompt string, opts GenerateOptions) ([]string, error) {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}
	choices, err := b.cb.Execute(func() ([]string, error) {
		return b.next.Generate(ctx, prompt, opts)
	})
	if err != nil && resilience.IsOpen(err) {
		return nil, fmt.Errorf("%w: language model unavailable: %v", types.ErrUpstream, err)
	}
	return choices, err
}

// Isolated returns a generator on the same provider client behind a breaker
// of its own, named after this one plus suffix. Failures on either do not
// count against the other.
func (b *BreakerGenerator) Isolated(suffix string, logger *slog.Logger) *BreakerGenerator {
	cb := resilience.NewCircuitBreaker[[]string](b.cb.Name()+"-"+suffix, resilience.DefaultBreakerSettings(), logger)
	return WithCircuitBreaker(b.next, cb, b.timeout)
}

// NewTextGenerator builds the configured provider client behind a breaker.
func NewTextGenerator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*BreakerGenerator, error) {
	var (
		gen TextGenerator
		err error
	)
	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		gen, err = NewGeminiClient(ctx, cfg.APIKey, cfg.Model, logger)
	case "openai":
		gen = NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL, logger)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	cb := resilience.NewCircuitBreaker[[]string]("llm-"+strings.ToLower(cfg.Provider), resilience.DefaultBreakerSettings(), logger)
	return WithCircuitBreaker(gen, cb, cfg.Timeout), nil
}
