package generativeAI

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

var _ TextGenerator = (*OpenAIClient)(nil)

type OpenAIClient struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewOpenAIClient talks to the OpenAI chat completions API, or to a compatible
// server when baseURL is set.
func NewOpenAIClient(apiKey, model, baseURL string, logger *slog.Logger) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) ([]string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "OpenAIGenerate", trace.WithAttributes(
		attribute.Int("prompt.length", len(prompt)),
		attribute.String("model", c.model),
	))
	defer span.End()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   int(opts.MaxOutputTokens),
		Temperature: opts.Temperature,
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "OpenAI request failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Chat completion failed")
		return nil, fmt.Errorf("%w: openai: %v", types.ErrUpstream, err)
	}

	choices := make([]string, 0, len(resp.Choices))
	for _, ch := range resp.Choices {
		if ch.Message.Content != "" {
			choices = append(choices, ch.Message.Content)
		}
	}

	span.SetAttributes(attribute.Int("response.choices", len(choices)))
	span.SetStatus(codes.Ok, "Content generated")
	return choices, nil
}
