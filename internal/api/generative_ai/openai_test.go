package generativeAI

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

func TestOpenAIClient_Generate(t *testing.T) {
	t.Run("returns non-empty choices", func(t *testing.T) {
		var gotBody map[string]interface{}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &gotBody)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"id": "cmpl-1",
				"object": "chat.completion",
				"model": "gpt-4o-mini",
				"choices": [
					{"index": 0, "message": {"role": "assistant", "content": "first"}, "finish_reason": "stop"},
					{"index": 1, "message": {"role": "assistant", "content": ""}, "finish_reason": "stop"}
				]
			}`))
		}))
		defer srv.Close()

		client := NewOpenAIClient("test-key", "gpt-4o-mini", srv.URL, slog.Default())
		choices, err := client.Generate(context.Background(), "prompt", GenerateOptions{MaxOutputTokens: 256, Temperature: 0.5})

		require.NoError(t, err)
		assert.Equal(t, []string{"first"}, choices)
		assert.Equal(t, "gpt-4o-mini", gotBody["model"])
		assert.Equal(t, float64(256), gotBody["max_tokens"])
	})

	t.Run("provider error is upstream", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error": {"message": "rate limited", "type": "requests"}}`))
		}))
		defer srv.Close()

		client := NewOpenAIClient("test-key", "", srv.URL, slog.Default())
		_, err := client.Generate(context.Background(), "prompt", GenerateOptions{})
		assert.ErrorIs(t, err, types.ErrUpstream)
	})
}
