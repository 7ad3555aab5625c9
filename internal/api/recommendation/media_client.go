package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/go-travel-qa-suggestions/app/resilience"
	"github.com/FACorreiaa/go-travel-qa-suggestions/config"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

const (
	mediaUserAgent   = "travel-qa-api/1.0 (image lookup)"
	maxMediaBody     = 2 << 20
	mediaSearchLimit = 10
)

// MediaSearcher finds files in a media catalog and resolves their direct URLs.
type MediaSearcher interface {
	SearchFiles(ctx context.Context, term string) ([]string, error)
	FileURL(ctx context.Context, title string) (string, error)
}

var _ MediaSearcher = (*CommonsClient)(nil)

// CommonsClient queries a MediaWiki API such as Wikimedia Commons. Calls are
// paced by a token bucket and guarded by a circuit breaker.
type CommonsClient struct {
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[[]byte]
	logger     *slog.Logger
}

func NewCommonsClient(cfg config.MediaSearchConfig, logger *slog.Logger) *CommonsClient {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &CommonsClient{
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		cb:         resilience.NewCircuitBreaker[[]byte]("media-search", resilience.DefaultBreakerSettings(), logger),
		logger:     logger,
	}
}

type commonsSearchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type commonsImageInfoResponse struct {
	Query struct {
		Pages []struct {
			Title     string `json:"title"`
			ImageInfo []struct {
				URL string `json:"url"`
			} `json:"imageinfo"`
		} `json:"pages"`
	} `json:"query"`
}

// SearchFiles returns the titles of files matching term, best match first.
func (c *CommonsClient) SearchFiles(ctx context.Context, term string) ([]string, error) {
	ctx, span := otel.Tracer("MediaSearch").Start(ctx, "SearchFiles", trace.WithAttributes(
		attribute.String("media.search.term", term),
	))
	defer span.End()

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", term)
	params.Set("srnamespace", "6")
	params.Set("srlimit", fmt.Sprint(mediaSearchLimit))
	params.Set("format", "json")
	params.Set("formatversion", "2")

	var resp commonsSearchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "media search failed")
		return nil, err
	}

	titles := make([]string, 0, len(resp.Query.Search))
	for _, hit := range resp.Query.Search {
		titles = append(titles, hit.Title)
	}
	span.SetAttributes(attribute.Int("media.search.results", len(titles)))
	return titles, nil
}

// FileURL returns the direct URL of a file title like "File:Wat Arun.jpg".
func (c *CommonsClient) FileURL(ctx context.Context, title string) (string, error) {
	ctx, span := otel.Tracer("MediaSearch").Start(ctx, "FileURL", trace.WithAttributes(
		attribute.String("media.file.title", title),
	))
	defer span.End()

	params := url.Values{}
	params.Set("action", "query")
	params.Set("titles", title)
	params.Set("prop", "imageinfo")
	params.Set("iiprop", "url")
	params.Set("format", "json")
	params.Set("formatversion", "2")

	var resp commonsImageInfoResponse
	if err := c.get(ctx, params, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "image info failed")
		return "", err
	}

	for _, page := range resp.Query.Pages {
		for _, info := range page.ImageInfo {
			if info.URL != "" {
				return info.URL, nil
			}
		}
	}
	return "", fmt.Errorf("%w: no image url for %q", types.ErrNotFound, title)
}

func (c *CommonsClient) get(ctx context.Context, params url.Values, dst interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", mediaUserAgent)
		req.Header.Set("Accept", "application/json")

		res, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: media search: %v", types.ErrUpstream, err)
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: media search returned %d", types.ErrUpstream, res.StatusCode)
		}
		return io.ReadAll(io.LimitReader(res.Body, maxMediaBody))
	})
	if err != nil {
		if resilience.IsOpen(err) {
			return fmt.Errorf("%w: media search unavailable: %v", types.ErrUpstream, err)
		}
		return err
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: decoding media search response: %v", types.ErrUpstream, err)
	}
	return nil
}
