package nearby

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-qa-suggestions/app/resilience"
	"github.com/FACorreiaa/go-travel-qa-suggestions/config"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

const maxSearchBody = 4 << 20

// PlaceSearcher looks up places around a point or inside a postcode.
type PlaceSearcher interface {
	Search(ctx context.Context, q types.NearbyQuery) ([]types.NearbyPlace, error)
}

var _ PlaceSearcher = (*LongdoClient)(nil)

// LongdoClient calls the Longdo Map search API.
type LongdoClient struct {
	endpoint   string
	apiKey     string
	limit      int
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker[[]byte]
	logger     *slog.Logger
}

func NewLongdoClient(cfg config.PlaceSearchConfig, logger *slog.Logger) *LongdoClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := cfg.Limit
	if limit <= 0 {
		limit = 20
	}
	return &LongdoClient{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		limit:      limit,
		httpClient: &http.Client{Timeout: timeout},
		cb:         resilience.NewCircuitBreaker[[]byte]("place-search", resilience.DefaultBreakerSettings(), logger),
		logger:     logger,
	}
}

type longdoResponse struct {
	Data []types.NearbyPlace `json:"data"`
}

func (c *LongdoClient) Search(ctx context.Context, q types.NearbyQuery) ([]types.NearbyPlace, error) {
	ctx, span := otel.Tracer("PlaceSearch").Start(ctx, "Search", trace.WithAttributes(
		attribute.String("place.search.span", q.Radius),
		attribute.Bool("place.search.by_postcode", q.Postcode != ""),
	))
	defer span.End()

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("limit", strconv.Itoa(c.limit))
	if q.Postcode != "" {
		params.Set("keyword", q.Postcode)
	} else {
		params.Set("lat", strconv.FormatFloat(*q.Latitude, 'f', -1, 64))
		params.Set("lon", strconv.FormatFloat(*q.Longitude, 'f', -1, 64))
	}
	if q.Radius != "" {
		params.Set("span", q.Radius)
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		res, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: place search: %v", types.ErrUpstream, err)
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
			return nil, fmt.Errorf("%w: place search returned %d: %s", types.ErrUpstream, res.StatusCode, msg)
		}
		return io.ReadAll(io.LimitReader(res.Body, maxSearchBody))
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "place search failed")
		if resilience.IsOpen(err) {
			return nil, fmt.Errorf("%w: place search unavailable: %v", types.ErrUpstream, err)
		}
		return nil, err
	}

	var resp longdoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return nil, fmt.Errorf("%w: decoding place search response: %v", types.ErrUpstream, err)
	}
	if resp.Data == nil {
		resp.Data = []types.NearbyPlace{}
	}

	span.SetAttributes(attribute.Int("place.search.results", len(resp.Data)))
	span.SetStatus(codes.Ok, "place search done")
	return resp.Data, nil
}
