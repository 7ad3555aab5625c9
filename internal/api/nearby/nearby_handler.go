package nearby

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/api"
	"github.com/FACorreiaa/go-travel-qa-suggestions/internal/types"
)

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{service: service, logger: logger}
}

// SearchNearby handles GET /search_nearby?latitude&longitude&radius or
// ?postcode.
func (h *HandlerImpl) SearchNearby(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("NearbyHandler").Start(r.Context(), "SearchNearby", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/search_nearby"),
	))
	defer span.End()

	values := r.URL.Query()
	q := types.NearbyQuery{
		Postcode: values.Get("postcode"),
		Radius:   values.Get("radius"),
	}
	var err error
	if q.Latitude, err = optionalFloat(values.Get("latitude")); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid latitude")
		return
	}
	if q.Longitude, err = optionalFloat(values.Get("longitude")); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "invalid longitude")
		return
	}

	resp, err := h.service.Search(ctx, q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Search failed")
		msg := err.Error()
		if !errors.Is(err, types.ErrValidation) && !errors.Is(err, types.ErrUpstream) {
			msg = "Failed to search nearby places"
		}
		api.ErrorResponse(w, r, api.StatusFromError(err), msg)
		return
	}

	span.SetStatus(codes.Ok, "Search done")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}

func optionalFloat(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
