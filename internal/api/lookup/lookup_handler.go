package lookup

import (
	"context"
	"log/slog"
	"net/http"

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

// serveList writes the result of load as a bare JSON array.
func serveList[T any](h *HandlerImpl, route string, load func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := otel.Tracer("LookupHandler").Start(r.Context(), route, trace.WithAttributes(
			semconv.HTTPRequestMethodKey.String(r.Method),
			semconv.HTTPRouteKey.String(route),
		))
		defer span.End()

		items, err := load(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "Failed to load lookup list", slog.String("route", route), slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "Load failed")
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve data")
			return
		}
		api.WriteJSONResponse(w, r, http.StatusOK, items)
	}
}

func (h *HandlerImpl) Pictures() http.HandlerFunc {
	return serveList(h, "/qa_picture", h.service.Pictures)
}

func (h *HandlerImpl) Activities() http.HandlerFunc {
	return serveList(h, "/qa_activity", h.service.Activities)
}

func (h *HandlerImpl) TravelTypes() http.HandlerFunc {
	return serveList(h, "/qa_traveling", h.service.TravelTypes)
}

func (h *HandlerImpl) DistanceBands() http.HandlerFunc {
	return serveList(h, "/qa_distance", h.service.DistanceBands)
}

func (h *HandlerImpl) ValueTiers() http.HandlerFunc {
	return serveList(h, "/qa_value", h.service.ValueTiers)
}

func (h *HandlerImpl) EmotionalStates() http.HandlerFunc {
	return serveList(h, "/qa_emotional", h.service.EmotionalStates)
}

// Provinces handles GET /province/{id}, listing the provinces of a region.
func (h *HandlerImpl) Provinces(w http.ResponseWriter, r *http.Request) {
	regionID, err := api.ParseIDParam(r, "id")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	serveList(h, "/province/{id}", func(ctx context.Context) ([]types.Province, error) {
		return h.service.ProvincesByRegion(ctx, regionID)
	})(w, r)
}
