package profile

import (
	"errors"
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

// GetProfile handles GET /profile/{id}.
func (h *HandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProfileHandler").Start(r.Context(), "GetProfile", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/profile/{id}"),
	))
	defer span.End()

	id, err := api.ParseIDParam(r, "id")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.service.GetProfile(ctx, id)
	if err != nil {
		h.fail(w, r, span, err, "Failed to retrieve profile")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, account)
}

// UpdateProfile handles PUT /profile/{id}.
func (h *HandlerImpl) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProfileHandler").Start(r.Context(), "UpdateProfile", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/profile/{id}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "UpdateProfile"))

	id, err := api.ParseIDParam(r, "id")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req types.UpdateProfileRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.service.UpdateProfile(ctx, id, req)
	if err != nil {
		h.fail(w, r, span, err, "Failed to update profile")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, account)
}

// SetLocation handles POST /profile_location/{id}. A first location is 201,
// later ones 200.
func (h *HandlerImpl) SetLocation(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ProfileHandler").Start(r.Context(), "SetLocation", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/profile_location/{id}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SetLocation"))

	id, err := api.ParseIDParam(r, "id")
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req types.LocationRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	loc, inserted, err := h.service.SetLocation(ctx, id, req)
	if err != nil {
		h.fail(w, r, span, err, "Failed to store location")
		return
	}

	status := http.StatusOK
	if inserted {
		status = http.StatusCreated
	}
	api.WriteJSONResponse(w, r, status, loc)
}

func (h *HandlerImpl) fail(w http.ResponseWriter, r *http.Request, span trace.Span, err error, fallback string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, fallback)
	status := api.StatusFromError(err)
	msg := fallback
	switch {
	case errors.Is(err, types.ErrValidation):
		msg = err.Error()
	case errors.Is(err, types.ErrNotFound):
		msg = "Profile not found"
	}
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), fallback, slog.Any("error", err))
	}
	api.ErrorResponse(w, r, status, msg)
}
