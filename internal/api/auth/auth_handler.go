package auth

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

// SignUp handles POST /signup.
func (h *HandlerImpl) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "SignUp", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/signup"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SignUp"))

	var req types.SignUpRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	account, err := h.service.SignUp(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Sign up failed")
		api.ErrorResponse(w, r, api.StatusFromError(err), clientMessage(err, "Failed to create account"))
		return
	}

	span.SetStatus(codes.Ok, "Account created")
	api.WriteJSONResponse(w, r, http.StatusCreated, account)
}

// SignIn handles POST /signin.
func (h *HandlerImpl) SignIn(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AuthHandler").Start(r.Context(), "SignIn", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/signin"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SignIn"))

	var req types.SignInRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	token, err := h.service.SignIn(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Sign in failed")
		api.ErrorResponse(w, r, api.StatusFromError(err), clientMessage(err, "Failed to sign in"))
		return
	}

	span.SetStatus(codes.Ok, "Token issued")
	api.WriteJSONResponse(w, r, http.StatusOK, types.TokenResponse{Token: token})
}

// clientMessage exposes client errors and hides everything else.
func clientMessage(err error, fallback string) string {
	if errors.Is(err, types.ErrValidation) || errors.Is(err, types.ErrConflict) {
		return err.Error()
	}
	if errors.Is(err, types.ErrAuth) {
		return errInvalidCredentials.Error()
	}
	return fallback
}
