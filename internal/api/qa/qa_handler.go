package qa

import (
	"errors"
	"fmt"
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

// SubmitAnswer handles POST /qa_transaction.
func (h *HandlerImpl) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("QAHandler").Start(r.Context(), "SubmitAnswer", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/qa_transaction"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SubmitAnswer"))

	var req types.QATransactionRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Submit(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Submission failed")
		status := api.StatusFromError(err)
		msg := "Failed to save questionnaire answer"
		if errors.Is(err, types.ErrValidation) {
			msg = err.Error()
		}
		api.ErrorResponse(w, r, status, msg)
		return
	}

	span.SetStatus(codes.Ok, "Answer stored")
	api.SuccessResponse(w, r, http.StatusOK, result)
}

// ListTransactions handles GET /qa_transaction.
func (h *HandlerImpl) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("QAHandler").Start(r.Context(), "ListTransactions", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/qa_transaction"),
	))
	defer span.End()

	views, err := h.service.ListTransactions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list questionnaire answers", slog.Any("error", err))
		span.SetStatus(codes.Error, "List failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve questionnaire answers")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, views)
}

// ListResults handles GET /qa_results with an optional account_id filter.
func (h *HandlerImpl) ListResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("QAHandler").Start(r.Context(), "ListResults", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/qa_results"),
	))
	defer span.End()

	var accountID int64
	if raw := r.URL.Query().Get("account_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			span.SetStatus(codes.Error, "Invalid account_id")
			api.ErrorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("invalid account_id %q", raw))
			return
		}
		accountID = id
	}

	results, err := h.service.ListResults(ctx, accountID)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list results", slog.Any("error", err))
		span.SetStatus(codes.Error, "List failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve results")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, results)
}
