// Package handler wires the prediction endpoints to the predict service.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"houseprice/internal/platform/middleware"
	"houseprice/internal/predict"
	dErrors "houseprice/pkg/domain-errors"
	"houseprice/pkg/platform/httputil"
)

// Service defines the interface for prediction operations.
type Service interface {
	PredictOne(ctx context.Context, requestID string, req predict.Request) (*predict.Result, error)
	PredictBatch(ctx context.Context, reqs []predict.Request) ([]float64, error)
}

// Handler handles prediction endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a prediction handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the prediction endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/predict", h.HandlePredict)
	r.Post("/predict/batch", h.HandlePredictBatch)
	r.Get("/healthz", h.HandleHealth)
}

// HandlePredict handles POST /predict requests.
func (h *Handler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	start := time.Now()

	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(ctx, "invalid predict request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.PredictOne(ctx, requestID, req.ToDomain())
	if err != nil {
		h.logger.ErrorContext(ctx, "prediction failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "prediction served",
		"request_id", requestID,
		"predicted_price", result.PredictedPrice,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandlePredictBatch handles POST /predict/batch requests. The body is a
// bare JSON array of records; estimates come back in the same order.
func (h *Handler) HandlePredictBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var reqs []PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&reqs); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	domain := make([]predict.Request, len(reqs))
	for i, req := range reqs {
		if err := req.Validate(); err != nil {
			h.logger.WarnContext(ctx, "invalid batch record",
				"request_id", requestID,
				"index", i,
				"error", err.Error(),
			)
			httputil.WriteError(w, err)
			return
		}
		domain[i] = req.ToDomain()
	}

	estimates, err := h.service.PredictBatch(ctx, domain)
	if err != nil {
		h.logger.ErrorContext(ctx, "batch prediction failed",
			"request_id", requestID,
			"size", len(domain),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, BatchResponse{Predictions: estimates})
}

// HandleHealth reports readiness. The process only serves traffic after the
// artifact loader succeeded, so reaching this handler means healthy.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
