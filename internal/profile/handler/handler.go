package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"stellium/internal/platform/middleware"
	"stellium/internal/profile"
	"stellium/internal/transport/http/shared"
	dErrors "stellium/pkg/domain-errors"
)

// Service defines the profile operations the HTTP layer depends on.
type Service interface {
	Calculate(ctx context.Context, req profile.CalculateRequest) (profile.CosmicProfile, error)
	Score(ctx context.Context, req profile.ScoreRequest) (profile.ScoreResponse, error)
}

// Handler handles profile and compatibility endpoints.
type Handler struct {
	logger  *slog.Logger
	profile Service
}

// New creates a new profile Handler.
func New(profileSvc Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		profile: profileSvc,
	}
}

// Register registers the profile routes with the chi router. Routes go in an
// inline group so the middleware stack stays local to this handler and other
// handlers can register on the same parent.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.Logger(h.logger))
		r.Use(middleware.Timeout(30 * time.Second))
		r.Use(middleware.ContentTypeJSON)
		r.Post("/profile/calculate", h.handleCalculate)
		r.Post("/compatibility/score", h.handleScore)
	})
}

func (h *Handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req profile.CalculateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}

	result, err := h.profile.Calculate(ctx, req)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) || dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			h.logger.WarnContext(ctx, "invalid profile calculation request",
				"request_id", requestID,
				"error", err.Error(),
			)
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "profile calculation failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "profile calculation failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleScore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req profile.ScoreRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}

	result, err := h.profile.Score(ctx, req)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) || dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			h.logger.WarnContext(ctx, "invalid compatibility request",
				"request_id", requestID,
				"error", err.Error(),
			)
			shared.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "compatibility scoring failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "compatibility scoring failed"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, result)
}
