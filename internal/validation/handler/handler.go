package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"stellium/internal/platform/middleware"
	"stellium/internal/transport/http/shared"
	"stellium/internal/validation"
	dErrors "stellium/pkg/domain-errors"
)

const defaultRecentLimit = 20

// Handler exposes the validation battery and the diagnostics surface.
type Handler struct {
	logger    *slog.Logger
	validator *validation.Validator
	subjects  validation.Subjects
	history   validation.History
}

// New creates a new validation Handler.
func New(validator *validation.Validator, subjects validation.Subjects, history validation.History, logger *slog.Logger) *Handler {
	return &Handler{
		logger:    logger,
		validator: validator,
		subjects:  subjects,
		history:   history,
	}
}

// Register registers the validation routes with the chi router. Routes go in
// an inline group so the middleware stack stays local to this handler and
// other handlers can register on the same parent.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Recovery(h.logger))
		r.Use(middleware.RequestID)
		r.Use(middleware.Logger(h.logger))
		r.Use(middleware.Timeout(60 * time.Second))
		r.Post("/validation/run", h.handleRun)
		r.Get("/diagnostics/accuracy", h.handleDiagnostics)
	})
}

// handleRun executes the full battery and returns the report.
func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	report, err := h.validator.RunComprehensive(ctx, h.subjects)
	if err != nil {
		h.logger.ErrorContext(ctx, "validation battery failed",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "validation battery failed"))
		return
	}

	h.logger.InfoContext(ctx, "validation battery finished",
		"request_id", requestID,
		"run_id", report.RunID,
		"overall_accuracy", report.OverallAccuracy,
		"cases", len(report.TestResults),
	)
	shared.WriteJSON(w, http.StatusOK, report)
}

// diagnosticsResponse is the read-only aggregate view over history: lifetime
// stats plus accuracy and recommendations derived from the recent window.
type diagnosticsResponse struct {
	Stats           validation.Stats    `json:"stats"`
	OverallAccuracy float64             `json:"overall_accuracy"`
	Recommendations []string            `json:"recommendations,omitempty"`
	Recent          []validation.Result `json:"recent"`
}

// handleDiagnostics returns history aggregates plus the most recent runs.
// The limit query parameter caps the recent slice; 0 keeps the default.
func (h *Handler) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	limit := defaultRecentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			shared.WriteError(w, dErrors.Newf(dErrors.CodeBadRequest, "invalid limit: %q", raw))
			return
		}
		if n > 0 {
			limit = n
		}
	}

	stats, err := h.history.Stats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read history stats",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read history"))
		return
	}
	recent, err := h.history.Recent(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to read recent history",
			"request_id", requestID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read history"))
		return
	}

	resp := diagnosticsResponse{
		Stats:           stats,
		OverallAccuracy: validation.MeanAccuracy(recent),
		Recent:          recent,
	}
	if len(recent) > 0 {
		resp.Recommendations = validation.Recommendations(recent)
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}
