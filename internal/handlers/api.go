package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"superstore-dashboard/internal/errors"
	"superstore-dashboard/internal/models"
	"superstore-dashboard/internal/observability"
	"superstore-dashboard/internal/services"
)

const cacheControl = "public, max-age=300"

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func (h *APIHandlers) HandleView(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	view, err := models.ParseView(r.PathValue("view"))
	if err != nil {
		errors.WriteError(w, h.logger, errors.NotFound(err.Error()), requestID)
		return
	}

	req, err := readRequest(r)
	if err != nil {
		errors.WriteError(w, h.logger, errors.BadRequestWrap(err, "invalid filter"), requestID)
		return
	}

	if !h.analytics.Loaded() {
		errors.WriteError(w, h.logger, errors.DataSource("sales data is not loaded"), requestID)
		return
	}

	_, span := observability.StartSpan(r.Context(), "view."+view.Slug())
	defer span.Finish()
	span.SetTag("filter", req.Spec.Key())

	payload := h.analytics.View(req.Spec, view, req.Category, req.Theme)
	span.SetTag("rows", strconv.Itoa(payload.RowCount))

	errors.WriteSuccessWithHeaders(w, payload, map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleOptions(w http.ResponseWriter, r *http.Request) {

	data := h.analytics.Options()

	errors.WriteSuccessWithHeaders(w, data, map[string]string{
		"Cache-Control": cacheControl,
	})
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {

	status := "healthy"
	if !h.analytics.Loaded() {
		status = "degraded"
	}

	healthData := map[string]string{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {

	stats := h.analytics.Stats()

	errors.WriteSuccess(w, stats)
}
