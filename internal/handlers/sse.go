package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/starfederation/datastar-go/datastar"

	"superstore-dashboard/internal/errors"
	"superstore-dashboard/internal/models"
	"superstore-dashboard/internal/observability"
	"superstore-dashboard/internal/services"
	"superstore-dashboard/internal/ui/templates"
)

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// HandleView patches the metric cards and the content of one view, and
// publishes its chart series as the "charts" signal.
func (h *SSEHandlers) HandleView(w http.ResponseWriter, r *http.Request) {
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

	sse := datastar.NewSSE(w, r)
	log := observability.RequestLogger(r.Context(), h.logger)

	_, span := observability.StartSpan(r.Context(), "view."+view.Slug())
	defer span.Finish()
	span.SetTag("filter", req.Spec.Key())

	payload := h.analytics.View(req.Spec, view, req.Category, req.Theme)
	span.SetTag("rows", strconv.Itoa(payload.RowCount))

	cards, err := templates.RenderString(r.Context(), templates.MetricCards(payload.Cards))
	if err != nil {
		log.Error("render metric cards", "error", err)
		return
	}
	content, err := templates.RenderString(r.Context(), templates.ViewContent(payload))
	if err != nil {
		span.SetError(err)
		log.Error("render view content", "error", err, "view", view)
		return
	}

	sse.PatchElements(cards)
	sse.PatchElements(content)

	jsonData, err := json.Marshal(map[string]any{
		"view":     view.Slug(),
		"charts":   payload.Charts,
		"rowCount": payload.RowCount,
	})
	if err != nil {
		log.Error("marshal chart signals", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleRefreshAll recomputes every view under the current filters and sends
// all chart series in one signal patch, keyed by view slug.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	req, err := readRequest(r)
	if err != nil {
		errors.WriteError(w, h.logger, errors.BadRequestWrap(err, "invalid filter"), requestID)
		return
	}

	if !h.analytics.Loaded() {
		errors.WriteError(w, h.logger, errors.DataSource("sales data is not loaded"), requestID)
		return
	}

	sse := datastar.NewSSE(w, r)
	log := observability.RequestLogger(r.Context(), h.logger)

	charts := make(map[string][]models.Chart, len(models.Views))
	var cardsHTML string
	for _, view := range models.Views {
		payload := h.analytics.View(req.Spec, view, req.Category, req.Theme)
		charts[view.Slug()] = payload.Charts
		if view == models.ViewOverview {
			cardsHTML, err = templates.RenderString(r.Context(), templates.MetricCards(payload.Cards))
			if err != nil {
				log.Error("render metric cards", "error", err)
				return
			}
		}
	}
	sse.PatchElements(cardsHTML)

	allSignals, err := json.Marshal(map[string]any{
		"allCharts": charts,
	})
	if err != nil {
		log.Error("marshal all signals data", "error", err)
		return
	}
	sse.PatchSignals(allSignals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
