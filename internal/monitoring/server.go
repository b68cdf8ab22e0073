package monitoring

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/paveg/salarydash/internal/version"
)

// Handler serves the monitoring endpoints for a collector.
type Handler struct {
	collector *MetricsCollector
	started   time.Time
	records   int
}

// NewHandler creates monitoring endpoints. records is the size of the
// loaded dataset, reported by the health check.
func NewHandler(collector *MetricsCollector, records int) *Handler {
	return &Handler{
		collector: collector,
		started:   time.Now(),
		records:   records,
	}
}

// Routes registers /metrics, /metrics/summary and /health on r.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/metrics", h.handleMetrics)
	r.Get("/metrics/summary", h.handleSummary)
	r.Get("/health", h.handleHealth)
}

// handleMetrics serves the recorded operations.
func (h *Handler) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.collector.GetMetrics())
}

// handleSummary serves aggregate statistics over the recorded operations.
func (h *Handler) handleSummary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, h.collector.GetSummary())
}

// handleHealth serves the health check endpoint.
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(h.started).Round(time.Second).String(),
		"records":   h.records,
		"metrics":   h.collector.IsEnabled(),
		"version":   version.Version,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = buf.WriteTo(w)
}
