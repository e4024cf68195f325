package analytics

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Adithya-Monish-Kumar-K/search-server/pkg/logger"
)

// Handler serves the request queue's Stats as JSON.
type Handler struct {
	queue  *RequestQueue
	logger *slog.Logger
}

func NewHandler(queue *RequestQueue) *Handler {
	return &Handler{
		queue:  queue,
		logger: logger.WithComponent("analytics-handler"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(h.queue.Stats()); err != nil {
		h.logger.Error("failed to write analytics response", "error", err)
	}
}
