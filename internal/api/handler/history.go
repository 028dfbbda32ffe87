package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mkallio/fridgechef/internal/api/response"
	"github.com/mkallio/fridgechef/internal/domain"
)

// HistoryHandler serves past analysis outcomes
type HistoryHandler struct {
	repo domain.AnalysisHistoryRepository
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(repo domain.AnalysisHistoryRepository) *HistoryHandler {
	return &HistoryHandler{repo: repo}
}

// List returns recent analysis records for a client
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			response.BadRequest(w, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	records, err := h.repo.ListByClient(r.Context(), clientID, limit)
	if err != nil {
		response.InternalError(w, "failed to load history")
		return
	}

	response.OK(w, records)
}
