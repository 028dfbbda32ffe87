package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/mkallio/fridgechef/internal/api/response"
	"github.com/mkallio/fridgechef/internal/domain"
	"github.com/mkallio/fridgechef/internal/service"
	"github.com/rs/zerolog/log"
)

// maxMultipartMemory bounds in-memory parsing; larger parts spill to disk
const maxMultipartMemory = 16 << 20

// AnalyzeHandler handles fridge-photo analysis requests
type AnalyzeHandler struct {
	analysisService *service.AnalysisService
	historyRepo     domain.AnalysisHistoryRepository
}

// NewAnalyzeHandler creates a new analyze handler
func NewAnalyzeHandler(analysisService *service.AnalysisService, historyRepo domain.AnalysisHistoryRepository) *AnalyzeHandler {
	return &AnalyzeHandler{
		analysisService: analysisService,
		historyRepo:     historyRepo,
	}
}

// analyzeResponse is the fixed response contract of the analyze endpoint
type analyzeResponse struct {
	Success        bool           `json:"success"`
	Recipe         *domain.Recipe `json:"recipe,omitempty"`
	Error          string         `json:"error,omitempty"`
	ProcessingTime int64          `json:"processingTime"`
}

// Analyze handles one multipart analysis request
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.Raw(w, http.StatusBadRequest, analyzeResponse{
			Success:        false,
			Error:          "Invalid multipart form data",
			ProcessingTime: time.Since(start).Milliseconds(),
		})
		return
	}

	req := domain.AnalysisRequest{
		Files:               r.MultipartForm.File["image"],
		Preferences:         r.FormValue("preferences"),
		DietaryRestrictions: r.FormValue("dietaryRestrictions"),
		Locale:              r.FormValue("locale"),
		RawSettings:         r.FormValue("userSettings"),
		APIKey:              r.FormValue("apiKey"),
	}

	result, cerr := h.analysisService.Analyze(r.Context(), req)
	elapsed := time.Since(start).Milliseconds()

	clientID := r.FormValue("clientId")
	if clientID == "" {
		clientID = "anonymous"
	}
	locale := service.ExtractLocale(req.Locale)

	if cerr != nil {
		h.record(r.Context(), &domain.AnalysisRecord{
			ID:            uuid.New(),
			ClientID:      clientID,
			Locale:        string(locale),
			Success:       false,
			ErrorCategory: errorCategory(cerr.Status),
			LatencyMs:     elapsed,
			CreatedAt:     time.Now(),
		})
		response.Raw(w, cerr.Status, analyzeResponse{
			Success:        false,
			Error:          cerr.Message,
			ProcessingTime: elapsed,
		})
		return
	}

	h.record(r.Context(), &domain.AnalysisRecord{
		ID:          uuid.New(),
		ClientID:    clientID,
		Locale:      string(locale),
		Success:     true,
		RecipeTitle: result.Recipe.Title,
		Provider:    result.Provider,
		Model:       result.Model,
		TokensUsed:  result.TokensUsed,
		LatencyMs:   result.ProcessingTimeMs,
		CreatedAt:   time.Now(),
	})

	response.Raw(w, http.StatusOK, analyzeResponse{
		Success:        true,
		Recipe:         result.Recipe,
		ProcessingTime: result.ProcessingTimeMs,
	})
}

// MethodNotAllowed is the fixed refusal for unsupported methods
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	response.Raw(w, http.StatusMethodNotAllowed, analyzeResponse{
		Success: false,
		Error:   "Method not allowed",
	})
}

// record persists an analysis record best-effort; a storage failure never
// fails the request
func (h *AnalyzeHandler) record(ctx context.Context, rec *domain.AnalysisRecord) {
	if h.historyRepo == nil {
		return
	}
	if err := h.historyRepo.Create(ctx, rec); err != nil {
		log.Error().Err(err).Msg("failed to save analysis record")
	}
}

func errorCategory(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation"
	case http.StatusUnauthorized:
		return "auth"
	case http.StatusTooManyRequests:
		return "rate_limited"
	case http.StatusBadGateway:
		return "upstream_format"
	default:
		return "internal"
	}
}
