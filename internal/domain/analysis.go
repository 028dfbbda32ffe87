package domain

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
)

// AnalysisRequest carries the raw multipart fields of one fridge analysis.
// Constructed fresh per request and never mutated after construction.
type AnalysisRequest struct {
	Files []*multipart.FileHeader

	// Free-text preferences from the form, optional
	Preferences string

	// Legacy JSON-array-as-string dietary restrictions, optional
	DietaryRestrictions string

	// Raw locale tag, normalized by the settings processor
	Locale string

	// Raw userSettings JSON, optional
	RawSettings string

	// Personal provider credential, optional. When empty the process-wide
	// shared credential is used.
	APIKey string
}

// ImagePayload is a validated image ready for the vision provider
type ImagePayload struct {
	Data     []byte
	MimeType string
	Size     int64
}

// AnalysisResult is a successful pipeline outcome
type AnalysisResult struct {
	Recipe           *Recipe `json:"recipe"`
	ProcessingTimeMs int64   `json:"processingTime"`
	Provider         string  `json:"-"`
	Model            string  `json:"-"`
	TokensUsed       int     `json:"-"`
}

// ClassifiedError is the normalized failure triple surfaced to callers.
// Message is always a static, pre-defined string per category.
type ClassifiedError struct {
	Status      int    `json:"status"`
	Message     string `json:"message"`
	IsAuthError bool   `json:"isAuthError"`
}

// AnalysisRecord is one row of analysis history. Persistence happens outside
// the analysis pipeline, best-effort.
type AnalysisRecord struct {
	ID            uuid.UUID `json:"id"`
	ClientID      string    `json:"client_id"`
	Locale        string    `json:"locale"`
	Success       bool      `json:"success"`
	RecipeTitle   string    `json:"recipe_title,omitempty"`
	ErrorCategory string    `json:"error_category,omitempty"`
	Provider      string    `json:"provider,omitempty"`
	Model         string    `json:"model,omitempty"`
	TokensUsed    int       `json:"tokens_used"`
	LatencyMs     int64     `json:"latency_ms"`
	CreatedAt     time.Time `json:"created_at"`
}

// AnalysisHistoryRepository persists analysis records
type AnalysisHistoryRepository interface {
	Create(ctx context.Context, record *AnalysisRecord) error
	ListByClient(ctx context.Context, clientID string, limit int) ([]AnalysisRecord, error)
}

// SettingsStore persists user settings keyed by client ID
type SettingsStore interface {
	Get(ctx context.Context, clientID string) (*UserSettings, error)
	Set(ctx context.Context, clientID string, settings *UserSettings) error
	Delete(ctx context.Context, clientID string) error
}
