package llm

import (
	"context"
	"fmt"
)

// VisionRequest contains one image and the instruction prompt for it
type VisionRequest struct {
	ImageData []byte
	MimeType  string
	Prompt    string
}

// VisionResponse contains the raw model output
type VisionResponse struct {
	Text       string
	Model      string
	TokensUsed int
	LatencyMs  int64
}

// VisionProvider defines the interface for vision-language model providers.
// The analysis pipeline only ever holds this interface; concrete providers
// are constructed per request from the credential in play.
type VisionProvider interface {
	// Name returns the provider identifier
	Name() string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	// AnalyzeImage sends the image and prompt to the model and returns its
	// raw text output
	AnalyzeImage(ctx context.Context, req VisionRequest, model string) (*VisionResponse, error)
}

// ProviderFactory builds a provider bound to a specific credential
type ProviderFactory func(apiKey string) VisionProvider

// ProviderError is a failure surfaced by a concrete provider. StatusCode is
// the provider's HTTP status where one was available, zero otherwise.
// Classification into user-facing categories happens downstream.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}
