package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/mkallio/fridgechef/internal/llm"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Provider implements llm.VisionProvider for Gemini
type Provider struct {
	apiKey string
	model  string
}

// NewProvider creates a new Gemini provider bound to the given credential
func NewProvider(apiKey, model string) *Provider {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Provider{
		apiKey: apiKey,
		model:  model,
	}
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) DefaultModel() string {
	return p.model
}

func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

// AnalyzeImage sends the image and prompt to Gemini
func (p *Provider) AnalyzeImage(ctx context.Context, req llm.VisionRequest, model string) (*llm.VisionResponse, error) {
	if !p.IsConfigured() {
		return nil, &llm.ProviderError{Provider: "gemini", Message: "missing API key"}
	}

	if model == "" {
		model = p.model
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	generativeModel := client.GenerativeModel(model)
	// Deterministic output keeps the recipe contract easier to hold
	var temperature float32 = 0.0
	generativeModel.Temperature = &temperature

	start := time.Now()
	resp, err := generativeModel.GenerateContent(ctx,
		&genai.Blob{MIMEType: req.MimeType, Data: req.ImageData},
		genai.Text(req.Prompt),
	)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return nil, &llm.ProviderError{
				Provider:   "gemini",
				StatusCode: apiErr.Code,
				Message:    apiErr.Message,
			}
		}
		return nil, &llm.ProviderError{Provider: "gemini", Message: err.Error()}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, &llm.ProviderError{Provider: "gemini", Message: "empty response"}
	}

	var output string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output += string(text)
		}
	}

	tokensUsed := 0
	if resp.UsageMetadata != nil {
		tokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}

	return &llm.VisionResponse{
		Text:       output,
		Model:      model,
		TokensUsed: tokensUsed,
		LatencyMs:  latency,
	}, nil
}
