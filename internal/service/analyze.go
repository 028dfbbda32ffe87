package service

import (
	"context"
	"time"

	"github.com/mkallio/fridgechef/internal/config"
	"github.com/mkallio/fridgechef/internal/domain"
	"github.com/mkallio/fridgechef/internal/llm"
	"github.com/rs/zerolog/log"
)

// AnalysisService runs the fridge-photo analysis pipeline. The model client
// is never a package-level singleton: a provider is resolved per request from
// either the caller's personal credential or the process-wide shared one, so
// concurrent requests cannot interfere.
type AnalysisService struct {
	cfg             *config.Config
	personalFactory llm.ProviderFactory
	shared          llm.VisionProvider
}

// NewAnalysisService creates a new analysis service. personalFactory builds a
// provider for a caller-supplied credential; shared is the provider bound to
// the process-wide credential, nil when none is configured.
func NewAnalysisService(cfg *config.Config, personalFactory llm.ProviderFactory, shared llm.VisionProvider) *AnalysisService {
	return &AnalysisService{
		cfg:             cfg,
		personalFactory: personalFactory,
		shared:          shared,
	}
}

// Analyze runs the stage sequence: validate input, process settings, build
// prompt, call model, parse response. Each stage is terminal on failure and
// nothing is retried; the first error is classified and returned.
func (s *AnalysisService) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.AnalysisResult, *domain.ClassifiedError) {
	start := time.Now()
	personal := req.APIKey != ""

	if err := ValidateUpload(req.Files, s.cfg.Upload); err != nil {
		return nil, s.fail(err, personal)
	}

	image, err := readImage(req.Files[0])
	if err != nil {
		log.Error().Err(err).Msg("failed to read uploaded image")
		return nil, s.fail(err, personal)
	}

	settings, err := ProcessUserSettings(req.RawSettings)
	if err != nil {
		return nil, s.fail(err, personal)
	}

	locale := ExtractLocale(req.Locale)
	restrictions := ProcessLegacyDietaryRestrictions(req.DietaryRestrictions)

	provider, cerr := s.resolveProvider(req.APIKey)
	if cerr != nil {
		return nil, cerr
	}

	prompt := llm.BuildAnalysisPrompt(llm.PromptParams{
		Locale:              locale,
		Preferences:         req.Preferences,
		DietaryRestrictions: restrictions,
		Settings:            settings,
	})

	resp, err := provider.AnalyzeImage(ctx, llm.VisionRequest{
		ImageData: image.Data,
		MimeType:  image.MimeType,
		Prompt:    prompt,
	}, "")
	if err != nil {
		log.Error().Err(err).Str("provider", provider.Name()).Msg("model call failed")
		return nil, s.fail(err, personal)
	}

	recipe, err := llm.ParseRecipe(resp.Text)
	if err != nil {
		log.Warn().Err(err).Str("provider", provider.Name()).Str("model", resp.Model).
			Msg("model response failed recipe contract")
		return nil, s.fail(err, personal)
	}

	return &domain.AnalysisResult{
		Recipe:           recipe,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
		Provider:         provider.Name(),
		Model:            resp.Model,
		TokensUsed:       resp.TokensUsed,
	}, nil
}

// resolveProvider builds the per-request provider from the personal
// credential, falling back to the shared one
func (s *AnalysisService) resolveProvider(apiKey string) (llm.VisionProvider, *domain.ClassifiedError) {
	if apiKey != "" {
		if err := ValidateAPIKeyFormat(apiKey); err != nil {
			return nil, s.fail(err, true)
		}
		return s.personalFactory(apiKey), nil
	}

	if s.shared == nil || !s.shared.IsConfigured() {
		return nil, s.fail(&AuthError{Message: MsgNoAPIKey}, false)
	}
	return s.shared, nil
}

// fail classifies err, swapping in the personal-credential wording when the
// failing key came from the caller
func (s *AnalysisService) fail(err error, personal bool) *domain.ClassifiedError {
	ce := Classify(err)
	if ce.IsAuthError && personal && ce.Message == msgAuthShared {
		ce.Message = msgAuthPersonal
	}
	return &ce
}
