package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mkallio/fridgechef/internal/api/handler"
	custommiddleware "github.com/mkallio/fridgechef/internal/api/middleware"
	"github.com/mkallio/fridgechef/internal/config"
	"github.com/mkallio/fridgechef/internal/llm"
	"github.com/mkallio/fridgechef/internal/llm/anthropic"
	"github.com/mkallio/fridgechef/internal/llm/gemini"
	"github.com/mkallio/fridgechef/internal/repository/postgres"
	"github.com/mkallio/fridgechef/internal/repository/redis"
	"github.com/mkallio/fridgechef/internal/service"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.MiddlewareTimeout))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Unsupported methods get the fixed refusal rather than chi's default
	r.MethodNotAllowed(handler.MethodNotAllowed)

	// Personal credentials are Anthropic keys, so per-request providers are
	// always Anthropic. The shared provider follows configuration.
	personalFactory := llm.ProviderFactory(func(apiKey string) llm.VisionProvider {
		return anthropic.NewProvider(apiKey, cfg.LLM.Anthropic.Model)
	})
	shared := sharedProvider(cfg)
	if shared == nil {
		log.Warn().Msg("no shared model credential configured; requests must carry a personal API key")
	} else {
		log.Info().Str("provider", shared.Name()).Msg("shared model provider configured")
	}

	// Repositories
	historyRepo := postgres.NewHistoryRepository(db)
	settingsStore := redis.NewSettingsStore(redisClient)

	// Services
	analysisService := service.NewAnalysisService(cfg, personalFactory, shared)

	// Handlers
	analyzeHandler := handler.NewAnalyzeHandler(analysisService, historyRepo)
	settingsHandler := handler.NewSettingsHandler(settingsStore)
	historyHandler := handler.NewHistoryHandler(historyRepo)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db, redisClient))

		r.Post("/analyze", analyzeHandler.Analyze)
		r.Post("/validate-key", handler.ValidateKey)

		r.Route("/settings/{clientID}", func(r chi.Router) {
			r.Get("/", settingsHandler.Get)
			r.Put("/", settingsHandler.Put)
			r.Delete("/", settingsHandler.Delete)
		})

		r.Get("/history/{clientID}", historyHandler.List)
	})

	return r
}

// sharedProvider builds the provider for the process-wide credential, nil
// when no credential is configured
func sharedProvider(cfg *config.Config) llm.VisionProvider {
	switch cfg.LLM.DefaultProvider {
	case "gemini":
		if cfg.LLM.Gemini.APIKey != "" {
			return gemini.NewProvider(cfg.LLM.Gemini.APIKey, cfg.LLM.Gemini.Model)
		}
	default:
		if cfg.LLM.Anthropic.APIKey != "" {
			return anthropic.NewProvider(cfg.LLM.Anthropic.APIKey, cfg.LLM.Anthropic.Model)
		}
		// Fall back to Gemini when only its key is present
		if cfg.LLM.Gemini.APIKey != "" {
			return gemini.NewProvider(cfg.LLM.Gemini.APIKey, cfg.LLM.Gemini.Model)
		}
	}
	return nil
}
