package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"

	httpadapter "github.com/DuranGZR/Ai-Dream-Interpreter/internal/adapters/http"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/adapters/llm/gemini"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/adapters/llm/offline"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/adapters/llm/openaicompat"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/adapters/store/sqlite"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/app"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/cache"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/config"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/persona"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/ports"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/prompt"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/ratelimit"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/symbols"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	personas, err := persona.Load()
	if err != nil {
		logger.Error("failed to load personas", "error", err)
		os.Exit(1)
	}
	composer := prompt.NewComposer(personas)
	symbolStore := symbols.NewStore()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	providers := buildProviders(ctx, cfg, personas, composer, logger)
	if len(providers) == 0 {
		logger.Warn("no provider credentials configured, running offline only")
	}

	var store ports.DreamStore
	if dreamStore, err := sqlite.Open(cfg.DBPath); err != nil {
		logger.Warn("dream store unavailable, history disabled", "path", cfg.DBPath, "error", err)
	} else {
		store = dreamStore
		defer dreamStore.Close()
	}

	svc := app.NewInterpretationService(
		providers,
		offline.NewResponder(symbolStore),
		store,
		symbolStore,
		cache.New(cfg.CacheSize, cfg.CacheTTL),
		logger,
	)

	interpretWindow := ratelimit.NewWindow(cfg.InterpretLimit, cfg.RateWindow)
	dreamsWindow := ratelimit.NewWindow(cfg.DreamsLimit, cfg.RateWindow)
	interpretWindow.StartCleanup(cfg.RateWindow, ctx.Done())
	dreamsWindow.StartCleanup(cfg.RateWindow, ctx.Done())

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc, interpretWindow, dreamsWindow)
	handler.Register(e)

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr, "providers", len(providers))
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// buildProviders assembles the fallback chain in fixed priority order:
// Gemini, then Groq, then OpenAI. A provider with no credential is skipped.
func buildProviders(ctx context.Context, cfg config.Config, personas *persona.Table, composer *prompt.Composer, logger *slog.Logger) []ports.Provider {
	var providers []ports.Provider
	params := personas.Params()
	httpClient := &http.Client{Timeout: cfg.LLMTimeout}

	if cfg.GeminiAPIKey != "" {
		p, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, params, composer, logger)
		if err != nil {
			logger.Warn("skipping gemini provider", "error", err)
		} else {
			providers = append(providers, p)
		}
	}
	if cfg.GroqAPIKey != "" {
		providers = append(providers, openaicompat.NewClient(
			httpClient, "groq", cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, params, composer, logger))
	}
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, openaicompat.NewClient(
			httpClient, "openai", cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, params, composer, logger))
	}
	return providers
}
