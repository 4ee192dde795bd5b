// Package gemini implements the provider port against the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/domain"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/normalize"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/persona"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/ports"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/prompt"
)

type Provider struct {
	client   *genai.Client
	model    string
	config   *genai.GenerateContentConfig
	composer *prompt.Composer
	logger   *slog.Logger
}

// New constructs the Gemini provider. A missing API key is a construction-time
// failure; the caller skips the provider instead of retrying.
func New(ctx context.Context, apiKey, model string, params persona.ModelParams, composer *prompt.Composer, logger *slog.Logger) (*Provider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Provider{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(params.Temperature),
			TopK:            genai.Ptr(params.TopK),
			MaxOutputTokens: params.MaxOutputTokens,
			// Force JSON mode; the repair chain still guards the output.
			ResponseMIMEType: "application/json",
		},
		composer: composer,
		logger:   logger,
	}, nil
}

func (p *Provider) Name() string { return "gemini" }

func (p *Provider) Interpret(ctx context.Context, in ports.InterpretInput) (domain.Interpretation, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(p.composer.Compose(in), genai.RoleUser),
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, p.config)
	if err != nil {
		return domain.Interpretation{}, fmt.Errorf("%w: gemini: %w", domain.ErrUpstreamProvider, err)
	}

	text := resp.Text()
	if text == "" {
		return domain.Interpretation{}, fmt.Errorf("%w: gemini: empty response", domain.ErrUpstreamProvider)
	}

	p.logger.DebugContext(ctx, "gemini raw response", "model", p.model, "length", len(text))
	return normalize.Result(text), nil
}
