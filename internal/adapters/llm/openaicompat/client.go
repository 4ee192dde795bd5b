// Package openaicompat implements the provider port against any backend that
// speaks the OpenAI chat-completions wire format. Both the Groq and OpenAI
// providers are instances of this client with different base URLs and models.
package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/domain"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/normalize"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/persona"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/ports"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/prompt"
)

type Client struct {
	httpClient *http.Client
	name       string
	apiKey     string
	baseURL    string
	model      string
	params     persona.ModelParams
	composer   *prompt.Composer
	logger     *slog.Logger
}

func NewClient(httpClient *http.Client, name, apiKey, baseURL, model string, params persona.ModelParams, composer *prompt.Composer, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		name:       name,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		params:     params,
		composer:   composer,
		logger:     logger,
	}
}

func (c *Client) Name() string { return c.name }

// chatRequest / chatResponse mirror the OpenAI-compatible API shapes.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float32         `json:"temperature"`
	MaxTokens      int32           `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) Interpret(ctx context.Context, in ports.InterpretInput) (domain.Interpretation, error) {
	content, err := c.callLLM(ctx, c.composer.System(in.PersonaKey), c.composer.User(in))
	if err != nil {
		return domain.Interpretation{}, fmt.Errorf("%w: %s: %w", domain.ErrUpstreamProvider, c.name, err)
	}
	// Parse failures do not fail the provider; the normalizer degrades
	// instead, preserving whatever the model said.
	return normalize.Result(content), nil
}

func (c *Client) callLLM(ctx context.Context, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    c.params.Temperature,
		MaxTokens:      c.params.MaxOutputTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream status %d: %s", resp.StatusCode, string(respBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}
