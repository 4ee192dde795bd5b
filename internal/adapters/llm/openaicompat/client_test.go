package openaicompat_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/adapters/llm/openaicompat"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/domain"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/persona"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/ports"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/prompt"
)

func newTestClient(t *testing.T, baseURL string) *openaicompat.Client {
	t.Helper()
	table, err := persona.Load()
	if err != nil {
		t.Fatalf("load personas: %v", err)
	}
	return openaicompat.NewClient(
		http.DefaultClient,
		"groq",
		"test-key",
		baseURL,
		"test-model",
		table.Params(),
		prompt.NewComposer(table),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func chatReply(content string) string {
	reply := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(reply)
	return string(b)
}

func TestInterpret_Success(t *testing.T) {
	var gotReq struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	var gotAuth, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		io.WriteString(w, chatReply(`{"interpretation": "denizin yorumu", "energy": 80, "symbols": []}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	result, err := c.Interpret(context.Background(), ports.InterpretInput{
		DreamText: "denizde yüzüyordum",
		UserName:  "Ayşe",
	})
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}

	if result.Text != "denizin yorumu" {
		t.Errorf("text = %q, want %q", result.Text, "denizin yorumu")
	}
	if result.Energy != 80 {
		t.Errorf("energy = %d, want 80", result.Energy)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotPath != "/chat/completions" {
		t.Errorf("path = %q", gotPath)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Fatalf("unexpected messages: %+v", gotReq.Messages)
	}
	if !strings.Contains(gotReq.Messages[1].Content, "denizde yüzüyordum") {
		t.Error("user message must carry the dream text")
	}
	if !strings.Contains(gotReq.Messages[1].Content, "Sevgili Ayşe,") {
		t.Error("user message must carry the salutation clause")
	}
}

func TestInterpret_UpstreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Interpret(context.Background(), ports.InterpretInput{DreamText: "bir rüya"})
	if !errors.Is(err, domain.ErrUpstreamProvider) {
		t.Errorf("err = %v, want ErrUpstreamProvider", err)
	}
}

func TestInterpret_EmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"choices": []}`)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Interpret(context.Background(), ports.InterpretInput{DreamText: "bir rüya"})
	if !errors.Is(err, domain.ErrUpstreamProvider) {
		t.Errorf("err = %v, want ErrUpstreamProvider", err)
	}
}

func TestInterpret_MalformedContentDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, chatReply("bu bir json yanıtı değil"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	result, err := c.Interpret(context.Background(), ports.InterpretInput{DreamText: "bir rüya"})
	if err != nil {
		t.Fatalf("malformed content must degrade, not fail: %v", err)
	}
	if !strings.Contains(result.Text, "bu bir json yanıtı değil") {
		t.Errorf("degraded text must embed the raw content, got %q", result.Text)
	}
	if result.Energy != 50 {
		t.Errorf("degraded energy = %d, want 50", result.Energy)
	}
}

func TestInterpret_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Interpret(context.Background(), ports.InterpretInput{DreamText: "bir rüya"})
	if !errors.Is(err, domain.ErrUpstreamProvider) {
		t.Errorf("err = %v, want ErrUpstreamProvider", err)
	}
}
