package ports

import (
	"context"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/domain"
)

// InterpretInput holds everything a provider needs to produce an interpretation.
type InterpretInput struct {
	DreamText  string
	Context    domain.ContextBundle
	PersonaKey string
	UserName   string
}

// Provider generates a dream interpretation against one specific backend.
// Implementations are stateless per call; credentials are resolved at
// construction time.
type Provider interface {
	// Name identifies the backend in logs.
	Name() string
	Interpret(ctx context.Context, in InterpretInput) (domain.Interpretation, error)
}
