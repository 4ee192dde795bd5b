package ports

import (
	"context"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/domain"
)

// DreamStore persists dream history. The interpretation core only ever reads
// from it (for history context); writes come from the HTTP surface.
type DreamStore interface {
	// ListByUser returns the user's dreams, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Dream, error)
	Append(ctx context.Context, dream domain.Dream) (domain.Dream, error)
	Delete(ctx context.Context, id, userID string) error
	SetFavorite(ctx context.Context, id string, favorite bool) error
}
