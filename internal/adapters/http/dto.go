package http

import (
	"time"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/domain"
)

// InterpretRequest is the JSON body accepted by POST /api/interpret.
type InterpretRequest struct {
	DreamText string `json:"dreamText"`
	UserID    string `json:"userId"`
	Persona   string `json:"persona"`
	UserName  string `json:"userName"`
}

// InterpretResponse is the canonical result shape returned to clients.
type InterpretResponse struct {
	Interpretation string           `json:"interpretation"`
	Energy         int              `json:"energy"`
	Symbols        []SymbolResponse `json:"symbols"`
}

type SymbolResponse struct {
	Name    string `json:"name"`
	Meaning string `json:"meaning"`
}

// SaveDreamRequest is the JSON body accepted by POST /api/dreams.
type SaveDreamRequest struct {
	UserID         string          `json:"userId"`
	DreamText      string          `json:"dreamText"`
	Interpretation string          `json:"interpretation"`
	Energy         int             `json:"energy"`
	Symbols        []domain.Symbol `json:"symbols"`
	Date           time.Time       `json:"date"`
}

// FavoriteRequest is the JSON body accepted by PATCH /api/dreams/:id/favorite.
type FavoriteRequest struct {
	IsFavorite *bool `json:"isFavorite"`
}

type SavedResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toInterpretResponse(r domain.Interpretation) InterpretResponse {
	symbols := make([]SymbolResponse, len(r.Symbols))
	for i, s := range r.Symbols {
		symbols[i] = SymbolResponse{Name: s.Name, Meaning: s.Meaning}
	}
	return InterpretResponse{
		Interpretation: r.Text,
		Energy:         r.Energy,
		Symbols:        symbols,
	}
}
