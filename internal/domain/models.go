package domain

import "time"

// Symbol is a single symbol/meaning pair in an interpretation.
type Symbol struct {
	Name    string `json:"name"`
	Meaning string `json:"meaning"`
}

// Interpretation is the canonical result shape every provider is normalized to.
// Energy is always clamped to [0, 100] and Symbols never contains bare strings.
type Interpretation struct {
	Text    string   `json:"interpretation"`
	Energy  int      `json:"energy"`
	Symbols []Symbol `json:"symbols"`
}

// ContextBundle carries the per-request prompt enrichment. Both fields may be
// empty; it is assembled fresh for every request and never persisted.
type ContextBundle struct {
	HistorySummary   string
	SymbolReferences string
}

// Dream is one saved dream history record.
type Dream struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	DreamText      string    `json:"dreamText"`
	Interpretation string    `json:"interpretation"`
	Energy         int       `json:"energy"`
	Symbols        []Symbol  `json:"symbols"`
	Sentiment      string    `json:"sentiment,omitempty"`
	Date           time.Time `json:"date"`
	IsFavorite     bool      `json:"isFavorite"`
}
