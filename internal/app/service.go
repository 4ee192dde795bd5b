// Package app orchestrates dream interpretation: cache lookup, context
// assembly, and the provider fallback chain.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/cache"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/domain"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/ports"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/sentiment"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/symbols"
)

const (
	historyLimit     = 5
	excerptRuneLimit = 150
)

// InterpretRequest is the application-level input. DreamText has already been
// validated and trimmed at the HTTP boundary.
type InterpretRequest struct {
	DreamText  string
	UserID     string
	PersonaKey string
	UserName   string
}

// InterpretationService runs the interpretation pipeline over an ordered
// provider chain, terminating in an offline responder that cannot fail.
type InterpretationService struct {
	providers []ports.Provider
	offline   ports.Provider
	store     ports.DreamStore // nil when persistence is not configured
	symbols   *symbols.Store
	cache     *cache.Cache
	logger    *slog.Logger
}

func NewInterpretationService(
	providers []ports.Provider,
	offline ports.Provider,
	store ports.DreamStore,
	symbolStore *symbols.Store,
	resultCache *cache.Cache,
	logger *slog.Logger,
) *InterpretationService {
	return &InterpretationService{
		providers: providers,
		offline:   offline,
		store:     store,
		symbols:   symbolStore,
		cache:     resultCache,
		logger:    logger,
	}
}

// Interpret produces an interpretation for the request. It never returns an
// error: provider failures advance the chain and the offline responder closes
// it. The second return value reports whether the result came from the cache.
func (s *InterpretationService) Interpret(ctx context.Context, req InterpretRequest) (domain.Interpretation, bool) {
	key := cache.Key(req.DreamText, req.UserID, req.PersonaKey)
	if result, ok := s.cache.Get(key); ok {
		hits, misses := s.cache.Stats()
		s.logger.InfoContext(ctx, "cache hit", "hits", hits, "misses", misses)
		return result, true
	}

	bundle := domain.ContextBundle{
		HistorySummary:   s.historyContext(ctx, req.UserID),
		SymbolReferences: s.symbols.Context(req.DreamText),
	}

	in := ports.InterpretInput{
		DreamText:  req.DreamText,
		Context:    bundle,
		PersonaKey: req.PersonaKey,
		UserName:   req.UserName,
	}

	result := s.runChain(ctx, in)
	s.cache.Put(key, result)
	return result, false
}

// runChain tries providers strictly in priority order; any failure is logged
// and the next provider tried. The offline responder terminates the chain
// deterministically.
func (s *InterpretationService) runChain(ctx context.Context, in ports.InterpretInput) domain.Interpretation {
	for _, p := range s.providers {
		result, err := p.Interpret(ctx, in)
		if err == nil {
			s.logger.InfoContext(ctx, "provider succeeded", "provider", p.Name())
			return result
		}
		s.logger.WarnContext(ctx, "provider failed, trying next",
			"provider", p.Name(), "error", err)
		if ctx.Err() != nil {
			break
		}
	}

	s.logger.WarnContext(ctx, "all providers failed, using offline responder")
	result, _ := s.offline.Interpret(ctx, in)
	return result
}

// historyContext summarizes the user's most recent dreams for prompt
// personalization. Any failure downgrades to "no context"; history problems
// must never fail an interpretation.
func (s *InterpretationService) historyContext(ctx context.Context, userID string) string {
	if s.store == nil || userID == "" {
		return ""
	}

	dreams, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "history lookup failed, continuing without context", "error", err)
		return ""
	}
	if len(dreams) == 0 {
		return ""
	}

	sort.Slice(dreams, func(i, j int) bool {
		return dreams[i].Date.After(dreams[j].Date)
	})
	if len(dreams) > historyLimit {
		dreams = dreams[:historyLimit]
	}

	var b strings.Builder
	b.WriteString("KULLANICI RÜYA GEÇMİŞİ (SON 5 RÜYA):\n")
	b.WriteString("Bu bilgileri kullanıcının psikolojik durumunu ve rüya desenlerini anlamak için kullan:\n")
	for i, d := range dreams {
		names := make([]string, len(d.Symbols))
		for j, sym := range d.Symbols {
			names[j] = sym.Name
		}
		fmt.Fprintf(&b, "\nRÜYA #%d (%s):\n", i+1, d.Date.Format("02.01.2006"))
		fmt.Fprintf(&b, "  Açıklama: %s\n", excerpt(d.DreamText))
		fmt.Fprintf(&b, "  Semboller: %s\n", strings.Join(names, ", "))
		fmt.Fprintf(&b, "  Enerji: %d/100\n", d.Energy)
	}
	return b.String()
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptRuneLimit {
		return text
	}
	return string(runes[:excerptRuneLimit]) + "..."
}

// SaveDream appends one history record, enriching it with a sentiment label.
func (s *InterpretationService) SaveDream(ctx context.Context, dream domain.Dream) (domain.Dream, error) {
	if s.store == nil {
		return domain.Dream{}, domain.ErrStoreDisabled
	}
	dream.Sentiment = sentiment.Label(dream.DreamText)
	saved, err := s.store.Append(ctx, dream)
	if err != nil {
		return domain.Dream{}, fmt.Errorf("save dream: %w", err)
	}
	return saved, nil
}

// Dreams lists the user's saved dreams, newest first.
func (s *InterpretationService) Dreams(ctx context.Context, userID string) ([]domain.Dream, error) {
	if s.store == nil {
		return nil, domain.ErrStoreDisabled
	}
	dreams, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list dreams: %w", err)
	}
	return dreams, nil
}

// DeleteDream removes a dream owned by userID.
func (s *InterpretationService) DeleteDream(ctx context.Context, id, userID string) error {
	if s.store == nil {
		return domain.ErrStoreDisabled
	}
	return s.store.Delete(ctx, id, userID)
}

// SetFavorite toggles the favorite flag on a dream.
func (s *InterpretationService) SetFavorite(ctx context.Context, id string, favorite bool) error {
	if s.store == nil {
		return domain.ErrStoreDisabled
	}
	return s.store.SetFavorite(ctx, id, favorite)
}
