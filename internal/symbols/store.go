// Package symbols is the static dream symbol knowledge base. It supplies
// reference snippets for prompts and symbol matches for the offline responder.
package symbols

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/domain"
)

//go:embed data/dream_symbols.json
var symbolFS embed.FS

// Detail holds the three meaning facets of one symbol.
type Detail struct {
	General  string `json:"genel"`
	Positive string `json:"pozitif"`
	Negative string `json:"negatif"`
}

// Store loads the embedded symbol dictionary once and serves lookups.
type Store struct {
	once    sync.Once
	entries map[string]Detail
	keys    []string
	err     error
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) init() {
	raw, err := symbolFS.ReadFile("data/dream_symbols.json")
	if err != nil {
		s.err = fmt.Errorf("read embedded symbols: %w", err)
		return
	}
	if err := json.Unmarshal(raw, &s.entries); err != nil {
		s.err = fmt.Errorf("parse embedded symbols: %w", err)
		return
	}
	s.keys = make([]string, 0, len(s.entries))
	for key := range s.entries {
		s.keys = append(s.keys, key)
	}
	// Map iteration order is random; matches must be stable across calls.
	sort.Strings(s.keys)
}

// Match returns every known symbol whose key occurs in the dream text,
// case-insensitively, with its general meaning.
func (s *Store) Match(dreamText string) []domain.Symbol {
	s.once.Do(s.init)
	if s.err != nil {
		return nil
	}
	lower := strings.ToLower(dreamText)
	var found []domain.Symbol
	for _, key := range s.keys {
		if strings.Contains(lower, key) {
			found = append(found, domain.Symbol{
				Name:    capitalize(key),
				Meaning: s.entries[key].General,
			})
		}
	}
	return found
}

// Context renders the reference block injected into prompts: one entry per
// matched symbol with its general, positive and negative meanings. Returns ""
// when nothing matches.
func (s *Store) Context(dreamText string) string {
	s.once.Do(s.init)
	if s.err != nil {
		return ""
	}
	lower := strings.ToLower(dreamText)
	var b strings.Builder
	for _, key := range s.keys {
		if !strings.Contains(lower, key) {
			continue
		}
		detail := s.entries[key]
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "- %s:\n", strings.ToUpper(key))
		fmt.Fprintf(&b, "  * Genel: %s\n", detail.General)
		fmt.Fprintf(&b, "  * Pozitif: %s\n", detail.Positive)
		fmt.Fprintf(&b, "  * Negatif: %s", detail.Negative)
	}
	if b.Len() == 0 {
		return ""
	}
	return "SEMBOL SÖZLÜĞÜNDEN REFERANSLAR (Kullanıcının rüyasında tespit edilenler):\n" + b.String()
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
