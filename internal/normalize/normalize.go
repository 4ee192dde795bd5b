// Package normalize converts raw provider output into the canonical
// interpretation shape. Model responses are expected to be JSON but are not
// guaranteed to be well-formed; an ordered list of repair strategies is tried
// and a guaranteed-success degraded result closes the chain, so callers never
// see a parse failure.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/domain"
)

const (
	defaultEnergy  = 50
	rawExcerptLen  = 500
	innerHeader    = "✨ İçsel Yolculuğun"
	practiceHeader = "🌟 Bugünkü Rehberliğin"
	divider        = "━━━━━━━━━━━━━━━━━━━━━━"
)

// payload mirrors the JSON contract the personas instruct the model to emit.
// Optional enrichment fields vary per backend; "awareness" is the short form
// some prompts use.
type payload struct {
	Interpretation    string            `json:"interpretation"`
	InnerJourney      string            `json:"inner_journey"`
	SpiritualPractice string            `json:"spiritual_practice"`
	AwarenessMessage  string            `json:"awareness_message"`
	Awareness         string            `json:"awareness"`
	Energy            json.RawMessage   `json:"energy"`
	Symbols           []json.RawMessage `json:"symbols"`
}

// Result parses raw model output into the canonical shape. It cannot fail:
// when every repair strategy is exhausted it synthesizes a degraded result
// that embeds the beginning of the raw text for diagnostic visibility.
func Result(raw string) domain.Interpretation {
	p, ok := parse(raw)
	if !ok {
		return degraded(raw)
	}

	text := p.Interpretation
	if text == "" {
		text = "Yorum oluşturulamadı"
	}
	if p.InnerJourney != "" {
		text += fmt.Sprintf("\n\n%s\n%s\n%s\n\n%s", divider, innerHeader, divider, p.InnerJourney)
	}
	if p.SpiritualPractice != "" {
		text += fmt.Sprintf("\n\n%s\n%s\n%s\n\n%s", divider, practiceHeader, divider, p.SpiritualPractice)
	}
	if msg := firstNonEmpty(p.AwarenessMessage, p.Awareness); msg != "" {
		text += fmt.Sprintf("\n\n💫 %q", msg)
	}

	return domain.Interpretation{
		Text:    text,
		Energy:  clampEnergy(p.Energy),
		Symbols: coerceSymbols(p.Symbols),
	}
}

// parse applies the repair strategies in strict order, stopping at the first
// successful decode.
func parse(raw string) (payload, bool) {
	for _, candidate := range [...]string{
		raw,
		stripFences(raw),
		escapeNewlinesInStrings(stripFences(raw)),
	} {
		var p payload
		if err := json.Unmarshal([]byte(candidate), &p); err == nil {
			return p, true
		}
	}
	return payload{}, false
}

func degraded(raw string) domain.Interpretation {
	excerpt := []rune(strings.TrimSpace(raw))
	if len(excerpt) > rawExcerptLen {
		excerpt = excerpt[:rawExcerptLen]
	}
	text := fmt.Sprintf(
		"Rüya yorumu alındı ancak teknik bir format hatası oluştu. İşte ham metin: %s...", string(excerpt))
	text += "\n\n💫 \"Teknik bir aksaklık oldu ancak içsel yolculuğunuz devam ediyor.\""
	return domain.Interpretation{
		Text:    text,
		Energy:  defaultEnergy,
		Symbols: []domain.Symbol{},
	}
}

// stripFences removes leading/trailing markdown code-fence markers.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// escapeNewlinesInStrings escapes raw line breaks that occur inside an open
// JSON string value. It is the heuristic half of the repair chain: a
// single-pass scan tracking string state, since models tend to emit literal
// newlines inside long interpretation strings.
func escapeNewlinesInStrings(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && inString:
			escaped = true
		case r == '"':
			inString = !inString
		case inString && (r == '\n' || r == '\r'):
			if r == '\n' {
				b.WriteString(`\n`)
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// clampEnergy coerces the energy field to an int in [0, 100], defaulting to
// 50 when absent or non-numeric.
func clampEnergy(raw json.RawMessage) int {
	if len(raw) == 0 {
		return defaultEnergy
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		// Some models quote the number.
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return defaultEnergy
		}
		if _, err := fmt.Sscanf(strings.TrimSpace(s), "%f", &f); err != nil {
			return defaultEnergy
		}
	}
	switch n := int(f); {
	case n < 0:
		return 0
	case n > 100:
		return 100
	default:
		return n
	}
}

// coerceSymbols accepts both bare strings and {name, meaning} objects and
// always yields the object form.
func coerceSymbols(raw []json.RawMessage) []domain.Symbol {
	symbols := make([]domain.Symbol, 0, len(raw))
	for _, entry := range raw {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			if s != "" {
				symbols = append(symbols, domain.Symbol{Name: s})
			}
			continue
		}
		var obj domain.Symbol
		if err := json.Unmarshal(entry, &obj); err == nil && obj.Name != "" {
			symbols = append(symbols, obj)
		}
	}
	return symbols
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
