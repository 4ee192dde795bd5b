// Package prompt builds the text payloads sent to providers. Composition is a
// pure function of the request plus the read-only persona table.
package prompt

import (
	"fmt"
	"strings"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/persona"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/ports"
)

type Composer struct {
	personas *persona.Table
}

func NewComposer(personas *persona.Table) *Composer {
	return &Composer{personas: personas}
}

// System renders the persona's role and output-format contract. An unknown
// persona key resolves to the master persona, never an error.
func (c *Composer) System(personaKey string) string {
	p := c.personas.Resolve(personaKey)
	return p.Role + "\n\n" + p.Instructions
}

// User renders the user-facing half of the prompt: the identification clause,
// the dream text unambiguously delimited from the instructions, and any
// history/symbol context under labeled headers.
func (c *Composer) User(in ports.InterpretInput) string {
	var b strings.Builder

	b.WriteString("### KULLANICI BİLGİSİ:\n")
	if in.UserName != "" {
		fmt.Fprintf(&b, "Kullanıcının adı: %s. Yorumuna \"Sevgili %s,\" diye başla.\n", in.UserName, in.UserName)
	} else {
		b.WriteString("Kullanıcı adı bilinmiyor. \"Sevgili Rüya Yolcusu,\" diye başla.\n")
	}

	b.WriteString("\n### RÜYA METNİ:\n")
	fmt.Fprintf(&b, "\"\"\"%s\"\"\"\n", in.DreamText)

	if in.Context.HistorySummary != "" {
		b.WriteString("\n### GEÇMİŞ RÜYA BAĞLAMI (Kişiselleştirme İçin):\n")
		b.WriteString(in.Context.HistorySummary)
		b.WriteString("\n")
	}
	if in.Context.SymbolReferences != "" {
		b.WriteString("\n### SEMBOL REFERANSLARI:\n")
		b.WriteString(in.Context.SymbolReferences)
		b.WriteString("\n")
	}

	return b.String()
}

// Compose renders the full single-message prompt for providers that take one
// text block instead of a system/user message pair.
func (c *Composer) Compose(in ports.InterpretInput) string {
	return c.System(in.PersonaKey) + "\n\n" + c.User(in)
}
