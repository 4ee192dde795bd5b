package domain

import "strings"

const (
	MinDreamTextLen = 10
	MaxDreamTextLen = 5000
)

// ValidateDreamText trims the input and enforces the length bounds. It returns
// the sanitized text; the orchestrator never sees an empty or oversized dream.
func ValidateDreamText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		return "", ErrDreamTextRequired
	case len([]rune(trimmed)) < MinDreamTextLen:
		return "", ErrDreamTextTooShort
	case len([]rune(trimmed)) > MaxDreamTextLen:
		return "", ErrDreamTextTooLong
	}
	return trimmed, nil
}
