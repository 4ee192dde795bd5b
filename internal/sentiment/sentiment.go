// Package sentiment scores dream texts with a small keyword lexicon. It backs
// the offline responder's energy value and the sentiment label stored with
// saved dreams.
package sentiment

import "strings"

var positiveWords = []string{
	"mutlu", "güzel", "huzur", "sevinç", "başarı", "özgürlük", "sevgi",
	"umut", "ışık", "gülmek", "kazanmak",
}

var negativeWords = []string{
	"korku", "üzgün", "kaygı", "kayıp", "düşmek", "kaos", "ölüm",
	"karanlık", "kaybolmak", "ağlamak", "kabus",
}

// Score returns an energy value in [0, 100], starting neutral at 50 and
// shifting 5 points per matched keyword.
func Score(text string) int {
	lower := strings.ToLower(text)
	score := 50
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			score += 5
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			score -= 5
		}
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Label classifies the text by its score.
func Label(text string) string {
	switch score := Score(text); {
	case score > 60:
		return "positive"
	case score < 40:
		return "negative"
	default:
		return "neutral"
	}
}
