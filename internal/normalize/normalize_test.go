package normalize_test

import (
	"strings"
	"testing"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/normalize"
)

const validJSON = `{"interpretation":"Derin bir yorum.","energy":72,"symbols":[{"name":"Deniz","meaning":"Duygular"}]}`

func TestResult_DirectParse(t *testing.T) {
	r := normalize.Result(validJSON)
	if r.Text != "Derin bir yorum." {
		t.Errorf("unexpected text: %q", r.Text)
	}
	if r.Energy != 72 {
		t.Errorf("expected energy 72, got %d", r.Energy)
	}
	if len(r.Symbols) != 1 || r.Symbols[0].Name != "Deniz" {
		t.Errorf("unexpected symbols: %+v", r.Symbols)
	}
}

func TestResult_FencedEqualsUnfenced(t *testing.T) {
	plain := normalize.Result(validJSON)
	fenced := normalize.Result("```json\n" + validJSON + "\n```")
	if plain.Text != fenced.Text || plain.Energy != fenced.Energy || len(plain.Symbols) != len(fenced.Symbols) {
		t.Errorf("fenced result diverges: plain=%+v fenced=%+v", plain, fenced)
	}
}

func TestResult_RepairsRawNewlinesInStrings(t *testing.T) {
	broken := "{\"interpretation\":\"ilk satır\nikinci satır\",\"energy\":60,\"symbols\":[]}"
	r := normalize.Result(broken)
	if !strings.Contains(r.Text, "ilk satır") || !strings.Contains(r.Text, "ikinci satır") {
		t.Errorf("newline repair failed, got %q", r.Text)
	}
	if r.Energy != 60 {
		t.Errorf("expected energy 60, got %d", r.Energy)
	}
}

func TestResult_DegradedOnGarbage(t *testing.T) {
	raw := "tamamen bozuk bir yanıt, json değil"
	r := normalize.Result(raw)
	if r.Text == "" {
		t.Fatal("degraded result must have non-empty text")
	}
	if !strings.Contains(r.Text, "teknik bir format hatası") {
		t.Errorf("degraded text should explain the failure, got %q", r.Text)
	}
	if !strings.Contains(r.Text, raw) {
		t.Errorf("degraded text should embed the raw response")
	}
	if r.Energy != 50 {
		t.Errorf("degraded energy should be 50, got %d", r.Energy)
	}
	if r.Symbols == nil || len(r.Symbols) != 0 {
		t.Errorf("degraded symbols should be an empty list, got %+v", r.Symbols)
	}
}

func TestResult_DegradedTruncatesLongRaw(t *testing.T) {
	raw := strings.Repeat("x", 2000)
	r := normalize.Result(raw)
	if strings.Contains(r.Text, strings.Repeat("x", 501)) {
		t.Error("degraded text should embed at most 500 characters of the raw response")
	}
	if !strings.Contains(r.Text, strings.Repeat("x", 500)) {
		t.Error("degraded text should embed the first 500 characters")
	}
}

func TestResult_CoercesBareStringSymbols(t *testing.T) {
	raw := `{"interpretation":"Yorum.","energy":50,"symbols":["deniz","yılan"]}`
	r := normalize.Result(raw)
	if len(r.Symbols) != 2 {
		t.Fatalf("expected 2 symbols, got %d", len(r.Symbols))
	}
	if r.Symbols[0].Name != "deniz" || r.Symbols[0].Meaning != "" {
		t.Errorf("unexpected first symbol: %+v", r.Symbols[0])
	}
}

func TestResult_EnergyClampedAndDefaulted(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
	}{
		{"above range", `{"interpretation":"x","energy":150}`, 100},
		{"below range", `{"interpretation":"x","energy":-5}`, 0},
		{"absent", `{"interpretation":"x"}`, 50},
		{"non-numeric", `{"interpretation":"x","energy":"yüksek"}`, 50},
		{"quoted number", `{"interpretation":"x","energy":"80"}`, 80},
	}
	for _, tc := range cases {
		if got := normalize.Result(tc.raw).Energy; got != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
	}
}

func TestResult_AppendsEnrichmentSections(t *testing.T) {
	raw := `{"interpretation":"Ana yorum.","inner_journey":"İçsel derinlik.","spiritual_practice":"Nefes egzersizi.","awareness_message":"Bugün kendine sor.","energy":65,"symbols":[]}`
	r := normalize.Result(raw)
	for _, want := range []string{"Ana yorum.", "İçsel derinlik.", "Nefes egzersizi.", "Bugün kendine sor."} {
		if !strings.Contains(r.Text, want) {
			t.Errorf("enriched text missing %q", want)
		}
	}
	if !strings.HasPrefix(r.Text, "Ana yorum.") {
		t.Errorf("main interpretation must come first, got %q", r.Text[:30])
	}
}

func TestResult_ShortAwarenessField(t *testing.T) {
	raw := `{"interpretation":"Yorum.","awareness":"Tek cümlelik mesaj.","energy":55,"symbols":[]}`
	r := normalize.Result(raw)
	if !strings.Contains(r.Text, "Tek cümlelik mesaj.") {
		t.Errorf("awareness field not appended, got %q", r.Text)
	}
}
