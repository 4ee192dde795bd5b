// Package offline is the terminal fallback provider. It serves canned
// interpretations by keyword matching and derives energy from keyword
// sentiment. It has no external dependency and never fails, which is what
// guarantees the interpretation endpoint can always answer.
package offline

import (
	"context"
	"strings"

	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/domain"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/ports"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/sentiment"
	"github.com/DuranGZR/Ai-Dream-Interpreter/internal/symbols"
)

type canned struct {
	keyword string
	text    string
	energy  int
}

var cannedInterpretations = []canned{
	{
		keyword: "deniz",
		energy:  75,
		text: `Bu rüyanız duygusal dünyaya, bilinçaltına ve yaşamın akışına işaret ediyor. Deniz genellikle duygusal derinliği, bilinmeyen korkuları ya da özgürlük arayışını simgeler.

Sakin bir deniz görüyorsanız, iç huzurunuzu ve duygusal dengenizi yansıtır. Dalgalı bir deniz ise yaşadığınız duygusal çalkantılara işaret edebilir.

Carl Jung'a göre su, bilinçaltının sembolüdür. Deniz rüyaları genellikle iç dünyanıza yolculuk yapma, kendinizi keşfetme arzunuzu gösterir. Duygularınıza kulak verin ve onları bastırmak yerine ifade etmeyi deneyin.`,
	},
	{
		keyword: "uçmak",
		energy:  92,
		text: `Uçma rüyaları genellikle özgürlük, başarı ve sınırları aşma arzusunu simgeler. Bu, kendinizi güçlü ve özgür hissettiğiniz bir dönemde olduğunuzu gösterebilir.

Kolay ve keyifli uçuyorsanız, hayatta kontrolün sizde olduğunu ve hedeflerinize ulaşabileceğinizi hissediyorsunuz. Zor uçuyorsanız, bazı engellerle karşılaştığınızı gösterebilir.

Freud'a göre uçma rüyaları cinsel enerjiye, Jung'a göre ise kişisel gelişime ve potansiyele işaret eder. Hedeflerinize odaklanın ve korkularınızı aşmak için cesaret gösterin.`,
	},
	{
		keyword: "yılan",
		energy:  58,
		text: `Yılan rüyaları dönüşüm, iyileşme veya tehdit unsurlarını simgeler. Çok katmanlı bir semboldür ve kültüre göre anlamı değişir.

Yılan deri değiştirir, bu nedenle dönüşüm ve yeniden doğuş sembolüdür. Aynı zamanda gizli düşmanlar, tehlikeler ya da bastırılmış korkular anlamına da gelebilir.

Jung'a göre yılan, kolektif bilinçaltının bir arketipidir ve bilgeliği simgeler. Hayatınızda hangi değişimlerin zamanının geldiğini düşünün ve bu değişimlere açık olun.`,
	},
}

const genericText = `Rüyalarınız bilinçaltınızın mesajlarıdır. Her sembol, duygu ve olay sizin iç dünyanızdan bir yansımadır.

Rüyanızda geçen kişiler, yerler ve nesneler genellikle sizin yaşam deneyimleriniz ve duygularınızla bağlantılıdır. Rüyanın size bıraktığı duyguyu gün içinde gözlemlemeye çalışın.

Şu anda otomatik yorumlama hizmeti geçici olarak kullanılamadığı için bu genel değerlendirme sunulmuştur; rüyanızı daha sonra yeniden gönderebilirsiniz.`

// Responder deterministically interprets dreams without any network call.
type Responder struct {
	symbols *symbols.Store
}

func NewResponder(symbolStore *symbols.Store) *Responder {
	return &Responder{symbols: symbolStore}
}

func (r *Responder) Name() string { return "offline" }

// Interpret never returns an error; the error value exists only to satisfy
// the provider contract.
func (r *Responder) Interpret(_ context.Context, in ports.InterpretInput) (domain.Interpretation, error) {
	lower := strings.ToLower(in.DreamText)

	text := genericText
	energy := sentiment.Score(in.DreamText)
	for _, c := range cannedInterpretations {
		if strings.Contains(lower, c.keyword) {
			text = c.text
			energy = c.energy
			break
		}
	}

	matched := r.symbols.Match(in.DreamText)
	if matched == nil {
		matched = []domain.Symbol{}
	}

	return domain.Interpretation{
		Text:    text,
		Energy:  energy,
		Symbols: matched,
	}, nil
}
