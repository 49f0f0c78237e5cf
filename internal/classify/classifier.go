// Package classify относит новость к аудитории Raw или SmackDown
// по совпадениям ключевых слов.
package classify

import (
	"strings"
	"wrestlenews/internal/domain"
)

var (
	rawKeywords = []string{
		"raw", "monday night raw", "raw results", "raw live",
		"raw superstar", "raw champion", "raw women", "raw tag team",
		"monday night", "raw exclusive", "raw after show",
	}
	smackDownKeywords = []string{
		"smackdown", "friday night smackdown", "smackdown results", "smackdown live",
		"smackdown superstar", "smackdown champion", "smackdown women", "smackdown tag team",
		"friday night", "smackdown exclusive", "smackdown after show",
	}
	wrestlingKeywords = []string{
		"wwe", "wrestling", "champion", "championship", "wrestler", "superstar",
		"pay-per-view", "ppv", "wrestlemania", "summerslam", "royal rumble",
		"wrestlemania", "nxt", "nxt takeover", "wrestling news", "wwe news",
	}
)

// Picker - источник случайности для разрешения ничьих.
// *rand.Rand из math/rand/v2 удовлетворяет этому интерфейсу.
type Picker interface {
	IntN(n int) int
}

// Classifier считает, сколько ключевых слов каждого списка встречается в тексте.
// Классификатор не потокобезопасен, если не потокобезопасен Picker.
type Classifier struct {
	raw       []string
	smackDown []string
	wrestling []string
	picker    Picker
}

// New создает классификатор со встроенными списками ключевых слов.
func New(picker Picker) *Classifier {
	return NewWithKeywords(picker, rawKeywords, smackDownKeywords, wrestlingKeywords)
}

// NewWithKeywords создает классификатор с собственными списками.
// Списки приводятся к нижнему регистру и очищаются от повторов,
// поэтому каждое слово дает не больше одного очка.
func NewWithKeywords(picker Picker, raw, smackDown, wrestling []string) *Classifier {
	return &Classifier{
		raw:       dedupe(raw),
		smackDown: dedupe(smackDown),
		wrestling: dedupe(wrestling),
		picker:    picker,
	}
}

// Classify возвращает CategoryNone, если текст не похож на новость рестлинга.
// Общие новости без явного перевеса распределяются между корзинами случайно.
func (c *Classifier) Classify(title, summary, body string) domain.Category {
	text := strings.ToLower(title + " " + summary + " " + body)

	rawScore := score(text, c.raw)
	smackDownScore := score(text, c.smackDown)

	switch {
	case rawScore > smackDownScore && rawScore > 0:
		return domain.CategoryRaw
	case smackDownScore > rawScore && smackDownScore > 0:
		return domain.CategorySmackDown
	case score(text, c.wrestling) > 0:
		if c.picker.IntN(2) == 0 {
			return domain.CategoryRaw
		}
		return domain.CategorySmackDown
	default:
		return domain.CategoryNone
	}
}

func score(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

func dedupe(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
