// Package summary строит короткое описание записи ленты ограниченной длины.
package summary

import (
	"strings"
	"unicode"
	"unicode/utf8"
	"wrestlenews/internal/domain"
	"wrestlenews/internal/text"

	"github.com/PuerkitoBio/goquery"
)

const (
	DefaultMaxLength = 200
	Ellipsis         = "..."
	htmlContentType  = "text/html"
)

// Strategy возвращает кандидата в описание или пустую строку,
// если у записи нет подходящего поля.
type Strategy func(e domain.Entry) string

// DefaultStrategies задаёт порядок: описание из ленты, первый абзац
// HTML-содержимого, заголовок.
var DefaultStrategies = []Strategy{FromSummary, FromContent, FromTitle}

// Summarizer выбирает первое непустое описание и обрезает его до maxLength рун.
type Summarizer struct {
	maxLength  int
	strategies []Strategy
}

// New создает Summarizer со стратегиями по умолчанию.
// Неположительная длина заменяется на DefaultMaxLength.
func New(maxLength int, strategies ...Strategy) *Summarizer {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if len(strategies) == 0 {
		strategies = DefaultStrategies
	}
	return &Summarizer{maxLength: maxLength, strategies: strategies}
}

// Summarize никогда не возвращает строку длиннее maxLength рун.
func (s *Summarizer) Summarize(e domain.Entry) string {
	for _, strategy := range s.strategies {
		if candidate := strategy(e); candidate != "" {
			return Truncate(candidate, s.maxLength)
		}
	}
	return ""
}

// FromSummary берет описание записи из ленты.
func FromSummary(e domain.Entry) string {
	return text.Normalize(e.Summary)
}

// FromContent берет текст первого <p> из первого HTML-блока, в котором он есть.
func FromContent(e domain.Entry) string {
	for _, block := range e.Content {
		if block.Type != htmlContentType {
			continue
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(block.Value))
		if err != nil {
			continue
		}
		p := doc.Find("p").First()
		if p.Length() == 0 {
			continue
		}
		return text.Normalize(p.Text())
	}
	return ""
}

// FromTitle - последний вариант: заголовок записи.
func FromTitle(e domain.Entry) string {
	return text.Normalize(e.Title)
}

// Truncate обрезает s так, чтобы результат вместе с многоточием
// уместился в limit рун. Разрез делается по последнему пробелу
// не дальше границы; если пробелов нет, строка режется жёстко.
// Неположительный limit дает пустую строку.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	budget := limit - utf8.RuneCountInString(Ellipsis)
	if budget <= 0 {
		return string([]rune(Ellipsis)[:limit])
	}
	runes := []rune(s)
	cut := budget
	// Пробел сразу за границей тоже является границей слова.
	if !unicode.IsSpace(runes[cut]) {
		for i := cut - 1; i > 0; i-- {
			if unicode.IsSpace(runes[i]) {
				cut = i
				break
			}
		}
	}
	head := strings.TrimRightFunc(string(runes[:cut]), unicode.IsSpace)
	if head == "" {
		head = string(runes[:budget])
	}
	return head + Ellipsis
}
