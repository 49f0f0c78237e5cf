// Package text приводит HTML и обычный текст из лент к однострочному plain text.
package text

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Политика без разрешённых элементов: удаляет все теги,
// содержимое script и style отбрасывается целиком.
var strict = bluemonday.StrictPolicy()

// maxPasses ограничивает число раундов очистки для многократно
// экранированной разметки.
const maxPasses = 8

var stripAngles = strings.NewReplacer("<", "", ">", "")

// Normalize удаляет разметку, раскрывает HTML-сущности и схлопывает
// любые последовательности пробельных символов в один пробел.
// Разметка, пришедшая в виде сущностей (&lt;p&gt;), после раскрытия
// очищается повторно, пока текст не перестанет меняться.
// Битая разметка не приводит к ошибке, возвращается то, что удалось извлечь.
func Normalize(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	plain := s
	stable := false
	for range maxPasses {
		next := html.UnescapeString(strict.Sanitize(plain))
		if next == plain {
			stable = true
			break
		}
		plain = next
	}
	if !stable {
		plain = stripAngles.Replace(plain)
	}
	return strings.Join(strings.Fields(plain), " ")
}
