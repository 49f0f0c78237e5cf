package domain

import "time"

// Category определяет аудиторию новости: Raw или SmackDown.
// Пустое значение означает, что новость не удалось отнести ни к одной из них.
type Category string

const (
	CategoryNone      Category = ""
	CategoryRaw       Category = "raw"
	CategorySmackDown Category = "smackdown"
)

// ParseCategory преобразует строку в Category.
// Возвращает false для неизвестных значений.
func ParseCategory(s string) (Category, bool) {
	switch Category(s) {
	case CategoryRaw:
		return CategoryRaw, true
	case CategorySmackDown:
		return CategorySmackDown, true
	default:
		return CategoryNone, false
	}
}

// Source описывает источник новостей из конфигурации.
type Source struct {
	Name string
	URL  string
}

// ContentBlock - структурированный блок содержимого записи ленты.
type ContentBlock struct {
	Type  string
	Value string
}

// Entry представляет необработанную запись RSS/Atom ленты.
type Entry struct {
	Title     string
	Summary   string
	Content   []ContentBlock
	Published *time.Time
	Link      string
}

// NewsItem - итоговая запись, которую читает фронтенд.
type NewsItem struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Category    Category  `json:"category"`
}

// Collection содержит две корзины новостей, по одной на категорию.
type Collection struct {
	Raw       []NewsItem
	SmackDown []NewsItem
}

// Bucket возвращает корзину для указанной категории.
func (c Collection) Bucket(category Category) []NewsItem {
	switch category {
	case CategoryRaw:
		return c.Raw
	case CategorySmackDown:
		return c.SmackDown
	default:
		return nil
	}
}

// SocialPost - пост из ленты соцсети в формате для бегущей строки.
type SocialPost struct {
	Text      string `json:"text"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}
