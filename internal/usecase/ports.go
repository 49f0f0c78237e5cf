package usecase

import (
	"context"
	"io"
	"wrestlenews/internal/adapter/social"
	"wrestlenews/internal/domain"
)

// FeedFetcher определяет интерфейс для загрузки данных RSS-лент из внешних источников.
// Возвращает io.ReadCloser который должен быть закрыт после использования.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// FeedParser преобразует документ ленты в список записей.
type FeedParser interface {
	Parse(ctx context.Context, reader io.Reader) ([]domain.Entry, error)
}

// EntryLoader загружает записи одной ленты с учетом повторов.
type EntryLoader interface {
	Load(ctx context.Context, url string) ([]domain.Entry, error)
}

// HostLimiter выдерживает паузу вежливости перед обращением к хосту.
type HostLimiter interface {
	WaitForHost(ctx context.Context, url string) error
}

type Summarizer interface {
	Summarize(e domain.Entry) string
}

type Classifier interface {
	Classify(title, summary, body string) domain.Category
}

// CollectionBuilder собирает корзины новостей за один проход.
type CollectionBuilder interface {
	Run(ctx context.Context) (domain.Collection, error)
}

// NewsSaver сохраняет корзину новостей целиком.
type NewsSaver interface {
	SaveNews(ctx context.Context, category domain.Category, items []domain.NewsItem) error
}

// NewsReader читает сохраненную корзину.
type NewsReader interface {
	GetNews(ctx context.Context, category domain.Category, n int) ([]domain.NewsItem, error)
}

type PostsSaver interface {
	SavePosts(ctx context.Context, posts []domain.SocialPost) error
}

// TimelineClient - клиент API соцсети.
type TimelineClient interface {
	HasCredential() bool
	PostsByUsername(ctx context.Context, username string, maxResults int) ([]social.Post, error)
	UserID(ctx context.Context, username string) (string, error)
	PostsByUserID(ctx context.Context, userID string, maxResults int) ([]social.Post, error)
}
