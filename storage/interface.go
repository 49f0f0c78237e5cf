package storage

import (
	"context"
	"wrestlenews/internal/domain"
)

// Storage определяет общий интерфейс для работы с хранилищем новостей и постов.
type Storage interface {
	SaveNews(ctx context.Context, category domain.Category, items []domain.NewsItem) error
	GetNews(ctx context.Context, category domain.Category, n int) ([]domain.NewsItem, error)
	SavePosts(ctx context.Context, posts []domain.SocialPost) error
}
