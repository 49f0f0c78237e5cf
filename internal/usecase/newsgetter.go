package usecase

import (
	"context"
	"wrestlenews/internal/domain"
)

// NewsGetterUseCase отдает сохраненные корзины для API.
type NewsGetterUseCase struct {
	storage NewsReader
}

// NewNewsGetterUseCase создает usecase чтения корзин из хранилища s.
func NewNewsGetterUseCase(s NewsReader) *NewsGetterUseCase {
	return &NewsGetterUseCase{storage: s}
}

// GetNews возвращает не больше limit новостей категории, от новых к старым.
func (us *NewsGetterUseCase) GetNews(ctx context.Context, category domain.Category, limit int) ([]domain.NewsItem, error) {
	return us.storage.GetNews(ctx, category, limit)
}
