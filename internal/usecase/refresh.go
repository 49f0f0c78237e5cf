package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"wrestlenews/internal/domain"
)

// RefreshNewsUseCase выполняет проход агрегации и сохраняет обе корзины.
type RefreshNewsUseCase struct {
	builder CollectionBuilder
	storage NewsSaver
	log     *slog.Logger
}

// NewRefreshNewsUseCase связывает сборщик корзин с хранилищем.
func NewRefreshNewsUseCase(builder CollectionBuilder, storage NewsSaver, log *slog.Logger) *RefreshNewsUseCase {
	return &RefreshNewsUseCase{builder: builder, storage: storage, log: log}
}

// Execute сохраняет корзины по очереди. Если вторая запись не удалась,
// первый файл уже обновлен, второй остается прежним; повторный запуск безопасен.
func (uc *RefreshNewsUseCase) Execute(ctx context.Context) (domain.Collection, error) {
	const op = "usecase.RefreshNews.Execute"
	collection, err := uc.builder.Run(ctx)
	if err != nil {
		return domain.Collection{}, fmt.Errorf("%s: %w", op, err)
	}
	uc.log.Info("Saving news",
		slog.String("op", op),
		slog.Int("raw", len(collection.Raw)),
		slog.Int("smackdown", len(collection.SmackDown)),
	)
	for _, category := range []domain.Category{domain.CategoryRaw, domain.CategorySmackDown} {
		if err := uc.storage.SaveNews(ctx, category, collection.Bucket(category)); err != nil {
			return collection, fmt.Errorf("%s: save %s: %w", op, category, err)
		}
	}
	return collection, nil
}
