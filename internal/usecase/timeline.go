package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"wrestlenews/internal/adapter/social"
	"wrestlenews/internal/domain"
)

// ErrMissingCredential - токен API соцсети не задан; запросы не выполнялись.
var ErrMissingCredential = errors.New("bearer token is not configured")

// TimelineOptions задает, чьи посты читать и как строить ссылки на них.
type TimelineOptions struct {
	Username    string
	MaxResults  int
	PostURLBase string
}

// TimelineUseCase читает последние посты пользователя.
// Pull отдает их вызывающему коду, Push перезаписывает файл для фронтенда.
// Любая ошибка прерывает операцию целиком, частичных результатов нет.
type TimelineUseCase struct {
	client  TimelineClient
	storage PostsSaver
	opts    TimelineOptions
	log     *slog.Logger
}

// NewTimelineUseCase создает usecase ленты; MaxResults по умолчанию 5.
func NewTimelineUseCase(client TimelineClient, storage PostsSaver, opts TimelineOptions, log *slog.Logger) *TimelineUseCase {
	if opts.MaxResults <= 0 {
		opts.MaxResults = 5
	}
	return &TimelineUseCase{
		client:  client,
		storage: storage,
		opts:    opts,
		log:     log.With(slog.String("component", "timeline")),
	}
}

// Pull выполняет один запрос к API по имени пользователя.
func (uc *TimelineUseCase) Pull(ctx context.Context) ([]domain.SocialPost, error) {
	const op = "usecase.Timeline.Pull"
	if !uc.client.HasCredential() {
		return nil, ErrMissingCredential
	}
	posts, err := uc.client.PostsByUsername(ctx, uc.opts.Username, uc.opts.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return uc.reshape(posts), nil
}

// Push находит идентификатор пользователя, читает его посты и сохраняет их.
func (uc *TimelineUseCase) Push(ctx context.Context) ([]domain.SocialPost, error) {
	const op = "usecase.Timeline.Push"
	log := uc.log.With(slog.String("op", op), slog.String("username", uc.opts.Username))
	if !uc.client.HasCredential() {
		return nil, ErrMissingCredential
	}
	log.Info("Resolving user id")
	userID, err := uc.client.UserID(ctx, uc.opts.Username)
	if err != nil {
		return nil, fmt.Errorf("%s: resolve user id: %w", op, err)
	}
	log.Info("Fetching latest posts", slog.String("user_id", userID))
	posts, err := uc.client.PostsByUserID(ctx, userID, uc.opts.MaxResults)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch posts: %w", op, err)
	}
	formatted := uc.reshape(posts)
	if err := uc.storage.SavePosts(ctx, formatted); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return formatted, nil
}

// reshape строит ссылку на пост из имени пользователя и идентификатора.
// Пост без идентификатора получает пустую ссылку.
func (uc *TimelineUseCase) reshape(posts []social.Post) []domain.SocialPost {
	base := strings.TrimRight(uc.opts.PostURLBase, "/")
	out := make([]domain.SocialPost, 0, len(posts))
	for _, p := range posts {
		var url string
		if p.ID != "" {
			url = fmt.Sprintf("%s/%s/status/%s", base, uc.opts.Username, p.ID)
		}
		out = append(out, domain.SocialPost{
			Text:      p.Text,
			URL:       url,
			CreatedAt: p.CreatedAt,
		})
	}
	return out
}
