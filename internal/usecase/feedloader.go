package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"wrestlenews/internal/domain"
)

// ErrFeedUnavailable - лента не загрузилась ни с одной попытки.
var ErrFeedUnavailable = errors.New("feed unavailable")

// FeedLoader загружает и разбирает ленту, повторяя попытку при любой ошибке
// загрузки или разбора. Пауза между попытками удваивается: base, 2*base, 4*base...
type FeedLoader struct {
	fetcher     FeedFetcher
	parser      FeedParser
	maxAttempts int
	baseBackoff time.Duration
	log         *slog.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewFeedLoader создает загрузчик, делающий до maxAttempts попыток.
func NewFeedLoader(fetcher FeedFetcher, parser FeedParser, maxAttempts int, baseBackoff time.Duration, log *slog.Logger) *FeedLoader {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &FeedLoader{
		fetcher:     fetcher,
		parser:      parser,
		maxAttempts: maxAttempts,
		baseBackoff: baseBackoff,
		log:         log,
		sleep:       sleepContext,
	}
}

// Load возвращает записи ленты или ошибку, обернутую в ErrFeedUnavailable.
// После последней попытки пауза не выдерживается.
func (l *FeedLoader) Load(ctx context.Context, url string) ([]domain.Entry, error) {
	log := l.log.With(slog.String("component", "feed-loader"), slog.String("url", url))
	var lastErr error
	for attempt := 0; attempt < l.maxAttempts; attempt++ {
		entries, err := l.loadOnce(ctx, url)
		if err == nil {
			return entries, nil
		}
		lastErr = err
		log.Warn("Feed attempt failed",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", l.maxAttempts),
			slog.Any("error", err),
		)
		if ctx.Err() != nil || attempt == l.maxAttempts-1 {
			break
		}
		if err := l.sleep(ctx, l.baseBackoff<<attempt); err != nil {
			lastErr = err
			break
		}
	}
	return nil, fmt.Errorf("%w: %s: %w", ErrFeedUnavailable, url, lastErr)
}

func (l *FeedLoader) loadOnce(ctx context.Context, url string) ([]domain.Entry, error) {
	body, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer body.Close()
	entries, err := l.parser.Parse(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	return entries, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
