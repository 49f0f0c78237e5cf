package parser

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
	"wrestlenews/internal/domain"

	"github.com/mmcdole/gofeed"
)

// FeedParser разбирает RSS, Atom и JSON Feed документы через gofeed
// и приводит записи к domain.Entry.
type FeedParser struct {
	log *slog.Logger
}

// NewFeedParser создает парсер RSS и Atom лент.
func NewFeedParser(log *slog.Logger) *FeedParser {
	return &FeedParser{log: log}
}

// Parse реализует метод интерфейса FeedParser.
// Документ без записей дает пустой срез без ошибки.
func (p *FeedParser) Parse(ctx context.Context, reader io.Reader) ([]domain.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	feed, err := gofeed.NewParser().Parse(reader)
	if err != nil {
		p.log.Warn("Error decoding feed",
			slog.String("component", "parser"),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	entries := make([]domain.Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, toEntry(item))
	}
	return entries, nil
}

func toEntry(item *gofeed.Item) domain.Entry {
	entry := domain.Entry{
		Title:     item.Title,
		Summary:   item.Description,
		Link:      item.Link,
		Published: publishedAt(item),
	}
	if item.Content != "" {
		entry.Content = append(entry.Content, domain.ContentBlock{Type: "text/html", Value: item.Content})
	}
	return entry
}

// publishedAt берет дату публикации, а при ее отсутствии - дату обновления.
func publishedAt(item *gofeed.Item) *time.Time {
	var t *time.Time
	switch {
	case item.PublishedParsed != nil:
		t = item.PublishedParsed
	case item.UpdatedParsed != nil:
		t = item.UpdatedParsed
	default:
		return nil
	}
	utc := t.UTC()
	return &utc
}
