package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"
	"wrestlenews/internal/domain"
	"wrestlenews/internal/text"

	"golang.org/x/sync/errgroup"
)

// AggregatorOptions - лимиты одного прохода агрегации.
type AggregatorOptions struct {
	PerSourceLimit int
	BucketLimit    int
	Concurrency    int
}

// Aggregator собирает новости из всех источников в две корзины.
// Загрузка лент идет параллельно, но обработка записей выполняется
// последовательно в порядке источников: так результат с фиксированным
// генератором случайных чисел воспроизводим.
type Aggregator struct {
	sources    []domain.Source
	loader     EntryLoader
	limiter    HostLimiter
	summarizer Summarizer
	classifier Classifier
	opts       AggregatorOptions
	now        func() time.Time
	log        *slog.Logger
}

// NewAggregator создает агрегатор над списком источников в порядке конфигурации.
func NewAggregator(
	sources []domain.Source,
	loader EntryLoader,
	limiter HostLimiter,
	summarizer Summarizer,
	classifier Classifier,
	opts AggregatorOptions,
	log *slog.Logger,
) *Aggregator {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	return &Aggregator{
		sources:    sources,
		loader:     loader,
		limiter:    limiter,
		summarizer: summarizer,
		classifier: classifier,
		opts:       opts,
		now:        time.Now,
		log:        log.With(slog.String("component", "aggregator")),
	}
}

// WithClock подменяет источник текущего времени для записей без даты.
func (a *Aggregator) WithClock(now func() time.Time) *Aggregator {
	a.now = now
	return a
}

// Run выполняет один проход. Ошибки отдельных источников только логируются;
// ошибка возвращается лишь при отмене ctx, чтобы не сохранить неполный результат.
func (a *Aggregator) Run(ctx context.Context) (domain.Collection, error) {
	start := time.Now()
	a.log.Info("Aggregation started", slog.Int("sources", len(a.sources)))

	loaded := a.loadAll(ctx)
	if err := ctx.Err(); err != nil {
		return domain.Collection{}, fmt.Errorf("aggregation aborted: %w", err)
	}

	var raw, smackDown []domain.NewsItem
	for i, src := range a.sources {
		entries := loaded[i]
		if len(entries) == 0 {
			a.log.Info("No entries found, skipping source", slog.String("source", src.Name))
			continue
		}
		if a.opts.PerSourceLimit > 0 && len(entries) > a.opts.PerSourceLimit {
			entries = entries[:a.opts.PerSourceLimit]
		}
		accepted := 0
		for _, entry := range entries {
			item, ok := a.process(entry, src)
			if !ok {
				continue
			}
			accepted++
			if item.Category == domain.CategoryRaw {
				raw = append(raw, item)
			} else {
				smackDown = append(smackDown, item)
			}
		}
		a.log.Debug("Source processed",
			slog.String("source", src.Name),
			slog.Int("entries", len(entries)),
			slog.Int("accepted", accepted),
		)
	}

	collection := domain.Collection{
		Raw:       rank(raw, a.opts.BucketLimit),
		SmackDown: rank(smackDown, a.opts.BucketLimit),
	}
	a.log.Info("Aggregation completed",
		slog.Int("raw", len(collection.Raw)),
		slog.Int("smackdown", len(collection.SmackDown)),
		slog.Duration("duration", time.Since(start)),
	)
	return collection, nil
}

// loadAll возвращает записи по индексу источника; nil - источник не загрузился.
func (a *Aggregator) loadAll(ctx context.Context) [][]domain.Entry {
	loaded := make([][]domain.Entry, len(a.sources))
	var g errgroup.Group
	g.SetLimit(a.opts.Concurrency)
	for i, src := range a.sources {
		g.Go(func() error {
			log := a.log.With(slog.String("source", src.Name), slog.String("url", src.URL))
			if a.limiter != nil {
				if err := a.limiter.WaitForHost(ctx, src.URL); err != nil {
					log.Warn("Politeness wait failed, skipping source", slog.Any("error", err))
					return nil
				}
			}
			entries, err := a.loader.Load(ctx, src.URL)
			if err != nil {
				log.Error("Feed unavailable, skipping source", slog.Any("error", err))
				return nil
			}
			log.Info("Feed loaded", slog.Int("entries", len(entries)))
			loaded[i] = entries
			return nil
		})
	}
	g.Wait()
	return loaded
}

// process превращает запись в NewsItem; false - запись отброшена.
func (a *Aggregator) process(entry domain.Entry, src domain.Source) (domain.NewsItem, bool) {
	title := text.Normalize(entry.Title)
	if title == "" {
		return domain.NewsItem{}, false
	}
	summary := a.summarizer.Summarize(entry)
	category := a.classifier.Classify(title, summary, "")
	if category == domain.CategoryNone {
		return domain.NewsItem{}, false
	}
	published := a.now()
	if entry.Published != nil {
		published = *entry.Published
	}
	return domain.NewsItem{
		Title:       title,
		Summary:     summary,
		Source:      src.Name,
		URL:         entry.Link,
		PublishedAt: published.UTC(),
		Category:    category,
	}, true
}

// rank сортирует корзину от новых к старым, убирает повторы ссылок
// (остается самая свежая запись) и обрезает до limit.
func rank(items []domain.NewsItem, limit int) []domain.NewsItem {
	slices.SortStableFunc(items, func(x, y domain.NewsItem) int {
		return y.PublishedAt.Compare(x.PublishedAt)
	})
	out := make([]domain.NewsItem, 0, min(len(items), max(limit, 0)))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if limit > 0 && len(out) == limit {
			break
		}
		if item.URL != "" {
			if _, dup := seen[item.URL]; dup {
				continue
			}
			seen[item.URL] = struct{}{}
		}
		out = append(out, item)
	}
	return out
}
