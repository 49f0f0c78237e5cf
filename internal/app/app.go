package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	"wrestlenews/internal/adapter/fetcher"
	"wrestlenews/internal/adapter/parser"
	"wrestlenews/internal/adapter/ratelimit"
	"wrestlenews/internal/adapter/social"
	"wrestlenews/internal/classify"
	"wrestlenews/internal/config"
	"wrestlenews/internal/domain"
	"wrestlenews/internal/logger"
	"wrestlenews/internal/summary"
	server "wrestlenews/internal/transport/http"
	"wrestlenews/internal/usecase"
	"wrestlenews/internal/worker"
	"wrestlenews/storage"
)

// App представляет приложение агрегатора новостей рестлинга.
// Собирает конвейер агрегации, клиент соцсети, HTTP-сервер и
// фоновый воркер. Команды CLI используют один и тот же App.
type App struct {
	config   *config.Config
	logger   *slog.Logger
	closeLog func() error
	refresh  *usecase.RefreshNewsUseCase
	timeline *usecase.TimelineUseCase
	server   *http.Server
	worker   *worker.Worker
	stopChan chan os.Signal
	wg       sync.WaitGroup
}

// Option настраивает App при создании.
type Option func(*options)

type options struct {
	seed   uint64
	seeded bool
	logger *slog.Logger
}

// WithSeed фиксирует зерно генератора, которым классификатор разрешает ничьи.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithLogger подменяет логгер из конфигурации.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.logger = log }
}

// New проверяет конфигурацию и инициализирует все зависимости.
// Возвращает ошибку в случае сбоя любой из инициализационных процедур.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	appLogger, closeLog := o.logger, func() error { return nil }
	if appLogger == nil {
		var err error
		appLogger, closeLog, err = logger.New(cfg.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to setup logger: %w", err)
		}
	}
	slog.SetDefault(appLogger)

	store := storage.NewJSONFileStore(cfg.Output, appLogger)

	agg := cfg.Aggregator
	httpFetcher := fetcher.NewHTTPFetcher(appLogger, agg.Timeout())
	feedParser := parser.NewFeedParser(appLogger)
	loader := usecase.NewFeedLoader(httpFetcher, feedParser, agg.MaxRetries, agg.Backoff(), appLogger)

	seed := o.seed
	if !o.seeded {
		seed = rand.Uint64()
	}
	classifier := classify.New(rand.New(rand.NewPCG(seed, seed)))

	sources := make([]domain.Source, 0, len(cfg.Feeds))
	for _, feed := range cfg.Feeds {
		sources = append(sources, domain.Source{Name: feed.Name, URL: feed.URL})
	}
	aggregator := usecase.NewAggregator(
		sources,
		loader,
		ratelimit.NewHostRateLimiter(agg.Politeness()),
		summary.New(agg.SummaryMaxLength),
		classifier,
		usecase.AggregatorOptions{
			PerSourceLimit: agg.PerSourceLimit,
			BucketLimit:    agg.BucketLimit,
			Concurrency:    agg.Concurrency,
		},
		appLogger,
	)
	refresh := usecase.NewRefreshNewsUseCase(aggregator, store, appLogger)

	socialClient := social.NewClient(cfg.Social.BaseURL, cfg.Social.BearerToken, agg.Timeout(), appLogger)
	timeline := usecase.NewTimelineUseCase(socialClient, store, usecase.TimelineOptions{
		Username:    cfg.Social.Username,
		MaxResults:  cfg.Social.MaxResults,
		PostURLBase: cfg.Social.PostURLBase,
	}, appLogger)

	handler := server.NewHandler(appLogger, timeline, usecase.NewNewsGetterUseCase(store))
	router := server.NewServer(appLogger, handler)

	var refreshWorker *worker.Worker
	if interval := agg.Refresh(); interval > 0 {
		refreshWorker = worker.New(refresh, interval, 0, appLogger)
	}

	return &App{
		config:   cfg,
		logger:   appLogger,
		closeLog: closeLog,
		refresh:  refresh,
		timeline: timeline,
		server: &http.Server{
			Addr:              cfg.Server.Address,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		worker:   refreshWorker,
		stopChan: make(chan os.Signal, 1),
	}, nil
}

// RefreshNews выполняет один проход агрегации и перезаписывает файлы корзин.
func (a *App) RefreshNews(ctx context.Context) (domain.Collection, error) {
	return a.refresh.Execute(ctx)
}

// PushPosts читает последние посты и перезаписывает файл для бегущей строки.
func (a *App) PushPosts(ctx context.Context) ([]domain.SocialPost, error) {
	return a.timeline.Push(ctx)
}

// Run запускает HTTP-сервер и, если задан интервал, воркер обновления новостей.
// Метод блокируется до получения сигнала завершения или ошибки сервера.
func (a *App) Run() error {
	a.logger.Info("Starting wrestling news server",
		slog.String("component", "app"),
		slog.Int("feed_count", len(a.config.Feeds)),
		slog.Bool("refresh_enabled", a.worker != nil),
	)
	listener, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	a.logger.Info("HTTP server ready",
		slog.String("component", "server"),
		slog.String("address", listener.Addr().String()),
	)
	if a.worker != nil {
		a.logger.Info("Background news refresh enabled",
			slog.String("component", "app"),
			slog.String("interval", a.worker.GetInterval().String()),
		)
		a.worker.Start()
	}

	serveErr := make(chan error, 1)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	signal.Notify(a.stopChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(a.stopChan)
	var runErr error
	select {
	case sig := <-a.stopChan:
		a.logger.Info("Shutdown signal received",
			slog.String("component", "app"),
			slog.String("signal", sig.String()),
		)
	case err := <-serveErr:
		a.logger.Error("HTTP server failed", slog.Any("error", err))
		runErr = fmt.Errorf("http server: %w", err)
	}
	return errors.Join(runErr, a.Shutdown())
}

// Shutdown останавливает воркер, завершает HTTP-сервер с таймаутом 10 секунд
// и ожидает завершения всех горутин.
func (a *App) Shutdown() error {
	a.logger.Info("Starting graceful shutdown", slog.String("component", "app"))
	if a.worker != nil {
		a.worker.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var shutdownErr error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown failed", slog.Any("error", err))
		shutdownErr = fmt.Errorf("http server shutdown: %w", err)
	}
	a.wg.Wait()
	a.logger.Info("Application stopped gracefully", slog.String("component", "app"))
	return shutdownErr
}

// Close освобождает файлы логов.
func (a *App) Close() error {
	return a.closeLog()
}
