package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
	"wrestlenews/internal/domain"
)

// Refresher определяет интерфейс одного прохода агрегации с сохранением.
// Используется для внедрения зависимости в воркер.
type Refresher interface {
	Execute(ctx context.Context) (domain.Collection, error)
}

// Worker реализует фонового воркера для периодического обновления корзин новостей.
// Первый проход выполняется сразу после старта, следующие - по тикеру.
// Проходы не перекрываются: пока идет текущий, тики пропускаются.
type Worker struct {
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
	log       *slog.Logger
	cancel    context.CancelFunc
	done      chan struct{}
	mu        sync.Mutex
}

// New создает нового воркера. timeout ограничивает один проход;
// 0 означает, что проход ограничен только интервалом.
func New(refresher Refresher, interval, timeout time.Duration, log *slog.Logger) *Worker {
	if timeout <= 0 {
		timeout = interval
	}
	return &Worker{
		refresher: refresher,
		interval:  interval,
		timeout:   timeout,
		log:       log.With(slog.String("component", "worker")),
	}
}

// Start запускает воркер в отдельной горутине.
// Повторный вызов без Stop ничего не делает.
func (w *Worker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})
	go w.run(ctx, w.done)
}

// Stop отменяет текущий проход и дожидается выхода из цикла.
func (w *Worker) Stop() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (w *Worker) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	w.log.Info("News refresh worker started", slog.String("interval", w.interval.String()))
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	w.refresh(ctx)
	for {
		select {
		case <-ticker.C:
			w.refresh(ctx)
		case <-ctx.Done():
			w.log.Info("Worker stopping")
			return
		}
	}
}

// refresh выполняет один проход и логирует его итог.
// Ошибка прохода не останавливает воркер.
func (w *Worker) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	opCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	collection, err := w.refresher.Execute(opCtx)
	if err != nil {
		w.log.Error("News refresh failed", slog.Any("error", err))
		return
	}
	w.log.Info("News refresh completed",
		slog.Int("raw", len(collection.Raw)),
		slog.Int("smackdown", len(collection.SmackDown)),
		slog.Duration("duration", time.Since(start)),
	)
}

// GetInterval возвращает интервал обновления.
func (w *Worker) GetInterval() time.Duration { return w.interval }
