package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"wrestlenews/internal/config"
	"wrestlenews/internal/domain"
)

// ErrUnknownCategory возвращается для категорий без настроенного файла.
var ErrUnknownCategory = errors.New("unknown category")

const (
	newsIndent  = "  "
	postsIndent = "    "
)

// JSONFileStore хранит каждую корзину новостей и посты в отдельных JSON-файлах.
// Файл перезаписывается целиком через временный файл и rename,
// поэтому читатель видит либо старую, либо новую версию.
type JSONFileStore struct {
	newsPaths map[domain.Category]string
	postsPath string
	log       *slog.Logger
}

// NewJSONFileStore создает хранилище с путями файлов из cfg.
func NewJSONFileStore(cfg config.OutputConfig, log *slog.Logger) *JSONFileStore {
	return &JSONFileStore{
		newsPaths: map[domain.Category]string{
			domain.CategoryRaw:       cfg.RawNews,
			domain.CategorySmackDown: cfg.SmackDownNews,
		},
		postsPath: cfg.Posts,
		log:       log.With(slog.String("component", "storage")),
	}
}

// SaveNews перезаписывает файл корзины category; nil сохраняется как пустой массив.
func (s *JSONFileStore) SaveNews(ctx context.Context, category domain.Category, items []domain.NewsItem) error {
	const op = "storage.jsonfile.SaveNews"
	path, ok := s.newsPaths[category]
	if !ok {
		return fmt.Errorf("%s: %w: %q", op, ErrUnknownCategory, category)
	}
	if items == nil {
		items = []domain.NewsItem{}
	}
	if err := s.write(ctx, path, items, newsIndent); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("News saved",
		slog.String("op", op),
		slog.String("category", string(category)),
		slog.String("path", path),
		slog.Int("count", len(items)),
	)
	return nil
}

// GetNews читает сохраненную корзину. Отсутствующий файл означает
// пустую корзину; n <= 0 возвращает все записи.
func (s *JSONFileStore) GetNews(ctx context.Context, category domain.Category, n int) ([]domain.NewsItem, error) {
	const op = "storage.jsonfile.GetNews"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, ok := s.newsPaths[category]
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrUnknownCategory, category)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []domain.NewsItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read %s: %w", op, path, err)
	}
	items := []domain.NewsItem{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%s: failed to decode %s: %w", op, path, err)
	}
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items, nil
}

func (s *JSONFileStore) SavePosts(ctx context.Context, posts []domain.SocialPost) error {
	const op = "storage.jsonfile.SavePosts"
	if posts == nil {
		posts = []domain.SocialPost{}
	}
	if err := s.write(ctx, s.postsPath, posts, postsIndent); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("Posts saved",
		slog.String("op", op),
		slog.String("path", s.postsPath),
		slog.Int("count", len(posts)),
	)
	return nil
}

func (s *JSONFileStore) write(ctx context.Context, path string, v any, indent string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encode(v, indent)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// encode пишет UTF-8 без экранирования HTML-символов, с отступами.
func encode(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return buf.Bytes(), nil
}
