package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"wrestlenews/internal/domain"
	"wrestlenews/internal/usecase"

	"github.com/gin-gonic/gin"
)

const defaultNewsLimit = 20

type postsPuller interface {
	Pull(ctx context.Context) ([]domain.SocialPost, error)
}

type newsGetter interface {
	GetNews(ctx context.Context, category domain.Category, limit int) ([]domain.NewsItem, error)
}

type Handler struct {
	log        *slog.Logger
	posts      postsPuller
	newsGetter newsGetter
}

// NewHandler создает обработчики API поверх ленты соцсети и хранилища новостей.
func NewHandler(log *slog.Logger, posts postsPuller, getter newsGetter) *Handler {
	return &Handler{
		log:        log.With(slog.String("component", "http")),
		posts:      posts,
		newsGetter: getter,
	}
}

// getPosts - хендлер для эндпоинта GET /api/tweets.
// Каждый запрос идет в API соцсети, ответы не кешируются.
func (h *Handler) getPosts(c *gin.Context) {
	const op = "transport.http/getPosts"
	log := h.log.With(slog.String("op", op))

	posts, err := h.posts.Pull(c.Request.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrMissingCredential) {
			log.Error("Bearer token is not configured")
			respondWithError(c, http.StatusInternalServerError, "Bearer token is not configured")
			return
		}
		log.Error("Failed to fetch posts", slog.Any("error", err))
		respondWithError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, posts)
}

// getNews - хендлер для эндпоинта GET /api/news/:category
func (h *Handler) getNews(c *gin.Context) {
	const op = "transport.http/getNews"
	log := h.log.With(slog.String("op", op))

	category, ok := domain.ParseCategory(c.Param("category"))
	if !ok {
		log.Warn("unknown category", slog.String("category", c.Param("category")))
		respondWithError(c, http.StatusBadRequest, "Unknown category")
		return
	}
	limit := defaultNewsLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			log.Warn("invalid limit parameter", slog.String("limit", limitStr))
			respondWithError(c, http.StatusBadRequest, "Invalid 'limit' parameter")
			return
		}
	}

	news, err := h.newsGetter.GetNews(c.Request.Context(), category, limit)
	if err != nil {
		log.Error("Failed to get news", slog.Any("error", err))
		respondWithError(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.JSON(http.StatusOK, news)
}

// healthCheck - хендлер для проверки состояния сервиса
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func respondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}
