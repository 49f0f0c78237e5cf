package http

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewServer создает gin-роутер с эндпоинтами API.
// Запросы разрешены с любого origin, паники обработчиков
// превращаются в JSON-ответ 500.
func NewServer(log *slog.Logger, h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	{
		api.GET("/tweets", h.getPosts)
		api.GET("/news/:category", h.getNews)
		api.GET("/health", h.healthCheck)
	}
	return router
}
