package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// loggingMiddleware логирует метод, путь, IP-адрес, user-agent,
// итоговый статус и время выполнения запроса.
func loggingMiddleware(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		entry := log.With(
			slog.String("component", "http"),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("remote_addr", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		)
		entry.Debug("request started")
		start := time.Now()

		c.Next()

		entry.Info("request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}

// recoveryMiddleware превращает панику обработчика в ответ 500 с полем error.
func recoveryMiddleware(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		log.Error("Handler panicked",
			slog.String("component", "http"),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", fmt.Errorf("%v", recovered)),
		)
		respondWithError(c, http.StatusInternalServerError, "Internal Server Error")
	})
}
