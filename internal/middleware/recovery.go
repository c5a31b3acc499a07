package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"brightevents-backend/internal/apperr"
)

// Recovery turns a panic into a 500 with the generic error body.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.ErrorContext(c.Request.Context(), "panic recovered",
			slog.String("request_id", GetRequestID(c)),
			slog.String("path", c.Request.URL.Path),
			slog.Any("panic", recovered),
		)
		JSONError(c, http.StatusInternalServerError, apperr.InternalMessage)
	})
}
