// Package middleware holds the gin middleware of the HTTP API and the
// helpers handlers use to write error responses.
package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"brightevents-backend/internal/apperr"
)

// JSONError aborts the request with {"message": msg}.
func JSONError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

// WriteError translates err into its status and message. Internal errors are
// logged with their cause and answered with a generic message.
func WriteError(c *gin.Context, logger *slog.Logger, err error) {
	code := apperr.CodeOf(err)
	if code == apperr.CodeInternal {
		if logger == nil {
			logger = slog.Default()
		}
		logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("request_id", GetRequestID(c)),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
	}
	_ = c.Error(err)
	JSONError(c, code.HTTPStatus(), apperr.MessageOf(err))
}
