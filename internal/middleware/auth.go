package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"brightevents-backend/internal/auth"
	"brightevents-backend/internal/metrics"
	"brightevents-backend/internal/model"
)

const (
	currentUserKey = "current_user"
	accessTokenKey = "access_token"
)

// Authenticator resolves an access token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// AuthMiddleware guards protected routes. The token is read from header; a
// "Bearer " prefix is accepted but not required. On success the user and the
// raw token are stored on the context for the handlers.
func AuthMiddleware(authn Authenticator, header string, collector *metrics.Collector, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader(header))
		token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))

		user, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			reason := auth.FailureReason(err)
			collector.RecordAuthFailure(reason)
			logger.DebugContext(c.Request.Context(), "access denied",
				slog.String("request_id", GetRequestID(c)),
				slog.String("reason", reason),
			)
			WriteError(c, logger, err)
			return
		}

		c.Set(currentUserKey, user)
		c.Set(accessTokenKey, token)
		c.Next()
	}
}

// CurrentUser returns the user set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

// CurrentToken returns the access token the request was authenticated with.
func CurrentToken(c *gin.Context) string {
	return c.GetString(accessTokenKey)
}
