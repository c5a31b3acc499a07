// Package handler exposes the auth and event services over HTTP with gin.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"brightevents-backend/internal/auth"
	"brightevents-backend/internal/config"
	"brightevents-backend/internal/event"
	"brightevents-backend/internal/metrics"
	"brightevents-backend/internal/middleware"
)

// Deps are the collaborators the router needs. Metrics and Gatherer may be
// nil, in which case no metrics are recorded or served.
type Deps struct {
	Config   *config.Config
	Auth     *auth.Service
	Events   *event.Service
	Logger   *slog.Logger
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(d.Logger),
		middleware.Metrics(d.Metrics),
		middleware.Recovery(d.Logger),
		middleware.CORSMiddleware(d.Config.CORSAllowedOrigin, d.Config.TokenHeader),
	)

	r.NoRoute(func(c *gin.Context) {
		middleware.JSONError(c, http.StatusNotFound, "Resource not found")
	})
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(d.Gatherer)))
	}

	authH := NewAuthHandler(d.Auth, d.Logger)
	eventH := NewEventHandler(d.Events, d.Metrics, d.Logger)
	guard := middleware.AuthMiddleware(d.Auth, d.Config.TokenHeader, d.Metrics, d.Logger)
	loginLimit := middleware.NewRateLimiter(d.Config.LoginRatePerMinute)

	// Public Routes
	r.POST("/auth/register", authH.Register)
	r.POST("/auth/login", loginLimit.Middleware(), authH.Login)
	r.GET("/events/all", eventH.GetAllEvents)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(guard)
	{
		authorized.POST("/auth/logout", authH.Logout)
		authorized.DELETE("/auth/account", authH.DeleteAccount)

		// EVENTS
		authorized.POST("/events", eventH.CreateEvent)
		authorized.GET("/events", eventH.GetMyEvents)
		authorized.GET("/events/:id", eventH.GetEvent)
		authorized.PUT("/events/:id", eventH.UpdateEvent)
		authorized.DELETE("/events/:id", eventH.DeleteEvent)

		// RSVP
		authorized.POST("/events/:id/rsvp", eventH.CreateRSVP)
		authorized.GET("/events/:id/rsvp", eventH.GetGuests)
	}

	return r
}
