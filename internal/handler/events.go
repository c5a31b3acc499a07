package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"brightevents-backend/internal/event"
	"brightevents-backend/internal/metrics"
	"brightevents-backend/internal/middleware"
	"brightevents-backend/internal/model"
)

type EventHandler struct {
	svc     *event.Service
	metrics *metrics.Collector
	logger  *slog.Logger
}

func NewEventHandler(svc *event.Service, collector *metrics.Collector, logger *slog.Logger) *EventHandler {
	return &EventHandler{svc: svc, metrics: collector, logger: logger}
}

type eventRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

func (r eventRequest) fields() event.Fields {
	return event.Fields{
		Name:        r.Name,
		Category:    r.Category,
		Location:    r.Location,
		Date:        r.Date,
		Description: r.Description,
	}
}

type listQuery struct {
	Query    string `form:"q"`
	Category string `form:"category"`
	Location string `form:"location"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// -----------------------------
// Helpers
// -----------------------------

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// currentUser expects AuthMiddleware to have run. A missing user means the
// route was wired without it.
func currentUser(c *gin.Context) (*model.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.JSONError(c, http.StatusUnauthorized, "Please provide an access token")
		return nil, false
	}
	return user, true
}

func eventID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		middleware.JSONError(c, http.StatusBadRequest, "Invalid event id")
		return 0, false
	}
	return uint(id), true
}

// -----------------------------
// Events
// -----------------------------

func (h *EventHandler) CreateEvent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req eventRequest
	if !bindJSON(c, &req) {
		return
	}

	ev, err := h.svc.Create(c.Request.Context(), user, req.fields())
	if err != nil {
		middleware.WriteError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (h *EventHandler) GetMyEvents(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	events, err := h.svc.ListMine(c.Request.Context(), user)
	if err != nil {
		middleware.WriteError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *EventHandler) GetAllEvents(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		middleware.JSONError(c, http.StatusBadRequest, "page and limit must be integers")
		return
	}

	page, err := h.svc.ListAll(c.Request.Context(), event.Filter{
		Query:    q.Query,
		Category: q.Category,
		Location: q.Location,
		Page:     q.Page,
		Limit:    q.Limit,
	})
	if err != nil {
		middleware.WriteError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// eventResponse is a single event as seen by the requesting user.
type eventResponse struct {
	*model.Event
	Reserved bool `json:"reserved"`
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}
	ev, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		middleware.WriteError(c, h.logger, err)
		return
	}
	reserved, err := h.svc.Reserved(c.Request.Context(), user, id)
	if err != nil {
		middleware.WriteError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, eventResponse{Event: ev, Reserved: reserved})
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}
	var req eventRequest
	if !bindJSON(c, &req) {
		return
	}

	ev, err := h.svc.Update(c.Request.Context(), user, id, req.fields())
	if err != nil {
		middleware.WriteError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ev)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), user, id); err != nil {
		middleware.WriteError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// -----------------------------
// RSVP
// -----------------------------

func (h *EventHandler) CreateRSVP(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}

	created, err := h.svc.Reserve(c.Request.Context(), user, id)
	if err != nil {
		middleware.WriteError(c, h.logger, err)
		return
	}
	h.metrics.RecordReservation(created)

	if !created {
		c.JSON(http.StatusOK, gin.H{"message": event.MsgAlreadyReserved})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": event.MsgReservationCreated})
}

func (h *EventHandler) GetGuests(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := eventID(c)
	if !ok {
		return
	}

	guests, err := h.svc.Guests(c.Request.Context(), user, id)
	if err != nil {
		middleware.WriteError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"guests": guests})
}
