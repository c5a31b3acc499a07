// Package event manages events and reservations. Mutations go through
// CheckOwnership before anything is written.
package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"brightevents-backend/internal/apperr"
	"brightevents-backend/internal/model"
	"brightevents-backend/internal/repository"
	"brightevents-backend/internal/validate"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	MsgReservationCreated = "Reservation Created"
	MsgAlreadyReserved    = "Already RSVP for this event"
)

var ErrEventNotFound = apperr.New(apperr.CodeNotFound, "Event not found")

// Fields are the user-editable attributes of an event.
type Fields struct {
	Name        string
	Category    string
	Location    string
	Date        string
	Description string
}

func (f Fields) trimmed() Fields {
	return Fields{
		Name:        strings.TrimSpace(f.Name),
		Category:    strings.TrimSpace(f.Category),
		Location:    strings.TrimSpace(f.Location),
		Date:        strings.TrimSpace(f.Date),
		Description: strings.TrimSpace(f.Description),
	}
}

// Validate requires name, category, location and date, bounds them to their
// column sizes and keeps special characters out of the name.
func (f Fields) Validate() error {
	if err := validate.NotEmpty(
		validate.Field{Label: "Event name", Value: f.Name},
		validate.Field{Label: "Event category", Value: f.Category},
		validate.Field{Label: "Event location", Value: f.Location},
		validate.Field{Label: "Event date", Value: f.Date},
	); err != nil {
		return err
	}
	for _, field := range []validate.Field{
		{Label: "Event name", Value: f.Name},
		{Label: "Event category", Value: f.Category},
		{Label: "Event location", Value: f.Location},
	} {
		if err := validate.MaxLength(field.Label, field.Value, validate.MaxNameLength); err != nil {
			return err
		}
	}
	if err := validate.MaxLength("Event date", f.Date, validate.MaxDateLength); err != nil {
		return err
	}
	return validate.NoSpecialChars("Event name", f.Name)
}

// Filter narrows ListAll. Page is 1-based.
type Filter struct {
	Query    string
	Category string
	Location string
	Page     int
	Limit    int
}

// Page is one page of ListAll results.
type Page struct {
	Events []model.Event `json:"events"`
	Total  int64         `json:"total"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
}

type Service struct {
	events repository.EventRepository
	rsvps  repository.RSVPRepository
	logger *slog.Logger
}

func NewService(events repository.EventRepository, rsvps repository.RSVPRepository, logger *slog.Logger) *Service {
	return &Service{events: events, rsvps: rsvps, logger: logger}
}

// Create stores a new event owned by user.
func (s *Service) Create(ctx context.Context, user *model.User, f Fields) (*model.Event, error) {
	f = f.trimmed()
	if err := f.Validate(); err != nil {
		return nil, err
	}

	ev := &model.Event{
		Name:        f.Name,
		Category:    f.Category,
		Location:    f.Location,
		Date:        f.Date,
		Description: f.Description,
		CreatedBy:   user.ID,
	}
	if err := s.events.Create(ctx, ev); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "event created", "event_id", ev.ID, "user_id", user.ID)
	return ev, nil
}

// ListMine returns the events user created.
func (s *Service) ListMine(ctx context.Context, user *model.User) ([]model.Event, error) {
	return s.events.ListByCreator(ctx, user.ID)
}

// ListAll returns every event matching filter, one page at a time.
func (s *Service) ListAll(ctx context.Context, filter Filter) (*Page, error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultPageSize
	}
	if filter.Page < 1 {
		return nil, apperr.Validation("page must be a positive integer")
	}
	if filter.Limit < 1 || filter.Limit > MaxPageSize {
		return nil, apperr.Validation(fmt.Sprintf("limit must be between 1 and %d", MaxPageSize))
	}
	if filter.Page > math.MaxInt/filter.Limit {
		return nil, apperr.Validation("page is out of range")
	}

	events, total, err := s.events.List(ctx, repository.EventFilter{
		Query:    filter.Query,
		Category: filter.Category,
		Location: filter.Location,
		Offset:   (filter.Page - 1) * filter.Limit,
		Limit:    filter.Limit,
	})
	if err != nil {
		return nil, err
	}
	return &Page{Events: events, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*model.Event, error) {
	ev, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return ev, nil
}

// Update rewrites the editable fields. Only the creator may update.
func (s *Service) Update(ctx context.Context, user *model.User, id uint, f Fields) (*model.Event, error) {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckOwnership(ev, user); err != nil {
		return nil, err
	}

	f = f.trimmed()
	if err := f.Validate(); err != nil {
		return nil, err
	}

	ev.Name = f.Name
	ev.Category = f.Category
	ev.Location = f.Location
	ev.Date = f.Date
	ev.Description = f.Description
	if err := s.events.Update(ctx, ev); err != nil {
		return nil, notFound(err)
	}
	s.logger.InfoContext(ctx, "event updated", "event_id", ev.ID, "user_id", user.ID)
	return ev, nil
}

// Delete removes the event and its reservations. Only the creator may delete.
func (s *Service) Delete(ctx context.Context, user *model.User, id uint) error {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := CheckOwnership(ev, user); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.logger.InfoContext(ctx, "event deleted", "event_id", id, "user_id", user.ID)
	return nil
}

// Reserve records user's RSVP to the event. It reports false, with no write,
// when the reservation already exists, and ErrEventNotFound when the event is
// gone by the time the row is written.
func (s *Service) Reserve(ctx context.Context, user *model.User, id uint) (bool, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return false, err
	}
	created, err := s.rsvps.Insert(ctx, user.ID, id)
	if err != nil {
		return false, notFound(err)
	}
	if created {
		s.logger.InfoContext(ctx, "reservation created", "event_id", id, "user_id", user.ID)
	}
	return created, nil
}

// Reserved reports whether user holds a reservation for the event.
func (s *Service) Reserved(ctx context.Context, user *model.User, id uint) (bool, error) {
	return s.rsvps.Exists(ctx, user.ID, id)
}

// Guests lists the users who reserved the event. Only the creator may look.
func (s *Service) Guests(ctx context.Context, user *model.User, id uint) ([]model.User, error) {
	ev, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := CheckOwnership(ev, user); err != nil {
		return nil, err
	}
	return s.rsvps.ListGuests(ctx, id)
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrEventNotFound
	}
	return err
}
