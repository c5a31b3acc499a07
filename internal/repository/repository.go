// Package repository persists users, events, reservations and revoked tokens
// through gorm. Every mutating method commits as a single unit.
package repository

import (
	"context"
	"errors"

	"brightevents-backend/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository stores user identities.
type UserRepository interface {
	// Create inserts user and fills its ID. Returns ErrDuplicate when the
	// username is taken.
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// Delete removes the user together with their events, their
	// reservations and every reservation on their events.
	Delete(ctx context.Context, id uint) error
}

// EventFilter narrows List. Empty strings match everything.
type EventFilter struct {
	Query    string
	Category string
	Location string
	Offset   int
	Limit    int
}

// EventRepository stores events.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	FindByID(ctx context.Context, id uint) (*model.Event, error)
	ListByCreator(ctx context.Context, userID uint) ([]model.Event, error)
	List(ctx context.Context, filter EventFilter) ([]model.Event, int64, error)
	// Update writes the mutable fields of event. The row must still belong
	// to event.CreatedBy, otherwise ErrNotFound.
	Update(ctx context.Context, event *model.Event) error
	// Delete removes the event and its reservations. ErrNotFound when no
	// row was deleted.
	Delete(ctx context.Context, id uint) error
}

// RSVPRepository stores the user/event reservation join table.
type RSVPRepository interface {
	Exists(ctx context.Context, userID, eventID uint) (bool, error)
	// Insert adds the reservation and reports whether a row was written.
	// An existing reservation yields (false, nil); a missing user or event
	// yields ErrNotFound.
	Insert(ctx context.Context, userID, eventID uint) (bool, error)
	ListGuests(ctx context.Context, eventID uint) ([]model.User, error)
}

// RevokedTokenRepository stores the token blacklist.
type RevokedTokenRepository interface {
	// Add blacklists token and reports whether it was newly added.
	Add(ctx context.Context, token string) (bool, error)
	Exists(ctx context.Context, token string) (bool, error)
}
