package model

import (
	"time"
)

// User represents a registered user. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:128;uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"size:128;index;not null"`
	Password  string    `json:"-" gorm:"size:256;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Event is the core event model. CreatedBy is set once, on creation, and
// references the creating user.
type Event struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:128;not null"`
	Category    string    `json:"category" gorm:"size:128"`
	Location    string    `json:"location" gorm:"size:128"`
	Date        string    `json:"date" gorm:"size:255"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedBy   uint      `json:"created_by" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Creator *User `json:"-" gorm:"foreignKey:CreatedBy;constraint:OnDelete:CASCADE"`
}

// RSVP joins a user to an event they reserved. The composite primary key
// allows at most one row per pair, and both sides are foreign keys.
type RSVP struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	EventID   uint      `json:"event_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`

	User  *User  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Event *Event `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (RSVP) TableName() string { return "rsvps" }

// RevokedToken is a blacklisted access token.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey"`
	Token     string    `gorm:"size:512;uniqueIndex;not null"`
	CreatedAt time.Time
}

// All lists every model managed by migrations.
func All() []any {
	return []any{&User{}, &Event{}, &RSVP{}, &RevokedToken{}}
}
