package event

import (
	"brightevents-backend/internal/apperr"
	"brightevents-backend/internal/model"
)

var ErrNotOwner = apperr.New(apperr.CodeForbidden, "You can only modify events you created")

// CheckOwnership allows the action only when user created ev.
func CheckOwnership(ev *model.Event, user *model.User) error {
	if ev == nil || user == nil || ev.CreatedBy != user.ID {
		return ErrNotOwner
	}
	return nil
}
