package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"brightevents-backend/internal/model"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("username = ?", user.Username).Count(&count).Error; err != nil {
			return fmt.Errorf("check username: %w", err)
		}
		if count > 0 {
			return ErrDuplicate
		}
		// The unique index still arbitrates concurrent registrations.
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicate
			}
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "find user")
	}
	return &user, nil
}

func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).Order("id asc").First(&user).Error; err != nil {
		return nil, notFound(err, "find user by email")
	}
	return &user, nil
}

func (r *GormUserRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var eventIDs []uint
		if err := tx.Model(&model.Event{}).Where("created_by = ?", id).Pluck("id", &eventIDs).Error; err != nil {
			return fmt.Errorf("list owned events: %w", err)
		}
		if len(eventIDs) > 0 {
			if err := tx.Where("event_id IN ?", eventIDs).Delete(&model.RSVP{}).Error; err != nil {
				return fmt.Errorf("delete reservations on owned events: %w", err)
			}
			if err := tx.Where("id IN ?", eventIDs).Delete(&model.Event{}).Error; err != nil {
				return fmt.Errorf("delete owned events: %w", err)
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.RSVP{}).Error; err != nil {
			return fmt.Errorf("delete reservations: %w", err)
		}

		res := tx.Delete(&model.User{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// notFound maps gorm.ErrRecordNotFound to ErrNotFound and wraps anything else.
func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
