package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"brightevents-backend/internal/model"
)

type GormRSVPRepository struct {
	db *gorm.DB
}

func NewRSVPRepository(db *gorm.DB) *GormRSVPRepository {
	return &GormRSVPRepository{db: db}
}

func (r *GormRSVPRepository) Exists(ctx context.Context, userID, eventID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RSVP{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check reservation: %w", err)
	}
	return count > 0, nil
}

// Insert relies on the composite primary key: a conflicting row is skipped
// and reported through RowsAffected. The event row is share-locked for the
// duration of the write, and the foreign keys reject a reservation whose user
// or event is already gone.
func (r *GormRSVPRepository) Insert(ctx context.Context, userID, eventID uint) (bool, error) {
	var created bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []uint
		err := tx.Model(&model.Event{}).
			Clauses(clause.Locking{Strength: clause.LockingStrengthShare}).
			Where("id = ?", eventID).
			Limit(1).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return ErrNotFound
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.RSVP{UserID: userID, EventID: eventID})
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected > 0
		return nil
	})
	switch {
	case err == nil:
		return created, nil
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrForeignKeyViolated):
		return false, ErrNotFound
	default:
		return false, fmt.Errorf("insert reservation: %w", err)
	}
}

func (r *GormRSVPRepository) ListGuests(ctx context.Context, eventID uint) ([]model.User, error) {
	users := []model.User{}
	err := r.db.WithContext(ctx).
		Joins("JOIN rsvps ON rsvps.user_id = users.id").
		Where("rsvps.event_id = ?", eventID).
		Order("users.id asc").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return users, nil
}
