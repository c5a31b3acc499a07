package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"brightevents-backend/internal/model"
)

type GormEventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Create(ctx context.Context, event *model.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *GormEventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var ev model.Event
	if err := r.db.WithContext(ctx).First(&ev, id).Error; err != nil {
		return nil, notFound(err, "find event")
	}
	return &ev, nil
}

func (r *GormEventRepository) ListByCreator(ctx context.Context, userID uint) ([]model.Event, error) {
	events := []model.Event{}
	if err := r.db.WithContext(ctx).Where("created_by = ?", userID).Order("id asc").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list events by creator: %w", err)
	}
	return events, nil
}

func (r *GormEventRepository) List(ctx context.Context, filter EventFilter) ([]model.Event, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if q := strings.TrimSpace(filter.Query); q != "" {
			like := "%" + strings.ToLower(q) + "%"
			db = db.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like, like)
		}
		if c := strings.TrimSpace(filter.Category); c != "" {
			db = db.Where("LOWER(category) = ?", strings.ToLower(c))
		}
		if l := strings.TrimSpace(filter.Location); l != "" {
			db = db.Where("LOWER(location) = ?", strings.ToLower(l))
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Event{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	query := r.db.WithContext(ctx).Scopes(scope).Order("id asc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	events := []model.Event{}
	if err := query.Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (r *GormEventRepository) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Event{}).
			Where("id = ? AND created_by = ?", event.ID, event.CreatedBy).
			Updates(map[string]any{
				"name":        event.Name,
				"category":    event.Category,
				"location":    event.Location,
				"date":        event.Date,
				"description": event.Description,
			})
		if res.Error != nil {
			return fmt.Errorf("update event: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.First(event, event.ID).Error; err != nil {
			return fmt.Errorf("reload event: %w", err)
		}
		return nil
	})
}

func (r *GormEventRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&model.RSVP{}).Error; err != nil {
			return fmt.Errorf("delete reservations: %w", err)
		}
		res := tx.Delete(&model.Event{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete event: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
