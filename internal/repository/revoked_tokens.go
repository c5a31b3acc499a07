package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"brightevents-backend/internal/model"
)

type GormRevokedTokenRepository struct {
	db *gorm.DB
}

func NewRevokedTokenRepository(db *gorm.DB) *GormRevokedTokenRepository {
	return &GormRevokedTokenRepository{db: db}
}

func (r *GormRevokedTokenRepository) Add(ctx context.Context, token string) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token"}}, DoNothing: true}).
		Create(&model.RevokedToken{Token: token})
	if res.Error != nil {
		return false, fmt.Errorf("revoke token: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRevokedTokenRepository) Exists(ctx context.Context, token string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.RevokedToken{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return count > 0, nil
}
