package repository

import (
	"fmt"

	"gorm.io/gorm"

	"appfab/internal/model"
)

type GenerationEventRepository struct {
	db *gorm.DB
}

func NewGenerationEventRepository(db *gorm.DB) *GenerationEventRepository {
	return &GenerationEventRepository{db: db}
}

func (r *GenerationEventRepository) Create(event *model.GenerationEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("create generation event failed: %w", err)
	}
	return nil
}

func (r *GenerationEventRepository) ListByUserID(userID string, limit int) ([]model.GenerationEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var events []model.GenerationEvent
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list generation events failed: %w", err)
	}
	return events, nil
}
