package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"appfab/internal/model"
)

type AppRepository struct {
	db *gorm.DB
}

func NewAppRepository(db *gorm.DB) *AppRepository {
	return &AppRepository{db: db}
}

func (r *AppRepository) Create(app *model.App) error {
	if err := r.db.Create(app).Error; err != nil {
		return fmt.Errorf("create app failed: %w", err)
	}
	return nil
}

func (r *AppRepository) GetByID(appID string) (*model.App, error) {
	var app model.App
	if err := r.db.Where("app_id = ?", appID).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query app by id failed: %w", err)
	}
	return &app, nil
}

func (r *AppRepository) ListByUserID(userID string) ([]model.App, error) {
	var apps []model.App
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list apps failed: %w", err)
	}
	return apps, nil
}

func (r *AppRepository) ListPublic() ([]model.App, error) {
	var apps []model.App
	if err := r.db.Where("is_public = ?", true).Order("likes DESC").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("list public apps failed: %w", err)
	}
	return apps, nil
}
