package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"appfab/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

// GetByEmailAndHash serves the legacy deterministic-digest login: the digest
// is recomputed by the caller and matched in the query itself.
func (r *UserRepository) GetByEmailAndHash(email, passwordHash string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ? AND password_hash = ?", email, passwordHash).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email and hash failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(userID string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

// DeductCredit spends one credit as a single conditional update so that two
// concurrent requests cannot both spend the last credit. Returns false when
// no credit was available.
func (r *UserRepository) DeductCredit(userID string) (bool, error) {
	result := r.db.Model(&model.User{}).
		Where("user_id = ? AND credits > 0", userID).
		UpdateColumn("credits", gorm.Expr("credits - ?", 1))
	if result.Error != nil {
		return false, fmt.Errorf("deduct credit failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// SetPro reports false when no such user exists.
func (r *UserRepository) SetPro(userID string) (bool, error) {
	result := r.db.Model(&model.User{}).
		Where("user_id = ?", userID).
		Update("is_pro", true)
	if result.Error != nil {
		return false, fmt.Errorf("set pro failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
