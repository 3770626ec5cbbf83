package model

import "time"

const SignupCredits = 10

type User struct {
	UserID       string    `gorm:"primaryKey;size:64" json:"user_id"`
	Email        string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	Username     string    `gorm:"size:64;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Credits      int       `gorm:"not null;default:10" json:"credits"`
	IsPro        bool      `gorm:"not null;default:false" json:"is_pro"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
