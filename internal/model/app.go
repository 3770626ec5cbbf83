package model

import "time"

// App is a generated artifact: the prompt that produced it and the resulting
// source text, stored verbatim after fence stripping.
type App struct {
	AppID       string    `gorm:"primaryKey;size:64" json:"app_id"`
	UserID      string    `gorm:"size:64;not null;index" json:"user_id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	Prompt      string    `gorm:"type:text;not null" json:"prompt"`
	Code        string    `gorm:"type:text;not null" json:"code"`
	IsPublic    bool      `gorm:"not null;default:false" json:"is_public"`
	// Likes has no increment path yet; it only drives gallery ordering.
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}
