package model

import "time"

const (
	GenerationSucceeded = "succeeded"
	GenerationFailed    = "failed"
)

// GenerationEvent is an audit record for one generation attempt. Events are
// published to RabbitMQ from the request path and persisted by a worker.
type GenerationEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     string    `gorm:"size:64;not null;index" json:"user_id"`
	AppID      string    `gorm:"size:64" json:"app_id"`
	Status     string    `gorm:"size:16;not null" json:"status"`
	Detail     string    `gorm:"size:512" json:"detail"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
