package models

import "time"

// Notification is one row of a user's append-only inbox.
type Notification struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserEmail   string    `gorm:"index" json:"userEmail"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Alternative string    `json:"alternative"`
	Read        bool      `json:"read"`
	Timestamp   time.Time `gorm:"autoCreateTime" json:"timestamp"`
}
