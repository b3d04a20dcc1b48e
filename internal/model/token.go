package model

import "time"

// Token is a single-use credential artifact backing email verification and
// password reset. One live token per user; a new one replaces the previous.
type Token struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;uniqueIndex" json:"userId"`
	Token     string     `gorm:"size:1024;not null" json:"token"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
