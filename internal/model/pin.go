package model

import "time"

type Pin struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"userId"`
	Image       string     `gorm:"size:512;not null" json:"image"`
	Title       string     `gorm:"size:30;not null" json:"title"`
	Description string     `gorm:"size:300;not null" json:"description"`
	Tags        StringList `gorm:"type:json" json:"tags"`
	Likes       StringList `gorm:"type:json" json:"likes"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
