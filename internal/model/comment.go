package model

import "time"

type Comment struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"userId"`
	PinID     uint       `gorm:"not null;index" json:"pinId"`
	Comment   string     `gorm:"size:512;not null" json:"comment"`
	Likes     StringList `gorm:"type:json" json:"likes"`
	LikeCount int        `gorm:"not null;default:0" json:"likeCount"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
