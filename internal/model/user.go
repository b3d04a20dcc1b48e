package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"

	DefaultProfilePicture = "https://via.placeholder.com/150"
	DefaultBio            = "Nothing to say yet"
)

type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"size:64;not null;uniqueIndex" json:"userName"`
	Email          string     `gorm:"size:128;not null;uniqueIndex" json:"email"`
	PasswordHash   string     `gorm:"size:255;not null" json:"-"`
	ProfilePicture string     `gorm:"size:512;not null;default:''" json:"profilePicture"`
	Bio            string     `gorm:"size:512;not null;default:''" json:"bio"`
	IsVerified     bool       `gorm:"not null;default:false" json:"isVerified"`
	Role           string     `gorm:"size:16;not null;default:'user'" json:"role"`
	Followers      StringList `gorm:"type:json" json:"followers"`
	Following      StringList `gorm:"type:json" json:"following"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// UserSummary is the sanitized shape returned for follower/following lists.
type UserSummary struct {
	ID             uint   `json:"id"`
	Username       string `json:"userName"`
	ProfilePicture string `json:"profilePicture"`
	Bio            string `json:"bio"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:             u.ID,
		Username:       u.Username,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
	}
}
