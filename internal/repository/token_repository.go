package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pinboard/internal/model"
)

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// Save stores the token for a user, replacing any previous one.
func (r *TokenRepository) Save(token *model.Token) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at", "created_at"}),
	}).Create(token).Error
	if err != nil {
		return fmt.Errorf("save token failed: %w", err)
	}
	return nil
}

// Find returns the stored token for userID when it matches tokenString and
// has not expired. A miss is (nil, nil).
func (r *TokenRepository) Find(userID uint, tokenString string) (*model.Token, error) {
	var token model.Token
	if err := r.db.Where("user_id = ? AND token = ?", userID, tokenString).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query token failed: %w", err)
	}
	if token.ExpiresAt != nil && token.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return &token, nil
}

func (r *TokenRepository) DeleteByUser(userID uint) error {
	if err := r.db.Where("user_id = ?", userID).Delete(&model.Token{}).Error; err != nil {
		return fmt.Errorf("delete token failed: %w", err)
	}
	return nil
}
