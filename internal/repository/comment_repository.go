package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pinboard/internal/model"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

// GetByID repairs a drifted likeCount on read: the like set is the source
// of truth, the counter is the denormalization.
func (r *CommentRepository) GetByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query comment by id failed: %w", err)
	}

	if comment.LikeCount != len(comment.Likes) {
		comment.LikeCount = len(comment.Likes)
		if err := r.db.Model(&comment).Update("like_count", comment.LikeCount).Error; err != nil {
			return nil, fmt.Errorf("repair comment like count failed: %w", err)
		}
	}
	return &comment, nil
}

func (r *CommentRepository) ListByPin(pinID uint) ([]model.Comment, error) {
	var comments []model.Comment
	if err := r.db.Where("pin_id = ?", pinID).Order("id DESC").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("list pin comments failed: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) UpdateText(id uint, text string) (*model.Comment, error) {
	if err := r.db.Model(&model.Comment{}).Where("id = ?", id).Update("comment", text).Error; err != nil {
		return nil, fmt.Errorf("update comment failed: %w", err)
	}
	return r.GetByID(id)
}

// UpdateLikes writes the like set and its counter in one row update so the
// two can only drift across updates, never inside one.
func (r *CommentRepository) UpdateLikes(id uint, likes model.StringList) (*model.Comment, error) {
	err := r.db.Model(&model.Comment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"likes":      likes,
		"like_count": len(likes),
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update comment likes failed: %w", err)
	}
	return r.GetByID(id)
}

func (r *CommentRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Comment{}, id).Error; err != nil {
		return fmt.Errorf("delete comment failed: %w", err)
	}
	return nil
}
