package repository

import (
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"pinboard/internal/model"
)

// IDString renders a user id the way follower/following/like sets store it.
func IDString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by username failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

// ListByIDs returns the users whose stringified ids appear in ids, in a
// sanitized summary shape.
func (r *UserRepository) ListByIDs(ids []string) ([]model.UserSummary, error) {
	summaries := []model.UserSummary{}
	if len(ids) == 0 {
		return summaries, nil
	}

	var users []model.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("query users by ids failed: %w", err)
	}
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries, nil
}

func (r *UserRepository) SearchByUsername(query string) ([]model.User, error) {
	var users []model.User
	pattern := "%" + query + "%"
	if err := r.db.Where("LOWER(username) LIKE LOWER(?)", pattern).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("search users failed: %w", err)
	}
	return users, nil
}

func (r *UserRepository) UpdateFields(id uint, fields map[string]interface{}) (*model.User, error) {
	if len(fields) > 0 {
		if err := r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("update user failed: %w", err)
		}
	}
	return r.GetByID(id)
}

func (r *UserRepository) MarkVerified(id uint) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Update("is_verified", true).Error; err != nil {
		return fmt.Errorf("mark user verified failed: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdatePasswordHash(id uint, hash string) error {
	if err := r.db.Model(&model.User{}).Where("id = ?", id).Update("password_hash", hash).Error; err != nil {
		return fmt.Errorf("update password failed: %w", err)
	}
	return nil
}

// Follow adds target to actor.following and actor to target.followers inside
// one transaction, so the graph edge is never left half-written.
func (r *UserRepository) Follow(actorID, targetID uint) (*model.User, *model.User, error) {
	return r.mutateGraph(actorID, targetID, func(actor, target *model.User) {
		actor.Following = actor.Following.AddUnique(IDString(targetID))
		target.Followers = target.Followers.AddUnique(IDString(actorID))
	})
}

// Unfollow is the set-difference mirror of Follow.
func (r *UserRepository) Unfollow(actorID, targetID uint) (*model.User, *model.User, error) {
	return r.mutateGraph(actorID, targetID, func(actor, target *model.User) {
		actor.Following = actor.Following.Remove(IDString(targetID))
		target.Followers = target.Followers.Remove(IDString(actorID))
	})
}

func (r *UserRepository) mutateGraph(actorID, targetID uint, mutate func(actor, target *model.User)) (*model.User, *model.User, error) {
	var actor, target model.User
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&actor, actorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return fmt.Errorf("query acting user failed: %w", err)
		}
		if err := tx.First(&target, targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return fmt.Errorf("query target user failed: %w", err)
		}

		mutate(&actor, &target)

		if err := tx.Model(&actor).Update("following", actor.Following).Error; err != nil {
			return fmt.Errorf("update following set failed: %w", err)
		}
		if err := tx.Model(&target).Update("followers", target.Followers).Error; err != nil {
			return fmt.Errorf("update followers set failed: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return &actor, &target, nil
}
