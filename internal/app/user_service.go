package app

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"pinboard/internal/model"
	"pinboard/internal/repository"
)

var ErrSelfFollow = errors.New("you cannot follow yourself")

// UserService covers profiles and the social graph.
type UserService struct {
	userRepo *repository.UserRepository
}

type UpdateUserInput struct {
	Username       string
	Email          string
	Bio            string
	ProfilePicture string
	Password       string
}

type FollowResult struct {
	User       *model.User `json:"updatedUser"`
	TargetUser *model.User `json:"updatedFollowedUser"`
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetProfile(username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidInput
	}
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile mutates profile fields after the ownership guard. A new
// password is re-hashed, never stored raw.
func (s *UserService) UpdateProfile(id, actingUserID uint, input UpdateUserInput) (*model.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if err := assertOwner(user.ID, actingUserID); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if v := strings.TrimSpace(input.Username); v != "" {
		fields["username"] = v
	}
	if v := strings.TrimSpace(strings.ToLower(input.Email)); v != "" {
		fields["email"] = v
	}
	if v := strings.TrimSpace(input.Bio); v != "" {
		fields["bio"] = v
	}
	if v := strings.TrimSpace(input.ProfilePicture); v != "" {
		fields["profile_picture"] = v
	}
	if password := strings.TrimSpace(input.Password); password != "" {
		if len(password) < 8 {
			return nil, ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = string(hash)
	}
	if len(fields) == 0 {
		return nil, ErrInvalidInput
	}

	return s.userRepo.UpdateFields(id, fields)
}

// Follow is anti-reflexive and mutates both records with set semantics.
func (s *UserService) Follow(actingUserID, targetUserID uint) (*FollowResult, error) {
	if actingUserID == 0 || targetUserID == 0 {
		return nil, ErrInvalidInput
	}
	if actingUserID == targetUserID {
		return nil, ErrSelfFollow
	}

	actor, target, err := s.userRepo.Follow(actingUserID, targetUserID)
	if err != nil {
		return nil, err
	}
	if actor == nil || target == nil {
		return nil, ErrUserNotFound
	}
	return &FollowResult{User: actor, TargetUser: target}, nil
}

func (s *UserService) Unfollow(actingUserID, targetUserID uint) (*FollowResult, error) {
	if actingUserID == 0 || targetUserID == 0 {
		return nil, ErrInvalidInput
	}
	if actingUserID == targetUserID {
		return nil, ErrSelfFollow
	}

	actor, target, err := s.userRepo.Unfollow(actingUserID, targetUserID)
	if err != nil {
		return nil, err
	}
	if actor == nil || target == nil {
		return nil, ErrUserNotFound
	}
	return &FollowResult{User: actor, TargetUser: target}, nil
}

func (s *UserService) Followers(userID uint) ([]model.UserSummary, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.userRepo.ListByIDs(user.Followers)
}

func (s *UserService) Following(userID uint) ([]model.UserSummary, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.userRepo.ListByIDs(user.Following)
}
