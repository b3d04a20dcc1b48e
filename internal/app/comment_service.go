package app

import (
	"errors"
	"strings"

	"pinboard/internal/model"
	"pinboard/internal/repository"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrNoComments      = errors.New("no comments found")
	ErrNotLiked        = errors.New("you haven't liked this comment")
	ErrCommentLiked    = errors.New("you already liked this comment")
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	pinRepo     *repository.PinRepository
	userRepo    *repository.UserRepository
}

func NewCommentService(
	commentRepo *repository.CommentRepository,
	pinRepo *repository.PinRepository,
	userRepo *repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		pinRepo:     pinRepo,
		userRepo:    userRepo,
	}
}

// Add requires a verified account and an existing parent pin.
func (s *CommentService) Add(pinID, userID uint, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if pinID == 0 || userID == 0 || text == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsVerified {
		return nil, ErrNotVerified
	}

	pin, err := s.pinRepo.GetByID(pinID)
	if err != nil {
		return nil, err
	}
	if pin == nil {
		return nil, ErrPinNotFound
	}

	comment := &model.Comment{
		UserID:  userID,
		PinID:   pinID,
		Comment: text,
		Likes:   model.StringList{},
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListByPin returns a pin's comments newest first; an empty result is
// reported, matching the pin listing contract.
func (s *CommentService) ListByPin(pinID uint) ([]model.Comment, error) {
	pin, err := s.pinRepo.GetByID(pinID)
	if err != nil {
		return nil, err
	}
	if pin == nil {
		return nil, ErrPinNotFound
	}

	comments, err := s.commentRepo.ListByPin(pinID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, ErrNoComments
	}
	return comments, nil
}

// Like adds the user to the like set and bumps the counter in the same
// update.
func (s *CommentService) Like(commentID, userID uint) (*model.Comment, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	liker := repository.IDString(userID)
	if comment.Likes.Contains(liker) {
		return nil, ErrCommentLiked
	}
	return s.commentRepo.UpdateLikes(commentID, comment.Likes.AddUnique(liker))
}

// Dislike, unlike the pin variant, checks membership before removing.
func (s *CommentService) Dislike(commentID, userID uint) (*model.Comment, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	liker := repository.IDString(userID)
	if !comment.Likes.Contains(liker) {
		return nil, ErrNotLiked
	}
	return s.commentRepo.UpdateLikes(commentID, comment.Likes.Remove(liker))
}

func (s *CommentService) UpdateText(commentID, actingUserID uint, text string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidInput
	}

	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if err := assertOwner(comment.UserID, actingUserID); err != nil {
		return nil, err
	}

	return s.commentRepo.UpdateText(commentID, text)
}

func (s *CommentService) Delete(commentID, actingUserID uint) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if err := assertOwner(comment.UserID, actingUserID); err != nil {
		return nil, err
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		return nil, err
	}
	return comment, nil
}
