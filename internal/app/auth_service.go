package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"pinboard/internal/model"
	"pinboard/internal/pkg/jwtutil"
	"pinboard/internal/pkg/mailer"
	"pinboard/internal/repository"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUsernameExists    = errors.New("username already exists")
	ErrEmailExists       = errors.New("user with this email already exists")
	ErrInvalidCredential = errors.New("invalid username or password")
	ErrUserNotFound      = errors.New("user not found")
	ErrTokenInvalid      = errors.New("invalid or expired token")
	ErrMailDelivery      = errors.New("failed to queue email delivery")
)

// MailPublisher queues an email for asynchronous delivery.
type MailPublisher interface {
	Publish(ctx context.Context, job mailer.MailJob) error
}

type TokenTTLs struct {
	Access time.Duration
	Verify time.Duration
	Reset  time.Duration
}

type AuthService struct {
	userRepo  *repository.UserRepository
	tokenRepo *repository.TokenRepository
	mail      MailPublisher
	jwtSecret string
	ttls      TokenTTLs
	baseURL   string
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(
	userRepo *repository.UserRepository,
	tokenRepo *repository.TokenRepository,
	mail MailPublisher,
	jwtSecret string,
	ttls TokenTTLs,
	baseURL string,
) *AuthService {
	if ttls.Access <= 0 {
		ttls.Access = 30 * 24 * time.Hour
	}
	if ttls.Verify <= 0 {
		ttls.Verify = 30 * time.Minute
	}
	if ttls.Reset <= 0 {
		ttls.Reset = time.Hour
	}
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mail:      mail,
		jwtSecret: jwtSecret,
		ttls:      ttls,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
	}
}

// Register creates the account, stores a verification token and queues the
// verification email. A mail failure surfaces to the caller but the created
// user record stays.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := strings.TrimSpace(input.Password)

	if username == "" || email == "" || password == "" || len(password) < 8 {
		return nil, ErrInvalidInput
	}

	existingByEmail, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existingByEmail != nil {
		return nil, ErrEmailExists
	}

	existingByName, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existingByName != nil {
		return nil, ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:       username,
		Email:          email,
		PasswordHash:   string(hash),
		ProfilePicture: model.DefaultProfilePicture,
		Bio:            model.DefaultBio,
		Role:           model.RoleUser,
		Followers:      model.StringList{},
		Following:      model.StringList{},
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	verificationToken, err := jwtutil.GenerateToken(
		s.jwtSecret, jwtutil.PurposeVerify, s.ttls.Verify, user.ID, user.Username, user.Role,
	)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.ttls.Verify)
	if err := s.tokenRepo.Save(&model.Token{
		UserID:    user.ID,
		Token:     verificationToken,
		ExpiresAt: &expiresAt,
	}); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/verify-account/%d/%s", s.baseURL, user.ID, verificationToken)
	if err := s.mail.Publish(ctx, mailer.VerificationJob(user.Username, user.Email, link)); err != nil {
		return user, ErrMailDelivery
	}
	return user, nil
}

// VerifyAccount flips the verification flag once the stored token matches.
func (s *AuthService) VerifyAccount(userID uint, token string) error {
	if userID == 0 || token == "" {
		return ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	stored, err := s.tokenRepo.Find(userID, token)
	if err != nil {
		return err
	}
	if stored == nil {
		return ErrTokenInvalid
	}

	return s.userRepo.MarkVerified(userID)
}

func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	password := strings.TrimSpace(input.Password)
	if username == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(
		s.jwtSecret, jwtutil.PurposeAccess, s.ttls.Access, user.ID, user.Username, user.Role,
	)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// RecoverPassword stores a reset token for the account and queues the reset
// email.
func (s *AuthService) RecoverPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ErrInvalidInput
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	resetToken, err := jwtutil.GenerateToken(
		s.jwtSecret, jwtutil.PurposeReset, s.ttls.Reset, user.ID, user.Username, user.Role,
	)
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(s.ttls.Reset)
	if err := s.tokenRepo.Save(&model.Token{
		UserID:    user.ID,
		Token:     resetToken,
		ExpiresAt: &expiresAt,
	}); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password/%d/%s", s.baseURL, user.ID, resetToken)
	if err := s.mail.Publish(ctx, mailer.PasswordResetJob(user.Username, user.Email, link)); err != nil {
		return ErrMailDelivery
	}
	return nil
}

// ResetPassword validates the stored reset token and re-hashes the new
// password. The token is consumed on success.
func (s *AuthService) ResetPassword(userID uint, token, password string) error {
	password = strings.TrimSpace(password)
	if userID == 0 || token == "" || password == "" || len(password) < 8 {
		return ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	stored, err := s.tokenRepo.Find(userID, token)
	if err != nil {
		return err
	}
	if stored == nil {
		return ErrTokenInvalid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}
	if err := s.userRepo.UpdatePasswordHash(userID, string(hash)); err != nil {
		return err
	}
	return s.tokenRepo.DeleteByUser(userID)
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	return s.userRepo.GetByID(id)
}
