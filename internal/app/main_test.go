package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pinboard/internal/cache"
	"pinboard/internal/model"
	"pinboard/internal/pkg/mailer"
	"pinboard/internal/repository"
)

type fixture struct {
	db          *gorm.DB
	userRepo    *repository.UserRepository
	tokenRepo   *repository.TokenRepository
	pinRepo     *repository.PinRepository
	commentRepo *repository.CommentRepository
	explore     *cache.ExploreCache
	mail        *fakePublisher
}

type fakePublisher struct {
	jobs []mailer.MailJob
	fail bool
}

func (f *fakePublisher) Publish(_ context.Context, job mailer.MailJob) error {
	if f.fail {
		return errors.New("broker unavailable")
	}
	f.jobs = append(f.jobs, job)
	return nil
}

type fakeUploader struct {
	url  string
	fail bool
}

func (f *fakeUploader) Upload(context.Context, []byte, string) (string, error) {
	if f.fail {
		return "", errors.New("s3 unavailable")
	}
	return f.url, nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Pin{}, &model.Comment{}, &model.Token{}))

	mr := miniredis.RunT(t)
	client := redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return &fixture{
		db:          db,
		userRepo:    repository.NewUserRepository(db),
		tokenRepo:   repository.NewTokenRepository(db),
		pinRepo:     repository.NewPinRepository(db),
		commentRepo: repository.NewCommentRepository(db),
		explore:     cache.NewExploreCache(client, 100*time.Second, 600*time.Second),
		mail:        &fakePublisher{},
	}
}

func (f *fixture) authService() *AuthService {
	return NewAuthService(f.userRepo, f.tokenRepo, f.mail, "test-secret", TokenTTLs{}, "http://localhost")
}

func (f *fixture) seedUser(t *testing.T, username string, verified bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		IsVerified:   verified,
		Role:         model.RoleUser,
		Followers:    model.StringList{},
		Following:    model.StringList{},
	}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *fixture) seedPin(t *testing.T, userID uint, title string, tags ...string) *model.Pin {
	t.Helper()
	pin := &model.Pin{
		UserID:      userID,
		Image:       "https://img.example.com/" + title,
		Title:       title,
		Description: "about " + title,
		Tags:        model.StringList(tags),
		Likes:       model.StringList{},
	}
	require.NoError(t, f.db.Create(pin).Error)
	return pin
}
