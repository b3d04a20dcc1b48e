package app

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinboard/internal/model"
	"pinboard/internal/repository"
)

func (f *fixture) pinService(uploader ImageUploader) *PinService {
	return NewPinService(f.pinRepo, f.userRepo, f.explore, uploader)
}

func TestCreatePinRequiresVerifiedAccount(t *testing.T) {
	f := newFixture(t)
	svc := f.pinService(nil)
	unverified := f.seedUser(t, "newbie", false)

	_, err := svc.Create(context.Background(), unverified.ID, CreatePinInput{
		Image: "https://img.example.com/x", Title: "First", Description: "d",
	})
	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestCreatePinWithImageURL(t *testing.T) {
	f := newFixture(t)
	svc := f.pinService(nil)
	maria := f.seedUser(t, "maria", true)

	pin, err := svc.Create(context.Background(), maria.ID, CreatePinInput{
		Image:       "https://img.example.com/sunset.jpg",
		Title:       "Sunset",
		Description: "golden hour",
		Tags:        []string{"nature"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/sunset.jpg", pin.Image)
	assert.Equal(t, maria.ID, pin.UserID)
	assert.NotZero(t, pin.ID)
}

func TestCreatePinUploadsBase64Image(t *testing.T) {
	f := newFixture(t)
	uploader := &fakeUploader{url: "https://cdn.example.com/pins/abc"}
	svc := f.pinService(uploader)
	maria := f.seedUser(t, "maria", true)

	payload := base64.StdEncoding.EncodeToString([]byte("raw image bytes"))
	pin, err := svc.Create(context.Background(), maria.ID, CreatePinInput{
		Image: payload, Title: "Upload", Description: "d",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/pins/abc", pin.Image)
}

func TestCreatePinWithoutUploader(t *testing.T) {
	f := newFixture(t)
	svc := f.pinService(nil)
	maria := f.seedUser(t, "maria", true)

	_, err := svc.Create(context.Background(), maria.ID, CreatePinInput{
		Image: "bm90LWEtdXJs", Title: "Upload", Description: "d",
	})
	assert.ErrorIs(t, err, ErrImageUpload)
}

func TestPaginateEmptyPageIsReported(t *testing.T) {
	f := newFixture(t)
	svc := f.pinService(nil)

	_, err := svc.Paginate(repository.PaginateParams{})
	assert.ErrorIs(t, err, ErrPinNotFound)
}

func TestGetPin(t *testing.T) {
	f := newFixture(t)
	svc := f.pinService(nil)
	maria := f.seedUser(t, "maria", true)
	pin := f.seedPin(t, maria.ID, "Sunset")

	found, err := svc.Get(pin.ID)
	require.NoError(t, err)
	assert.Equal(t, pin.ID, found.ID)

	_, err = svc.Get(999)
	assert.ErrorIs(t, err, ErrPinNotFound)
}

func TestLikeTwiceRejected(t *testing.T) {
	f := newFixture(t)
	svc := f.pinService(nil)
	maria := f.seedUser(t, "maria", true)
	bob := f.seedUser(t, "bob", true)
	pin := f.seedPin(t, bob.ID, "Sunset")

	liked, err := svc.Like(pin.ID, maria.ID)
	require.NoError(t, err)
	assert.Contains(t, liked.Likes, repository.IDString(maria.ID))

	_, err = svc.Like(pin.ID, maria.ID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)
}

func TestDislikeWithoutPriorLike(t *testing.T) {
	f := newFixture(t)
	svc := f.pinService(nil)
	maria := f.seedUser(t, "maria", true)
	pin := f.seedPin(t, maria.ID, "Sunset")

	// removing an absent like succeeds and leaves the set unchanged
	result, err := svc.Dislike(pin.ID, maria.ID)
	require.NoError(t, err)
	assert.Empty(t, result.Likes)
}

func TestLikeThenDislike(t *testing.T) {
	f := newFixture(t)
	svc := f.pinService(nil)
	maria := f.seedUser(t, "maria", true)
	pin := f.seedPin(t, maria.ID, "Sunset")

	_, err := svc.Like(pin.ID, maria.ID)
	require.NoError(t, err)

	result, err := svc.Dislike(pin.ID, maria.ID)
	require.NoError(t, err)
	assert.Empty(t, result.Likes)
}

func TestListLikedByEmptyIsReported(t *testing.T) {
	f := newFixture(t)
	svc := f.pinService(nil)
	maria := f.seedUser(t, "maria", true)

	_, err := svc.ListLikedBy(maria.ID, 1, 10)
	assert.ErrorIs(t, err, ErrPinNotFound)

	_, err = svc.ListLikedBy(999, 1, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFollowedFeed(t *testing.T) {
	f := newFixture(t)
	svc := f.pinService(nil)
	userSvc := NewUserService(f.userRepo)
	maria := f.seedUser(t, "maria", true)
	bob := f.seedUser(t, "bob", true)
	carol := f.seedUser(t, "carol", true)
	f.seedPin(t, maria.ID, "mine")
	f.seedPin(t, bob.ID, "followed")
	f.seedPin(t, carol.ID, "stranger")

	_, err := userSvc.Follow(maria.ID, bob.ID)
	require.NoError(t, err)

	feed, err := svc.FollowedFeed(maria.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, feed.Pins, 2)
	assert.Equal(t, 1, feed.CurrentPage)
}

func TestUpdatePinGuards(t *testing.T) {
	f := newFixture(t)
	svc := f.pinService(nil)
	maria := f.seedUser(t, "maria", true)
	eve := f.seedUser(t, "eve", true)
	pin := f.seedPin(t, maria.ID, "Sunset", "nature")

	_, err := svc.Update(pin.ID, eve.ID, UpdatePinInput{Title: "stolen"})
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.Update(pin.ID, maria.ID, UpdatePinInput{Title: "this title is far too long to fit"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	updated, err := svc.Update(pin.ID, maria.ID, UpdatePinInput{Title: "Dusk", Tags: []string{"sky"}})
	require.NoError(t, err)
	assert.Equal(t, "Dusk", updated.Title)
	assert.Equal(t, []string{"sky"}, []string(updated.Tags))
}

func TestSharesTag(t *testing.T) {
	subject := model.StringList{"nature", "sea"}

	assert.True(t, sharesTag(model.StringList{"city", "sea"}, subject))
	assert.False(t, sharesTag(model.StringList{"city", "food"}, subject))
	assert.False(t, sharesTag(model.StringList{}, subject))
	assert.False(t, sharesTag(model.StringList{"nature"}, model.StringList{}))
}

func TestRelatedPinsKeepsOnlySharedTags(t *testing.T) {
	sample := []model.Pin{
		{Title: "match", Tags: model.StringList{"sea"}},
		{Title: "no match", Tags: model.StringList{"urban"}},
		{Title: "untagged", Tags: model.StringList{}},
	}

	related := relatedPins(sample, model.StringList{"nature", "sea"})
	require.Len(t, related, 1)
	assert.Equal(t, "match", related[0].Title)

	assert.Empty(t, relatedPins(sample, model.StringList{"food"}))
}

func TestWindowPins(t *testing.T) {
	pins := make([]model.Pin, 5)
	for i := range pins {
		pins[i].ID = uint(i + 1)
	}

	first := windowPins(pins, 1, 2)
	require.Len(t, first, 2)
	assert.Equal(t, uint(1), first[0].ID)

	third := windowPins(pins, 3, 2)
	require.Len(t, third, 1)
	assert.Equal(t, uint(5), third[0].ID)

	assert.Empty(t, windowPins(pins, 4, 2))
	assert.Empty(t, windowPins(pins, 100, 10))
	assert.Len(t, windowPins(pins, 1, 10), 5)
}

func TestDeletePinCascades(t *testing.T) {
	f := newFixture(t)
	svc := f.pinService(nil)
	commentSvc := NewCommentService(f.commentRepo, f.pinRepo, f.userRepo)
	maria := f.seedUser(t, "maria", true)
	eve := f.seedUser(t, "eve", true)
	pin := f.seedPin(t, maria.ID, "Sunset")

	_, err := commentSvc.Add(pin.ID, maria.ID, "self comment")
	require.NoError(t, err)

	_, err = svc.Delete(pin.ID, eve.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	deleted, err := svc.Delete(pin.ID, maria.ID)
	require.NoError(t, err)
	assert.Equal(t, pin.ID, deleted.ID)

	_, err = svc.Get(pin.ID)
	assert.ErrorIs(t, err, ErrPinNotFound)

	comments, err := f.commentRepo.ListByPin(pin.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
