package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) commentService() *CommentService {
	return NewCommentService(f.commentRepo, f.pinRepo, f.userRepo)
}

func TestAddCommentGuards(t *testing.T) {
	f := newFixture(t)
	svc := f.commentService()
	maria := f.seedUser(t, "maria", true)
	unverified := f.seedUser(t, "newbie", false)
	pin := f.seedPin(t, maria.ID, "Sunset")

	_, err := svc.Add(pin.ID, unverified.ID, "hi")
	assert.ErrorIs(t, err, ErrNotVerified)

	_, err = svc.Add(999, maria.ID, "hi")
	assert.ErrorIs(t, err, ErrPinNotFound)

	_, err = svc.Add(pin.ID, maria.ID, "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	comment, err := svc.Add(pin.ID, maria.ID, "  lovely light  ")
	require.NoError(t, err)
	assert.Equal(t, "lovely light", comment.Comment)
	assert.Zero(t, comment.LikeCount)
}

func TestListByPinEmptyIsReported(t *testing.T) {
	f := newFixture(t)
	svc := f.commentService()
	maria := f.seedUser(t, "maria", true)
	pin := f.seedPin(t, maria.ID, "Sunset")

	_, err := svc.ListByPin(pin.ID)
	assert.ErrorIs(t, err, ErrNoComments)

	_, err = svc.ListByPin(999)
	assert.ErrorIs(t, err, ErrPinNotFound)

	_, err = svc.Add(pin.ID, maria.ID, "first")
	require.NoError(t, err)

	comments, err := svc.ListByPin(pin.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)
}

func TestCommentLikeToggle(t *testing.T) {
	f := newFixture(t)
	svc := f.commentService()
	maria := f.seedUser(t, "maria", true)
	bob := f.seedUser(t, "bob", true)
	pin := f.seedPin(t, maria.ID, "Sunset")

	comment, err := svc.Add(pin.ID, maria.ID, "nice")
	require.NoError(t, err)

	// disliking before liking is rejected, unlike the pin variant
	_, err = svc.Dislike(comment.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotLiked)

	liked, err := svc.Like(comment.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.LikeCount)

	_, err = svc.Like(comment.ID, bob.ID)
	assert.ErrorIs(t, err, ErrCommentLiked)

	disliked, err := svc.Dislike(comment.ID, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, disliked.LikeCount)
	assert.Empty(t, disliked.Likes)
}

func TestCommentUpdateAndDeleteOwnerOnly(t *testing.T) {
	f := newFixture(t)
	svc := f.commentService()
	maria := f.seedUser(t, "maria", true)
	eve := f.seedUser(t, "eve", true)
	pin := f.seedPin(t, maria.ID, "Sunset")

	comment, err := svc.Add(pin.ID, maria.ID, "original")
	require.NoError(t, err)

	_, err = svc.UpdateText(comment.ID, eve.ID, "tampered")
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := svc.UpdateText(comment.ID, maria.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Comment)

	_, err = svc.Delete(comment.ID, eve.ID)
	assert.ErrorIs(t, err, ErrNotOwner)

	deleted, err := svc.Delete(comment.ID, maria.ID)
	require.NoError(t, err)
	assert.Equal(t, comment.ID, deleted.ID)

	_, err = svc.Delete(comment.ID, maria.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
