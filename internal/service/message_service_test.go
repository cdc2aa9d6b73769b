package service

import (
	"testing"

	"campushub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentAutoEnrollsParticipant(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db)
	host := seedUser(t, db, "host", false)
	commenter := seedUser(t, db, "commenter", false)
	topic := seedTopic(t, db, "housing", "Housing & Roommates")
	room := seedRoom(t, db, host, topic, "a room")

	_, err := svc.AddComment(commenter.ID, room.ID, "first comment", "")
	require.NoError(t, err)
	_, err = svc.AddComment(commenter.ID, room.ID, "second comment", "")
	require.NoError(t, err)

	var rows int64
	require.NoError(t, db.Model(&model.RoomParticipant{}).
		Where("room_id = ? AND user_id = ?", room.ID, commenter.ID).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

func TestAddCommentRequiresBody(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db)
	user := seedUser(t, db, "user", false)
	topic := seedTopic(t, db, "housing", "Housing & Roommates")
	room := seedRoom(t, db, user, topic, "a room")

	_, err := svc.AddComment(user.ID, room.ID, "  ", "")
	assert.ErrorIs(t, err, ErrBodyRequired)

	var rows int64
	require.NoError(t, db.Model(&model.Message{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

func TestAddCommentPremiumRoomDenied(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db)
	free := seedUser(t, db, "free", false)
	paid := seedUser(t, db, "paid", true)
	premium := seedTopic(t, db, model.PremiumTopicSlug, "Jobs & Referrals")
	room := seedRoom(t, db, paid, premium, "gated room")

	_, err := svc.AddComment(free.ID, room.ID, "let me in", "")
	assert.ErrorIs(t, err, ErrPremiumRequired)

	msg, err := svc.AddComment(paid.ID, room.ID, "referral inside", "")
	require.NoError(t, err)
	assert.Equal(t, "referral inside", msg.Body)
}

func TestAddCommentRoomNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db)
	user := seedUser(t, db, "user", false)

	_, err := svc.AddComment(user.ID, 404, "hello", "")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db)
	host := seedUser(t, db, "host", false)
	author := seedUser(t, db, "author", false)
	topic := seedTopic(t, db, "housing", "Housing & Roommates")
	room := seedRoom(t, db, host, topic, "a room")

	msg, err := svc.AddComment(author.ID, room.ID, "my comment", "")
	require.NoError(t, err)

	// the room host does not own other people's comments
	assert.ErrorIs(t, svc.DeleteComment(host.ID, msg.ID), ErrNotAuthorized)
	require.NoError(t, svc.DeleteComment(author.ID, msg.ID))
	assert.ErrorIs(t, svc.DeleteComment(author.ID, msg.ID), ErrMessageNotFound)
}
