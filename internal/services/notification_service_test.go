package services

import (
	"context"
	"testing"

	"github.com/ecopulse-app/ecopulse/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNotify_PersistsAndPublishes(t *testing.T) {
	store := &fakeNotificationStore{}
	publisher := &fakePublisher{}
	svc := NewNotificationService(store, publisher)

	userID := primitive.NewObjectID()
	err := svc.Notify(context.Background(), userID, models.NotificationLike,
		"Your post got a like", "Someone appreciated your post.",
		bson.M{"post_id": "p1"})
	require.NoError(t, err)

	notifs, err := svc.GetUserNotifications(context.Background(), userID.Hex())
	require.NoError(t, err)
	require.Len(t, notifs, 1)
	assert.Equal(t, models.NotificationLike, notifs[0].Type)
	assert.False(t, notifs[0].Read)

	live := publisher.forRoom("user:" + userID.Hex())
	require.Len(t, live, 1)
	assert.Equal(t, "notification", live[0].event)
}

func TestNotify_StoreFailureDoesNotPublish(t *testing.T) {
	store := &fakeNotificationStore{failCreate: true}
	publisher := &fakePublisher{}
	svc := NewNotificationService(store, publisher)

	err := svc.Notify(context.Background(), primitive.NewObjectID(),
		models.NotificationSystem, "t", "m", nil)
	assert.Error(t, err)
	assert.Empty(t, publisher.events)
}

func TestNotify_NoPublisherStillDurable(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, nil)

	userID := primitive.NewObjectID()
	require.NoError(t, svc.Notify(context.Background(), userID,
		models.NotificationSystem, "t", "m", nil))

	count, err := svc.UnreadCount(context.Background(), userID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMarkAllRead_Idempotent(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, nil)
	ctx := context.Background()

	userID := primitive.NewObjectID()
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Notify(ctx, userID, models.NotificationSystem, "t", "m", nil))
	}

	require.NoError(t, svc.MarkAllRead(ctx, userID.Hex()))
	count, err := svc.UnreadCount(ctx, userID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Second call on an already-settled state: no error, still zero.
	require.NoError(t, svc.MarkAllRead(ctx, userID.Hex()))
	count, err = svc.UnreadCount(ctx, userID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestMarkRead_Idempotent(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, nil)
	ctx := context.Background()

	userID := primitive.NewObjectID()
	require.NoError(t, svc.Notify(ctx, userID, models.NotificationSystem, "t", "m", nil))
	notifs, _ := svc.GetUserNotifications(ctx, userID.Hex())
	require.Len(t, notifs, 1)

	id := notifs[0].ID.Hex()
	require.NoError(t, svc.MarkRead(ctx, id))
	require.NoError(t, svc.MarkRead(ctx, id))

	count, _ := svc.UnreadCount(ctx, userID.Hex())
	assert.Equal(t, int64(0), count)
}

func TestClear_Idempotent(t *testing.T) {
	store := &fakeNotificationStore{}
	svc := NewNotificationService(store, nil)
	ctx := context.Background()

	userID := primitive.NewObjectID()
	require.NoError(t, svc.Notify(ctx, userID, models.NotificationSystem, "t", "m", nil))

	require.NoError(t, svc.Clear(ctx, userID.Hex()))
	require.NoError(t, svc.Clear(ctx, userID.Hex()))

	notifs, err := svc.GetUserNotifications(ctx, userID.Hex())
	require.NoError(t, err)
	assert.Empty(t, notifs)
}
