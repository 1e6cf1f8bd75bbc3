package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sfares/newsroom-be/internal/apperrors"
)

type stubPusher struct {
	userIDs  []string
	payloads [][]byte
}

func (p *stubPusher) PushTo(userID string, message []byte) {
	p.userIDs = append(p.userIDs, userID)
	p.payloads = append(p.payloads, message)
}

func TestCreateNotificationPersistsAndPushes(t *testing.T) {
	db := newTestDB(t)
	pusher := &stubPusher{}
	svc := NewNotificationService(db, pusher)

	notification, err := svc.CreateNotification("user-1", "New comment", "Someone replied to your article", "comment")
	require.NoError(t, err)
	assert.False(t, notification.Read)

	require.Len(t, pusher.userIDs, 1)
	assert.Equal(t, "user-1", pusher.userIDs[0])

	var pushed map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(pusher.payloads[0], &pushed))
	assert.JSONEq(t, `"notification"`, string(pushed["action"]))

	list, err := svc.GetNotificationsByUser("user-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "New comment", list[0].Title)
}

func TestCreateNotificationRequiresFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)

	_, err := svc.CreateNotification("user-1", "", "body", "system")
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestMarkReadAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)

	notification, err := svc.CreateNotification("user-1", "Title", "Body", "system")
	require.NoError(t, err)

	read, err := svc.MarkRead(notification.ID)
	require.NoError(t, err)
	assert.True(t, read.Read)

	require.NoError(t, svc.DeleteNotification(notification.ID))

	_, err = svc.MarkRead(notification.ID)
	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestNotificationsScopedToUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db, nil)

	_, err := svc.CreateNotification("user-1", "For one", "Body", "system")
	require.NoError(t, err)
	_, err = svc.CreateNotification("user-2", "For two", "Body", "system")
	require.NoError(t, err)

	list, err := svc.GetNotificationsByUser("user-2")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "For two", list[0].Title)
}
