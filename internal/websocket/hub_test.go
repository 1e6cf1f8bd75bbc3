package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, userID string) *Client {
	return &Client{Hub: hub, Send: make(chan []byte, 4), UserID: userID}
}

func recvOrTimeout(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(time.Second):
		t.Fatal("expected a message on the send channel")
		return nil
	}
}

func TestPushToReachesAllUserConnections(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	first := newTestClient(hub, "user-1")
	second := newTestClient(hub, "user-1")
	other := newTestClient(hub, "user-2")
	hub.Register <- first
	hub.Register <- second
	hub.Register <- other

	hub.PushTo("user-1", []byte("hello"))

	assert.Equal(t, "hello", string(recvOrTimeout(t, first.Send)))
	assert.Equal(t, "hello", string(recvOrTimeout(t, second.Send)))
	select {
	case msg := <-other.Send:
		t.Fatalf("unexpected message for another user: %q", msg)
	default:
	}
}

func TestPushToAfterUnregisterIsSafe(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	gone := newTestClient(hub, "user-1")
	stays := newTestClient(hub, "user-1")
	hub.Register <- gone
	hub.Register <- stays
	hub.Unregister <- gone

	// Must neither panic on the closed channel nor lose the delivery to the
	// remaining connection.
	hub.PushTo("user-1", []byte("still here"))

	assert.Equal(t, "still here", string(recvOrTimeout(t, stays.Send)))
	_, open := <-gone.Send
	assert.False(t, open)
}

func TestSlowConsumerIsDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := &Client{Hub: hub, Send: make(chan []byte), UserID: "user-1"}
	hub.Register <- slow

	// Nobody reads slow.Send, so the first push drops the client.
	hub.PushTo("user-1", []byte("one"))
	hub.PushTo("user-1", []byte("two"))

	require.Eventually(t, func() bool {
		return hub.ConnectedUsers() == 0
	}, time.Second, 10*time.Millisecond)
}
