package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quietLogger struct{}

func (quietLogger) Debug(module, message string, details map[string]interface{}) {}
func (quietLogger) Info(module, message string, details map[string]interface{})  {}
func (quietLogger) Warn(module, message string, details map[string]interface{})  {}
func (quietLogger) Error(module, message string, details map[string]interface{}) {}
func (quietLogger) Sync() error                                                  { return nil }

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(nil, quietLogger{})
	go h.Run()
	return h
}

func (h *Hub) connectionCount(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func waitForConnections(t *testing.T, h *Hub, userID uuid.UUID, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return h.connectionCount(userID) == want
	}, time.Second, 5*time.Millisecond)
}

func TestHubRegisterUnregisterLifecycle(t *testing.T) {
	h := newTestHub(t)
	userID := uuid.New()
	client := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 4)}

	h.register <- client
	waitForConnections(t, h, userID, 1)

	require.NoError(t, h.Send(userID, "worklog_approved", map[string]string{"unit_name": "Unit A"}))

	var event struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(<-client.Send, &event))
	assert.Equal(t, "worklog_approved", event.Type)
	assert.JSONEq(t, `{"unit_name":"Unit A"}`, string(event.Data))

	h.unregister <- client
	waitForConnections(t, h, userID, 0)

	// The hub closes Send when it drops the connection.
	_, open := <-client.Send
	assert.False(t, open)
}

func TestHubSendReachesEveryConnection(t *testing.T) {
	h := newTestHub(t)
	userID := uuid.New()
	tab := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 4)}
	phone := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 4)}
	other := &Client{Hub: h, UserID: uuid.New(), Send: make(chan []byte, 4)}

	h.register <- tab
	h.register <- phone
	h.register <- other
	waitForConnections(t, h, userID, 2)

	require.NoError(t, h.Send(userID, "chat_messages_updated", nil))

	assert.Equal(t, <-tab.Send, <-phone.Send)
	assert.Empty(t, other.Send)
}

func TestHubSendDropsStalledConnection(t *testing.T) {
	h := newTestHub(t)
	userID := uuid.New()
	stalled := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 1)}
	stalled.Send <- []byte("backlog")

	h.register <- stalled
	waitForConnections(t, h, userID, 1)

	require.NoError(t, h.Send(userID, "unread_count_updated", nil))
	waitForConnections(t, h, userID, 0)

	// A late unregister from the read pump must be a no-op, not a second
	// close of the same channel.
	h.unregister <- stalled
	require.NoError(t, h.Send(userID, "unread_count_updated", nil))
}
