package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Fusion-Mind-co/worklog-system/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "cluster_events"

// Hub fans realtime events out to connected clients. A user may hold several
// connections at once (multiple tabs or devices), so the registry maps a user
// to a list of clients. When Redis is configured, every event is also relayed
// through a cluster channel so peers on other instances receive it.
type Hub struct {
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToCluster()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Last connection closed", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers one typed event to every connection a user holds. Satisfies
// the notification delivery port used by the services.
func (h *Hub) Send(userID uuid.UUID, eventType string, data interface{}) error {
	payload, err := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": data,
	})
	if err != nil {
		return err
	}

	h.mu.RLock()
	clients := h.clients[userID]
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- payload:
		default:
			// The unregister path owns closing Send; closing here too
			// would panic Run on the second close.
			h.logger.Warn("Hub", "Send buffer full, dropping connection", map[string]interface{}{"user_id": userID})
			h.unregister <- client
		}
	}

	if h.rdb != nil {
		relay, err := json.Marshal(clusterEnvelope{TargetUserID: userID.String(), Message: payload})
		if err != nil {
			return err
		}
		return h.rdb.Publish(context.Background(), clusterChannel, relay).Err()
	}
	return nil
}

type clusterEnvelope struct {
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

// subscribeToCluster delivers events published by other instances to clients
// connected here. Events for users without a local connection are ignored.
func (h *Hub) subscribeToCluster() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope clusterEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			h.logger.Warn("Hub", "Discarding malformed cluster event", map[string]interface{}{"error": err.Error()})
			continue
		}
		uid, err := uuid.Parse(envelope.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients := h.clients[uid]
		h.mu.RUnlock()

		for _, client := range clients {
			select {
			case client.Send <- envelope.Message:
			default:
				h.unregister <- client
			}
		}
	}
}
