package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"legal-consult-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Envelope is the wire format pushed to clients.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type subscription struct {
	client  *Client
	channel string
}

type Hub struct {
	// Registered clients map: UserID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	// Channel subscriptions: channel name -> set of clients.
	// Channels are things like "booking:<id>" and "chat:<conversationId>".
	channels map[string]map[*Client]struct{}

	register    chan *Client
	unregister  chan *Client
	subscribe   chan subscription
	unsubscribe chan subscription

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out, may be nil.
	rdb *redis.Client

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan subscription),
		unsubscribe: make(chan subscription),
		clients:     make(map[uuid.UUID][]*Client),
		channels:    make(map[string]map[*Client]struct{}),
		rdb:         rdb,
		logger:      log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
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
				}
			}
			for channel, members := range h.channels {
				delete(members, client)
				if len(members) == 0 {
					delete(h.channels, channel)
				}
			}
			h.mu.Unlock()

		case sub := <-h.subscribe:
			h.mu.Lock()
			if h.channels[sub.channel] == nil {
				h.channels[sub.channel] = make(map[*Client]struct{})
			}
			h.channels[sub.channel][sub.client] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client joined channel", map[string]interface{}{
				"user_id": sub.client.UserID,
				"channel": sub.channel,
			})

		case sub := <-h.unsubscribe:
			h.mu.Lock()
			if members, ok := h.channels[sub.channel]; ok {
				delete(members, sub.client)
				if len(members) == 0 {
					delete(h.channels, sub.channel)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.Send <- data:
	default:
		h.logger.Warn("Hub", "Client Send buffer full, dropping connection", map[string]interface{}{"user_id": client.UserID})
		close(client.Send)
		h.unregister <- client
	}
}

// Send pushes an event to all devices of a single user.
func (h *Hub) Send(userID uuid.UUID, event string, payload interface{}) {
	data, _ := json.Marshal(Envelope{Event: event, Data: payload})

	h.mu.RLock()
	clients := h.clients[userID]
	h.mu.RUnlock()

	for _, client := range clients {
		h.deliver(client, data)
	}

	if h.rdb != nil {
		wire, _ := json.Marshal(map[string]interface{}{
			"target_user_id": userID.String(),
			"message":        json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), "cluster_events", wire)
	}
}

// Publish pushes an event to every client subscribed to a channel.
// Payment success uses channel "booking:<id>", chat uses "chat:<conversationId>".
func (h *Hub) Publish(channel, event string, payload interface{}) {
	data, _ := json.Marshal(Envelope{Event: event, Data: payload})

	h.mu.RLock()
	members := h.channels[channel]
	local := make([]*Client, 0, len(members))
	for client := range members {
		local = append(local, client)
	}
	h.mu.RUnlock()

	for _, client := range local {
		h.deliver(client, data)
	}

	if h.rdb != nil {
		wire, _ := json.Marshal(map[string]interface{}{
			"target_channel": channel,
			"message":        json.RawMessage(data),
		})
		h.rdb.Publish(context.Background(), "cluster_events", wire)
	}
}

// subscribeToRedis relays cluster_events published by other instances to
// locally connected clients. Messages we published ourselves are delivered
// twice only if a client is connected to two instances at once, which the
// frontend tolerates.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "cluster_events")
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload struct {
			TargetUserID  string          `json:"target_user_id"`
			TargetChannel string          `json:"target_channel"`
			Message       json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if payload.TargetChannel != "" {
			h.mu.RLock()
			for client := range h.channels[payload.TargetChannel] {
				h.deliver(client, payload.Message)
			}
			h.mu.RUnlock()
			continue
		}

		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients := h.clients[uid]
		h.mu.RUnlock()

		for _, client := range clients {
			h.deliver(client, payload.Message)
		}
	}
}
