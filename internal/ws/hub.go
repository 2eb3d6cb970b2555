package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/redis/go-redis/v9"
)

const redisPubSubChannel = "hireflow:events"

// Event types pushed to connected clients.
const (
	EventCollectionChanged = "collection_changed" // a collection was written; payload names it
	EventReminder          = "reminder"           // interview reminder for recruiters
	EventTimer             = "timer"              // shared dynamic timer state changed
)

// Event is a real-time notification sent via WebSocket. A
// collection_changed event tells subscribed clients to re-fetch the named
// collection, which is how the listen() change-subscription contract is
// delivered over push.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// CollectionChange names the collection whose contents changed.
type CollectionChange struct {
	Collection string `json:"collection"`
}

// Hub manages WebSocket clients and broadcasts messages
type Hub struct {
	// Registered clients grouped by participant id
	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// Broadcast to a specific participant or to everyone
	broadcast chan *targetedEvent

	mu          sync.RWMutex
	redisClient *redis.Client
	ctx         context.Context
	cancel      context.CancelFunc
}

type targetedEvent struct {
	// UserID empty means broadcast to all connected clients.
	UserID string
	Event  *Event
}

// NewHub creates a new Hub
func NewHub(redisClient *redis.Client) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:     make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *targetedEvent, 256),
		redisClient: redisClient,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	// Start Redis subscriber if Redis is available
	if h.redisClient != nil {
		go h.subscribeRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.userID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.deliverLocal(msg)

		case <-h.ctx.Done():
			return
		}
	}
}

func (h *Hub) deliverLocal(msg *targetedEvent) {
	data, err := json.Marshal(msg.Event)
	if err != nil {
		return
	}

	// Full lock: slow consumers are evicted from the client map here.
	h.mu.Lock()
	defer h.mu.Unlock()

	deliver := func(clients map[*Client]bool) {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				close(client.send)
				delete(clients, client)
			}
		}
	}

	if msg.UserID == "" {
		for _, clients := range h.clients {
			deliver(clients)
		}
		return
	}
	if clients, ok := h.clients[msg.UserID]; ok {
		deliver(clients)
	}
}

// SendToUser sends an event to a specific participant (local + Redis publish)
func (h *Hub) SendToUser(userID string, event *Event) {
	h.publish(&targetedEvent{UserID: userID, Event: event})
}

// BroadcastAll sends an event to every connected client.
func (h *Hub) BroadcastAll(event *Event) {
	h.publish(&targetedEvent{Event: event})
}

// NotifyCollectionChanged tells every listener that a collection was written.
func (h *Hub) NotifyCollectionChanged(collection string) {
	h.BroadcastAll(&Event{
		Type:    EventCollectionChanged,
		Payload: CollectionChange{Collection: collection},
	})
}

func (h *Hub) publish(msg *targetedEvent) {
	// Local broadcast
	h.broadcast <- msg

	// Publish to Redis for multi-instance support
	if h.redisClient != nil {
		wire := &redisMessage{UserID: msg.UserID, Event: msg.Event}
		data, err := json.Marshal(wire)
		if err == nil {
			h.redisClient.Publish(h.ctx, redisPubSubChannel, data) //nolint:errcheck
		}
	}
}

type redisMessage struct {
	UserID string `json:"user_id"`
	Event  *Event `json:"event"`
}

func (h *Hub) subscribeRedis() {
	sub := h.redisClient.Subscribe(h.ctx, redisPubSubChannel)
	defer sub.Close()

	for {
		select {
		case m, ok := <-sub.Channel():
			if !ok {
				return
			}
			var wire redisMessage
			if err := json.Unmarshal([]byte(m.Payload), &wire); err != nil {
				continue
			}
			h.deliverLocal(&targetedEvent{UserID: wire.UserID, Event: wire.Event})
		case <-h.ctx.Done():
			return
		}
	}
}

// Stop shuts down the hub loop and the Redis subscription.
func (h *Hub) Stop() {
	h.cancel()
}
