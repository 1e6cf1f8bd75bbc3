package websocket

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Hub maintains the set of active clients and routes notification pushes to
// the connections belonging to a given user.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Inbound messages for global broadcast.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Per-user pushes, delivered inside the Run loop so no other goroutine
	// ever touches a client's Send channel.
	direct chan directMessage

	// A map of user IDs to the set of that user's connections.
	mu            sync.RWMutex
	subscriptions map[string]map[*Client]bool
}

type directMessage struct {
	userID  string
	message []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:     make(chan []byte),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		direct:        make(chan directMessage),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			if client.UserID != "" {
				h.addSubscription(client)
			}
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				h.deliver(client, message)
			}
		case dm := <-h.direct:
			h.mu.RLock()
			subs := make([]*Client, 0, len(h.subscriptions[dm.userID]))
			for client := range h.subscriptions[dm.userID] {
				subs = append(subs, client)
			}
			h.mu.RUnlock()
			for _, client := range subs {
				h.deliver(client, dm.message)
			}
		}
	}
}

// deliver hands a message to one client, dropping slow consumers. Only the
// Run goroutine calls this, so closing Send here cannot race a send.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		close(client.Send)
		delete(h.clients, client)
		h.removeSubscription(client)
	}
}

// PushTo sends a message to all connections belonging to a user.
func (h *Hub) PushTo(userID string, message []byte) {
	h.direct <- directMessage{userID: userID, message: message}
}

// ConnectedUsers returns the number of distinct users with open connections.
func (h *Hub) ConnectedUsers() int64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return int64(len(h.subscriptions))
}

func (h *Hub) addSubscription(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subscriptions[client.UserID] == nil {
		h.subscriptions[client.UserID] = make(map[*Client]bool)
	}
	h.subscriptions[client.UserID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.subscriptions[client.UserID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, client.UserID)
		}
	}
}
