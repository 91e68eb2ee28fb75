// Package feed pushes newly accepted complaints to connected admin clients
// over WebSocket. The hub is broadcast-only; clients never send data upstream.
package feed

import (
	"encoding/json"
	"log"

	"hosteldesk/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// Client is one connected feed consumer. It abstracts the underlying
// connection so the hub can manage clients uniformly.
type Client interface {
	// GetUserID returns the id of the admin user behind the connection.
	GetUserID() string
	// GetSendChannel returns the channel the hub pushes complaints into.
	GetSendChannel() chan<- models.Complaint
	// Run starts the client's write pump.
	Run()
	// Close shuts the client down and releases its channels.
	Close()
}

// Hub fans accepted complaints out to every registered client.
type Hub struct {
	Clients map[Client]bool

	RegisterCh   chan Client
	UnregisterCh chan Client
	BroadcastCh  chan models.Complaint
}

func NewHub() *Hub {
	return &Hub{
		Clients:      make(map[Client]bool),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		BroadcastCh:  make(chan models.Complaint, 16),
	}
}

// Run is the hub's dispatcher loop. It owns the Clients map; register,
// unregister and broadcast all flow through its channels.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.RegisterCh:
			h.Clients[client] = true
			log.Printf("Feed client registered for user %s", client.GetUserID())

		case client := <-h.UnregisterCh:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.Close()
			}

		case complaint := <-h.BroadcastCh:
			for client := range h.Clients {
				select {
				case client.GetSendChannel() <- complaint:
				default:
					// Slow consumer, drop the connection.
					delete(h.Clients, client)
					client.Close()
				}
			}
		}
	}
}

// StartPubSubListener consumes the accepted-complaints Redis channel and
// feeds it into the broadcast loop, so complaints accepted on any instance
// reach clients connected to this one.
func (h *Hub) StartPubSubListener(pubsub *redis.PubSub) {
	go func() {
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var complaint models.Complaint
			if err := json.Unmarshal([]byte(msg.Payload), &complaint); err != nil {
				log.Printf("Error unmarshalling feed message: %v", err)
				continue
			}
			h.BroadcastCh <- complaint
		}
	}()
}
