package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Hub maintains the set of active clients and pushes notification events
// to them. Clients are grouped by the identity their token carries, so a
// user connected from several tabs receives every event on each of them.
type Hub struct {
	// Registered clients organized by identity
	clients map[string]map[*Client]bool

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Outbound events waiting for delivery
	events chan *envelope

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// Event is a single realtime notification pushed over the stream. It
// mirrors what gets stored in the notification feed so clients can render
// both from the same shape.
type Event struct {
	// Type of event: "application", "announcement", "message", "interview"
	Type string `json:"type"`

	// Short headline for the event
	Title string `json:"title"`

	// Full notification text
	Message string `json:"message"`

	// ID of the related document, when there is one
	RelatedID string `json:"related_id,omitempty"`

	// Timestamp when the event was created
	Timestamp time.Time `json:"timestamp"`
}

// envelope pairs an event with its delivery target. An empty identity
// means the event goes to every connected client.
type envelope struct {
	identity string
	event    *Event
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan *envelope, 64),
		logger:     logger,
	}
}

// Run starts the hub, handling client registrations and event delivery.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case env := <-h.events:
			h.deliver(env)
		}
	}
}

// Publish queues an event for one identity. It never blocks; if the hub
// is saturated the event is dropped, the stored feed remains the source
// of truth.
func (h *Hub) Publish(identity string, event *Event) {
	select {
	case h.events <- &envelope{identity: identity, event: event}:
	default:
		h.logger.Warn().Str("identity", identity).Msg("Realtime event dropped, hub saturated")
	}
}

// PublishAll queues an event for every connected client.
func (h *Hub) PublishAll(event *Event) {
	select {
	case h.events <- &envelope{event: event}:
	default:
		h.logger.Warn().Msg("Realtime broadcast dropped, hub saturated")
	}
}

// ClientCount returns the number of open connections for an identity.
func (h *Hub) ClientCount(identity string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[identity])
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.identity]; !ok {
		h.clients[client.identity] = make(map[*Client]bool)
	}
	h.clients[client.identity][client] = true

	h.logger.Info().
		Str("identity", client.identity).
		Str("addr", client.conn.RemoteAddr().String()).
		Msg("Stream client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[client.identity]; ok {
		if _, ok := conns[client]; ok {
			delete(conns, client)
			close(client.send)

			if len(conns) == 0 {
				delete(h.clients, client.identity)
			}

			h.logger.Info().
				Str("identity", client.identity).
				Msg("Stream client unregistered")
		}
	}
}

// deliver serializes an event and hands it to the matching clients.
func (h *Hub) deliver(env *envelope) {
	data, err := json.Marshal(env.event)
	if err != nil {
		h.logger.Error().Err(err).Str("type", env.event.Type).Msg("Failed to marshal realtime event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if env.identity == "" {
		for _, conns := range h.clients {
			for client := range conns {
				client.enqueue(data)
			}
		}
		return
	}

	conns, ok := h.clients[env.identity]
	if !ok {
		return
	}
	for client := range conns {
		client.enqueue(data)
	}
}
