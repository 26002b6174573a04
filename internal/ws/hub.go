package ws

import (
	"context"
	"sync"

	"go-expiry-tracker/pkg/logger"

	"github.com/gofiber/contrib/websocket"
)

// Conn is the part of a websocket connection the hub writes to
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client is one connected panel. ViewAll clients receive every inventory
// event; the rest only receive events for rows they own.
type Client struct {
	Conn    Conn
	UserID  string
	ViewAll bool
}

// message is an event scoped to an owner; an empty OwnerID reaches everyone
type message struct {
	ownerID string
	data    []byte
}

func (m message) visibleTo(c *Client) bool {
	return m.ownerID == "" || c.ViewAll || c.UserID == m.ownerID
}

type Hub struct {
	clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	outbound   chan message
	done       chan struct{}
	mutex      sync.Mutex
	log        *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		outbound:   make(chan message, 256),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Broadcast queues data for every connected client
func (h *Hub) Broadcast(data []byte) {
	h.enqueue(message{data: data})
}

// Publish queues data for the owner's clients and for ViewAll clients
func (h *Hub) Publish(ownerID string, data []byte) {
	h.enqueue(message{ownerID: ownerID, data: data})
}

func (h *Hub) enqueue(m message) {
	select {
	case h.outbound <- m:
	default:
		h.log.Warn().Str("owner_id", m.ownerID).Msg("ws outbound queue full, dropping event")
	}
}

// Join registers c. It reports false once the hub has stopped.
func (h *Hub) Join(c *Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Leave unregisters c. After the hub has stopped it only closes the
// connection.
func (h *Hub) Leave(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
		c.Conn.Close()
	}
}

// ClientCount reports connected clients
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Run owns the client set until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for c := range h.clients {
				c.Conn.Close()
				delete(h.clients, c)
			}
			h.mutex.Unlock()
			return

		case c := <-h.Register:
			h.mutex.Lock()
			h.clients[c] = true
			h.mutex.Unlock()
			h.log.Debug().Str("user_id", c.UserID).Msg("ws client connected")

		case c := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				c.Conn.Close()
			}
			h.mutex.Unlock()

		case m := <-h.outbound:
			h.mutex.Lock()
			for c := range h.clients {
				if !m.visibleTo(c) {
					continue
				}
				if err := c.Conn.WriteMessage(websocket.TextMessage, m.data); err != nil {
					h.log.Debug().Err(err).Str("user_id", c.UserID).Msg("ws write failed, dropping client")
					c.Conn.Close()
					delete(h.clients, c)
				}
			}
			h.mutex.Unlock()
		}
	}
}
