package http

import (
	"encoding/json"
	"log"
	"sync"

	"quizroom-service/internal/app"
)

// client is one websocket connection with its outbound queue. The id doubles
// as the player id inside whichever room the connection subscribed to.
type client struct {
	id     string
	send   chan []byte
	roomID string
}

// Hub tracks which connections are subscribed to which room topic and fans
// events out to them. It implements app.Publisher; Publish is called with the
// room lock held, so it never blocks: slow consumers lose their oldest queued
// event instead of stalling the room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*client]struct{})}
}

// Subscribe puts the client on a room topic, moving it off any previous one.
func (h *Hub) Subscribe(roomID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(c)
	if _, ok := h.rooms[roomID]; !ok {
		h.rooms[roomID] = make(map[*client]struct{})
	}
	h.rooms[roomID][c] = struct{}{}
	c.roomID = roomID
}

// Unsubscribe drops the client from its room topic, deleting the topic when
// the last connection leaves.
func (h *Hub) Unsubscribe(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if c.roomID == "" {
		return
	}
	if clients, ok := h.rooms[c.roomID]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.rooms, c.roomID)
		}
	}
	c.roomID = ""
}

// Publish delivers the event to every connection subscribed to the room,
// including the sender.
func (h *Hub) Publish(roomID string, event app.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("marshal %s event: %v", event.Type, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[roomID] {
		select {
		case c.send <- data:
		default:
			select {
			case <-c.send:
			default:
			}
			select {
			case c.send <- data:
			default:
			}
		}
	}
}
