package http

import (
	"encoding/json"
	"log"
	"net/http"

	"quizroom-service/internal/app"
	"quizroom-service/internal/domain"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSHandler upgrades connections and routes inbound events to the room
// service. It maps each event to exactly one service call and owns the policy
// of which failures are reported back: join and create errors go to the
// requester, everything else is a silent no-op.
type WSHandler struct {
	service  *app.RoomService
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.RoomService, hub *Hub) *WSHandler {
	return &WSHandler{
		service: service,
		hub:     hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type createRoomPayload struct {
	Room   string       `json:"room"`
	Quiz   *domain.Quiz `json:"quiz,omitempty"`
	QuizID string       `json:"quizId,omitempty"`
}

type roomPayload struct {
	Room string `json:"room"`
}

type joinRoomPayload struct {
	Room string `json:"room"`
	Name string `json:"name"`
}

type submitAnswerPayload struct {
	Room      string `json:"room"`
	AnswerIdx int    `json:"answerIdx"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS runs one connection: a writer goroutine drains the send queue while
// this goroutine reads and dispatches inbound events until the socket closes.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	c := &client{
		id:   uuid.NewString(),
		send: make(chan []byte, 16),
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for data := range c.send {
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.dispatch(r, c, inbound)
	}

	h.hub.Unsubscribe(c)
	close(c.send)
	<-writerDone
}

func (h *WSHandler) dispatch(r *http.Request, c *client, inbound inboundMessage) {
	switch inbound.Type {
	case "create-room":
		var payload createRoomPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			h.sendError(c, "invalid create-room payload")
			return
		}
		var err error
		switch {
		case payload.QuizID != "":
			err = h.service.CreateRoomFromCatalog(r.Context(), payload.Room, payload.QuizID)
		case payload.Quiz != nil:
			err = h.service.CreateRoom(r.Context(), payload.Room, *payload.Quiz)
		default:
			err = domain.ErrInvalidQuiz
		}
		if err != nil {
			h.sendError(c, err.Error())
			return
		}
		h.hub.Subscribe(payload.Room, c)
		h.sendEvent(c, app.Event{Type: app.EventRoomCreated, Payload: app.RoomCreatedPayload{Room: payload.Room}})
		log.Printf("room created: %s", payload.Room)

	case "join-room":
		var payload joinRoomPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			h.sendError(c, "invalid join-room payload")
			return
		}
		// Subscribe first so the joiner receives its own roster broadcast.
		h.hub.Subscribe(payload.Room, c)
		if err := h.service.JoinRoom(payload.Room, c.id, payload.Name); err != nil {
			h.hub.Unsubscribe(c)
			h.sendError(c, "room not found")
			return
		}
		log.Printf("%s joined %s", payload.Name, payload.Room)

	case "start-game":
		room, ok := h.roomID(c, inbound.Payload)
		if !ok {
			return
		}
		if err := h.service.StartGame(room); err != nil {
			log.Printf("start-game %s: %v", room, err)
		}

	case "next-question":
		room, ok := h.roomID(c, inbound.Payload)
		if !ok {
			return
		}
		if err := h.service.NextQuestion(room); err != nil {
			log.Printf("next-question %s: %v", room, err)
		}

	case "end-game":
		room, ok := h.roomID(c, inbound.Payload)
		if !ok {
			return
		}
		if err := h.service.EndGame(room); err != nil {
			log.Printf("end-game %s: %v", room, err)
		}

	case "submit-answer":
		var payload submitAnswerPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return
		}
		// Misuse here never reaches the participant; stale clients submit
		// against missing rooms and closed questions all the time.
		if err := h.service.SubmitAnswer(payload.Room, c.id, payload.AnswerIdx); err != nil {
			log.Printf("submit-answer %s: %v", payload.Room, err)
		}

	default:
		h.sendError(c, "unsupported message type")
	}
}

func (h *WSHandler) roomID(c *client, raw json.RawMessage) (string, bool) {
	var payload roomPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Room == "" {
		h.sendError(c, "invalid payload")
		return "", false
	}
	return payload.Room, true
}

// sendEvent queues an event for this connection only.
func (h *WSHandler) sendEvent(c *client, event app.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("marshal %s event: %v", event.Type, err)
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (h *WSHandler) sendError(c *client, message string) {
	h.sendEvent(c, app.Event{Type: app.EventError, Payload: errorPayload{Message: message}})
}
