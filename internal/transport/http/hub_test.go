package http

import (
	"encoding/json"
	"testing"

	"quizroom-service/internal/app"
)

func TestHubPublishesToRoomSubscribers(t *testing.T) {
	hub := NewHub()
	a := &client{id: "a", send: make(chan []byte, 4)}
	b := &client{id: "b", send: make(chan []byte, 4)}
	hub.Subscribe("R1", a)
	hub.Subscribe("R1", b)

	hub.Publish("R1", app.Event{Type: "ping", Payload: struct{}{}})

	for _, c := range []*client{a, b} {
		select {
		case data := <-c.send:
			var msg struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(data, &msg); err != nil || msg.Type != "ping" {
				t.Fatalf("expected ping event, got %s (%v)", data, err)
			}
		default:
			t.Fatalf("client %s received nothing", c.id)
		}
	}
}

func TestHubSubscribeMovesBetweenRooms(t *testing.T) {
	hub := NewHub()
	c := &client{id: "a", send: make(chan []byte, 4)}
	hub.Subscribe("R1", c)
	hub.Subscribe("R2", c)

	hub.Publish("R1", app.Event{Type: "ping", Payload: struct{}{}})
	select {
	case <-c.send:
		t.Fatalf("client still subscribed to old room")
	default:
	}

	hub.Publish("R2", app.Event{Type: "ping", Payload: struct{}{}})
	select {
	case <-c.send:
	default:
		t.Fatalf("client not subscribed to new room")
	}
}

func TestHubDropsOldestForSlowClient(t *testing.T) {
	hub := NewHub()
	c := &client{id: "a", send: make(chan []byte, 1)}
	hub.Subscribe("R1", c)

	hub.Publish("R1", app.Event{Type: "first", Payload: struct{}{}})
	hub.Publish("R1", app.Event{Type: "second", Payload: struct{}{}})

	data := <-c.send
	var msg struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != "second" {
		t.Fatalf("expected the newest event to survive, got %s", msg.Type)
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub()
	c := &client{id: "a", send: make(chan []byte, 4)}
	hub.Subscribe("R1", c)
	hub.Unsubscribe(c)

	hub.Publish("R1", app.Event{Type: "ping", Payload: struct{}{}})
	select {
	case <-c.send:
		t.Fatalf("unsubscribed client received event")
	default:
	}
}
