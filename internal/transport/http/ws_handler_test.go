package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizroom-service/internal/app"
	"quizroom-service/internal/domain"
	"quizroom-service/internal/infra/memory"
	"github.com/gorilla/websocket"
)

func TestWebSocketGameFlow(t *testing.T) {
	server, url := newTestServer(t)
	defer server.Close()

	host := dial(t, url)
	defer host.Close()

	send(t, host, "create-room", map[string]any{
		"room": "R1",
		"quiz": map[string]any{
			"questions": []map[string]any{
				{"question": "Q0", "answers": []string{"a", "b"}, "correct": 1},
				{"question": "Q1", "answers": []string{"a", "b"}, "correct": 0},
			},
		},
	})
	waitFor(t, host, "room-created")

	player := dial(t, url)
	defer player.Close()

	send(t, player, "join-room", map[string]any{"room": "R1", "name": "Alice"})
	joined := waitFor(t, player, "player-joined")
	names, ok := joined.([]any)
	if !ok || len(names) != 1 || names[0] != "Alice" {
		t.Fatalf("expected roster [Alice], got %v", joined)
	}
	// The host sees the join too.
	waitFor(t, host, "player-joined")

	send(t, host, "start-game", map[string]any{"room": "R1"})
	waitFor(t, player, "game-started")
	q := asMap(t, waitFor(t, player, "new-question"))
	if q["question"] != "Q0" {
		t.Fatalf("expected Q0, got %v", q)
	}
	if _, leaked := q["correct"]; leaked {
		t.Fatalf("correct index leaked to players: %v", q)
	}
	tv := asMap(t, waitFor(t, host, "update-teacher-view"))
	if asMap(t, tv["question"])["correct"] != float64(1) {
		t.Fatalf("expected full question in teacher view, got %v", tv)
	}

	send(t, player, "submit-answer", map[string]any{"room": "R1", "answerIdx": 1})
	tv = asMap(t, waitFor(t, host, "update-teacher-view"))
	stats := asMap(t, tv["stats"])
	if stats["1"] != float64(1) {
		t.Fatalf("expected stats {1:1}, got %v", stats)
	}

	send(t, host, "next-question", map[string]any{"room": "R1"})
	q = asMap(t, waitFor(t, player, "new-question"))
	if q["question"] != "Q1" {
		t.Fatalf("expected Q1, got %v", q)
	}
	tv = asMap(t, waitFor(t, host, "update-teacher-view"))
	if len(asMap(t, tv["stats"])) != 0 {
		t.Fatalf("expected tally reset on Q1, got %v", tv)
	}

	send(t, player, "submit-answer", map[string]any{"room": "R1", "answerIdx": 0})
	// Wait until the submission landed before the host advances, otherwise the
	// game could end with the answer still in flight.
	tv = asMap(t, waitFor(t, host, "update-teacher-view"))
	if asMap(t, tv["stats"])["0"] != float64(1) {
		t.Fatalf("expected stats {0:1} on Q1, got %v", tv)
	}
	send(t, host, "next-question", map[string]any{"room": "R1"})

	ended, ok := waitFor(t, player, "game-ended").([]any)
	if !ok || len(ended) != 1 {
		t.Fatalf("expected one ranked player, got %v", ended)
	}
	top := asMap(t, ended[0])
	if top["name"] != "Alice" || top["score"] != float64(20) {
		t.Fatalf("expected Alice with 20 points, got %v", top)
	}
}

func TestWebSocketJoinMissingRoom(t *testing.T) {
	server, url := newTestServer(t)
	defer server.Close()

	conn := dial(t, url)
	defer conn.Close()

	// A submission against a missing room is a silent no-op; the join error
	// arriving as the very next message proves nothing was sent for it.
	send(t, conn, "submit-answer", map[string]any{"room": "ghost", "answerIdx": 0})
	send(t, conn, "join-room", map[string]any{"room": "ghost", "name": "Alice"})

	payload := asMap(t, readNext(t, conn, "error"))
	if payload["message"] != "room not found" {
		t.Fatalf("expected room not found, got %v", payload)
	}
}

func TestWebSocketCreateDuplicateRoom(t *testing.T) {
	server, url := newTestServer(t)
	defer server.Close()

	conn := dial(t, url)
	defer conn.Close()

	quiz := map[string]any{
		"questions": []map[string]any{
			{"question": "Q0", "answers": []string{"a", "b"}, "correct": 0},
		},
	}
	send(t, conn, "create-room", map[string]any{"room": "R1", "quiz": quiz})
	waitFor(t, conn, "room-created")

	other := dial(t, url)
	defer other.Close()
	send(t, other, "create-room", map[string]any{"room": "R1", "quiz": quiz})
	payload := asMap(t, readNext(t, other, "error"))
	if payload["message"] == "" {
		t.Fatalf("expected an error message for the duplicate id")
	}
}

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	hub := NewHub()
	rooms := memory.NewRoomRegistry()
	quizzes := memory.NewQuizRepository(memory.NewStaticQuizLoader(map[string]domain.Quiz{}), time.Minute)
	service := app.NewRoomService(rooms, quizzes, hub)
	wsHandler := NewWSHandler(service, hub)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	return server, "ws" + server.URL[len("http"):] + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func send(t *testing.T, conn *websocket.Conn, eventType string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": eventType, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", eventType, err)
	}
}

// readNext reads exactly one message and requires it to be of the given type.
func readNext(t *testing.T, conn *websocket.Conn, expect string) any {
	t.Helper()
	var msg struct {
		Type    string `json:"type"`
		Payload any    `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Payload
}

// waitFor skips intermediate broadcasts until the given type arrives.
func waitFor(t *testing.T, conn *websocket.Conn, expect string) any {
	t.Helper()
	for i := 0; i < 10; i++ {
		var msg struct {
			Type    string `json:"type"`
			Payload any    `json:"payload"`
		}
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read json: %v", err)
		}
		if msg.Type == expect {
			return msg.Payload
		}
	}
	t.Fatalf("no %s message received", expect)
	return nil
}

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	m, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("expected object payload, got %T", v)
	}
	return m
}
