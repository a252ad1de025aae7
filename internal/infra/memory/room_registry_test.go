package memory

import (
	"errors"
	"testing"

	"quizroom-service/internal/app"
	"quizroom-service/internal/domain"
)

type nopPublisher struct{}

func (nopPublisher) Publish(string, app.Event) {}

func TestRoomRegistryLifecycle(t *testing.T) {
	registry := NewRoomRegistry()
	room := app.NewRoom("R1", sampleQuiz(), nopPublisher{})

	if err := registry.Create("R1", room); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := registry.Create("R1", room); !errors.Is(err, domain.ErrRoomExists) {
		t.Fatalf("expected room exists, got %v", err)
	}
	if _, ok := registry.Get("R1"); !ok {
		t.Fatalf("expected room present")
	}

	registry.Delete("R1")
	if _, ok := registry.Get("R1"); ok {
		t.Fatalf("expected room removed")
	}
	// Idempotent.
	registry.Delete("R1")
}
