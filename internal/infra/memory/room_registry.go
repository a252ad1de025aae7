package memory

import (
	"sync"

	"quizroom-service/internal/app"
	"quizroom-service/internal/domain"
)

// RoomRegistry is the in-memory implementation of app.RoomRepository.
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*app.Room
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[string]*app.Room)}
}

func (r *RoomRegistry) Create(roomID string, room *app.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[roomID]; ok {
		return domain.ErrRoomExists
	}
	r.rooms[roomID] = room
	return nil
}

func (r *RoomRegistry) Get(roomID string) (*app.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[roomID]
	return room, ok
}

func (r *RoomRegistry) Delete(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, roomID)
}
