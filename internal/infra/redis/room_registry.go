package redis

import (
	"context"
	"sync"
	"time"

	"quizroom-service/internal/app"
	"quizroom-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RoomRegistry is a Redis-aware implementation of app.RoomRepository.
// Notes:
//   - Live rooms stay in a local map: a room's lock and broadcast path are
//     in-process, so the *app.Room cannot live anywhere else.
//   - Redis holds best-effort liveness keys so sibling instances can see
//     which room ids are taken; the key disappears with the room (or by TTL
//     if the process dies).
type RoomRegistry struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	rooms  map[string]*app.Room
}

func NewRoomRegistry(client *redis.Client, ttl time.Duration) *RoomRegistry {
	return &RoomRegistry{
		client: client,
		ttl:    ttl,
		rooms:  make(map[string]*app.Room),
	}
}

func (r *RoomRegistry) Create(roomID string, room *app.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[roomID]; ok {
		return domain.ErrRoomExists
	}
	// SETNX so two instances cannot claim the same room id.
	ok, err := r.client.SetNX(context.Background(), r.key(roomID), "1", r.ttl).Result()
	if err == nil && !ok {
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
	_ = r.client.Del(context.Background(), r.key(roomID)).Err()
}

func (r *RoomRegistry) key(roomID string) string {
	return "room:live:" + roomID
}
