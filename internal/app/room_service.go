package app

import (
	"context"

	"quizroom-service/internal/domain"
)

// RoomRepository abstracts where live rooms are registered (in-memory, Redis-
// marked, etc). It is the single source of truth for room existence.
type RoomRepository interface {
	// Create registers a new room, failing with domain.ErrRoomExists if the
	// id is taken.
	Create(roomID string, room *Room) error
	Get(roomID string) (*Room, bool)
	// Delete removes a room; deleting an absent room is a no-op.
	Delete(roomID string)
}

// QuizRepository loads catalog quiz content (from cache/backing store).
type QuizRepository interface {
	GetQuiz(ctx context.Context, quizID string) (domain.Quiz, error)
}

// RoomService contains the game orchestration use cases. All room state is
// mutated here and nowhere else; the transport only routes events in and fans
// broadcasts out.
type RoomService struct {
	rooms   RoomRepository
	quizzes QuizRepository
	pub     Publisher
}

func NewRoomService(rooms RoomRepository, quizzes QuizRepository, pub Publisher) *RoomService {
	return &RoomService{rooms: rooms, quizzes: quizzes, pub: pub}
}

// CreateRoom registers a room around an inline quiz. The id must be free.
func (s *RoomService) CreateRoom(_ context.Context, roomID string, quiz domain.Quiz) error {
	if err := quiz.Validate(); err != nil {
		return err
	}
	return s.rooms.Create(roomID, newRoom(roomID, quiz, s.pub))
}

// CreateRoomFromCatalog registers a room around a stored quiz.
func (s *RoomService) CreateRoomFromCatalog(ctx context.Context, roomID, quizID string) error {
	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	return s.CreateRoom(ctx, roomID, quiz)
}

// JoinRoom adds a participant to a room's roster and broadcasts the updated
// roster. This is the one operation whose room-not-found outcome is reported
// back to the requester.
func (s *RoomService) JoinRoom(roomID, playerID, name string) error {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}
	return room.join(playerID, name)
}

// StartGame begins the quiz run for a room. Unknown rooms are a no-op.
func (s *RoomService) StartGame(roomID string) error {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}
	room.start()
	return nil
}

// NextQuestion advances the room; on the last question this ends the game and
// removes the room.
func (s *RoomService) NextQuestion(roomID string) error {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}
	if room.advance() {
		s.rooms.Delete(roomID)
	}
	return nil
}

// EndGame force-finishes the room regardless of progress, broadcasts the final
// ranking, and removes the room.
func (s *RoomService) EndGame(roomID string) error {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}
	if room.end() {
		s.rooms.Delete(roomID)
	}
	return nil
}

// SubmitAnswer records one answer for the current question of a room.
func (s *RoomService) SubmitAnswer(roomID, playerID string, answerIdx int) error {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		return domain.ErrRoomNotFound
	}
	return room.submit(playerID, answerIdx)
}

// NewRoom is exported for infrastructure and tests that need to seed rooms
// without going through CreateRoom.
func NewRoom(id string, quiz domain.Quiz, pub Publisher) *Room {
	return newRoom(id, quiz, pub)
}
