package app

import "quizroom-service/internal/domain"

// Wire names of the outbound events fanned out over room topics.
const (
	EventRoomCreated  = "room-created"
	EventPlayerJoined = "player-joined"
	EventGameStarted  = "game-started"
	EventNewQuestion  = "new-question"
	EventTeacherView  = "update-teacher-view"
	EventGameEnded    = "game-ended"
	EventError        = "error"
)

// Event is the outbound envelope delivered to subscribed connections.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Publisher fans an event out to every connection subscribed to a room topic.
// Room methods call it while holding the room lock, so per-room event streams
// are totally ordered; implementations must not block.
type Publisher interface {
	Publish(roomID string, event Event)
}

// QuestionView is the player-safe form of a question: the correct index is
// withheld.
type QuestionView struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
}

// TeacherView is the host-facing snapshot: full question, current index, and
// the live tally for that question.
type TeacherView struct {
	Question domain.Question    `json:"question"`
	Index    int                `json:"index"`
	Stats    domain.AnswerTally `json:"stats"`
}

// RoomCreatedPayload acknowledges a successful create-room to the host.
type RoomCreatedPayload struct {
	Room string `json:"room"`
}
