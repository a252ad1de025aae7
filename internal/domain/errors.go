package domain

import "errors"

var (
	// ErrRoomNotFound is returned when an event references a room id that is
	// not (or no longer) registered.
	ErrRoomNotFound = errors.New("room not found")
	// ErrRoomExists is returned when create-room names an id already in use.
	ErrRoomExists = errors.New("room already exists")
	// ErrPlayerNotFound is returned when a submission arrives from a
	// connection that never joined the room.
	ErrPlayerNotFound = errors.New("player not found in room")
	// ErrGameNotStarted is returned for submissions while the room is still
	// in the lobby.
	ErrGameNotStarted = errors.New("game not started")
	// ErrDuplicateAnswer is returned when a player answers the same question
	// twice.
	ErrDuplicateAnswer = errors.New("answer already submitted for this question")
	// ErrAnswerOutOfRange is returned when the answer index does not belong
	// to the active question.
	ErrAnswerOutOfRange = errors.New("answer index out of range")
	// ErrInvalidQuiz indicates an unplayable quiz payload.
	ErrInvalidQuiz = errors.New("invalid quiz")
	// ErrQuizNotFound indicates the referenced catalog quiz could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
)
