package app

import (
	"sort"
	"sync"

	"quizroom-service/internal/domain"
)

// scorePerCorrect is awarded for each correct answer.
const scorePerCorrect = 10

type phase int

const (
	phaseLobby phase = iota
	phaseQuestion
	phaseFinished
)

// Room holds one game run: its quiz, roster, current question, and the live
// tally. All fields are guarded by mu; only the methods below touch them, and
// every broadcast is published while the lock is held so no subscriber ever
// sees an event ahead of the state it describes.
type Room struct {
	id   string
	quiz domain.Quiz
	pub  Publisher

	mu       sync.Mutex
	phase    phase
	current  int
	players  []*domain.Player
	tally    domain.AnswerTally
	answered map[string]struct{}
}

func newRoom(id string, quiz domain.Quiz, pub Publisher) *Room {
	return &Room{
		id:       id,
		quiz:     quiz,
		pub:      pub,
		phase:    phaseLobby,
		tally:    make(domain.AnswerTally),
		answered: make(map[string]struct{}),
	}
}

// join adds a player to the roster, or refreshes the name if the connection
// already joined. Late joins during a running question are accepted; they
// simply missed earlier questions.
func (r *Room) join(playerID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == phaseFinished {
		return domain.ErrRoomNotFound
	}

	if p := r.findLocked(playerID); p != nil {
		p.Name = name
	} else {
		r.players = append(r.players, &domain.Player{ID: playerID, Name: name})
	}

	names := make([]string, len(r.players))
	for i, p := range r.players {
		names[i] = p.Name
	}
	r.pub.Publish(r.id, Event{Type: EventPlayerJoined, Payload: names})
	return nil
}

// start moves the room out of the lobby and sends the first question. Calling
// it on a running or finished room does nothing.
func (r *Room) start() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != phaseLobby {
		return
	}
	r.phase = phaseQuestion
	r.current = 0
	r.pub.Publish(r.id, Event{Type: EventGameStarted, Payload: struct{}{}})
	r.sendQuestionLocked()
}

// advance moves to the next question, or ends the game when the quiz is
// exhausted. Reports whether the room finished.
func (r *Room) advance() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != phaseQuestion {
		return false
	}
	if r.current+1 < len(r.quiz.Questions) {
		r.current++
		r.sendQuestionLocked()
		return false
	}
	r.finishLocked()
	return true
}

// end forces the game over from any non-terminal state. Reports whether this
// call performed the transition.
func (r *Room) end() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase == phaseFinished {
		return false
	}
	r.finishLocked()
	return true
}

// submit records one answer for the current question. The tally counts every
// accepted submission, known player or not; only known players score, at most
// once per question.
func (r *Room) submit(playerID string, answerIdx int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != phaseQuestion {
		return domain.ErrGameNotStarted
	}
	question := r.quiz.Questions[r.current]
	if answerIdx < 0 || answerIdx >= len(question.Answers) {
		return domain.ErrAnswerOutOfRange
	}

	player := r.findLocked(playerID)
	if player != nil {
		if _, dup := r.answered[playerID]; dup {
			return domain.ErrDuplicateAnswer
		}
		r.answered[playerID] = struct{}{}
		if answerIdx == question.Correct {
			player.Score += scorePerCorrect
		}
	}

	r.tally[answerIdx]++
	r.pub.Publish(r.id, Event{Type: EventTeacherView, Payload: TeacherView{
		Question: question,
		Index:    r.current,
		Stats:    r.tally,
	}})

	if player == nil {
		return domain.ErrPlayerNotFound
	}
	return nil
}

// sendQuestionLocked resets the per-question state and broadcasts the active
// question: the player-safe view to everyone, the full view to the host.
func (r *Room) sendQuestionLocked() {
	question := r.quiz.Questions[r.current]
	r.tally = make(domain.AnswerTally)
	r.answered = make(map[string]struct{})

	r.pub.Publish(r.id, Event{Type: EventNewQuestion, Payload: QuestionView{
		Question: question.Text,
		Answers:  question.Answers,
	}})
	r.pub.Publish(r.id, Event{Type: EventTeacherView, Payload: TeacherView{
		Question: question,
		Index:    r.current,
		Stats:    r.tally,
	}})
}

func (r *Room) finishLocked() {
	r.phase = phaseFinished
	r.pub.Publish(r.id, Event{Type: EventGameEnded, Payload: r.rankingLocked()})
}

// rankingLocked returns the roster ordered by descending score. The sort is
// stable: equal scores keep join order.
func (r *Room) rankingLocked() []domain.Player {
	ranking := make([]domain.Player, len(r.players))
	for i, p := range r.players {
		ranking[i] = *p
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Score > ranking[j].Score
	})
	return ranking
}

func (r *Room) findLocked(playerID string) *domain.Player {
	for _, p := range r.players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}
