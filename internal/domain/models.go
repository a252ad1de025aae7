package domain

// Question is a single multiple-choice question. Correct is the index into
// Answers; it must never reach players while the question is live.
type Question struct {
	Text    string   `json:"question"`
	Answers []string `json:"answers"`
	Correct int      `json:"correct"`
}

// Quiz is an ordered run of questions. A room owns its quiz for the lifetime
// of the game; it is never mutated after the room is created.
type Quiz struct {
	ID        string     `json:"id,omitempty"`
	Questions []Question `json:"questions"`
}

// Validate checks that the quiz is playable: at least one question, each with
// at least two options and an in-range correct index.
func (q Quiz) Validate() error {
	if len(q.Questions) == 0 {
		return ErrInvalidQuiz
	}
	for _, question := range q.Questions {
		if len(question.Answers) < 2 {
			return ErrInvalidQuiz
		}
		if question.Correct < 0 || question.Correct >= len(question.Answers) {
			return ErrInvalidQuiz
		}
	}
	return nil
}

// Player is a participant who joined a room. ID is the opaque connection id
// assigned by the transport; Name is host-supplied and may collide.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// AnswerTally counts submissions per answer index for the current question
// only. It is reset whenever a new question goes live.
type AnswerTally map[int]int
