package testsession

import (
	"errors"
	"time"

	"github.com/eduquiz/backend/internal/domain/assessment"
	"github.com/eduquiz/backend/internal/domain/quiz"
	"github.com/eduquiz/backend/internal/id"
)

var (
	ErrEmptySelection   = errors.New("select at least one answer before continuing")
	ErrSelectionLocked  = errors.New("selection is locked while the explanation is shown")
	ErrSessionCompleted = errors.New("test session is already completed")
)

// FallbackExplanation is shown when the selected answer carries no explanation.
const FallbackExplanation = "The correct answer is highlighted"

type Phase string

const (
	Presenting Phase = "presenting"
	Explaining Phase = "explaining"
	Completed  Phase = "completed"
)

// State is the current position of the state machine. Index is meaningless
// once Phase is Completed.
type State struct {
	Phase Phase
	Index int
}

// Session drives one taker through the questions of a quiz, one at a time.
//
// A Session is not safe for concurrent use. Completed is terminal: a new
// attempt needs a new Session so no answers leak between attempts.
type Session struct {
	ID string

	questions []assessment.Question
	cfg       SessionConfig

	phase        Phase
	index        int
	selection    []string
	answers      []*assessment.UserAnswer // by question position
	explainUntil time.Time
}

// New creates a session with the default config.
func New(questions []assessment.Question) *Session {
	return NewWithConfig(questions, DefaultConfig())
}

// NewWithConfig creates a session presenting the first question. The
// questions slice is only read, never modified.
func NewWithConfig(questions []assessment.Question, config SessionConfig) *Session {
	if config.ExplainDelay <= 0 {
		config.ExplainDelay = DefaultExplainDelay
	}
	if config.Clock == nil {
		config.Clock = time.Now
	}

	s := &Session{
		ID:        id.UUID.NewID(),
		questions: questions,
		cfg:       config,
		phase:     Presenting,
		answers:   make([]*assessment.UserAnswer, len(questions)),
	}
	if len(questions) == 0 {
		s.phase = Completed
	}
	return s
}

// State returns the current state, first applying an elapsed explanation
// interval.
func (s *Session) State() State {
	s.settle()
	return State{Phase: s.phase, Index: s.index}
}

// Position returns the current question index and the question count.
func (s *Session) Position() (int, int) {
	s.settle()
	return s.index, len(s.questions)
}

// Progress returns how far through the quiz the taker is, in percent.
func (s *Session) Progress() float64 {
	s.settle()
	if len(s.questions) == 0 || s.phase == Completed {
		return 100
	}
	return float64(s.index+1) / float64(len(s.questions)) * 100
}

// Current returns the question being presented or explained.
func (s *Session) Current() (assessment.Question, bool) {
	s.settle()
	if s.phase == Completed {
		return assessment.Question{}, false
	}
	return s.questions[s.index], true
}

// Selection returns a copy of the working selection.
func (s *Session) Selection() []string {
	s.settle()
	return append([]string(nil), s.selection...)
}

// Select changes the working selection for the presented question.
// Single questions replace the selection with answerID regardless of checked;
// Multiple questions add or remove it. Ids not belonging to the question are
// ignored.
func (s *Session) Select(answerID string, checked bool) error {
	if err := s.requirePresenting(); err != nil {
		return err
	}

	q := &s.questions[s.index]
	if q.Answer(answerID) == nil {
		return nil
	}

	if q.Type != quiz.Multiple {
		s.selection = []string{answerID}
		return nil
	}

	pos := indexOf(s.selection, answerID)
	switch {
	case checked && pos < 0:
		s.selection = append(s.selection, answerID)
	case !checked && pos >= 0:
		s.selection = append(s.selection[:pos], s.selection[pos+1:]...)
	}
	return nil
}

// Advance records the selection for the presented question and moves on:
// to Completed after the last question, to Explaining otherwise.
func (s *Session) Advance() (Event, error) {
	if err := s.requirePresenting(); err != nil {
		return Event{}, err
	}
	if len(s.selection) == 0 {
		return Event{}, ErrEmptySelection
	}

	s.record()

	if s.index == len(s.questions)-1 {
		s.phase = Completed
		s.selection = nil
		return Event{State: State{Phase: Completed, Index: s.index}, Answers: s.Answers()}, nil
	}

	s.phase = Explaining
	s.explainUntil = s.cfg.Clock().Add(s.cfg.ExplainDelay)
	return Event{State: State{Phase: Explaining, Index: s.index}, Explanation: s.Explanation()}, nil
}

// Retreat goes back one question. On the first question it changes nothing
// and reports Exit so the caller can leave the test.
func (s *Session) Retreat() (Event, error) {
	if err := s.requirePresenting(); err != nil {
		return Event{}, err
	}
	if s.index == 0 {
		return Event{State: State{Phase: Presenting, Index: 0}, Exit: true}, nil
	}

	if len(s.selection) > 0 {
		s.record()
	}
	s.present(s.index - 1)
	return Event{State: State{Phase: Presenting, Index: s.index}}, nil
}

// Continue ends the explanation early and presents the next question.
// Outside Explaining it does nothing.
func (s *Session) Continue() Event {
	s.settle()
	if s.phase == Explaining {
		s.present(s.index + 1)
	}
	return Event{State: State{Phase: s.phase, Index: s.index}}
}

// Explanation returns the text shown while Explaining: the explanation of the
// first selected answer, or FallbackExplanation.
func (s *Session) Explanation() string {
	if s.phase != Explaining {
		return ""
	}
	q := &s.questions[s.index]
	if len(s.selection) > 0 {
		if a := q.Answer(s.selection[0]); a != nil && a.Explanation != "" {
			return a.Explanation
		}
	}
	return FallbackExplanation
}

// Answers returns a copy of the recorded answers in question order.
func (s *Session) Answers() []assessment.UserAnswer {
	out := make([]assessment.UserAnswer, 0, len(s.answers))
	for _, ua := range s.answers {
		if ua == nil {
			continue
		}
		out = append(out, assessment.UserAnswer{
			QuestionID:        ua.QuestionID,
			SelectedAnswerIDs: append([]string(nil), ua.SelectedAnswerIDs...),
		})
	}
	return out
}

// Completed reports whether the session reached its terminal state.
func (s *Session) Completed() bool {
	return s.phase == Completed
}

func (s *Session) requirePresenting() error {
	s.settle()
	switch s.phase {
	case Completed:
		return ErrSessionCompleted
	case Explaining:
		return ErrSelectionLocked
	}
	return nil
}

// settle applies the automatic Explaining → Presenting(i+1) transition once
// the explanation interval has elapsed.
func (s *Session) settle() {
	if s.phase == Explaining && !s.cfg.Clock().Before(s.explainUntil) {
		s.present(s.index + 1)
	}
}

// record overwrites the answer for the presented question.
func (s *Session) record() {
	s.answers[s.index] = &assessment.UserAnswer{
		QuestionID:        s.questions[s.index].ID,
		SelectedAnswerIDs: append([]string(nil), s.selection...),
	}
}

// present moves to question i, seeding the selection from its recorded answer.
func (s *Session) present(i int) {
	s.phase = Presenting
	s.index = i
	s.explainUntil = time.Time{}
	s.selection = nil
	if ua := s.answers[i]; ua != nil {
		s.selection = append([]string(nil), ua.SelectedAnswerIDs...)
	}
}

func indexOf(ids []string, target string) int {
	for i, v := range ids {
		if v == target {
			return i
		}
	}
	return -1
}
