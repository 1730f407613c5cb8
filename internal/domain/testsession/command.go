package testsession

import "github.com/eduquiz/backend/internal/domain/assessment"

// Event describes the outcome of a command.
type Event struct {
	State       State
	Exit        bool                    // Retreat on the first question
	Explanation string                  // set when entering Explaining
	Answers     []assessment.UserAnswer // set when entering Completed
}

// Command is one discrete taker action coming from a test-runner surface.
type Command interface {
	run(s *Session) (Event, error)
}

type SelectAnswer struct {
	AnswerID string
	Checked  bool
}

type Advance struct{}

type Retreat struct{}

type Continue struct{}

func (c SelectAnswer) run(s *Session) (Event, error) {
	if err := s.Select(c.AnswerID, c.Checked); err != nil {
		return Event{}, err
	}
	return Event{State: State{Phase: s.phase, Index: s.index}}, nil
}

func (Advance) run(s *Session) (Event, error)  { return s.Advance() }
func (Retreat) run(s *Session) (Event, error)  { return s.Retreat() }
func (Continue) run(s *Session) (Event, error) { return s.Continue(), nil }

// Dispatch runs cmd against the session.
func (s *Session) Dispatch(cmd Command) (Event, error) {
	return cmd.run(s)
}
