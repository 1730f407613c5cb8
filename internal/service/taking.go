package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/eduquiz/backend/internal/configsource"
	"github.com/eduquiz/backend/internal/domain/assessment"
	"github.com/eduquiz/backend/internal/domain/testsession"
)

var (
	ErrSessionNotFound = errors.New("test session not found")
	ErrNotCompleted    = errors.New("test session is not completed")
	ErrInvalidConfig   = errors.New("invalid test configuration")
)

// AnswerView is an answer as shown to the taker; scores stay server side.
type AnswerView struct {
	ID   string
	Text string
}

type QuestionView struct {
	ID        int
	Text      string
	Type      string
	InputKind string
	Answers   []AnswerView
}

// TestView is what a test-runner surface needs to render a session.
type TestView struct {
	SessionID   string
	Phase       testsession.Phase
	Index       int
	Total       int
	Progress    float64
	Question    *QuestionView // nil once completed
	Selection   []string
	Explanation string
	Exit        bool // Retreat on the first question: leave the test
	Result      *assessment.TestResult
}

type ResultView struct {
	Result     assessment.TestResult
	DoctorLink string
}

type testEntry struct {
	session *testsession.Session
	config  assessment.AppConfig
	result  *assessment.TestResult
	failure error // configuration error hit while scoring
}

// TestService keeps the in-progress test sessions and scores them on
// completion. The config is fetched through source before every new session.
type TestService struct {
	source  configsource.Source
	session testsession.SessionConfig
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[string]*testEntry
}

func NewTestService(source configsource.Source, session testsession.SessionConfig, logger *slog.Logger) *TestService {
	return &TestService{
		source:   source,
		session:  session,
		logger:   logger,
		sessions: make(map[string]*testEntry),
	}
}

// Config loads the app config and rejects scoring tables that cannot
// resolve every attainable total.
func (s *TestService) Config(ctx context.Context) (assessment.AppConfig, error) {
	if s.source == nil {
		return assessment.AppConfig{}, &configsource.UnavailableError{Source: "none", Reason: "no config source configured"}
	}

	cfg, err := s.source.Load(ctx)
	if err != nil {
		return assessment.AppConfig{}, err
	}
	if err := cfg.Quiz.Validate(); err != nil {
		return assessment.AppConfig{}, pkgerrors.Wrapf(ErrInvalidConfig, "%v", err)
	}
	return cfg, nil
}

// Start creates a fresh session presenting the first question.
func (s *TestService) Start(ctx context.Context) (TestView, error) {
	cfg, err := s.Config(ctx)
	if err != nil {
		return TestView{}, err
	}

	e := &testEntry{
		session: testsession.NewWithConfig(cfg.Quiz.Questions, s.session),
		config:  cfg,
	}

	s.mu.Lock()
	s.sessions[e.session.ID] = e
	s.mu.Unlock()

	s.logger.Info("test session started",
		"session_id", e.session.ID,
		"questions", len(cfg.Quiz.Questions),
	)
	return s.view(e, testsession.Event{}), nil
}

func (s *TestService) Get(sessionID string) (TestView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return TestView{}, ErrSessionNotFound
	}
	return s.view(e, testsession.Event{}), nil
}

// Dispatch runs one taker command. Reaching Completed scores the attempt;
// a scoring table that does not cover the total fails the attempt for good.
func (s *TestService) Dispatch(sessionID string, cmd testsession.Command) (TestView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return TestView{}, ErrSessionNotFound
	}
	if e.failure != nil {
		return TestView{}, e.failure
	}

	ev, err := e.session.Dispatch(cmd)
	if err != nil {
		return TestView{}, err
	}

	if ev.State.Phase == testsession.Completed && e.result == nil {
		result, err := assessment.Resolve(ev.Answers, e.config.Quiz)
		if err != nil {
			e.failure = err
			s.logger.Error("scoring failed",
				"session_id", sessionID,
				"error", err,
			)
			return TestView{}, err
		}
		e.result = &result
		s.logger.Info("test session completed",
			"session_id", sessionID,
			"total_score", result.TotalScore,
			"level", result.Level,
		)
	}
	return s.view(e, ev), nil
}

func (s *TestService) Result(sessionID string) (ResultView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[sessionID]
	if !ok {
		return ResultView{}, ErrSessionNotFound
	}
	if e.failure != nil {
		return ResultView{}, e.failure
	}
	if e.result == nil {
		return ResultView{}, ErrNotCompleted
	}
	return ResultView{Result: copyResult(*e.result), DoctorLink: e.config.DoctorLink}, nil
}

// Restart discards the session and starts a new one. Nothing from the old
// attempt carries over.
func (s *TestService) Restart(ctx context.Context, sessionID string) (TestView, error) {
	if err := s.Abandon(sessionID); err != nil {
		return TestView{}, err
	}
	return s.Start(ctx)
}

// Abandon drops a session in any state.
func (s *TestService) Abandon(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	s.logger.Debug("test session discarded", "session_id", sessionID)
	return nil
}

func (s *TestService) view(e *testEntry, ev testsession.Event) TestView {
	st := e.session.State()
	index, total := e.session.Position()

	v := TestView{
		SessionID:   e.session.ID,
		Phase:       st.Phase,
		Index:       index,
		Total:       total,
		Progress:    e.session.Progress(),
		Selection:   e.session.Selection(),
		Explanation: e.session.Explanation(),
		Exit:        ev.Exit,
	}
	if q, ok := e.session.Current(); ok {
		v.Question = newQuestionView(q)
	}
	if e.result != nil {
		r := copyResult(*e.result)
		v.Result = &r
	}
	return v
}

func newQuestionView(q assessment.Question) *QuestionView {
	v := &QuestionView{
		ID:        q.ID,
		Text:      q.Text,
		Type:      string(q.Type),
		InputKind: q.Type.InputKind(),
		Answers:   make([]AnswerView, len(q.Answers)),
	}
	for i, a := range q.Answers {
		v.Answers[i] = AnswerView{ID: a.ID, Text: a.Text}
	}
	return v
}

func copyResult(r assessment.TestResult) assessment.TestResult {
	r.Recommendations = append([]string(nil), r.Recommendations...)
	return r
}
