package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/eduquiz/backend/internal/domain/lesson"
	"github.com/eduquiz/backend/internal/domain/quiz"
	"github.com/eduquiz/backend/internal/id"
	"github.com/eduquiz/backend/internal/store"
	"github.com/eduquiz/backend/internal/transfer"
)

var ErrNoQuiz = errors.New("lesson has no quiz")

// SnapshotSaver receives a deep copy of the collection after every change.
type SnapshotSaver interface {
	Save(lessons []*lesson.Lesson)
}

// LessonService is the authoring side: it owns the in-memory lesson
// collection, which is the single source of truth between load and save.
// Every method runs to completion under one lock, so edits never interleave.
type LessonService struct {
	ids    id.Generator
	saver  SnapshotSaver
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	lessons *lesson.Collection
}

// NewLessonService loads the collection from s. An empty store is seeded
// with the demo lesson.
func NewLessonService(ctx context.Context, s store.Store, saver SnapshotSaver, ids id.Generator, logger *slog.Logger) (*LessonService, error) {
	if ids == nil {
		ids = id.Random
	}

	loaded, err := s.LoadLessons(ctx)
	if err != nil {
		return nil, err
	}

	svc := &LessonService{
		ids:     ids,
		saver:   saver,
		logger:  logger,
		now:     time.Now,
		lessons: lesson.NewCollection(loaded, ids),
	}

	if len(loaded) == 0 {
		svc.lessons.Replace([]*lesson.Lesson{lesson.Demo(ids)})
		svc.persist()
		logger.Info("seeded demo lesson")
	}
	return svc, nil
}

// ============================================================================
// Lessons
// ============================================================================

func (s *LessonService) List() []*lesson.Lesson {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lessons.Snapshot()
}

func (s *LessonService) Get(lessonID string) (*lesson.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.lessons.Find(lessonID)
	if l == nil {
		return nil, store.ErrNotFound
	}
	return l.Clone(), nil
}

func (s *LessonService) Create(title string) *lesson.Lesson {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.lessons.Create(title)
	s.persist()
	return l.Clone()
}

func (s *LessonService) Update(lessonID, title, content string) (*lesson.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.lessons.Update(lessonID, title, content) {
		return nil, store.ErrNotFound
	}
	s.persist()
	return s.lessons.Find(lessonID).Clone(), nil
}

func (s *LessonService) Delete(lessonID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.lessons.Delete(lessonID)
	if err != nil {
		return err
	}
	if !removed {
		return store.ErrNotFound
	}
	s.persist()
	return nil
}

func (s *LessonService) Stats() lesson.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lessons.Stats()
}

// ============================================================================
// Quiz authoring
// ============================================================================

// EnsureQuiz gives the lesson an empty quiz if it has none.
func (s *LessonService) EnsureQuiz(lessonID string) (*quiz.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l := s.lessons.Find(lessonID)
	if l == nil {
		return nil, store.ErrNotFound
	}
	created := l.Quiz == nil
	q := l.EnsureQuiz()
	if created {
		s.persist()
	}
	return q.Clone(), nil
}

// ApplyQuizCommand runs one authoring command against the lesson's quiz and
// returns the resulting quiz. A command whose target no longer exists leaves
// the quiz unchanged and is not an error; applied reports which case it was.
func (s *LessonService) ApplyQuizCommand(lessonID string, cmd quiz.Command) (q *quiz.Quiz, applied bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.quizLocked(lessonID)
	if err != nil {
		return nil, false, err
	}

	applied = quiz.NewEditor(current, s.ids).Apply(cmd)
	if applied {
		s.persist()
	} else {
		s.logger.Debug("stale quiz command ignored",
			"lesson_id", lessonID,
			"command", commandName(cmd),
		)
	}
	return current.Clone(), applied, nil
}

// Preview returns the quiz as a taker would see it, without correctness.
func (s *LessonService) Preview(lessonID string) (quiz.Sheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.quizLocked(lessonID)
	if err != nil {
		return quiz.Sheet{}, err
	}
	return quiz.NewSheet(q), nil
}

// Check marks a self-test submission against the lesson's quiz.
func (s *LessonService) Check(lessonID string, selections map[string][]string) (quiz.CheckResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.quizLocked(lessonID)
	if err != nil {
		return quiz.CheckResult{}, err
	}
	return quiz.Check(q, selections), nil
}

func (s *LessonService) quizLocked(lessonID string) (*quiz.Quiz, error) {
	l := s.lessons.Find(lessonID)
	if l == nil {
		return nil, store.ErrNotFound
	}
	if l.Quiz == nil {
		return nil, ErrNoQuiz
	}
	return l.Quiz, nil
}

// ============================================================================
// Export / import
// ============================================================================

func (s *LessonService) Export(w io.Writer) error {
	s.mu.Lock()
	snapshot := s.lessons.Snapshot()
	s.mu.Unlock()

	return transfer.Export(w, snapshot, s.now())
}

// Import replaces the whole collection with the document read from r. On any
// error the current collection is left untouched.
func (s *LessonService) Import(r io.Reader) (int, error) {
	imported, err := transfer.Import(r)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lessons.Replace(imported)
	s.persist()
	s.logger.Info("lessons imported", "count", len(imported))
	return len(imported), nil
}

// persist hands a snapshot to the saver. Callers hold s.mu.
func (s *LessonService) persist() {
	if s.saver == nil {
		return
	}
	s.saver.Save(s.lessons.Snapshot())
}

func commandName(cmd quiz.Command) string {
	if cmd == nil {
		return "none"
	}
	return cmd.Name()
}
