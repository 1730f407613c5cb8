package lesson_test

import (
	"errors"
	"testing"

	"github.com/eduquiz/backend/internal/domain/lesson"
	"github.com/eduquiz/backend/internal/domain/quiz"
)

func TestNewLesson(t *testing.T) {
	l := lesson.New(nil, "")

	if l.Title != lesson.DefaultTitle {
		t.Errorf("expected title %q, got %q", lesson.DefaultTitle, l.Title)
	}
	if l.ID == "" {
		t.Error("expected non-empty ID")
	}
	if l.Quiz != nil {
		t.Error("expected new lesson to have no quiz")
	}
}

func TestEnsureQuiz(t *testing.T) {
	l := lesson.New(nil, "Go")

	q := l.EnsureQuiz()
	if q == nil || q.Title != quiz.DefaultTitle {
		t.Fatalf("expected default quiz, got %+v", q)
	}
	q.Title = "Changed"
	if l.EnsureQuiz().Title != "Changed" {
		t.Error("expected EnsureQuiz to keep an existing quiz")
	}
}

func TestDemo(t *testing.T) {
	l := lesson.Demo(nil)

	if !l.Quiz.HasQuestions() {
		t.Fatal("expected demo lesson to carry a quiz")
	}
	q := l.Quiz.Questions[0]
	if len(q.Options) != 3 || len(q.CorrectIDs()) != 1 || q.CorrectIDs()[0] != q.Options[1].ID {
		t.Errorf("expected three options with the second correct, got %+v", q.Options)
	}
}

func TestCollection_Delete(t *testing.T) {
	c := lesson.NewCollection(nil, nil)
	first := c.Create("A")
	second := c.Create("B")

	removed, err := c.Delete("missing")
	if removed || err != nil {
		t.Errorf("expected unknown id to be ignored, got %v, %v", removed, err)
	}

	removed, err = c.Delete(first.ID)
	if !removed || err != nil {
		t.Fatalf("expected removal, got %v, %v", removed, err)
	}

	_, err = c.Delete(second.ID)
	if !errors.Is(err, lesson.ErrLastLesson) {
		t.Errorf("expected ErrLastLesson, got %v", err)
	}
	if len(c.Lessons) != 1 {
		t.Errorf("expected one lesson to remain, got %d", len(c.Lessons))
	}
}

func TestCollection_UpdateAndStats(t *testing.T) {
	c := lesson.NewCollection(nil, nil)
	a := c.Create("A")
	c.Create("B")
	a.EnsureQuiz()

	if s := c.Stats(); s.Lessons != 2 || s.Quizzes != 0 {
		t.Errorf("expected 2 lessons and 0 quizzes, got %+v", s)
	}

	quiz.NewEditor(a.Quiz, nil).AddQuestion(quiz.Single)
	if s := c.Stats(); s.Quizzes != 1 {
		t.Errorf("expected 1 quiz, got %d", s.Quizzes)
	}

	if !c.Update(a.ID, "Renamed", "<p>x</p>") {
		t.Fatal("expected update to succeed")
	}
	if c.Find(a.ID).Title != "Renamed" {
		t.Error("expected title to change")
	}
	if c.Update("missing", "x", "y") {
		t.Error("expected update of unknown id to report false")
	}
}

func TestCollection_SnapshotIsolated(t *testing.T) {
	c := lesson.NewCollection([]*lesson.Lesson{lesson.Demo(nil)}, nil)
	snap := c.Snapshot()

	c.Lessons[0].Quiz.Title = "Edited"
	c.Lessons[0].Title = "Edited"

	if snap[0].Quiz.Title == "Edited" || snap[0].Title == "Edited" {
		t.Error("expected snapshot to be unaffected by later edits")
	}
}
