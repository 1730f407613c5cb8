package lesson

import (
	"errors"

	"github.com/eduquiz/backend/internal/domain/quiz"
	"github.com/eduquiz/backend/internal/id"
)

var ErrLastLesson = errors.New("cannot delete the last lesson")

const (
	DefaultTitle   = "New lesson"
	DefaultContent = "<p>Start editing...</p>"
)

// Lesson is a unit of course content. It owns at most one quiz.
type Lesson struct {
	ID      string
	Title   string
	Content string // HTML
	Quiz    *quiz.Quiz
}

// New creates a lesson with default content and no quiz.
func New(ids id.Generator, title string) *Lesson {
	if ids == nil {
		ids = id.Random
	}
	if title == "" {
		title = DefaultTitle
	}
	return &Lesson{
		ID:      ids.NewID(),
		Title:   title,
		Content: DefaultContent,
	}
}

// EnsureQuiz attaches an empty quiz if the lesson has none and returns it.
func (l *Lesson) EnsureQuiz() *quiz.Quiz {
	if l.Quiz == nil {
		l.Quiz = quiz.New("")
	}
	return l.Quiz
}

// Clone returns a deep copy of the lesson and its quiz.
func (l *Lesson) Clone() *Lesson {
	out := *l
	out.Quiz = l.Quiz.Clone()
	return &out
}

// Demo returns the lesson shown when nothing has been saved yet.
func Demo(ids id.Generator) *Lesson {
	if ids == nil {
		ids = id.Random
	}
	return &Lesson{
		ID:      ids.NewID(),
		Title:   "Welcome to EduPlatform",
		Content: "<p>Welcome! This is a demo lesson.</p><p>Here you can create your own materials.</p>",
		Quiz: &quiz.Quiz{
			Title: "Knowledge check",
			Questions: []quiz.Question{
				{
					ID:   ids.NewID(),
					Type: quiz.Single,
					Text: "What is EduPlatform?",
					Options: []quiz.Option{
						{ID: ids.NewID(), Text: "A gaming platform"},
						{ID: ids.NewID(), Text: "An educational platform", Correct: true},
						{ID: ids.NewID(), Text: "A social network"},
					},
				},
			},
		},
	}
}
