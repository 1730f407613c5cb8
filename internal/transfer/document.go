package transfer

import (
	"github.com/eduquiz/backend/internal/domain/lesson"
	"github.com/eduquiz/backend/internal/domain/quiz"
)

// ── Document types ──────────────────────────────────────────────────────────

type ExportOption struct {
	ID      string `json:"id" validate:"required"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type ExportQuestion struct {
	ID      string         `json:"id" validate:"required"`
	Type    string         `json:"type" validate:"oneof=single multiple"`
	Text    string         `json:"text"`
	Options []ExportOption `json:"options" validate:"dive"`
}

type ExportQuiz struct {
	Title     string           `json:"title"`
	Questions []ExportQuestion `json:"questions" validate:"dive"`
}

type ExportLesson struct {
	ID      string      `json:"id" validate:"required"`
	Title   string      `json:"title"`
	Content string      `json:"content"`
	Quiz    *ExportQuiz `json:"quiz"`
}

type ExportData struct {
	Version    string         `json:"version"`
	ExportedAt string         `json:"exported_at"`
	Lessons    []ExportLesson `json:"lessons" validate:"required,min=1,dive"`
}

// ── Conversion ──────────────────────────────────────────────────────────────

func toExportLesson(l *lesson.Lesson) ExportLesson {
	out := ExportLesson{
		ID:      l.ID,
		Title:   l.Title,
		Content: l.Content,
	}
	if l.Quiz == nil {
		return out
	}

	out.Quiz = &ExportQuiz{
		Title:     l.Quiz.Title,
		Questions: make([]ExportQuestion, len(l.Quiz.Questions)),
	}
	for i, q := range l.Quiz.Questions {
		eq := ExportQuestion{
			ID:      q.ID,
			Type:    string(q.Type),
			Text:    q.Text,
			Options: make([]ExportOption, len(q.Options)),
		}
		for j, o := range q.Options {
			eq.Options[j] = ExportOption{ID: o.ID, Text: o.Text, Correct: o.Correct}
		}
		out.Quiz.Questions[i] = eq
	}
	return out
}

func (e ExportLesson) toLesson() *lesson.Lesson {
	l := &lesson.Lesson{
		ID:      e.ID,
		Title:   e.Title,
		Content: e.Content,
	}
	if e.Quiz == nil {
		return l
	}

	l.Quiz = &quiz.Quiz{
		Title:     e.Quiz.Title,
		Questions: make([]quiz.Question, len(e.Quiz.Questions)),
	}
	for i, eq := range e.Quiz.Questions {
		q := quiz.Question{
			ID:      eq.ID,
			Type:    quiz.QuestionType(eq.Type),
			Text:    eq.Text,
			Options: make([]quiz.Option, len(eq.Options)),
		}
		for j, o := range eq.Options {
			q.Options[j] = quiz.Option{ID: o.ID, Text: o.Text, Correct: o.Correct}
		}
		l.Quiz.Questions[i] = q
	}
	return l
}
